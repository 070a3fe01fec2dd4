package generation

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/agent/llmagent"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/adk/runner"
	"google.golang.org/adk/session"
	"google.golang.org/genai"
)

const (
	agentName   = "resume_analyzer"
	agentUserID = "skillscan"
)

// AgentGenerator runs prompts through an adk agent. Each call gets its own
// adk session so no earlier prompt is replayed as history.
type AgentGenerator struct {
	runner   *runner.Runner
	sessions session.Service
	appName  string
}

func NewAgentGenerator(ctx context.Context, cfg Config) (*AgentGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	model, err := gemini.NewModel(ctx, cfg.Model, cfg.clientConfig())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create model")
	}

	analyzer, err := llmagent.New(llmagent.Config{
		Name:        agentName,
		Model:       model,
		Description: "Match a resume against a job description",
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create agent")
	}

	sessions := session.InMemoryService()
	r, err := runner.New(runner.Config{
		AppName:        analyzer.Name(),
		Agent:          analyzer,
		SessionService: sessions,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create runner")
	}

	return &AgentGenerator{runner: r, sessions: sessions, appName: analyzer.Name()}, nil
}

func (g *AgentGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	created, err := g.sessions.Create(ctx, &session.CreateRequest{
		AppName:   g.appName,
		UserID:    agentUserID,
		SessionID: uuid.NewString(),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to create agent session")
	}
	defer func() {
		err := g.sessions.Delete(context.WithoutCancel(ctx), &session.DeleteRequest{
			AppName:   created.Session.AppName(),
			UserID:    created.Session.UserID(),
			SessionID: created.Session.ID(),
		})
		if err != nil {
			logrus.WithError(err).WithField("agent_session", created.Session.ID()).Warn("failed to delete agent session")
		}
	}()

	stream := g.runner.Run(ctx, created.Session.UserID(), created.Session.ID(),
		genai.NewContentFromText(prompt, genai.RoleUser), agent.RunConfig{})

	var output string
	for event, err := range stream {
		if err != nil {
			return "", &APIError{Err: err}
		}
		if event == nil || !event.IsFinalResponse() || event.Content == nil {
			continue
		}
		var parts strings.Builder
		for _, part := range event.Content.Parts {
			if part != nil {
				parts.WriteString(part.Text)
			}
		}
		output = parts.String()
	}
	if output == "" {
		return "", &APIError{Err: errors.New("empty agent response")}
	}
	return output, nil
}
