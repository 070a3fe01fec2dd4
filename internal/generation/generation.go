package generation

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

const (
	BackendAgent  = "agent"
	BackendClient = "client"

	DefaultModel = "gemini-2.5-flash"
)

var ErrMissingAPIKey = errors.New("generation: missing API key")

// Generator sends one instruction to the model and returns its text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// APIError is any failure of the generation service. The message is the
// service's own.
type APIError struct {
	Err error
}

func (e *APIError) Error() string { return e.Err.Error() }

func (e *APIError) Unwrap() error { return e.Err }

type Config struct {
	Backend string
	APIKey  string
	Model   string
	// BaseURL overrides the Gemini API endpoint, e.g. for a proxy.
	BaseURL string
}

func (c Config) clientConfig() *genai.ClientConfig {
	cc := &genai.ClientConfig{
		APIKey:  c.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if c.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: c.BaseURL}
	}
	return cc
}

// New builds the generator for cfg.Backend. The API key is checked here so
// a missing credential fails at startup rather than on the first request.
func New(ctx context.Context, cfg Config) (Generator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	switch cfg.Backend {
	case "", BackendAgent:
		return NewAgentGenerator(ctx, cfg)
	case BackendClient:
		return NewClientGenerator(ctx, cfg)
	default:
		return nil, fmt.Errorf("generation: unknown backend %q", cfg.Backend)
	}
}
