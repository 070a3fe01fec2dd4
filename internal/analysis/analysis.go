package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/muhammadolammi/skillscan/internal/extract"
	"github.com/muhammadolammi/skillscan/internal/format"
	"github.com/muhammadolammi/skillscan/internal/generation"
	"github.com/muhammadolammi/skillscan/internal/prompt"
)

// MissingInputWarning is the notice shown when an action is triggered
// without a job description or a resume.
const MissingInputWarning = "Please upload your resume and enter the job description to proceed."

// NoActionsWarning is the notice shown when a request names no action.
const NoActionsWarning = "Please choose at least one analysis to run."

type MissingInputError struct {
	Field string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("missing input: %s", e.Field)
}

// Warning is the notice shown to the user for the missing field.
func (e *MissingInputError) Warning() string {
	if e.Field == "actions" {
		return NoActionsWarning
	}
	return MissingInputWarning
}

// CheckRequest rejects a request with a blank job description or no
// actions. It needs neither the resume nor the model, so callers can run it
// before fetching the document.
func CheckRequest(jobDescription string, actions []string) error {
	if strings.TrimSpace(jobDescription) == "" {
		return &MissingInputError{Field: "job_description"}
	}
	if len(actions) == 0 {
		return &MissingInputError{Field: "actions"}
	}
	return nil
}

// Input is what a user supplies for an action.
type Input struct {
	JobDescription string
	Resume         []byte
	Mime           string
}

// Section is the rendered outcome of one action.
type Section struct {
	Action  string `json:"action"`
	Heading string `json:"heading"`
	Body    string `json:"body,omitempty"`
	IsError bool   `json:"is_error_result"`
	Error   string `json:"error,omitempty"`
}

type Service struct {
	gen generation.Generator
	log *logrus.Entry
}

func New(gen generation.Generator, log *logrus.Entry) *Service {
	return &Service{gen: gen, log: log}
}

func (s *Service) validate(in Input) error {
	if strings.TrimSpace(in.JobDescription) == "" {
		return &MissingInputError{Field: "job_description"}
	}
	if len(in.Resume) == 0 {
		return &MissingInputError{Field: "resume"}
	}
	return nil
}

// Analyze runs a single action end to end.
func (s *Service) Analyze(ctx context.Context, in Input, t prompt.Template) (Section, error) {
	if err := s.validate(in); err != nil {
		return Section{}, err
	}
	resumeText, err := extract.ResumeText(in.Mime, in.Resume)
	if err != nil {
		return Section{}, err
	}
	return s.run(ctx, t, resumeText, in.JobDescription)
}

// AnalyzeAll extracts the resume once and runs every requested action in
// order. Input and document errors abort the whole call before any request
// reaches the model; a failing action only marks its own section.
func (s *Service) AnalyzeAll(ctx context.Context, in Input, actions []string) ([]Section, error) {
	if err := CheckRequest(in.JobDescription, actions); err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}
	resumeText, err := extract.ResumeText(in.Mime, in.Resume)
	if err != nil {
		return nil, err
	}

	sections := make([]Section, 0, len(actions))
	for _, action := range actions {
		t, err := prompt.ParseTemplate(action)
		if err != nil {
			s.log.WithField("action", action).WithError(err).Error("internal error: unknown action")
			sections = append(sections, errorSection(action, "", err))
			continue
		}
		section, err := s.run(ctx, t, resumeText, in.JobDescription)
		if err != nil {
			s.log.WithField("action", action).WithError(err).Error("action failed")
			sections = append(sections, errorSection(action, prompt.Heading(t), err))
			continue
		}
		sections = append(sections, section)
	}
	return sections, nil
}

func (s *Service) run(ctx context.Context, t prompt.Template, resumeText, jobDescription string) (Section, error) {
	instruction, err := prompt.Assemble(t, resumeText, jobDescription)
	if err != nil {
		return Section{}, err
	}
	s.log.WithField("action", t.String()).WithField("prompt_len", len(instruction)).Debug("sending generation request")

	response, err := s.gen.Generate(ctx, instruction)
	if err != nil {
		return Section{}, err
	}
	return Section{
		Action:  t.String(),
		Heading: prompt.Heading(t),
		Body:    format.ForDisplay(response),
	}, nil
}

func errorSection(action, heading string, err error) Section {
	return Section{
		Action:  action,
		Heading: heading,
		IsError: true,
		Error:   err.Error(),
	}
}
