package generation

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/genai"
)

// ClientGenerator calls the Gemini API directly with a single content turn.
type ClientGenerator struct {
	client *genai.Client
	model  string
}

func NewClientGenerator(ctx context.Context, cfg Config) (*ClientGenerator, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	client, err := genai.NewClient(ctx, cfg.clientConfig())
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}
	return &ClientGenerator{client: client, model: cfg.Model}, nil
}

func (g *ClientGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", &APIError{Err: err}
	}
	return result.Text(), nil
}
