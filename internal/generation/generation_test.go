package generation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"google.golang.org/adk/session"
)

const (
	invalidKeyBody = `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key.","status":"INVALID_ARGUMENT"}}`
	emptyBody      = `{"candidates":[{"content":{"role":"model","parts":[]},"finishReason":"STOP"}]}`
	reportBody     = `{"candidates":[{"content":{"role":"model","parts":[{"text":"Match Score: 80%"}]},"finishReason":"STOP"}]}`
)

// geminiServer answers every request with the given status and body.
func geminiServer(t *testing.T, status int, body string) Config {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return Config{APIKey: "test-key", Model: DefaultModel, BaseURL: srv.URL}
}

func requireAPIError(t *testing.T, err error, contains string) {
	t.Helper()
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	require.NotNil(t, errors.Unwrap(err))
	require.Equal(t, errors.Unwrap(err).Error(), err.Error())
	if contains != "" {
		require.Contains(t, err.Error(), contains)
	}
}

type failingDelete struct {
	session.Service
}

func (failingDelete) Delete(context.Context, *session.DeleteRequest) error {
	return errors.New("session store unavailable")
}

func TestNew(t *testing.T) {
	t.Run(`missing key fails before any backend is built`, func(t *testing.T) {
		for _, backend := range []string{"", BackendAgent, BackendClient} {
			gen, err := New(context.Background(), Config{Backend: backend})
			require.Nil(t, gen)
			require.ErrorIs(t, err, ErrMissingAPIKey)
		}
	})

	t.Run(`unknown backend`, func(t *testing.T) {
		_, err := New(context.Background(), Config{Backend: "openai", APIKey: "key"})
		require.EqualError(t, err, `generation: unknown backend "openai"`)
	})

	t.Run(`direct constructors check the key too`, func(t *testing.T) {
		_, err := NewAgentGenerator(context.Background(), Config{Model: DefaultModel})
		require.ErrorIs(t, err, ErrMissingAPIKey)
		_, err = NewClientGenerator(context.Background(), Config{Model: DefaultModel})
		require.ErrorIs(t, err, ErrMissingAPIKey)
	})
}

func TestAPIError(t *testing.T) {
	cause := errors.New("Error 429, Message: quota exceeded")
	err := error(&APIError{Err: cause})

	require.Equal(t, cause.Error(), err.Error())
	require.ErrorIs(t, err, cause)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
}

func TestClientGenerator(t *testing.T) {
	t.Run(`service error is an APIError with the service message`, func(t *testing.T) {
		gen, err := NewClientGenerator(context.Background(), geminiServer(t, http.StatusBadRequest, invalidKeyBody))
		require.NoError(t, err)

		out, err := gen.Generate(context.Background(), "prompt")
		require.Empty(t, out)
		requireAPIError(t, err, "API key not valid")
	})

	t.Run(`response text`, func(t *testing.T) {
		gen, err := NewClientGenerator(context.Background(), geminiServer(t, http.StatusOK, reportBody))
		require.NoError(t, err)

		out, err := gen.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		require.Equal(t, "Match Score: 80%", out)
	})
}

func TestAgentGenerator(t *testing.T) {
	t.Run(`service error is an APIError`, func(t *testing.T) {
		gen, err := NewAgentGenerator(context.Background(), geminiServer(t, http.StatusBadRequest, invalidKeyBody))
		require.NoError(t, err)

		out, err := gen.Generate(context.Background(), "prompt")
		require.Empty(t, out)
		requireAPIError(t, err, "API key not valid")
	})

	t.Run(`empty candidate is an APIError`, func(t *testing.T) {
		gen, err := NewAgentGenerator(context.Background(), geminiServer(t, http.StatusOK, emptyBody))
		require.NoError(t, err)

		out, err := gen.Generate(context.Background(), "prompt")
		require.Empty(t, out)
		requireAPIError(t, err, "")
	})

	t.Run(`final response text`, func(t *testing.T) {
		gen, err := NewAgentGenerator(context.Background(), geminiServer(t, http.StatusOK, reportBody))
		require.NoError(t, err)

		out, err := gen.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		require.Equal(t, "Match Score: 80%", out)
	})

	t.Run(`session delete failure is logged`, func(t *testing.T) {
		hook := logtest.NewGlobal()
		defer hook.Reset()

		gen, err := NewAgentGenerator(context.Background(), geminiServer(t, http.StatusOK, reportBody))
		require.NoError(t, err)
		gen.sessions = failingDelete{Service: gen.sessions}

		out, err := gen.Generate(context.Background(), "prompt")
		require.NoError(t, err)
		require.Equal(t, "Match Score: 80%", out)

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		require.Equal(t, logrus.WarnLevel, entry.Level)
		require.Equal(t, "failed to delete agent session", entry.Message)
	})
}
