package config

import (
	"fmt"
	"strings"

	"github.com/gotify/configor"
	"github.com/joho/godotenv"
)

type Configuration struct {
	Google struct {
		APIKey  string `default:"" env:"GOOGLE_API_KEY"`
		Model   string `default:"gemini-2.5-flash" env:"GEMINI_MODEL"`
		Backend string `default:"agent" env:"GENERATION_BACKEND"`
		BaseURL string `default:"" env:"GEMINI_BASE_URL"`
	}
	Database struct {
		URL string `default:"" env:"DB_URL"`
	}
	Queue struct {
		Backend         string `default:"rabbitmq" env:"QUEUE_BACKEND"`
		RabbitMQURL     string `default:"" env:"RABBITMQ_URL"`
		ValkeyAddr      string `default:"" env:"VALKEY_ADDR"`
		ValkeyPassword  string `default:"" env:"VALKEY_PASSWORD"`
		SessionsQueue   string `default:"sessions" env:"SESSIONS_QUEUE"`
		UpdatesExchange string `default:"session_updates" env:"UPDATES_EXCHANGE"`
	}
	R2 struct {
		AccountID string `default:"" env:"R2_ACCOUNT_ID"`
		Bucket    string `default:"" env:"R2_BUCKET"`
		AccessKey string `default:"" env:"R2_ACCESS_KEY"`
		SecretKey string `default:"" env:"R2_SECRET_KEY"`
	}
	Worker struct {
		Count int `default:"3" env:"WORKER_COUNT"`
	}
	Log struct {
		Level string `default:"info" env:"LOG_LEVEL"`
	}
}

func configFiles() []string {
	return []string{"config.yml"}
}

// Load reads .env (when present) into the environment and then builds the
// configuration from config.yml and the environment.
func Load() (*Configuration, error) {
	_ = godotenv.Load()
	conf := new(Configuration)
	if err := configor.New(&configor.Config{}).Load(conf, configFiles()...); err != nil {
		return nil, err
	}
	return conf, nil
}

// MissingError lists every required setting that was left empty.
type MissingError struct {
	Keys []string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("missing configuration: %s", strings.Join(e.Keys, ", "))
}

func (c *Configuration) Validate() error {
	var missing []string
	require := func(value, key string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	require(c.Google.APIKey, "GOOGLE_API_KEY")
	require(c.Database.URL, "DB_URL")
	require(c.R2.AccountID, "R2_ACCOUNT_ID")
	require(c.R2.Bucket, "R2_BUCKET")
	require(c.R2.AccessKey, "R2_ACCESS_KEY")
	require(c.R2.SecretKey, "R2_SECRET_KEY")

	switch c.Queue.Backend {
	case "rabbitmq":
		require(c.Queue.RabbitMQURL, "RABBITMQ_URL")
	case "valkey":
		require(c.Queue.ValkeyAddr, "VALKEY_ADDR")
	default:
		return fmt.Errorf("unknown QUEUE_BACKEND %q", c.Queue.Backend)
	}

	switch c.Google.Backend {
	case "agent", "client":
	default:
		return fmt.Errorf("unknown GENERATION_BACKEND %q", c.Google.Backend)
	}

	if c.Worker.Count < 1 {
		return fmt.Errorf("WORKER_COUNT must be at least 1, got %d", c.Worker.Count)
	}

	if len(missing) > 0 {
		return &MissingError{Keys: missing}
	}
	return nil
}
