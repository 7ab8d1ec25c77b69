package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	CurrentUserID string `env:"BUGSQUASH_USER"          env-default:"user-1"`
	SeedFile      string `env:"BUGSQUASH_SEED"`
	BaseURL       string `env:"BUGSQUASH_BASE_URL"      env-default:"http://localhost:5173"`
	StatusCheck   bool   `env:"BUGSQUASH_STATUS_CHECK"  env-default:"true"`
	RelayURL      string `env:"BUGSQUASH_RELAY_URL"`

	Log      LogConfig
	Relay    RelayConfig
	Supabase SupabaseConfig
	Email    EmailConfig
	Postgres PostgresConfig
}

type LogConfig struct {
	Level string `env:"BUGSQUASH_LOG_LEVEL" env-default:"info"`
	File  string `env:"BUGSQUASH_LOG_FILE"  env-default:"bugsquash.log"`
}

type RelayConfig struct {
	Addr      string `env:"RELAY_ADDR"      env-default:":8787"`
	Recorder  string `env:"RELAY_RECORDER"  env-default:"sqlite"`
	Directory string `env:"RELAY_DIRECTORY" env-default:"fixture"`
	DataDir   string `env:"RELAY_DATA_DIR"  env-default:"./data"`
}

type SupabaseConfig struct {
	URL     string `env:"SUPABASE_URL"`
	AnonKey string `env:"SUPABASE_ANON_KEY"`
}

type EmailConfig struct {
	FromEmail    string `env:"NOTIFY_FROM_EMAIL" env-default:"notifications@bugsquash.com"`
	ResendAPIKey string `env:"RESEND_API_KEY"`
	ResendURL    string `env:"RESEND_API_URL"    env-default:"https://api.resend.com/emails"`
	SMTPEnabled  bool   `env:"SMTP_ENABLED"      env-default:"false"`
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT"         env-default:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
}

type PostgresConfig struct {
	Host     string `env:"POSTGRES_HOST"     env-default:"localhost"`
	Port     string `env:"POSTGRES_PORT"     env-default:"5432"`
	User     string `env:"POSTGRES_USER"     env-default:"postgres"`
	Password string `env:"POSTGRES_PASSWORD" env-default:"postgres"`
	DBName   string `env:"POSTGRES_DB"       env-default:"postgres"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file.
func Load(envPath string) (*Config, error) {
	if envPath == "" {
		envPath = os.Getenv("ENV_PATH")
	}
	if envPath == "" {
		envPath = ".env"
	}

	if err := godotenv.Load(envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envPath, err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return &cfg, nil
}
