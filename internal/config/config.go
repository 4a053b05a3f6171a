package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds every knob the CLI and client need. The backend is an
// external collaborator; only its base URL is configured here.
type Config struct {
	APIBaseURL   string `env:"INSTALITE_API_URL,   default=http://localhost:5000"`
	MediaBaseURL string `env:"INSTALITE_MEDIA_URL, default=http://localhost:5000/media"`

	// TokenPath is where the session token is persisted between runs.
	// Empty means <user config dir>/instalite/token.
	TokenPath string `env:"INSTALITE_TOKEN_PATH"`

	// StrictGuard makes the route guard reject a present-but-expired JWT
	// instead of deferring validity checks to the API boundary.
	StrictGuard bool `env:"INSTALITE_STRICT_GUARD, default=false"`

	IdleTimeout    time.Duration `env:"INSTALITE_IDLE_TIMEOUT,    default=15m"`
	RequestTimeout time.Duration `env:"INSTALITE_REQUEST_TIMEOUT, default=10s"`

	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
}

// FakeServer holds the settings of the local in-memory backend.
type FakeServer struct {
	Port      string        `env:"INSTALITE_FAKE_PORT,   default=5000"`
	JWTSecret string        `env:"INSTALITE_FAKE_SECRET, default=local-dev-secret"`
	TokenTTL  time.Duration `env:"INSTALITE_FAKE_TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = defaultTokenPath()
	}
	return &cfg
}

// LoadFakeServer reads the fake backend configuration from the environment.
func LoadFakeServer() *FakeServer {
	var cfg FakeServer
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "instalite", "token")
}
