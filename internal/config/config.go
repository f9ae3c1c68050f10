package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// APIBaseURL is the root of the volunteer registry backend.
	APIBaseURL string `yaml:"apiBaseURL" validate:"required,url"`

	// CacheDir holds the persisted snapshot for the file store.
	CacheDir string `yaml:"cacheDir,omitempty"`

	// SnapshotStore selects the persistence backend.
	SnapshotStore string `yaml:"snapshotStore,omitempty" validate:"omitempty,oneof=file postgres"`

	// PostgresURL is required when SnapshotStore is "postgres".
	PostgresURL string `yaml:"postgresURL,omitempty" validate:"required_if=SnapshotStore postgres"`

	// CacheTTLMinutes is how long a snapshot stays authoritative.
	CacheTTLMinutes int `yaml:"cacheTTLMinutes,omitempty" validate:"omitempty,min=1"`

	// RefreshIntervalMinutes is the background revalidation cadence. Must be
	// shorter than the TTL so refreshes generally land before expiry.
	RefreshIntervalMinutes int `yaml:"refreshIntervalMinutes,omitempty" validate:"omitempty,min=1"`

	// DashboardAddr is the local admin dashboard listen address.
	DashboardAddr string `yaml:"dashboardAddr,omitempty"`

	// AllowMockFallback enables generated placeholder data when every real
	// source misses. Development only.
	AllowMockFallback bool `yaml:"allowMockFallback,omitempty"`

	// MockVolunteerCount sizes the generated list when mock fallback is on.
	MockVolunteerCount int `yaml:"mockVolunteerCount,omitempty" validate:"omitempty,min=1,max=500"`

	// AdminToken is the bearer token for admin operations. Sourced from the
	// SEVAK_ADMIN_TOKEN environment variable, never from the YAML file.
	AdminToken string `yaml:"-"`
}

const (
	defaultCacheTTL        = 5
	defaultRefreshInterval = 2
	defaultDashboardAddr   = "localhost:8710"
	defaultMockCount       = 24
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from sevak_config.yaml.
// It looks for the config file in the current directory first, then in the
// user's home directory. A .env file, when present, supplies the admin token.
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks the TTL/interval
// ordering the cache relies on.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.RefreshIntervalMinutes >= cfg.CacheTTLMinutes {
		return fmt.Errorf("config validation failed: refreshIntervalMinutes (%d) must be shorter than cacheTTLMinutes (%d)",
			cfg.RefreshIntervalMinutes, cfg.CacheTTLMinutes)
	}

	return nil
}

// CacheTTL returns the snapshot TTL as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// RefreshInterval returns the background refresh cadence as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMinutes) * time.Minute
}

func applyDefaults(cfg *Config) {
	if cfg.CacheTTLMinutes == 0 {
		cfg.CacheTTLMinutes = defaultCacheTTL
	}
	if cfg.RefreshIntervalMinutes == 0 {
		cfg.RefreshIntervalMinutes = defaultRefreshInterval
	}
	if cfg.SnapshotStore == "" {
		cfg.SnapshotStore = "file"
	}
	if cfg.CacheDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			cfg.CacheDir = filepath.Join(home, ".sevak-registry")
		} else {
			cfg.CacheDir = ".sevak-registry"
		}
	}
	if cfg.DashboardAddr == "" {
		cfg.DashboardAddr = defaultDashboardAddr
	}
	if cfg.MockVolunteerCount == 0 {
		cfg.MockVolunteerCount = defaultMockCount
	}
}

// applyEnv layers environment overrides on top of the file. A .env in the
// working directory is loaded first; a missing .env is not an error.
func applyEnv(cfg *Config) {
	godotenv.Load()

	if token := os.Getenv("SEVAK_ADMIN_TOKEN"); token != "" {
		cfg.AdminToken = token
	}
	if base := os.Getenv("SEVAK_API_BASE_URL"); base != "" {
		cfg.APIBaseURL = base
	}
	if pg := os.Getenv("SEVAK_POSTGRES_URL"); pg != "" {
		cfg.PostgresURL = pg
	}
}

// findConfigFile searches for sevak_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "sevak_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
