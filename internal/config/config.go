// ABOUTME: fitdiary configuration management with backend selection.
// ABOUTME: Handles settings, .env overrides, and the storage/tracker factory functions.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitdiary/internal/achievement"
	"github.com/harperreed/fitdiary/internal/charm"
	"github.com/harperreed/fitdiary/internal/food"
	"github.com/harperreed/fitdiary/internal/logging"
	"github.com/harperreed/fitdiary/internal/models"
	"github.com/harperreed/fitdiary/internal/nutrition"
	"github.com/harperreed/fitdiary/internal/progress"
	"github.com/harperreed/fitdiary/internal/storage"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendCharm    = "charm"
	BackendPostgres = "postgres"
)

const (
	// DefaultUserID is used by the CLI when no user is configured.
	DefaultUserID = "me"
	// DefaultHTTPAddr is the listen address for the serve command.
	DefaultHTTPAddr = "127.0.0.1:8080"
	// FoodAPIOff disables the remote food source when used as food_api_url.
	FoodAPIOff = "off"
)

// Environment variables that override the config file.
const (
	EnvBackend     = "FITDIARY_BACKEND"
	EnvDataDir     = "FITDIARY_DATA_DIR"
	EnvPostgresURL = "FITDIARY_POSTGRES_URL"
	EnvUser        = "FITDIARY_USER"
	EnvLogLevel    = "FITDIARY_LOG_LEVEL"
	EnvHTTPAddr    = "FITDIARY_HTTP_ADDR"
)

// Config stores fitdiary configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "charm" or "postgres".
	Backend string `json:"backend,omitempty"`

	// DataDir is the root directory for local data.
	// SQLite puts fitdiary.db here and the food cache lives in foods/.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/fitdiary.
	DataDir string `json:"data_dir,omitempty"`

	PostgresURL string `json:"postgres_url,omitempty"`
	CharmHost   string `json:"charm_host,omitempty"`

	// UserID is the user the CLI acts as.
	UserID   string `json:"user_id,omitempty"`
	LogLevel string `json:"log_level,omitempty"`
	HTTPAddr string `json:"http_addr,omitempty"`

	// FoodAPIURL overrides the Open Food Facts server; "off" keeps lookups local.
	FoodAPIURL string `json:"food_api_url,omitempty"`

	// Tuning. Zero means the package default.
	StreakWindowDays   int               `json:"streak_window_days,omitempty"`
	ProteinGoalRatio   float64           `json:"protein_goal_ratio,omitempty"`
	MaxRecommendations int               `json:"max_recommendations,omitempty"`
	MealTips           map[string]string `json:"meal_tips,omitempty"`
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUserID returns the configured user, defaulting to DefaultUserID.
func (c *Config) GetUserID() string {
	if c.UserID == "" {
		return DefaultUserID
	}
	return c.UserID
}

// GetHTTPAddr returns the configured listen address.
func (c *Config) GetHTTPAddr() string {
	if c.HTTPAddr == "" {
		return DefaultHTTPAddr
	}
	return c.HTTPAddr
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks backend names and tuning values.
func (c *Config) Validate() error {
	switch c.GetBackend() {
	case BackendSQLite, BackendCharm:
	case BackendPostgres:
		if c.PostgresURL == "" {
			return fmt.Errorf("backend %q requires postgres_url or %s", BackendPostgres, EnvPostgresURL)
		}
	default:
		return fmt.Errorf("unknown backend: %q", c.Backend)
	}
	if c.StreakWindowDays < 0 {
		return fmt.Errorf("streak_window_days must not be negative, got %d", c.StreakWindowDays)
	}
	if c.ProteinGoalRatio < 0 || c.ProteinGoalRatio > 1 {
		return fmt.Errorf("protein_goal_ratio must be between 0 and 1, got %v", c.ProteinGoalRatio)
	}
	if c.MaxRecommendations < 0 {
		return fmt.Errorf("max_recommendations must not be negative, got %d", c.MaxRecommendations)
	}
	for meal := range c.MealTips {
		if !models.IsValidMealType(meal) {
			return fmt.Errorf("meal_tips: unknown meal type %q", meal)
		}
	}
	return nil
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage(ctx context.Context) (storage.Repository, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var (
		repo storage.Repository
		err  error
	)
	switch c.GetBackend() {
	case BackendCharm:
		repo, err = charm.Open(charm.Options{Host: c.CharmHost, AutoSync: true})
	case BackendPostgres:
		repo, err = storage.OpenPostgres(ctx, c.PostgresURL)
	default:
		repo, err = storage.Open(filepath.Join(c.GetDataDir(), storage.DBFile))
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", c.GetBackend(), err)
	}
	return repo, nil
}

// NewLogger returns a logger at the configured level.
func (c *Config) NewLogger(w io.Writer) *log.Logger {
	return logging.New(w, c.LogLevel)
}

// OpenFoods opens the food cache under the data directory and wires the
// remote source unless it is turned off. The caller closes the returned store.
func (c *Config) OpenFoods(logger *log.Logger) (*food.Service, *food.Store, error) {
	store, err := food.OpenStore(filepath.Join(c.GetDataDir(), "foods"))
	if err != nil {
		return nil, nil, err
	}

	var remote food.Remote
	if c.FoodAPIURL != FoodAPIOff {
		remote = &food.Client{BaseURL: c.FoodAPIURL}
	}
	return food.NewService(store, remote, logger), store, nil
}

// TrackerOptions turns the tuning keys into tracker options.
func (c *Config) TrackerOptions(foods *food.Service, logger *log.Logger) tracker.Options {
	scorer := nutrition.NewScorer()
	if c.MaxRecommendations > 0 {
		scorer.MaxRecommendations = c.MaxRecommendations
	}
	for meal, tip := range c.MealTips {
		scorer.Tips[models.MealType(meal)] = tip
	}

	opts := tracker.Options{
		Scorer:       scorer,
		Achievements: achievement.NewEvaluator(c.StreakWindowDays),
		Progress:     progress.NewAnalyzer(c.ProteinGoalRatio),
		Logger:       logger,
	}
	if foods != nil {
		opts.Foods = foods
	}
	return opts
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "fitdiary", "config.json")
}

// Load reads .env from the working directory, then the config file, then
// applies environment overrides.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg, err := LoadFile(GetConfigPath())
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// LoadFile reads a config file. A missing file is an empty config.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// ApplyEnv overrides fields from FITDIARY_* environment variables.
func (c *Config) ApplyEnv() {
	for _, o := range []struct {
		env   string
		field *string
	}{
		{EnvBackend, &c.Backend},
		{EnvDataDir, &c.DataDir},
		{EnvPostgresURL, &c.PostgresURL},
		{EnvUser, &c.UserID},
		{EnvLogLevel, &c.LogLevel},
		{EnvHTTPAddr, &c.HTTPAddr},
	} {
		if v, ok := os.LookupEnv(o.env); ok && v != "" {
			*o.field = v
		}
	}
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
