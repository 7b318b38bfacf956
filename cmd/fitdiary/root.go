// ABOUTME: Root Cobra command for the fitdiary CLI.
// ABOUTME: Loads config and opens storage, foods and the tracker in PersistentPreRunE.
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/harperreed/fitdiary/internal/config"
	"github.com/harperreed/fitdiary/internal/food"
	"github.com/harperreed/fitdiary/internal/storage"
	"github.com/harperreed/fitdiary/internal/tracker"
	"github.com/spf13/cobra"
)

// skipStorage marks commands that run without opening storage.
const skipStorage = "skip-storage"

var (
	cfg       *config.Config
	logger    *log.Logger
	repo      storage.Repository
	foodStore *food.Store
	foods     *food.Service
	trk       *tracker.Tracker

	flagUser    string
	flagBackend string
	flagDataDir string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "fitdiary",
	Short: "Diet, exercise and weight tracker",
	Long: `fitdiary tracks what you eat, how you move and what you weigh.

WHAT IT TRACKS:

  Meals       calories and macros per meal, scored with a health score and advice
  Exercise    sessions with duration, calories (estimated when omitted), steps, distance
  Body        weight, body fat and muscle mass, with BMI, BMR and TDEE
  Goals       daily calorie and macro targets, target weight and date

QUICK START:

  $ fitdiary profile set --sex female --age 34 --height 170 --weight 72 --activity light
  $ fitdiary meal add lunch --food "chicken breast:150" --food "white rice:200"
  $ fitdiary exercise add running --duration 30
  $ fitdiary weight add 71.4
  $ fitdiary dashboard

STORAGE:

  sqlite (default)  ~/.local/share/fitdiary/fitdiary.db
  charm             Charm KV, synced across devices (see 'fitdiary sync')
  postgres          set postgres_url in ~/.config/fitdiary/config.json or FITDIARY_POSTGRES_URL

MCP AND HTTP:

  Run 'fitdiary mcp' for the Model Context Protocol server, or 'fitdiary serve'
  for the JSON HTTP API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlags(c)
		cfg = c
		logger = cfg.NewLogger(os.Stderr)

		if cmd.Name() == "help" || cmd.Annotations[skipStorage] != "" {
			return nil
		}
		return openApp(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp()
	},
}

func applyFlags(c *config.Config) {
	if flagUser != "" {
		c.UserID = flagUser
	}
	if flagBackend != "" {
		c.Backend = flagBackend
	}
	if flagDataDir != "" {
		c.DataDir = flagDataDir
	}
	if flagVerbose {
		c.LogLevel = "debug"
	}
}

func openApp(cmd *cobra.Command) error {
	var err error
	repo, err = cfg.OpenStorage(cmd.Context())
	if err != nil {
		return err
	}

	// The food cache is optional; another process may hold its lock.
	foods, foodStore, err = cfg.OpenFoods(logger)
	if err != nil {
		logger.Warn("food lookup disabled", "err", err)
		foods, foodStore = nil, nil
	}

	trk = tracker.New(repo, cfg.TrackerOptions(foods, logger))
	return nil
}

func closeApp() error {
	var firstErr error
	if foodStore != nil {
		firstErr = foodStore.Close()
		foodStore = nil
	}
	if repo != nil {
		if err := repo.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		repo = nil
	}
	return firstErr
}

// currentUser is the user every command acts as.
func currentUser() string {
	return cfg.GetUserID()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagUser, "user", "u", "", "user ID (default from config or FITDIARY_USER)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend: sqlite, charm or postgres")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory for sqlite and the food cache")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}
