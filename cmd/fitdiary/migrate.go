// ABOUTME: CLI command for migrating data between storage backends.
// ABOUTME: Copies everything from the current backend into another one.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/harperreed/fitdiary/internal/config"
	"github.com/harperreed/fitdiary/internal/storage"
	"github.com/spf13/cobra"
)

var (
	migrateTo     string
	migrateToDir  string
	migrateToURL  string
	migrateDryRun bool
	migrateForce  bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy every profile, weight sample, diet day and exercise day from the
current backend into another one. The source is left untouched.

IMPORTANT:

  - The destination should be empty; existing days cause an error
  - A SQLite destination directory that already has files is refused
    unless --force is given
  - Run with --dry-run first to see what would be migrated

EXAMPLES:

  fitdiary migrate --to charm --dry-run
  fitdiary migrate --to sqlite --to-dir ~/fitdiary-backup
  fitdiary --backend charm migrate --to postgres --to-url postgres://localhost/fitdiary

After migrating, set "backend" in ~/.config/fitdiary/config.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			data, err := storage.Export(ctx, repo, "")
			if err != nil {
				return fmt.Errorf("read source: %w", err)
			}
			fmt.Printf("Would migrate from %s to %s:\n", cfg.GetBackend(), migrateTo)
			fmt.Printf("  Profiles:       %d\n", len(data.Profiles))
			fmt.Printf("  Weight samples: %d\n", len(data.HealthSamples))
			fmt.Printf("  Diet days:      %d\n", len(data.DietDays))
			fmt.Printf("  Exercise days:  %d\n", len(data.ExerciseDays))
			return nil
		}

		dstCfg, err := destinationConfig()
		if err != nil {
			return err
		}
		if dstCfg.GetBackend() == config.BackendSQLite && !migrateForce {
			nonEmpty, err := storage.IsDirNonEmpty(dstCfg.GetDataDir())
			if err != nil {
				return err
			}
			if nonEmpty {
				return fmt.Errorf("destination %s is not empty (use --force to migrate anyway)", dstCfg.GetDataDir())
			}
		}

		dst, err := dstCfg.OpenStorage(ctx)
		if err != nil {
			return err
		}
		defer dst.Close()

		summary, err := storage.MigrateData(ctx, repo, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %s → %s", cfg.GetBackend(), dstCfg.GetBackend())
		fmt.Printf("  Profiles:       %d\n", summary.Profiles)
		fmt.Printf("  Weight samples: %d\n", summary.HealthSamples)
		fmt.Printf("  Diet days:      %d\n", summary.DietDays)
		fmt.Printf("  Exercise days:  %d\n", summary.ExerciseDays)
		return nil
	},
}

// destinationConfig derives the target backend's config from the current one.
func destinationConfig() (*config.Config, error) {
	if migrateTo == "" {
		return nil, fmt.Errorf("--to is required")
	}
	dst := *cfg
	dst.Backend = migrateTo
	if migrateToDir != "" {
		dst.DataDir = migrateToDir
	}
	if migrateToURL != "" {
		dst.PostgresURL = migrateToURL
	}

	same := dst.GetBackend() == cfg.GetBackend()
	switch dst.GetBackend() {
	case config.BackendSQLite:
		same = same && filepath.Clean(dst.GetDataDir()) == filepath.Clean(cfg.GetDataDir())
	case config.BackendPostgres:
		same = same && dst.PostgresURL == cfg.PostgresURL
	}
	if same {
		return nil, fmt.Errorf("source and destination are the same %s store", dst.GetBackend())
	}
	if err := dst.Validate(); err != nil {
		return nil, err
	}
	return &dst, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "destination backend: sqlite, charm or postgres")
	migrateCmd.Flags().StringVar(&migrateToDir, "to-dir", "", "destination data directory (sqlite)")
	migrateCmd.Flags().StringVar(&migrateToURL, "to-url", "", "destination connection URL (postgres)")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateForce, "force", false, "migrate into a non-empty sqlite directory")
	rootCmd.AddCommand(migrateCmd)
}
