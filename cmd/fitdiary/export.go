// ABOUTME: CLI commands for exporting and importing fitdiary data.
// ABOUTME: Supports JSON and YAML, for one user or all users.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/fitdiary/internal/storage"
	"github.com/spf13/cobra"
)

var (
	exportOutput   string
	exportAllUsers bool
	importFormat   string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export fitdiary data",
	Long: `Export profiles, weight samples, diet days and exercise days.

FORMATS:

  json   Full JSON export (suitable for backup/restore)
  yaml   YAML export (human-readable)

EXAMPLES:

  fitdiary export json                   # Export your data as JSON
  fitdiary export json -o backup.json    # Save to file
  fitdiary export yaml --all-users       # Every user in the store`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml"},
	RunE: func(cmd *cobra.Command, args []string) error {
		user := currentUser()
		if exportAllUsers {
			user = ""
		}

		var data []byte
		var err error
		switch args[0] {
		case "json":
			data, err = storage.ExportJSON(cmd.Context(), repo, user)
		case "yaml":
			data, err = storage.ExportYAML(cmd.Context(), repo, user)
		default:
			return fmt.Errorf("unknown format: %s (use json or yaml)", args[0])
		}
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import fitdiary data",
	Long: `Import data from a JSON or YAML export. The format follows the file
extension unless --format is given. Days that already exist cause an error.

EXAMPLES:

  fitdiary import backup.json
  fitdiary import backup.yml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		raw, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		format := importFormat
		if format == "" {
			format = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
		}
		if format != "yaml" && format != "yml" {
			format = "json"
		}

		data, err := storage.ParseExport(raw, format)
		if err != nil {
			return err
		}
		if err := storage.Import(cmd.Context(), repo, data); err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		color.Green("✓ Imported from %s", filename)
		fmt.Printf("  %d profiles, %d weight samples, %d diet days, %d exercise days\n",
			len(data.Profiles), len(data.HealthSamples), len(data.DietDays), len(data.ExerciseDays))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().BoolVar(&exportAllUsers, "all-users", false, "export every user, not just the current one")
	importCmd.Flags().StringVar(&importFormat, "format", "", "json or yaml (default from file extension)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
