// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs the stdio MCP server over the configured storage backend.
package main

import (
	"github.com/harperreed/fitdiary/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

The server communicates via stdin/stdout. Tool calls without a user_id act
as the configured user.

CLAUDE DESKTOP CONFIGURATION:

  {
    "mcpServers": {
      "fitdiary": {
        "command": "fitdiary",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  log_meal            Log a meal from macros or foods
  remove_meal         Remove a meal by ID prefix
  log_exercise        Log an exercise session
  remove_exercise     Remove an exercise session by ID prefix
  get_diet_day        Meals and totals for a day
  get_exercise_day    Sessions and totals for a day
  get_dashboard       Daily dashboard with BMI, BMR, TDEE and goal progress
  get_summary         Week or month summary
  update_profile      Partial profile and goal update
  record_weight       Record a weight sample
  chat                Ask the assistant
  lookup_food         Nutrition for a portion
  search_foods        Search foods

AVAILABLE RESOURCES:

  fitdiary://today     Today's dashboard
  fitdiary://recent    The seven most recent diet and exercise days
  fitdiary://profile   Profile and latest weight
  fitdiary://foods     Built-in food table`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server, err := mcp.NewServer(trk, foods, currentUser())
		if err != nil {
			return err
		}
		return server.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
