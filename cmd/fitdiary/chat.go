// ABOUTME: CLI command for asking the assistant a question.
// ABOUTME: Answers from the user's profile, latest weight and today's records.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat <question...>",
	Short: "Ask the assistant",
	Long: `Ask a diet or exercise question. The reply draws on your profile, latest
weight and today's meals and exercise.

EXAMPLES:

  fitdiary chat how am I doing today
  fitdiary chat "any workout tips?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reply, err := trk.Chat(cmd.Context(), currentUser(), strings.Join(args, " "), nil)
		if err != nil {
			return fmt.Errorf("chat failed: %w", err)
		}
		fmt.Println(reply.Reply)
		for _, s := range reply.Suggestions {
			color.Cyan("  • %s", s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
