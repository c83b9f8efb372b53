package cli

import (
	"context"

	"github.com/andy/fomoduct/internal/app"
	"github.com/spf13/cobra"
)

var appInstance *app.App

var rootCmd = &cobra.Command{
	Use:   "fomoduct",
	Short: "A Pomodoro timer for the terminal",
	Long: `Fomoduct cycles between focused work sessions and short or long breaks.

By default, running fomoduct without arguments launches the interactive TUI.
Use 'fomoduct run' for a headless session and the other subcommands to
inspect or change settings.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch TUI
		return launchTUI(cmd, args)
	},
}

// Execute runs the root command
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetApp sets the app instance for commands to use
func SetApp(a *app.App) {
	appInstance = a
}

func init() {
	// Add all subcommands
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(themeCmd)
	rootCmd.AddCommand(resetCmd)
}
