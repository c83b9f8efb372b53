package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/andy/fomoduct/internal/config"
	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset stored preferences or configuration",
	Long: `Reset stored data. Session progress is never stored, so only preferences
and the config file can be reset.

Examples:
  fomoduct reset preferences   # Forget theme and backdrop
  fomoduct reset config        # Restore default durations
  fomoduct reset all           # Both`,
}

var resetPreferencesCmd = &cobra.Command{
	Use:   "preferences",
	Short: "Forget the stored theme and backdrop",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "This will delete the stored theme and backdrop. Continue?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		if err := resetPreferences(cmd); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Preferences have been reset.")
		return nil
	},
}

var resetConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Restore the default durations",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "This will delete the config file and restore the defaults. Continue?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		if err := resetConfig(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Configuration has been reset to the defaults.")
		return nil
	},
}

var resetAllCmd = &cobra.Command{
	Use:   "all",
	Short: "Reset preferences and configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirm(cmd, "This will delete ALL stored preferences and the config file. Continue?") {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return nil
		}
		if err := resetPreferences(cmd); err != nil {
			return err
		}
		if err := resetConfig(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All stored data has been reset.")
		return nil
	},
}

func resetPreferences(cmd *cobra.Command) error {
	if err := appInstance.Preferences.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("failed to reset preferences: %w", err)
	}
	return nil
}

// resetConfig removes the config file and puts the default durations back
// into the running timer
func resetConfig() error {
	if err := os.Remove(appInstance.ConfigPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove config: %w", err)
	}
	defaults := config.DefaultConfig()
	appInstance.Config.Timer = defaults.Timer
	appInstance.Timer.ApplyConfig(defaults.Timer.Domain())
	return nil
}

func confirm(cmd *cobra.Command, message string) bool {
	if resetYes {
		return true
	}
	return confirmPrompt(cmd.InOrStdin(), cmd.OutOrStdout(), message)
}

func confirmPrompt(in io.Reader, out io.Writer, message string) bool {
	fmt.Fprintf(out, "%s [y/N] ", message)
	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return false
	}
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func init() {
	resetCmd.PersistentFlags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
	resetCmd.AddCommand(resetPreferencesCmd)
	resetCmd.AddCommand(resetConfigCmd)
	resetCmd.AddCommand(resetAllCmd)
}
