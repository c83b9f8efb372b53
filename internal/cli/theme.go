package cli

import (
	"fmt"
	"strings"

	"github.com/andy/fomoduct/internal/domain"
	"github.com/spf13/cobra"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Show or change the colour theme and backdrop",
}

var themeShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current theme and backdrop",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		mode, err := appInstance.Preferences.Theme(ctx)
		if err != nil {
			return fmt.Errorf("failed to read theme: %w", err)
		}
		backdrop, err := appInstance.Preferences.Backdrop(ctx)
		if err != nil {
			return fmt.Errorf("failed to read backdrop: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Theme:    %s\nBackdrop: %s\n", mode, backdrop)
		return nil
	},
}

var themeToggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch between light and dark",
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := appInstance.Preferences.ToggleTheme(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to toggle theme: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Theme set to %s\n", mode)
		return nil
	},
}

var themeBackdropCmd = &cobra.Command{
	Use:   "backdrop [name]",
	Short: "Set the backdrop, or cycle to the next one when no name is given",
	Long:  "Set the backdrop. Available: " + backdropNames(),
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var (
			b   domain.Backdrop
			err error
		)
		if len(args) == 0 {
			b, err = appInstance.Preferences.CycleBackdrop(ctx)
		} else {
			b, err = appInstance.Preferences.SetBackdrop(ctx, args[0])
		}
		if err != nil {
			return fmt.Errorf("%w (available: %s)", err, backdropNames())
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✓ Backdrop set to %s\n", b)
		return nil
	},
}

func backdropNames() string {
	names := make([]string, len(domain.Backdrops))
	for i, b := range domain.Backdrops {
		names[i] = string(b)
	}
	return strings.Join(names, ", ")
}

func init() {
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeToggleCmd)
	themeCmd.AddCommand(themeBackdropCmd)
}
