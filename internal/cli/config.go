package cli

import (
	"fmt"

	"github.com/andy/fomoduct/internal/domain"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and change timer durations",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		cfg := appInstance.Config
		timer := appInstance.Timer.Config()

		fmt.Fprintf(out, "Config file: %s\n\n", appInstance.ConfigPath)
		fmt.Fprintln(out, "Timer")
		for _, f := range domain.Fields {
			b := f.Bounds()
			fmt.Fprintf(out, "  %-32s %4d  (%d-%d)\n", f.Label()+":", timer.Get(f), b.Min, b.Max)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Notifications")
		fmt.Fprintf(out, "  %-32s %v\n", "Desktop:", cfg.Notifications.Desktop)
		fmt.Fprintf(out, "  %-32s %v\n", "Bell:", cfg.Notifications.Bell)
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Database: %s\n", cfg.Database.Path)
		fmt.Fprintf(out, "Log:      %s (%s)\n", cfg.Log.Path, cfg.Log.Level)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <field> <value>",
	Short: "Change a duration (work, short_break, long_break, sessions)",
	Long: `Change one timer field. Values outside the allowed range are clamped and
text without a leading number is read as the field's minimum.

Examples:
  fomoduct config set work 50
  fomoduct config set short_break 10
  fomoduct config set sessions 3`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		field, err := domain.ParseField(args[0])
		if err != nil {
			return err
		}

		appInstance.Timer.SetFieldText(field, args[1])
		if err := appInstance.SaveConfig(); err != nil {
			return err
		}

		got := appInstance.Timer.Config().Get(field)
		fmt.Fprintf(cmd.OutOrStdout(), "✓ %s set to %d\n", field.Label(), got)
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), appInstance.ConfigPath)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
}
