package cli

import (
	"fmt"

	"github.com/oomph-ac/grip/settings"
	"github.com/spf13/cobra"
)

// ConfigCmd returns the config command, which prints or writes the default settings.
func ConfigCmd() *cobra.Command {
	var (
		format string
		output string
		check  string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print, write or check grip settings",
		Long: `Prints the default settings in TOML or YAML, writes them to a new file, or validates
an existing settings file.

Examples:
  grip config
  grip config --format yaml
  grip config --output grip.toml
  grip config --check grip.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check != "" {
				if _, err := settings.Load(check); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", check)
				return err
			}
			if output != "" {
				if err := settings.SaveDefault(output); err != nil {
					return err
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote default settings to %s\n", output)
				return err
			}

			data, err := settings.Marshal("grip."+format, settings.DefaultSettings())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "format to print in (toml or yaml)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the default settings to a new file instead")
	cmd.Flags().StringVar(&check, "check", "", "validate the settings file passed")
	return cmd
}
