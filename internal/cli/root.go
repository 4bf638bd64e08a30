package cli

import "github.com/spf13/cobra"

// Version is set at build time.
var Version = "dev"

// RootCmd returns the grip command with every subcommand attached.
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "grip",
		Short:   "grip - socket, stab and force pull simulation",
		Version: Version,
		Long: `grip simulates how VR grabbables are pulled to hands, placed into sockets and
stabbed into other objects.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(SimulateCmd())
	rootCmd.AddCommand(ConfigCmd())
	return rootCmd
}
