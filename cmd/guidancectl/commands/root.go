package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the guidancectl command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "guidancectl",
		Short:        "Operator tooling for the guidance API",
		SilenceUsage: true,
	}
	root.AddCommand(
		newHashPasswordCommand(),
		newMintTokenCommand(),
		newPingDBCommand(),
		newMigrateCommand(),
		newSeedAdminCommand(),
	)
	return root
}

func getEnvOrDefault(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
