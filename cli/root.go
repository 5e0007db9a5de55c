package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattwilkinsonn/wasmcloud-config/pkg/logger"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wasmcloud-config",
		Short:         "Inspect and validate wasmcloud.toml project manifests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return setupLogger(cmd)
		},
	}

	root.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	root.PersistentFlags().Bool("log-source", false, "Include caller information in logs")

	root.AddCommand(
		ShowCmd(),
		ValidateCmd(),
		VersionCmd(),
	)

	return root
}

// setupLogger attaches the logger built from the persistent flags to the
// command context.
func setupLogger(cmd *cobra.Command) error {
	level, asJSON, source, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return err
	}
	switch logger.LogLevel(level) {
	case logger.DebugLevel, logger.InfoLevel, logger.WarnLevel, logger.ErrorLevel:
	default:
		return fmt.Errorf("invalid log level %q", level)
	}
	log := logger.SetupLogger(level, asJSON, source)
	cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
	return nil
}
