package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/mattwilkinsonn/wasmcloud-config/pkg/logger"
	"github.com/mattwilkinsonn/wasmcloud-config/pkg/manifest"
)

// manifestFlags locate the manifest and its environment overrides.
type manifestFlags struct {
	dir       string
	envFile   string
	envPrefix string
}

func (f *manifestFlags) register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.dir, "dir", "d", "", "Directory containing "+manifest.FileName+" (default: current directory)")
	flags.StringVar(&f.envFile, "env-file", "", "Dotenv file applied before the process environment")
	flags.StringVar(&f.envPrefix, "env-prefix", manifest.DefaultEnvPrefix, "Prefix of environment overrides")
}

func (f *manifestFlags) load(cmd *cobra.Command) (*manifest.Config, error) {
	opts := []manifest.Option{manifest.WithEnvPrefix(f.envPrefix)}
	if f.envFile != "" {
		opts = append(opts, manifest.WithEnvFile(f.envFile))
	}
	return manifest.LoadContext(cmd.Context(), f.dir, opts...)
}

// ShowCmd prints the resolved configuration
func ShowCmd() *cobra.Command {
	var (
		flags  manifestFlags
		format string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved project configuration",
		Long: `Load ` + manifest.FileName + `, apply environment overrides and print the
validated configuration. Each variant is nested under its tag.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			return writeConfig(cmd.OutOrStdout(), format, cfg)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", OutputFormatYAML, "Output format (yaml, json)")
	return cmd
}

// ValidateCmd checks the manifest and reports the first error found
func ValidateCmd() *cobra.Command {
	var flags manifestFlags

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate " + manifest.FileName,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				logger.FromContext(cmd.Context()).Debug("manifest validation failed", "error", err)
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %s %s (%s, %s)\n",
				manifest.FileName,
				cfg.Name,
				cfg.Version,
				cfg.ProjectType.Kind(),
				cfg.Language.Kind(),
			)
			return err
		},
	}

	flags.register(cmd.Flags())
	return cmd
}
