package commands

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/AndyQiu2234/MergeSpec/internal/config"
)

var (
	verbose      bool
	referenceDir string
	pushgateway  string
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mergespec",
		Short:         "Stitch multi-band reflectance measurements into one spectrum",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			level := cfg.Server.LogLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			zerolog.SetGlobalLevel(level)

			if !cmd.Flags().Changed("reference-dir") {
				referenceDir = cfg.Reference.Dir
			}
			if !cmd.Flags().Changed("pushgateway") {
				pushgateway = cfg.Metrics.PushgatewayURL
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&referenceDir, "reference-dir", "", "directory with au.txt/ag.txt overriding the built-in reference tables")
	root.PersistentFlags().StringVar(&pushgateway, "pushgateway", "", "Prometheus Pushgateway URL to push run metrics to")

	root.AddCommand(mergeCmd(), overlayCmd())
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil {
		log.Error().Err(err).Msg("mergespec failed")
	}
	return err
}
