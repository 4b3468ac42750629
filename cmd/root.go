package cmd

import (
	"os"

	"go.uber.org/zap"

	"github.com/spf13/cobra"

	"github.com/osmium-go/osmcore/internal/config"
	"github.com/osmium-go/osmcore/internal/logger"
)

var (
	cfg     = config.DefaultConfig()
	verbose bool
	logFile string
)

var rootCmd = &cobra.Command{
	Use:   "osmcore",
	Short: "Inspect and decode OpenStreetMap PBF and OPL data",
	Long: `osmcore is a command-line harness around the osmcore library:
byte-accurate OPL text decoding, streaming PBF binary decoding, and the
id-to-location index family used to resolve way/relation geometry.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg.Verbose = verbose
		cfg.LogFile = logFile
		if logFile != "" {
			logger.InitWithFile(verbose, logFile)
		} else {
			logger.Init(verbose)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug-level logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Path to a rotated JSON log file")
	rootCmd.PersistentFlags().IntVarP(&cfg.Workers, "workers", "j", cfg.Workers, "Number of concurrent PBF blob decoders")
	rootCmd.PersistentFlags().StringVar(&cfg.Format, "format", cfg.Format, "Input format: auto, pbf, or opl")
}

func exitWithError(msg string, err error) {
	log := logger.Get()
	if err != nil {
		log.Error(msg, zap.Error(err))
	} else {
		log.Error(msg)
	}
	os.Exit(1)
}
