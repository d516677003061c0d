package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/psantana5/eodag-launcher/internal/launcher"
)

var (
	dryRun   bool
	forkMode bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Launch the eodag REST server",
	Long: `Resolve the launch configuration, derive the eodag command line, and
replace the launcher process with it.

Example:
  EODAG_LOGGING=2 eodag-launcher serve
  OTEL_EXPORTER_OTLP_ENDPOINT=http://collector:4318 eodag-launcher serve
  eodag-launcher serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the resolved command line without launching")
		cmd.Flags().BoolVar(&forkMode, "fork", false, "spawn eodag as a child process instead of replacing the launcher")
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	rawLevel := resolveRawLogging()
	level, err := launcher.ParseLoggingLevel(rawLevel)
	if err != nil {
		logger.Warn(fmt.Sprintf("%s %v, verbosity flag omitted (valid levels are 1-%d)",
			launcher.EnvLogging, err, launcher.MaxUsefulLevel))
	} else if level > launcher.MaxUsefulLevel {
		logger.Warn(fmt.Sprintf("%s level %d exceeds the useful maximum of %d",
			launcher.EnvLogging, level, launcher.MaxUsefulLevel))
	}

	cfg := launcher.Config{
		Binary:       resolveBinary(),
		LoggingLevel: level,
		OTLPEndpoint: resolveEndpoint(),
	}

	if dryRun {
		fmt.Println(strings.Join(append([]string{cfg.Binary}, launcher.BuildArgs(cfg)...), " "))
		return nil
	}

	l := launcher.New(logger)

	if forkMode {
		code, err := l.Run(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	}

	return l.Exec(cfg)
}
