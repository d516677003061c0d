package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/psantana5/eodag-launcher/internal/launcher"
	"github.com/psantana5/eodag-launcher/internal/logging"
)

var (
	binaryOverride  string
	loggingOverride string
	outputFormat    string
	logLevelName    string
	logJSON         bool

	fileCfg launcher.FileConfig
)

// rootCmd represents the base command. Running it bare launches the server,
// so the binary can be used directly as a container entrypoint.
var rootCmd = &cobra.Command{
	Use:   "eodag-launcher",
	Short: "Launcher for the eodag REST server",
	Long: `eodag-launcher translates environment configuration into an eodag
invocation and replaces itself with "eodag serve-rest".

EODAG_LOGGING (1-3) becomes a repeated verbosity flag, and a non-empty
OTEL_EXPORTER_OTLP_ENDPOINT enables observability in the server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&binaryOverride, "binary", "", "target executable (default from EODAG_BIN or \"eodag\")")
	rootCmd.PersistentFlags().StringVar(&loggingOverride, "logging", "", "verbosity level 1-3 (default from EODAG_LOGGING)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "table", "output format: table or json")
	rootCmd.PersistentFlags().StringVar(&logLevelName, "log-level", "info", "launcher log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write launcher logs as JSON")
}

// initConfig reads the optional config file and binds environment variables
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".eodag-launcher", "config.yaml")
		cfg, err := launcher.LoadFileConfig(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: ignoring %s: %v\n", path, err)
		} else {
			fileCfg = cfg
		}
	}

	// Every key is bound to its exact variable; no AutomaticEnv, so stray
	// host variables like BINARY or LOGGING cannot leak in.
	viper.BindEnv("binary", launcher.EnvBinary)
	viper.BindEnv("logging", launcher.EnvLogging)
	viper.BindEnv("otlp_endpoint", launcher.EnvOTLPEndpoint)
}

func newLogger() *logging.Logger {
	return logging.NewLogger(logging.ParseLevel(logLevelName), logJSON)
}

// resolveBinary applies precedence: flag, environment, config file, default.
func resolveBinary() string {
	if binaryOverride != "" {
		return binaryOverride
	}
	if v := viper.GetString("binary"); v != "" {
		return v
	}
	if fileCfg.Binary != "" {
		return fileCfg.Binary
	}
	return launcher.DefaultBinary
}

// resolveRawLogging returns the unparsed logging level with the same
// precedence as resolveBinary. Validation happens once, in the caller.
func resolveRawLogging() string {
	if loggingOverride != "" {
		return loggingOverride
	}
	if v := viper.GetString("logging"); v != "" {
		return v
	}
	return fileCfg.Logging
}

func resolveEndpoint() string {
	return viper.GetString("otlp_endpoint")
}

// IsJSONOutput returns true if JSON output is requested
func IsJSONOutput() bool {
	return outputFormat == "json"
}
