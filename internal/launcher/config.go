package launcher

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables consumed by the launcher.
const (
	// EnvLogging sets the eodag verbosity level (1-3).
	EnvLogging = "EODAG_LOGGING"
	// EnvOTLPEndpoint is the standard OTLP endpoint variable; any non-empty
	// value enables observability in the launched server.
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	// EnvBinary overrides the target executable.
	EnvBinary = "EODAG_BIN"
)

const (
	// DefaultBinary is the executable launched when no override is given.
	DefaultBinary = "eodag"
	// MaxUsefulLevel is the highest verbosity level eodag distinguishes.
	MaxUsefulLevel = 3
)

// Config holds everything needed to build and issue the eodag invocation.
// It is populated once at startup and passed by value.
type Config struct {
	Binary       string
	LoggingLevel int
	OTLPEndpoint string
}

// ParseLoggingLevel validates a raw EODAG_LOGGING value. The value must be
// one or more decimal digits and parse to an integer strictly greater than
// zero. Anything else returns 0 and an error describing the rejection.
func ParseLoggingLevel(raw string) (int, error) {
	if raw == "" {
		return 0, fmt.Errorf("not set")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%q is not a positive integer", raw)
		}
	}
	level, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%q is not a positive integer", raw)
	}
	if level < 1 {
		return 0, fmt.Errorf("level %d is below the minimum of 1", level)
	}
	return level, nil
}

// FileConfig is the optional launcher config file under
// $HOME/.eodag-launcher/config.yaml. Environment variables and flags take
// precedence over its values.
type FileConfig struct {
	Binary  string `yaml:"binary"`
	Logging string `yaml:"logging"`
}

// LoadFileConfig reads a launcher config file. A missing file is not an
// error and yields the zero value.
func LoadFileConfig(path string) (FileConfig, error) {
	var cfg FileConfig

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}
