package launcher

import "strings"

// Fixed pieces of the eodag invocation.
const (
	// ServeSubcommand starts the REST server in the target binary.
	ServeSubcommand = "serve-rest"
	// WatchFlag is always passed to serve-rest.
	WatchFlag = "-w"
	// ObservabilityFlag enables telemetry export in the target binary.
	ObservabilityFlag = "--observability"
)

// VerbosityFlag encodes a logging level as a single flag: a dash followed
// by one "v" per level (level 2 -> "-vv"). Levels below 1 produce no flag.
func VerbosityFlag(level int) string {
	if level < 1 {
		return ""
	}
	return "-" + strings.Repeat("v", level)
}

// BuildArgs assembles the argument vector passed to the eodag binary.
// Empty flags are omitted entirely, never passed as empty strings.
func BuildArgs(cfg Config) []string {
	args := make([]string, 0, 4)

	if flag := VerbosityFlag(cfg.LoggingLevel); flag != "" {
		args = append(args, flag)
	}

	args = append(args, ServeSubcommand, WatchFlag)

	if cfg.OTLPEndpoint != "" {
		args = append(args, ObservabilityFlag)
	}

	return args
}
