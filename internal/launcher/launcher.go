package launcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"github.com/psantana5/eodag-launcher/internal/logging"
)

// Launcher issues the eodag invocation. Exec replaces the current process
// image; Run is the spawn-and-wait fallback with the same observable
// contract (inherited streams, mirrored exit code).
type Launcher struct {
	logger   *logging.Logger
	lookPath func(file string) (string, error)
	execve   func(argv0 string, argv []string, envv []string) error
}

// New creates a launcher wired to the real process primitives.
func New(logger *logging.Logger) *Launcher {
	return &Launcher{
		logger:   logger,
		lookPath: exec.LookPath,
		execve:   unix.Exec,
	}
}

// Exec replaces the current process with the target binary. On success it
// never returns; the launched server inherits the environment and the
// standard streams.
func (l *Launcher) Exec(cfg Config) error {
	path, err := l.lookPath(cfg.Binary)
	if err != nil {
		return fmt.Errorf("failed to locate %s: %w", cfg.Binary, err)
	}

	argv := append([]string{cfg.Binary}, BuildArgs(cfg)...)
	l.logger.Info("replacing process with eodag", map[string]interface{}{
		"path": path,
		"args": argv[1:],
	})

	if err := l.execve(path, argv, os.Environ()); err != nil {
		return fmt.Errorf("failed to exec %s: %w", path, err)
	}
	return nil
}

// Run spawns the target binary as a child process, forwards the standard
// streams, and returns the child's exit code. Used when the caller needs
// the launcher to remain the parent (for process managers that track the
// PID they started).
func (l *Launcher) Run(ctx context.Context, cfg Config) (int, error) {
	path, err := l.lookPath(cfg.Binary)
	if err != nil {
		return -1, fmt.Errorf("failed to locate %s: %w", cfg.Binary, err)
	}

	args := BuildArgs(cfg)
	l.logger.Info("spawning eodag", map[string]interface{}{
		"path": path,
		"args": args,
	})

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return -1, fmt.Errorf("failed to run %s: %w", path, err)
	}
	return 0, nil
}
