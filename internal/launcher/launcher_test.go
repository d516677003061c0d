package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/psantana5/eodag-launcher/internal/logging"
)

func quietLogger() *logging.Logger {
	logger := logging.NewLogger(logging.ERROR, false)
	logger.SetOutput(io.Discard)
	return logger
}

func TestExec_ArgumentVector(t *testing.T) {
	var gotArgv0 string
	var gotArgv []string

	l := &Launcher{
		logger:   quietLogger(),
		lookPath: func(file string) (string, error) { return "/usr/local/bin/" + file, nil },
		execve: func(argv0 string, argv []string, envv []string) error {
			gotArgv0 = argv0
			gotArgv = argv
			return nil
		},
	}

	cfg := Config{Binary: "eodag", LoggingLevel: 2, OTLPEndpoint: "http://collector:4318"}
	if err := l.Exec(cfg); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	if gotArgv0 != "/usr/local/bin/eodag" {
		t.Errorf("expected resolved path as argv0, got %q", gotArgv0)
	}

	want := []string{"eodag", "-vv", "serve-rest", "-w", "--observability"}
	if !reflect.DeepEqual(gotArgv, want) {
		t.Errorf("argv = %v, want %v", gotArgv, want)
	}
}

func TestExec_InheritsEnvironment(t *testing.T) {
	t.Setenv("EODAG_TEST_MARKER", "inherited")

	var gotEnv []string
	l := &Launcher{
		logger:   quietLogger(),
		lookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		execve: func(argv0 string, argv []string, envv []string) error {
			gotEnv = envv
			return nil
		},
	}

	if err := l.Exec(Config{Binary: "eodag"}); err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	found := false
	for _, kv := range gotEnv {
		if kv == "EODAG_TEST_MARKER=inherited" {
			found = true
			break
		}
	}
	if !found {
		t.Error("exec environment must inherit the launcher environment")
	}
}

func TestExec_MissingBinary(t *testing.T) {
	l := &Launcher{
		logger:   quietLogger(),
		lookPath: func(file string) (string, error) { return "", fmt.Errorf("executable file not found in $PATH") },
		execve: func(argv0 string, argv []string, envv []string) error {
			t.Fatal("execve must not be called when lookup fails")
			return nil
		},
	}

	err := l.Exec(Config{Binary: "eodag"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

// writeExitScript creates a stand-in target binary that exits with the
// given code.
func writeExitScript(t *testing.T, code int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "eodag")
	script := fmt.Sprintf("#!/bin/sh\nexit %d\n", code)
	if err := os.WriteFile(path, []byte(script), 0755); err != nil {
		t.Fatalf("failed to write script: %v", err)
	}
	return path
}

func TestRun_MirrorsChildExitCode(t *testing.T) {
	path := writeExitScript(t, 3)

	l := &Launcher{
		logger:   quietLogger(),
		lookPath: func(file string) (string, error) { return path, nil },
	}

	code, err := l.Run(context.Background(), Config{Binary: "eodag"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 3 {
		t.Errorf("expected the child's exit code 3, got %d", code)
	}
}

func TestRun_SuccessReturnsZero(t *testing.T) {
	path := writeExitScript(t, 0)

	l := &Launcher{
		logger:   quietLogger(),
		lookPath: func(file string) (string, error) { return path, nil },
	}

	code, err := l.Run(context.Background(), Config{Binary: "eodag"})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if code != 0 {
		t.Errorf("expected exit code 0, got %d", code)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	l := &Launcher{
		logger:   quietLogger(),
		lookPath: func(file string) (string, error) { return "", fmt.Errorf("executable file not found in $PATH") },
	}

	code, err := l.Run(context.Background(), Config{Binary: "eodag"})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
	if code != -1 {
		t.Errorf("expected code -1 on lookup failure, got %d", code)
	}
}

func TestExec_ExecveFailurePropagates(t *testing.T) {
	l := &Launcher{
		logger:   quietLogger(),
		lookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
		execve: func(argv0 string, argv []string, envv []string) error {
			return fmt.Errorf("permission denied")
		},
	}

	err := l.Exec(Config{Binary: "eodag"})
	if err == nil {
		t.Fatal("expected execve failure to propagate")
	}
}
