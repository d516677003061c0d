package launcher

import (
	"fmt"
	"strings"
	"testing"
)

func findCheck(t *testing.T, report Report, name string) Check {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("check %q missing from report: %+v", name, report)
	return Check{}
}

func resolvingPreflight() *Preflight {
	return &Preflight{
		lookPath: func(file string) (string, error) { return "/usr/local/bin/" + file, nil },
	}
}

func missingPreflight() *Preflight {
	return &Preflight{
		lookPath: func(file string) (string, error) {
			return "", fmt.Errorf("executable file not found in $PATH")
		},
	}
}

func TestPreflight_BinaryResolved(t *testing.T) {
	report := resolvingPreflight().Run("eodag", "", "")

	check := findCheck(t, report, "binary")
	if check.Status != StatusOK {
		t.Errorf("expected ok binary check, got %+v", check)
	}
	if check.Detail != "/usr/local/bin/eodag" {
		t.Errorf("expected resolved path in detail, got %q", check.Detail)
	}
}

func TestPreflight_BinaryMissing(t *testing.T) {
	report := missingPreflight().Run("eodag", "", "")

	check := findCheck(t, report, "binary")
	if check.Status != StatusFail {
		t.Errorf("expected failed binary check, got %+v", check)
	}
	if !report.Failed() {
		t.Error("report with a failed check must report Failed()")
	}
}

func TestPreflight_LoggingLevels(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"", StatusOK},
		{"2", StatusOK},
		{"3", StatusOK},
		{"7", StatusWarn},
		{"abc", StatusFail},
		{"0", StatusFail},
	}

	for _, c := range cases {
		report := resolvingPreflight().Run("eodag", c.raw, "")
		check := findCheck(t, report, "logging")
		if check.Status != c.want {
			t.Errorf("logging check for %q = %s, want %s (%+v)", c.raw, check.Status, c.want, check)
		}
	}
}

func TestPreflight_Endpoint(t *testing.T) {
	cases := []struct {
		endpoint string
		want     string
	}{
		{"", StatusOK},
		{"http://collector:4318", StatusOK},
		{"https://otel.example.com", StatusOK},
		{"not a url", StatusFail},
		{"ftp://collector", StatusFail},
		{"collector:4318", StatusFail},
	}

	for _, c := range cases {
		report := resolvingPreflight().Run("eodag", "", c.endpoint)
		check := findCheck(t, report, "otlp-endpoint")
		if check.Status != c.want {
			t.Errorf("endpoint check for %q = %s, want %s", c.endpoint, check.Status, c.want)
		}
	}
}

func TestPreflight_HostChecksPresent(t *testing.T) {
	report := resolvingPreflight().Run("eodag", "", "")

	cpuCheck := findCheck(t, report, "host-cpu")
	if cpuCheck.Status == StatusOK && !strings.Contains(cpuCheck.Detail, "threads") {
		t.Errorf("expected thread count in cpu detail, got %q", cpuCheck.Detail)
	}

	memCheck := findCheck(t, report, "host-memory")
	if memCheck.Status == StatusOK && !strings.Contains(memCheck.Detail, "GB") {
		t.Errorf("expected GB figures in memory detail, got %q", memCheck.Detail)
	}
}
