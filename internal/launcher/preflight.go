package launcher

import (
	"fmt"
	"net/url"
	"os/exec"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Check statuses reported by the preflight.
const (
	StatusOK   = "ok"
	StatusWarn = "warn"
	StatusFail = "fail"
)

// Check is one preflight result.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Detail string `json:"detail"`
}

// Report is the full preflight output.
type Report struct {
	Checks []Check `json:"checks"`
}

// Failed reports whether any check has status "fail".
func (r Report) Failed() bool {
	for _, c := range r.Checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

// Preflight inspects the launch environment without mutating anything.
type Preflight struct {
	lookPath func(file string) (string, error)
}

// NewPreflight creates a preflight wired to the real PATH lookup.
func NewPreflight() *Preflight {
	return &Preflight{lookPath: exec.LookPath}
}

// Run evaluates the launch environment: target binary resolution, the raw
// logging level, the OTLP endpoint shape, and the host the server is about
// to inherit.
func (p *Preflight) Run(binary, rawLevel, endpoint string) Report {
	var report Report

	report.Checks = append(report.Checks, p.checkBinary(binary))
	report.Checks = append(report.Checks, checkLoggingLevel(rawLevel))
	report.Checks = append(report.Checks, checkEndpoint(endpoint))
	report.Checks = append(report.Checks, hostChecks()...)

	return report
}

func (p *Preflight) checkBinary(binary string) Check {
	path, err := p.lookPath(binary)
	if err != nil {
		return Check{
			Name:   "binary",
			Status: StatusFail,
			Detail: fmt.Sprintf("%s not found on PATH", binary),
		}
	}
	return Check{Name: "binary", Status: StatusOK, Detail: path}
}

func checkLoggingLevel(raw string) Check {
	if raw == "" {
		return Check{
			Name:   "logging",
			Status: StatusOK,
			Detail: fmt.Sprintf("%s not set, server default applies", EnvLogging),
		}
	}

	level, err := ParseLoggingLevel(raw)
	if err != nil {
		return Check{
			Name:   "logging",
			Status: StatusFail,
			Detail: fmt.Sprintf("%s invalid: %v (valid levels are 1-%d)", EnvLogging, err, MaxUsefulLevel),
		}
	}
	if level > MaxUsefulLevel {
		return Check{
			Name:   "logging",
			Status: StatusWarn,
			Detail: fmt.Sprintf("level %d exceeds the useful maximum of %d", level, MaxUsefulLevel),
		}
	}
	return Check{
		Name:   "logging",
		Status: StatusOK,
		Detail: fmt.Sprintf("level %d -> %s", level, VerbosityFlag(level)),
	}
}

func checkEndpoint(endpoint string) Check {
	if endpoint == "" {
		return Check{
			Name:   "otlp-endpoint",
			Status: StatusOK,
			Detail: fmt.Sprintf("%s not set, observability disabled", EnvOTLPEndpoint),
		}
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return Check{
			Name:   "otlp-endpoint",
			Status: StatusFail,
			Detail: fmt.Sprintf("%q is not an http(s) URL", endpoint),
		}
	}
	return Check{Name: "otlp-endpoint", Status: StatusOK, Detail: endpoint}
}

// hostChecks reports the CPU and memory the launched server will inherit.
// These are informational; a sampling failure is a warning, not a failure.
func hostChecks() []Check {
	var checks []Check

	threads, err := cpu.Counts(true)
	if err != nil {
		checks = append(checks, Check{
			Name:   "host-cpu",
			Status: StatusWarn,
			Detail: fmt.Sprintf("failed to count CPUs: %v", err),
		})
	} else {
		checks = append(checks, Check{
			Name:   "host-cpu",
			Status: StatusOK,
			Detail: fmt.Sprintf("%d threads", threads),
		})
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		checks = append(checks, Check{
			Name:   "host-memory",
			Status: StatusWarn,
			Detail: fmt.Sprintf("failed to read memory: %v", err),
		})
	} else {
		checks = append(checks, Check{
			Name:   "host-memory",
			Status: StatusOK,
			Detail: fmt.Sprintf("%.1f GB available of %.1f GB", gb(vm.Available), gb(vm.Total)),
		})
	}

	return checks
}

func gb(bytes uint64) float64 {
	return float64(bytes) / (1024 * 1024 * 1024)
}
