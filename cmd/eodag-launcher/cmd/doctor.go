package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/psantana5/eodag-launcher/internal/launcher"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the launch environment",
	Long: `Run preflight checks on the launch environment: target binary
resolution, EODAG_LOGGING validity, OTLP endpoint shape, and the host
resources the server will inherit. Doctor only reports; it never mutates
anything and always exits 0.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	report := launcher.NewPreflight().Run(resolveBinary(), resolveRawLogging(), resolveEndpoint())

	if IsJSONOutput() {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Check", "Status", "Detail")

	for _, check := range report.Checks {
		table.Append(check.Name, strings.ToUpper(check.Status), check.Detail)
	}

	table.Render()

	if report.Failed() {
		fmt.Println("\nSome checks failed; serve would not succeed as configured")
	}

	return nil
}
