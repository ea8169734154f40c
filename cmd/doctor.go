package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/PolarWolf314/sealedconf/internal/ui"
	"github.com/PolarWolf314/sealedconf/internal/workflows"
	"github.com/spf13/cobra"
)

var doctorJSONOutput bool

// errDoctorFailed is returned when a check reports an error. The report has
// already been printed.
var errDoctorFailed = errors.New("health checks failed")

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSONOutput, "json", false, "output in JSON format")
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that this machine can read its sealed configuration",
	Long: `Runs a series of health checks and reports issues.

The doctor command checks:
  - .sealedconf.toml validity
  - Board serial number and processor id availability
  - Key derivation, reporting the key fingerprint
  - Whether the secrets file decrypts on this machine

The fingerprint identifies the machine key without revealing it; two
machines with the same fingerprint can read each other's sealed files.

Exit codes:
  0 - All checks passed, possibly with warnings
  2 - Errors found

Use --json for machine-readable output.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting doctor command")

		p, err := loadProject()
		if err != nil {
			return err
		}

		result, err := workflows.Doctor(cmd.Context(), workflows.DoctorOptions{Dir: p.dir, Provider: newProvider()})
		if err != nil {
			return err
		}
		for _, check := range result.Checks {
			Logger.Debugf("Check %s: status=%s, message=%s", check.Name, check.Status, check.Message)
		}

		out := cmd.OutOrStdout()
		if doctorJSONOutput {
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(result); err != nil {
				return err
			}
		} else {
			printDoctorResults(out, result)
		}

		if result.Summary.Errors > 0 {
			return errDoctorFailed
		}
		return nil
	},
}

// printDoctorResults prints the doctor results in a human-readable format.
func printDoctorResults(out io.Writer, result *workflows.DoctorResult) {
	for _, check := range result.Checks {
		var statusIcon string
		switch check.Status {
		case workflows.CheckPass:
			statusIcon = ui.Success.Sprint("✓")
		case workflows.CheckWarning:
			statusIcon = ui.Warning.Sprint("⚠")
		case workflows.CheckError:
			statusIcon = ui.Error.Sprint("✗")
		}
		fmt.Fprintf(out, "%s %s\n", statusIcon, check.Message)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Summary: %d passed", result.Summary.Passed)
	if result.Summary.Warnings > 0 {
		fmt.Fprintf(out, ", %s", ui.Warning.Sprint(fmt.Sprintf("%d warning(s)", result.Summary.Warnings)))
	}
	if result.Summary.Errors > 0 {
		fmt.Fprintf(out, ", %s", ui.Error.Sprint(fmt.Sprintf("%d error(s)", result.Summary.Errors)))
	}
	fmt.Fprintln(out)

	if len(result.Suggestions) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Suggestions:")
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(out, "  %s %s\n", ui.Info.Sprint("→"), suggestion)
		}
	}
}
