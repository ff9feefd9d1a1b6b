package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/doctor"
	"github.com/the-perfect-developer/the-perfect-opencode-sub000/internal/errors"
)

var (
	doctorJSON    bool
	doctorQuiet   bool
	doctorVerbose bool
)

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false,
		"output results as JSON")
	doctorCmd.Flags().BoolVar(&doctorQuiet, "quiet", false,
		"suppress output, exit code only")
	doctorCmd.Flags().BoolVar(&doctorVerbose, "verbose", false,
		"show detailed check-by-check output")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose source tree and configuration issues",
	Long: `Run diagnostic checks on the source tree, the configuration, the
git hook, and the catalog.

Output modes (mutually exclusive):
  (default)   Show errors and warnings
  --verbose   Show all checks including passed ones
  --quiet     No output, exit code only
  --json      Machine-readable JSON output

Exit codes:
  0 - All checks passed (no errors or warnings)
  1 - Warnings present, no errors
  2 - Errors present`,
	PreRunE: validateDoctorFlags,
	RunE:    runDoctor,
}

// validateDoctorFlags ensures output flags are mutually exclusive.
func validateDoctorFlags(_ *cobra.Command, _ []string) error {
	count := 0
	if doctorJSON {
		count++
	}
	if doctorQuiet {
		count++
	}
	if doctorVerbose {
		count++
	}

	if count > 1 {
		return errors.New("flags --json, --quiet, and --verbose are mutually exclusive")
	}

	return nil
}

func runDoctor(c *cobra.Command, _ []string) error {
	return runDoctorWithWriter(c, os.Stdout)
}

func runDoctorWithWriter(c *cobra.Command, w io.Writer) error {
	source := effectiveSource()

	format, err := effectiveFormat("")
	if err != nil {
		return err
	}
	output := effectiveOutput("", format)

	runner := doctor.NewRunner()
	runner.AddCheck(&doctor.TreeCheck{Root: source})
	runner.AddCheck(&doctor.ConfigCheck{Path: viper.ConfigFileUsed()})
	runner.AddCheck(&doctor.HookCheck{Dir: ".", Output: output})
	runner.AddCheck(&doctor.CatalogCheck{
		Scanner: scannerFromConfig(c),
		Root:    source,
		Output:  output,
		Format:  format,
	})
	runner.AddCheck(&doctor.OutputCheck{Output: output})

	report := runner.Run()

	if err := outputDoctorReport(report, w); err != nil {
		return err
	}

	if report.HasErrors() {
		return errors.NewExitError(errDoctorErrors, 2)
	}
	if report.HasWarnings() {
		return errors.NewExitError(errDoctorWarnings, 1)
	}
	return nil
}

func outputDoctorReport(report *doctor.Report, w io.Writer) error {
	if doctorQuiet {
		return nil
	}

	if doctorJSON {
		return outputDoctorJSON(report, w)
	}

	return outputDoctorText(report, w)
}

func outputDoctorJSON(report *doctor.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(report), "encoding JSON")
}

func outputDoctorText(report *doctor.Report, w io.Writer) error {
	// Normal mode shows only errors and warnings; verbose shows every check.
	showAll := doctorVerbose

	hasOutput := false
	for _, result := range report.Results {
		if !showAll && result.Status != doctor.SeverityError && result.Status != doctor.SeverityWarning {
			continue
		}

		hasOutput = true
		icon := statusIcon(result.Status)
		fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, result.Category, result.Name, result.Message)

		if result.FixHint != "" && (result.Status == doctor.SeverityError || result.Status == doctor.SeverityWarning) {
			fmt.Fprintf(w, "  hint: %s\n", result.FixHint)
		}
	}

	if hasOutput || showAll {
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Summary: %d passed, %d info, %d warnings, %d errors\n",
		report.Summary.Passed, report.Summary.Info, report.Summary.Warnings, report.Summary.Errors)

	return nil
}

func statusIcon(s doctor.Severity) string {
	switch s {
	case doctor.SeverityPass:
		return "✓"
	case doctor.SeverityInfo:
		return "ℹ"
	case doctor.SeverityWarning:
		return "⚠"
	case doctor.SeverityError:
		return "✗"
	default:
		return "?"
	}
}

// errDoctorWarnings is a sentinel error for exit code 1.
var errDoctorWarnings = errors.New("doctor found warnings")

// errDoctorErrors is a sentinel error for exit code 2.
var errDoctorErrors = errors.New("doctor found errors")
