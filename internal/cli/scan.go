package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/jakoblorz/apexcov/internal/filesystem"
	"github.com/jakoblorz/apexcov/internal/github"
	"github.com/jakoblorz/apexcov/internal/models"
	"github.com/jakoblorz/apexcov/internal/tui"
	"github.com/spf13/cobra"
)

// ScanCommand handles the scan command
type ScanCommand struct {
	fs filesystem.FileSystem
}

// NewScanCommand creates a new scan command
func NewScanCommand(fs filesystem.FileSystem) *cobra.Command {
	cmd := &ScanCommand{fs: fs}

	cobraCmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan a source tree and report Apex test coverage",
		Long: `Scans the tree for Apex classes, pairs each class with its co-located
test class (<Class>Test.cls in the same directory), and prints a coverage
report. The scan is read-only and deterministic.`,
		Example: `  # Human-readable report
  apexcov scan --root force-app

  # JSON for scripting
  apexcov scan --root force-app --format json

  # Fail the invocation when coverage is below the threshold
  apexcov scan --root force-app --check --threshold 75`,
		RunE: cmd.Run,
	}

	addScanFlags(cobraCmd)
	cobraCmd.Flags().String("format", "text", "Output format: text, json, or markdown")
	cobraCmd.Flags().Bool("check", false, "Exit non-zero when the threshold is not met")

	return cobraCmd
}

// Run executes the scan command
func (c *ScanCommand) Run(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	check, _ := cmd.Flags().GetBool("check")

	sc, err := resolveScan(c.fs, cmd)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		if err := c.outputJSON(sc.Report); err != nil {
			return err
		}
	case "markdown":
		body, err := github.RenderCoverageComment(sc.Report, sc.Threshold)
		if err != nil {
			return fmt.Errorf("failed to render markdown: %w", err)
		}
		fmt.Println(body)
	case "text":
		c.outputText(sc.Report, sc.Threshold)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	if check && !sc.Report.MeetsThreshold(sc.Threshold) {
		return fmt.Errorf("coverage %d%% (%d of %d) is below threshold %d%% or classes are uncovered",
			sc.Report.Percentage(), sc.Report.Covered, sc.Report.Total, sc.Threshold)
	}

	return nil
}

// outputText prints the report in human-readable form
func (c *ScanCommand) outputText(report *models.CoverageReport, threshold int) {
	fmt.Println(tui.TitleStyle.Render(fmt.Sprintf("🧪 Apex Test Coverage — %s", report.Root)))

	if !report.HasUnits() {
		fmt.Println("No Apex classes found — nothing to cover.")
		return
	}

	for _, unit := range report.Units {
		if unit.Covered {
			fmt.Printf("%s %s (%s)\n", tui.CoveredStyle.Render("✅"), unit.Name, filepath.Base(unit.TestPath))
		} else {
			fmt.Printf("%s %s %s\n", tui.UncoveredStyle.Render("❌"), unit.Name,
				tui.SubtleStyle.Render(fmt.Sprintf("missing %s", filepath.Base(unit.TestPath))))
		}
	}

	fmt.Println()
	summary := fmt.Sprintf("%d of %d classes covered (%d%%) — threshold %d%%",
		report.Covered, report.Total, report.Percentage(), threshold)
	if report.MeetsThreshold(threshold) {
		fmt.Println(tui.SuccessStyle.Render("✓ " + summary))
	} else {
		fmt.Println(tui.ErrorStyle.Render("✗ " + summary))
	}
}

// outputJSON prints the report as indented JSON
func (c *ScanCommand) outputJSON(report *models.CoverageReport) error {
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	fmt.Println(string(jsonData))
	return nil
}
