package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yildizm/RoadReport/internal/common"
	"github.com/yildizm/RoadReport/internal/formatter"
	"github.com/yildizm/RoadReport/internal/report"
)

var (
	reportResultsFile string
	reportID          string
	reportCopy        bool
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the violation report of a saved result",
		Long: `Print the filing report of one result from a results file saved with
'roadreport analyze -o json --output-file results.json'. With --copy the
report is also sent to the clipboard.

Examples:
  roadreport report --results results.json --id 3
  roadreport report --results results.json --id 3 --copy`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().StringVar(&reportResultsFile, "results", "", "results file written by analyze -o json")
	cmd.Flags().StringVar(&reportID, "id", "", "id of the result to report")
	cmd.Flags().BoolVar(&reportCopy, "copy", false, "copy the report to the clipboard")
	_ = cmd.MarkFlagRequired("results")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	result, err := loadResult(reportResultsFile, reportID)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), report.Render(result))

	if !reportCopy {
		return nil
	}
	clipboard, err := report.ChainFor(GetGlobalConfig().UI.Clipboard, os.Stderr)
	if err != nil {
		return err
	}
	_, notice, err := report.Copy(clipboard, result, time.Now())
	if err != nil {
		return fmt.Errorf("failed to copy report: %w", err)
	}
	if notice == "" {
		notice = "report copied to clipboard"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", GetEmoji("copy"), notice)
	return nil
}

// loadResult finds one result in a saved results file
func loadResult(path, id string) (common.AnalysisResult, error) {
	// #nosec G304 - the user names their own results file
	data, err := os.ReadFile(path)
	if err != nil {
		return common.AnalysisResult{}, fmt.Errorf("failed to read results file: %w", err)
	}

	results, err := formatter.ReadResults(data)
	if err != nil {
		return common.AnalysisResult{}, fmt.Errorf("failed to parse results file %s: %w", path, err)
	}

	for _, r := range results {
		if r.ID == id {
			return r, nil
		}
	}
	return common.AnalysisResult{}, fmt.Errorf("result %s not found in %s", id, path)
}
