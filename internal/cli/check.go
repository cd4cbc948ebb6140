package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/yildizm/RoadReport/internal/client"
	"github.com/yildizm/RoadReport/internal/ui"
	"github.com/yildizm/RoadReport/internal/ui/components"
)

var (
	checkConnect bool
	checkDB      bool
	checkNoTUI   bool
)

var errChecksFailed = errors.New("one or more checks failed")

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check connectivity to the analysis backend",
		Long: `Check that the analysis backend and its database are reachable.

Without --no-tui a small interface opens where c runs the backend check and
d runs the database check. With --no-tui the selected checks (both when
none is selected) run concurrently and the command fails if any of them
fails.

Examples:
  roadreport check
  roadreport check --no-tui
  roadreport check --db --no-tui -o json`,
		Args: cobra.NoArgs,
		RunE: runCheck,
	}

	cmd.Flags().BoolVar(&checkConnect, "connect", false, "run the backend connect check")
	cmd.Flags().BoolVar(&checkDB, "db", false, "run the database check")
	cmd.Flags().BoolVar(&checkNoTUI, "no-tui", false, "print results instead of opening the interface")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	c, err := newClient(cfg)
	if err != nil {
		return err
	}

	if !checkNoTUI {
		restore, err := redirectLogs(firstNonEmpty(cfg.UI.LogFile, defaultLogFile()))
		if err != nil {
			return err
		}
		defer restore()
		return ui.RunCheck(c, c.APIBaseURL(), newLogger("check"))
	}

	var checks []client.Check
	if checkConnect {
		checks = append(checks, client.CheckConnect)
	}
	if checkDB {
		checks = append(checks, client.CheckDB)
	}
	if len(checks) == 0 {
		checks = []client.Check{client.CheckConnect, client.CheckDB}
	}

	results := c.RunChecks(commandContext(cmd), checks...)
	if err := printCheckResults(cmd.OutOrStdout(), c.APIBaseURL(), results); err != nil {
		return err
	}

	for _, r := range results {
		if !r.OK() {
			return errChecksFailed
		}
	}
	return nil
}

func printCheckResults(out io.Writer, apiBase string, results []client.CheckResult) error {
	if getOutputFormat() == "json" {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal check results: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	fmt.Fprintf(out, "Connectivity check against %s\n\n", apiBase)
	for _, r := range results {
		if r.OK() {
			fmt.Fprintf(out, "%s %-9s %s (%s)\n", GetStatusEmoji(true), r.Check.Label(), r.Status, components.FormatDuration(r.Elapsed))
		} else {
			fmt.Fprintf(out, "%s %-9s %s\n", GetStatusEmoji(false), r.Check.Label(), r.Error)
		}
	}
	return nil
}
