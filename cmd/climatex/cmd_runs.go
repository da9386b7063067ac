package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Viraj281105/ClimateX/adapters/store"
	"github.com/Viraj281105/ClimateX/internal/format"
	"github.com/Viraj281105/ClimateX/internal/impact"
)

var runsFlags struct {
	storePath string
	runID     string
	top       int
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted impact runs, or show one run's results",
	RunE:  runRuns,
}

func init() {
	f := runsCmd.Flags()
	f.StringVar(&runsFlags.storePath, "store", store.DefaultDBPath, "SQLite store path")
	f.StringVar(&runsFlags.runID, "id", "", "Show this run's impact records instead of listing runs")
	f.IntVar(&runsFlags.top, "top", 15, "Significant effects shown for a single run (0 = all)")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(runsFlags.storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()

	if runsFlags.runID != "" {
		run, err := st.GetRun(runsFlags.runID)
		if err != nil {
			return fmt.Errorf("run %s: %w", runsFlags.runID, err)
		}
		recs, err := st.GetRecords(run.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Run:      %s\n", run.ID)
		fmt.Fprintf(out, "Created:  %s\n", run.CreatedAt.Format(time.RFC3339))
		fmt.Fprintf(out, "Inputs:   %s + %s (seed %d, %d trials)\n\n",
			run.PanelFile, run.PolicyFile, run.Seed, run.Trials)
		fmt.Fprint(out, impact.FormatReport(&impact.Table{Records: recs}, runsFlags.top))
		return nil
	}

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No persisted runs.")
		return nil
	}

	tb := format.NewTable()
	tb.Header("ID", "Created", "Panel", "Policies", "Pairs", "Failed")
	tb.Columns(
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
	)
	for _, run := range runs {
		tb.Row(run.ID, run.CreatedAt.Format("2006-01-02 15:04"),
			format.Truncate(run.PanelFile, 30), format.Truncate(run.PolicyFile, 30),
			run.Pairs, run.Failed)
	}
	fmt.Fprintln(out, tb.String())
	return nil
}
