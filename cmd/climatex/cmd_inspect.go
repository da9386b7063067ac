package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Viraj281105/ClimateX/internal/format"
	"github.com/Viraj281105/ClimateX/internal/impact"
)

var inspectFlags struct {
	panelPath string
	periodCol string
	prefixes  []string
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Validate a panel and show its column inventory",
	RunE:  runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectFlags.panelPath, "panel", "", "Panel CSV (required)")
	f.StringVar(&inspectFlags.periodCol, "period-column", "Year", "Period column name")
	f.StringSliceVar(&inspectFlags.prefixes, "outcome-prefix", nil, "Outcome name prefix (repeatable)")

	_ = inspectCmd.MarkFlagRequired("panel")
}

func runInspect(cmd *cobra.Command, _ []string) error {
	p, err := loadPanel(inspectFlags.panelPath, inspectFlags.periodCol)
	if err != nil {
		return err
	}

	prefixes := inspectFlags.prefixes
	if len(prefixes) == 0 {
		prefixes = impact.DefaultOutcomePrefixes
	}
	outcomes := p.OutcomesByPrefix(prefixes)
	outcomeSet := make(map[string]bool, len(outcomes))
	for _, o := range outcomes {
		outcomeSet[o] = true
	}

	out := cmd.OutOrStdout()
	periods := p.Periods()
	fmt.Fprintf(out, "Panel:    %s\n", inspectFlags.panelPath)
	fmt.Fprintf(out, "Periods:  %d (%d–%d)\n", p.Rows(), periods[0], periods[len(periods)-1])
	fmt.Fprintf(out, "Columns:  %d (%d outcomes matching %s)\n\n",
		len(p.Columns()), len(outcomes), strings.Join(prefixes, ","))

	tb := format.NewTable()
	tb.Header("Column", "Role")
	tb.Columns(format.ColumnConfig{Number: 1, MaxWidth: 60})
	for _, name := range p.Columns() {
		role := "covariate"
		switch {
		case name == p.PeriodColumn():
			role = "period"
		case outcomeSet[name]:
			role = "outcome"
		}
		tb.Row(format.Truncate(name, 60), role)
	}
	fmt.Fprintln(out, tb.String())
	return nil
}
