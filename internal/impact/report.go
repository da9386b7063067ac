package impact

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Viraj281105/ClimateX/internal/format"
)

// Summary aggregates one batch run for the CLI report.
type Summary struct {
	Pairs       int
	Failed      int // fully-null records
	NoPlacebo   int // estimated but refutation degraded to null
	Significant int // p_value_ate < 0.05 and p_value_placebo < 0.05
}

// Summarize scans the table. A trustworthy effect needs both a low
// estimate p-value (genuine signal) and a low placebo p-value (the
// signal is not an artifact of a treatment-unrelated pattern); the 0.05
// cut here is reporting convenience, not engine policy.
func Summarize(t *Table) Summary {
	s := Summary{Pairs: len(t.Records)}
	for i := range t.Records {
		rec := &t.Records[i]
		switch {
		case rec.Failed():
			s.Failed++
		case rec.PValuePlacebo == nil:
			s.NoPlacebo++
		}
		if rec.PValueATE != nil && rec.PValuePlacebo != nil &&
			*rec.PValueATE < 0.05 && *rec.PValuePlacebo < 0.05 {
			s.Significant++
		}
	}
	return s
}

// FormatReport renders a human-readable run summary with the strongest
// significant effects first. topN bounds the detail table (0 = all).
func FormatReport(t *Table, topN int) string {
	s := Summarize(t)

	var b strings.Builder
	b.WriteString("=== Policy Impact Report ===\n")
	b.WriteString(fmt.Sprintf("Pairs:       %d\n", s.Pairs))
	b.WriteString(fmt.Sprintf("Failed:      %d\n", s.Failed))
	b.WriteString(fmt.Sprintf("No placebo:  %d\n", s.NoPlacebo))
	b.WriteString(fmt.Sprintf("Significant: %d (p_ate < 0.05 and p_placebo < 0.05)\n\n", s.Significant))

	sig := make([]Record, 0, s.Significant)
	for _, rec := range t.Records {
		if rec.PValueATE != nil && rec.PValuePlacebo != nil &&
			*rec.PValueATE < 0.05 && *rec.PValuePlacebo < 0.05 {
			sig = append(sig, rec)
		}
	}
	sort.Slice(sig, func(i, j int) bool {
		return math.Abs(*sig[i].ATE) > math.Abs(*sig[j].ATE)
	})
	if topN > 0 && len(sig) > topN {
		sig = sig[:topN]
	}

	if len(sig) == 0 {
		b.WriteString("No significant effects.\n")
		return b.String()
	}

	tb := format.NewTable()
	tb.Header("Policy", "Year", "Pollutant", "ATE", "p(ate)", "p(placebo)")
	tb.Columns(
		format.ColumnConfig{Number: 3, MaxWidth: 40},
		format.ColumnConfig{Number: 4, Align: format.AlignRight},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
		format.ColumnConfig{Number: 6, Align: format.AlignRight},
	)
	for _, rec := range sig {
		tb.Row(rec.Policy, rec.Year, rec.Pollutant,
			format.FmtFloat(rec.ATE),
			format.FmtFloat(rec.PValueATE),
			format.FmtFloat(rec.PValuePlacebo))
	}
	b.WriteString(tb.String())
	b.WriteString("\n")
	return b.String()
}
