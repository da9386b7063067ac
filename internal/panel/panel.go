// Package panel provides a read-only view over the annual observational
// table the causal engine estimates against. A Panel is loaded once per
// batch run and never mutated afterwards; every estimation sees the same
// row-aligned columns.
package panel

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Panel holds one row per period and a set of named numeric columns.
// The period column is also exposed as a numeric column so callers may
// declare it as a confounder.
type Panel struct {
	periodCol string
	periods   []int
	order     []string
	cols      map[string][]float64
}

// LoadCSV parses a panel from CSV. The header row names the columns;
// periodCol must be present and hold integers. Every other column is
// parsed as float64; blank cells become NaN (resolved upstream in a
// well-formed panel, surfaced per-pair by the isolator otherwise).
func LoadCSV(r io.Reader, periodCol string) (*Panel, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read panel header: %w", err)
	}

	periodIdx := -1
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
		if header[i] == periodCol {
			periodIdx = i
		}
	}
	if periodIdx < 0 {
		return nil, fmt.Errorf("panel has no period column %q", periodCol)
	}

	p := &Panel{
		periodCol: periodCol,
		cols:      make(map[string][]float64, len(header)),
	}
	for _, h := range header {
		if _, dup := p.cols[h]; dup {
			return nil, fmt.Errorf("duplicate panel column %q", h)
		}
		p.cols[h] = nil
		p.order = append(p.order, h)
	}

	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read panel row: %w", err)
		}
		line++
		if len(rec) != len(header) {
			return nil, fmt.Errorf("panel line %d: %d cells, header has %d", line, len(rec), len(header))
		}

		period, err := strconv.Atoi(strings.TrimSpace(rec[periodIdx]))
		if err != nil {
			return nil, fmt.Errorf("panel line %d: period %q is not an integer", line, rec[periodIdx])
		}
		p.periods = append(p.periods, period)

		for i, h := range header {
			cell := strings.TrimSpace(rec[i])
			var v float64
			if cell == "" {
				v = math.NaN()
			} else {
				v, err = strconv.ParseFloat(cell, 64)
				if err != nil {
					return nil, fmt.Errorf("panel line %d, column %q: %q is not numeric", line, h, cell)
				}
			}
			p.cols[h] = append(p.cols[h], v)
		}
	}

	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Panel) validate() error {
	if len(p.periods) == 0 {
		return fmt.Errorf("panel has zero rows")
	}
	seen := make(map[int]bool, len(p.periods))
	prev := math.MinInt
	for _, y := range p.periods {
		if seen[y] {
			return fmt.Errorf("panel period %d appears more than once", y)
		}
		if y <= prev {
			return fmt.Errorf("panel periods not strictly increasing at %d", y)
		}
		seen[y] = true
		prev = y
	}
	return nil
}

// Rows returns the number of periods in the panel.
func (p *Panel) Rows() int { return len(p.periods) }

// Periods returns the ordered period keys. The slice is shared; do not mutate.
func (p *Panel) Periods() []int { return p.periods }

// PeriodColumn returns the name of the period column.
func (p *Panel) PeriodColumn() string { return p.periodCol }

// Column returns the named column's values, row-aligned with Periods.
// The slice is shared; callers must treat it as read-only.
func (p *Panel) Column(name string) ([]float64, bool) {
	col, ok := p.cols[name]
	return col, ok
}

// HasColumn reports whether the panel contains the named column.
func (p *Panel) HasColumn(name string) bool {
	_, ok := p.cols[name]
	return ok
}

// Columns returns all column names in load order.
func (p *Panel) Columns() []string { return p.order }

// OutcomesByPrefix returns the names of all columns matching any of the
// given name prefixes, sorted for a stable batch order.
func (p *Panel) OutcomesByPrefix(prefixes []string) []string {
	var out []string
	for _, name := range p.order {
		for _, pre := range prefixes {
			if strings.HasPrefix(name, pre) {
				out = append(out, name)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}
