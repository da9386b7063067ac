// Package policy loads the featurized policy list the engine treats as its
// treatment catalogue. The upstream featurization pipeline attaches LLM
// classification columns (policy_type, action_type, full text); the engine
// only needs the name and the enactment year and ignores the rest.
package policy

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Policy is one enacted policy: a unique name and the year it took effect.
type Policy struct {
	Name string
	Year int
}

// LoadCSV parses a policy list from CSV. nameCol and yearCol select the
// identifying columns; all other columns are ignored. Names must be unique.
func LoadCSV(r io.Reader, nameCol, yearCol string) ([]Policy, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	// Policy text cells may contain embedded quotes and newlines.
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read policy header: %w", err)
	}

	nameIdx, yearIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case nameCol:
			nameIdx = i
		case yearCol:
			yearIdx = i
		}
	}
	if nameIdx < 0 {
		return nil, fmt.Errorf("policy list has no name column %q", nameCol)
	}
	if yearIdx < 0 {
		return nil, fmt.Errorf("policy list has no year column %q", yearCol)
	}

	var policies []Policy
	seen := make(map[string]bool)
	line := 1
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read policy row: %w", err)
		}
		line++
		if len(rec) <= nameIdx || len(rec) <= yearIdx {
			return nil, fmt.Errorf("policy line %d: too few cells", line)
		}

		name := strings.TrimSpace(rec[nameIdx])
		if name == "" {
			return nil, fmt.Errorf("policy line %d: empty name", line)
		}
		if seen[name] {
			return nil, fmt.Errorf("policy line %d: duplicate name %q", line, name)
		}
		seen[name] = true

		year, err := strconv.Atoi(strings.TrimSpace(rec[yearIdx]))
		if err != nil {
			return nil, fmt.Errorf("policy line %d: year %q is not an integer", line, rec[yearIdx])
		}

		policies = append(policies, Policy{Name: name, Year: year})
	}

	return policies, nil
}
