package causal

import "fmt"

// ConfigError reports a declared column that cannot be used: absent from
// the panel, or holding unresolved missing values. Per-pair, non-fatal.
type ConfigError struct {
	Column string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
}

// DegenerateOutcomeError reports an outcome with fewer than two distinct
// values; no effect is estimable from a constant outcome.
type DegenerateOutcomeError struct {
	Outcome string
}

func (e *DegenerateOutcomeError) Error() string {
	return fmt.Sprintf("outcome %q has fewer than two distinct values", e.Outcome)
}

// EstimationError reports a numerical failure in the backdoor regression,
// typically a singular design matrix from collinear columns.
type EstimationError struct {
	Reason string
}

func (e *EstimationError) Error() string {
	return "estimation failed: " + e.Reason
}
