// Package causal estimates confounder-adjusted policy effects on single
// outcome columns of an annual panel. Identification is by backdoor
// adjustment over a declared confounder set (no graph search); estimation
// is a linear regression of the outcome on the treatment indicator plus
// the confounders, with the treatment coefficient read off as the ATE.
// Panels here are short (tens of periods), so the linear form is a
// deliberate trade of flexibility for stability.
package causal

import "math"

// Estimate is the result of one backdoor estimation: the average
// treatment effect and, when the hypothesis test is well-defined, its
// two-sided p-value. PValue is nil when the test is numerically
// degenerate even though the coefficient itself was computable.
type Estimate struct {
	ATE    float64
	PValue *float64
}

// EstimateEffect runs the backdoor-adjusted linear estimation for one
// isolated context. Errors are the per-pair kinds from this package:
// DegenerateOutcomeError for a constant outcome, EstimationError for a
// singular or underdetermined design.
func EstimateEffect(ectx *Context) (*Estimate, error) {
	if distinctCount(ectx.Outcome, 2) < 2 {
		return nil, &DegenerateOutcomeError{Outcome: ectx.OutcomeName}
	}

	regressors := make([][]float64, 0, 1+len(ectx.Confounders))
	regressors = append(regressors, ectx.Treatment)
	regressors = append(regressors, ectx.Confounders...)

	fit, err := fitOLS(ectx.Outcome, regressors)
	if err != nil {
		return nil, err
	}

	// beta[0] is the intercept; beta[1] is the treatment coefficient.
	est := &Estimate{ATE: fit.beta[1]}

	se := fit.se[1]
	if fit.df > 0 && se > 0 && !math.IsNaN(se) {
		p := tTestPValue(fit.beta[1]/se, fit.df)
		if !math.IsNaN(p) {
			est.PValue = &p
		}
	}
	return est, nil
}

// distinctCount returns the number of distinct values in vals, stopping
// early once limit is reached.
func distinctCount(vals []float64, limit int) int {
	seen := make(map[float64]struct{}, limit)
	for _, v := range vals {
		seen[v] = struct{}{}
		if len(seen) >= limit {
			break
		}
	}
	return len(seen)
}
