package causal

import (
	"math"

	"github.com/Viraj281105/ClimateX/internal/panel"
)

// Context is the pair-specific projection a single estimation may see:
// the treatment indicator, exactly one outcome, and the declared
// confounders. Building it through Isolate is what keeps unrelated
// outcome families out of the regression; a generic fit over the full
// panel would silently absorb sibling pollutant columns as adjusters.
type Context struct {
	OutcomeName string
	Treatment   []float64
	Outcome     []float64
	ConfNames   []string
	Confounders [][]float64
}

// Columns returns every column name present in the context:
// "treatment", the outcome, and the confounders. Used to assert the
// anti-leakage invariant.
func (c *Context) Columns() []string {
	cols := []string{"treatment", c.OutcomeName}
	return append(cols, c.ConfNames...)
}

// Isolate builds the Context for one (treatment, outcome) pair from the
// shared panel. The outcome and every declared confounder must exist and
// be fully populated; anything else is a per-pair ConfigError.
func Isolate(p *panel.Panel, treatment []float64, outcomeName string, confounders []string) (*Context, error) {
	outcome, ok := p.Column(outcomeName)
	if !ok {
		return nil, &ConfigError{Column: outcomeName, Reason: "outcome not in panel"}
	}
	if err := checkPopulated(outcomeName, outcome); err != nil {
		return nil, err
	}

	ctx := &Context{
		OutcomeName: outcomeName,
		Treatment:   treatment,
		Outcome:     outcome,
		ConfNames:   make([]string, 0, len(confounders)),
		Confounders: make([][]float64, 0, len(confounders)),
	}
	for _, name := range confounders {
		col, ok := p.Column(name)
		if !ok {
			return nil, &ConfigError{Column: name, Reason: "confounder not in panel"}
		}
		if err := checkPopulated(name, col); err != nil {
			return nil, err
		}
		ctx.ConfNames = append(ctx.ConfNames, name)
		ctx.Confounders = append(ctx.Confounders, col)
	}
	return ctx, nil
}

func checkPopulated(name string, col []float64) error {
	for _, v := range col {
		if math.IsNaN(v) {
			return &ConfigError{Column: name, Reason: "unresolved missing value"}
		}
	}
	return nil
}
