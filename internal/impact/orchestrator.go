package impact

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Viraj281105/ClimateX/internal/causal"
	"github.com/Viraj281105/ClimateX/internal/logging"
	"github.com/Viraj281105/ClimateX/internal/panel"
	"github.com/Viraj281105/ClimateX/internal/policy"
)

// DefaultOutcomePrefixes identifies pollutant columns in the merged
// annual panel by naming convention.
var DefaultOutcomePrefixes = []string{"EDGAR_", "HCB_", "PAH_", "PCB_", "PCDD_"}

// StructuralError reports input that is invalid as a whole (empty panel,
// empty policy list, no confounders, no outcome columns). It aborts the
// run before any pair is processed; no partial table is produced.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "structural input error: " + e.Reason
}

// Options tunes one batch run.
type Options struct {
	Confounders     []string // declared backdoor-adjustment set
	Outcomes        []string // explicit outcome columns; empty = discover by prefix
	OutcomePrefixes []string // defaults to DefaultOutcomePrefixes
	Trials          int      // placebo permutations per pair; defaults to causal.DefaultPlaceboTrials
	Workers         int      // worker pool size; defaults to GOMAXPROCS
	Seed            uint64   // base seed for per-pair refutation RNGs
}

// Runner executes the Cartesian product of policies × outcome columns.
type Runner struct {
	panel    *panel.Panel
	policies []policy.Policy
	opts     Options
}

// NewRunner builds a Runner over a loaded panel and policy list.
func NewRunner(p *panel.Panel, policies []policy.Policy, opts Options) *Runner {
	if opts.Trials <= 0 {
		opts.Trials = causal.DefaultPlaceboTrials
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if len(opts.OutcomePrefixes) == 0 {
		opts.OutcomePrefixes = DefaultOutcomePrefixes
	}
	return &Runner{panel: p, policies: policies, opts: opts}
}

// Trials returns the effective placebo trial count after defaulting.
func (r *Runner) Trials() int { return r.opts.Trials }

type pairJob struct {
	index   int
	policy  policy.Policy
	outcome string
}

// Run drives every (policy, outcome) pair through isolation, estimation
// and refutation on a bounded worker pool and returns the complete
// table: exactly one record per pair, in (policy order, outcome order).
// Per-pair failures are logged and recorded as null rows; only a
// StructuralError or context cancellation aborts the run.
func (r *Runner) Run(ctx context.Context) (*Table, error) {
	if err := r.validate(); err != nil {
		return nil, err
	}
	outcomes := r.opts.Outcomes
	if len(outcomes) == 0 {
		outcomes = r.panel.OutcomesByPrefix(r.opts.OutcomePrefixes)
	}
	if len(outcomes) == 0 {
		return nil, &StructuralError{Reason: fmt.Sprintf("no outcome columns match prefixes %v", r.opts.OutcomePrefixes)}
	}

	logger := logging.New("impact")
	logger.Info("starting batch",
		"policies", len(r.policies), "outcomes", len(outcomes),
		"pairs", len(r.policies)*len(outcomes),
		"workers", r.opts.Workers, "trials", r.opts.Trials)

	jobs := make([]pairJob, 0, len(r.policies)*len(outcomes))
	for _, pol := range r.policies {
		for _, out := range outcomes {
			jobs = append(jobs, pairJob{index: len(jobs), policy: pol, outcome: out})
		}
	}

	results := make([]PairResult, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for _, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[job.index] = r.runPair(job.policy, job.outcome)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// In-flight pairs are abandoned; no partial table is returned.
		return nil, err
	}

	table := &Table{Records: make([]Record, len(results))}
	failed := 0
	for i := range results {
		table.Records[i] = results[i].Record
		if results[i].Err != nil {
			failed++
		}
	}
	logger.Info("batch complete", "pairs", len(table.Records), "failed", failed)
	return table, nil
}

func (r *Runner) validate() error {
	if r.panel == nil || r.panel.Rows() == 0 {
		return &StructuralError{Reason: "panel has zero rows"}
	}
	if len(r.policies) == 0 {
		return &StructuralError{Reason: "policy list is empty"}
	}
	if len(r.opts.Confounders) == 0 {
		return &StructuralError{Reason: "no confounders declared"}
	}
	return nil
}

// runPair walks one pair through the lifecycle. It never returns an
// unhandled error: failures land in PairResult.Err and a null record.
func (r *Runner) runPair(pol policy.Policy, outcome string) PairResult {
	logger := logging.New("impact")
	pr := PairResult{Record: Record{Policy: pol.Name, Year: pol.Year, Pollutant: outcome}}
	pr.advance(StatePending)

	treatment := causal.EncodeTreatment(r.panel.Periods(), pol.Year)

	ectx, err := causal.Isolate(r.panel, treatment, outcome, r.opts.Confounders)
	if err != nil {
		return r.failPair(pr, "isolate", err)
	}
	pr.advance(StateIsolated)

	est, err := causal.EstimateEffect(ectx)
	if err != nil {
		return r.failPair(pr, "estimate", err)
	}
	pr.advance(StateEstimated)
	pr.Record.ATE = &est.ATE
	pr.Record.PValueATE = est.PValue

	ref := causal.RefutePlacebo(ectx, est.ATE, r.opts.Trials, causal.PairRNG(r.opts.Seed, pol.Name, outcome))
	pr.advance(StateRefuted)
	pr.Record.PValuePlacebo = ref.PValue
	if ref.Failed > 0 {
		logger.Warn("refutation trials failed",
			"policy", pol.Name, "pollutant", outcome,
			"failed", ref.Failed, "trials", ref.Trials)
	}

	pr.advance(StateRecorded)
	return pr
}

func (r *Runner) failPair(pr PairResult, stage string, err error) PairResult {
	logging.New("impact").Warn("pair failed",
		"policy", pr.Record.Policy, "pollutant", pr.Record.Pollutant,
		"stage", stage, "error", err)
	pr.Err = err
	pr.Record.ATE = nil
	pr.Record.PValueATE = nil
	pr.Record.PValuePlacebo = nil
	pr.advance(StateFailed)
	pr.advance(StateRecorded)
	return pr
}
