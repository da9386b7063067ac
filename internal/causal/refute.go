package causal

import (
	"hash/fnv"
	"math"
	"math/rand"
)

// DefaultPlaceboTrials is the default number of permutation trials.
const DefaultPlaceboTrials = 50

// Refutation is the outcome of the placebo-permutation check. PValue is
// the fraction of surviving trials whose placebo effect magnitude was at
// least as large as the real estimate; nil when every trial failed.
type Refutation struct {
	PValue *float64
	Trials int
	Failed int
}

// RefutePlacebo stress-tests an estimate against the null world where
// treatment timing carries no information: it permutes the treatment
// column across rows (same treated/untreated counts, outcome and
// confounders fixed) and re-runs the estimation. A permutation rather
// than a resample, because the real indicator is a deterministic step
// function of the enactment year. Trials that fail numerically drop out
// of the denominator instead of aborting the check.
func RefutePlacebo(ectx *Context, ate float64, trials int, rng *rand.Rand) Refutation {
	ref := Refutation{Trials: trials}
	if trials <= 0 {
		return ref
	}

	realMag := math.Abs(ate)
	placebo := &Context{
		OutcomeName: ectx.OutcomeName,
		Outcome:     ectx.Outcome,
		ConfNames:   ectx.ConfNames,
		Confounders: ectx.Confounders,
	}

	extreme := 0
	for trial := 0; trial < trials; trial++ {
		placebo.Treatment = permute(ectx.Treatment, rng)
		est, err := EstimateEffect(placebo)
		if err != nil {
			ref.Failed++
			continue
		}
		if math.Abs(est.ATE) >= realMag {
			extreme++
		}
	}

	survived := trials - ref.Failed
	if survived == 0 {
		return ref
	}
	p := float64(extreme) / float64(survived)
	ref.PValue = &p
	return ref
}

// permute returns a shuffled copy of vals; the input is never mutated.
func permute(vals []float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(vals))
	copy(out, vals)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

// PairRNG derives a deterministic RNG for one (policy, outcome) pair from
// the run seed. Seeding per pair keeps results independent of worker
// scheduling and pair order.
func PairRNG(seed uint64, policyName, outcomeName string) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(policyName))
	h.Write([]byte{0})
	h.Write([]byte(outcomeName))
	return rand.New(rand.NewSource(int64(seed ^ h.Sum64())))
}
