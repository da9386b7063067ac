package impact

// State is the per-pair lifecycle position. Every pair walks
// PENDING → ISOLATED → ESTIMATED → REFUTED → RECORDED; FAILED is
// reachable from the first three on error and always transitions to
// RECORDED with nulled fields, so the table row count never shrinks.
type State int

const (
	StatePending State = iota
	StateIsolated
	StateEstimated
	StateRefuted
	StateFailed
	StateRecorded
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "PENDING"
	case StateIsolated:
		return "ISOLATED"
	case StateEstimated:
		return "ESTIMATED"
	case StateRefuted:
		return "REFUTED"
	case StateFailed:
		return "FAILED"
	case StateRecorded:
		return "RECORDED"
	}
	return "UNKNOWN"
}

// PairResult is the full outcome of one pair's walk through the
// lifecycle: the record that goes into the table, the traversed states,
// and the error that failed the pair, if any.
type PairResult struct {
	Record Record
	Path   []State
	Err    error
}

// State returns the terminal state of the pair.
func (pr *PairResult) State() State {
	if len(pr.Path) == 0 {
		return StatePending
	}
	return pr.Path[len(pr.Path)-1]
}

func (pr *PairResult) advance(s State) {
	pr.Path = append(pr.Path, s)
}
