// Package impact drives the full batch of (policy, outcome) estimations
// and assembles the impact table downstream consumers read. Each pair is
// independent given the shared read-only panel; the batch is a pure
// function of (panel, policy list, confounder declaration, seed).
package impact

// Record is one row of the impact table. Nil metric fields are recorded,
// non-fatal failures, not zero effects. The field set and its order are a
// compatibility contract with every downstream consumer.
type Record struct {
	Policy        string   `json:"policy"`
	Year          int      `json:"year"`
	Pollutant     string   `json:"pollutant"`
	ATE           *float64 `json:"ate"`
	PValueATE     *float64 `json:"p_value_ate"`
	PValuePlacebo *float64 `json:"p_value_placebo"`
}

// Table is the ordered collection of all records for one batch run. Rows
// are sorted by (policy input order, outcome column order); downstream
// consumers treat the table as an unordered relation over (policy,
// pollutant).
type Table struct {
	Records []Record
}

// Failed reports whether the record is a fully-null failure row.
func (r *Record) Failed() bool {
	return r.ATE == nil && r.PValueATE == nil && r.PValuePlacebo == nil
}
