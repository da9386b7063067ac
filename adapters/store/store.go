// Package store persists batch impact runs so past results can be
// inspected and compared. Domain and CLI code use only the Store
// interface; the implementation is SQLite or in-memory.
package store

import (
	"errors"
	"time"

	"github.com/Viraj281105/ClimateX/internal/impact"
)

// DefaultDBPath is the default relative path for the SQLite DB.
// Open() creates the parent dir.
const DefaultDBPath = ".climatex/impacts.db"

// ErrNotFound is returned when a run ID does not exist.
var ErrNotFound = errors.New("run not found")

// Run is the metadata of one persisted batch run.
type Run struct {
	ID         string    // assigned on save when empty
	CreatedAt  time.Time // UTC
	PanelFile  string
	PolicyFile string
	Seed       uint64
	Trials     int
	Pairs      int
	Failed     int
}

// Store is the persistence facade for impact runs. SaveRun assigns
// Run.ID and Run.CreatedAt when unset and stores the run together with
// its records; records are append-only and never updated.
type Store interface {
	SaveRun(run *Run, table *impact.Table) error
	GetRun(id string) (*Run, error)
	ListRuns() ([]*Run, error)
	GetRecords(runID string) ([]impact.Record, error)
	Close() error
}
