package service

// State identifies a step in the per-record reconciliation state machine.
// Processing starts at StateNew and advances one transition at a time until
// a terminal state is reached.
type State int

// State values. The first block are working states, the second terminals.
const (
	StateNew State = iota
	StateReconciling
	StateEnriching
	StateInserting
	StateIndexing
	StateWritingBack

	StateSyncedNew
	StateSyncedFromCatalog
	StateInsertedUnindexed
	StateSkipped
	StateFailed
)

// Terminal reports whether no further transitions follow this state.
func (s State) Terminal() bool {
	switch s {
	case StateSyncedNew, StateSyncedFromCatalog, StateInsertedUnindexed, StateSkipped, StateFailed:
		return true
	default:
		return false
	}
}

// String returns the state name used in logs.
func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateReconciling:
		return "reconciling"
	case StateEnriching:
		return "enriching"
	case StateInserting:
		return "inserting"
	case StateIndexing:
		return "indexing"
	case StateWritingBack:
		return "writing_back"
	case StateSyncedNew:
		return "synced_new"
	case StateSyncedFromCatalog:
		return "synced_from_catalog"
	case StateInsertedUnindexed:
		return "inserted_unindexed"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports how processing one record ended.
type Outcome struct {
	state State
	stage State
	err   error
}

// State returns the terminal state.
func (o Outcome) State() State { return o.state }

// Stage returns the state in which a failure occurred (meaningful only
// when State is StateFailed).
func (o Outcome) Stage() State { return o.stage }

// Err returns the error that ended processing, if any.
func (o Outcome) Err() error { return o.err }
