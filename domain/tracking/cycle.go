// Package tracking provides cycle statistics for the poll loop.
package tracking

import (
	"sync"
	"time"
)

// CycleStats aggregates the outcomes of one full pass over the candidate
// records.
type CycleStats struct {
	startedAt  time.Time
	finishedAt time.Time
	seen       int
	ingested   int
	reconciled int
	unindexed  int
	skipped    int
	failed     int
}

// NewCycleStats creates stats for a cycle starting now.
func NewCycleStats() CycleStats {
	return CycleStats{startedAt: time.Now()}
}

// RecordSeen counts a candidate record handed to the processor.
func (s *CycleStats) RecordSeen() { s.seen++ }

// RecordIngested counts a newly inserted and fully indexed record.
func (s *CycleStats) RecordIngested() { s.ingested++ }

// RecordReconciled counts a record overwritten from the catalog.
func (s *CycleStats) RecordReconciled() { s.reconciled++ }

// RecordUnindexed counts a record inserted into the catalog whose vector
// upsert failed.
func (s *CycleStats) RecordUnindexed() { s.unindexed++ }

// RecordSkipped counts a malformed record.
func (s *CycleStats) RecordSkipped() { s.skipped++ }

// RecordFailed counts a record abandoned mid-branch.
func (s *CycleStats) RecordFailed() { s.failed++ }

// Finish marks the cycle complete.
func (s *CycleStats) Finish() { s.finishedAt = time.Now() }

// StartedAt returns when the cycle began.
func (s CycleStats) StartedAt() time.Time { return s.startedAt }

// FinishedAt returns when the cycle completed (zero until Finish).
func (s CycleStats) FinishedAt() time.Time { return s.finishedAt }

// Seen returns the number of candidate records handed to the processor.
func (s CycleStats) Seen() int { return s.seen }

// Ingested returns the number of newly inserted, fully indexed records.
func (s CycleStats) Ingested() int { return s.ingested }

// Reconciled returns the number of records overwritten from the catalog.
func (s CycleStats) Reconciled() int { return s.reconciled }

// Unindexed returns the number of inserts whose vector upsert failed.
func (s CycleStats) Unindexed() int { return s.unindexed }

// Skipped returns the number of malformed records.
func (s CycleStats) Skipped() int { return s.skipped }

// Failed returns the number of records abandoned mid-branch.
func (s CycleStats) Failed() int { return s.failed }

// Tracker records the most recent cycle and running totals. Safe for
// concurrent use: the scheduler writes, the ops endpoint reads.
type Tracker struct {
	mu            sync.RWMutex
	cycles        int
	lastCycle     CycleStats
	totalIngested int
	totalFailed   int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe records a completed cycle.
func (t *Tracker) Observe(stats CycleStats) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cycles++
	t.lastCycle = stats
	t.totalIngested += stats.Ingested() + stats.Unindexed()
	t.totalFailed += stats.Failed()
}

// Snapshot returns the tracker state at a point in time.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Snapshot{
		Cycles:        t.cycles,
		LastCycle:     t.lastCycle,
		TotalIngested: t.totalIngested,
		TotalFailed:   t.totalFailed,
	}
}

// Snapshot is a point-in-time view of the tracker.
type Snapshot struct {
	Cycles        int
	LastCycle     CycleStats
	TotalIngested int
	TotalFailed   int
}
