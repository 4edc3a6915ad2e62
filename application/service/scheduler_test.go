package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopworks/catalogsync/domain/record"
	"github.com/shopworks/catalogsync/domain/tracking"
)

func newTestScheduler(records *fakeRecordStore, products *fakeProductStore, tracker *tracking.Tracker) *Scheduler {
	describer := &fakeDescriber{description: "desc"}
	processor := newTestProcessor(records, products, nil, describer, nil)
	return NewScheduler(records, processor, tracker, time.Minute, nil)
}

func TestRunCycleCountsOutcomes(t *testing.T) {
	records := &fakeRecordStore{records: []record.Record{
		record.New("rec-1", "Blue Mug").WithCategory("kitchen").WithPrice(12),
		record.New("rec-2", ""),
		record.New("rec-3", "Lamp").WithCategory("lighting"),
	}}
	products := &fakeProductStore{}
	tracker := tracking.NewTracker()
	scheduler := newTestScheduler(records, products, tracker)

	require.NoError(t, scheduler.RunCycle(context.Background()))

	snap := tracker.Snapshot()
	assert.Equal(t, 1, snap.Cycles)
	assert.Equal(t, 3, snap.LastCycle.Seen())
	assert.Equal(t, 2, snap.LastCycle.Ingested())
	assert.Equal(t, 1, snap.LastCycle.Skipped())
	assert.Equal(t, 2, snap.TotalIngested)
	assert.False(t, snap.LastCycle.FinishedAt().IsZero())
}

func TestRunCycleSecondPassReconciles(t *testing.T) {
	records := &fakeRecordStore{records: []record.Record{
		record.New("rec-1", "Blue Mug").WithCategory("kitchen").WithPrice(12),
	}}
	products := &fakeProductStore{}
	tracker := tracking.NewTracker()
	scheduler := newTestScheduler(records, products, tracker)

	require.NoError(t, scheduler.RunCycle(context.Background()))
	require.NoError(t, scheduler.RunCycle(context.Background()))

	snap := tracker.Snapshot()
	assert.Equal(t, 2, snap.Cycles)
	assert.Equal(t, 1, snap.LastCycle.Reconciled())
	assert.Zero(t, snap.LastCycle.Ingested())
	assert.Equal(t, 1, products.count(), "re-running a cycle must not duplicate rows")
	assert.Equal(t, 1, snap.TotalIngested)
}

func TestRunCycleListFailureIsFatal(t *testing.T) {
	records := &fakeRecordStore{listErr: errBoom}
	scheduler := newTestScheduler(records, &fakeProductStore{}, nil)

	err := scheduler.RunCycle(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
}

func TestRunCycleIsolatesPerRecordFailure(t *testing.T) {
	records := &fakeRecordStore{records: []record.Record{
		record.New("rec-1", "Blue Mug").WithCategory("kitchen"),
		record.New("rec-2", "Lamp").WithCategory("lighting"),
	}}
	products := &fakeProductStore{}
	tracker := tracking.NewTracker()

	describer := &fakeDescriber{description: "desc"}
	index := newFakeIndex()
	index.upsertErr = errBoom
	embedder := &fakeEmbedder{vec: []float32{0.5}}
	processor := newTestProcessor(records, products, index, describer, embedder)
	scheduler := NewScheduler(records, processor, tracker, time.Minute, nil)

	require.NoError(t, scheduler.RunCycle(context.Background()))

	snap := tracker.Snapshot()
	assert.Equal(t, 2, snap.LastCycle.Unindexed())
	assert.Equal(t, 2, products.count(), "catalog inserts stand despite index failures")
	assert.Equal(t, 2, snap.TotalIngested)
}

func TestRunStopsOnCancel(t *testing.T) {
	records := &fakeRecordStore{records: []record.Record{
		record.New("rec-1", "Blue Mug").WithCategory("kitchen"),
	}}
	scheduler := newTestScheduler(records, &fakeProductStore{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := scheduler.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRunCycleStopsBetweenRecordsOnCancel(t *testing.T) {
	records := &fakeRecordStore{records: []record.Record{
		record.New("rec-1", "Blue Mug").WithCategory("kitchen"),
		record.New("rec-2", "Lamp").WithCategory("lighting"),
	}}
	scheduler := newTestScheduler(records, &fakeProductStore{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := scheduler.RunCycle(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
