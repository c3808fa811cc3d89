package backbone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatisticsCounters(t *testing.T) {
	stats := NewStatistics()
	stats.AddBackbone()
	stats.AddDropped()
	stats.AddDropped()
	stats.AddFiltered()
	stats.AddFlipped()
	stats.AddFixed()
	stats.AddChecked()

	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Backbones)
	assert.Equal(t, 2, snap.Dropped)
	assert.Equal(t, 1, snap.Filtered)
	assert.Equal(t, 1, snap.Flipped)
	assert.Equal(t, 1, snap.Fixed)
	assert.Equal(t, 1, snap.Checked)
}

func TestStatisticsRecordSolve(t *testing.T) {
	stats := NewStatistics()
	stats.RecordSolve(true, 0.5)
	stats.RecordSolve(false, 2.0)
	stats.RecordSolve(false, 1.0)

	snap := stats.Snapshot()
	assert.Equal(t, 3, snap.Calls)
	assert.Equal(t, 1, snap.SatCalls)
	assert.Equal(t, 2, snap.UnsatCalls)
	assert.Equal(t, 0.5, snap.First)
	assert.Equal(t, 0.5, snap.Sat)
	assert.Equal(t, 0.5, snap.SatMax)
	assert.Equal(t, 3.0, snap.Unsat)
	assert.Equal(t, 2.0, snap.UnsatMax)
}

func TestTimerFramesNest(t *testing.T) {
	stats := NewStatistics()

	begin := time.Now()
	stats.Start(bucketFlip)
	time.Sleep(5 * time.Millisecond)
	stats.Start(bucketCheck)
	time.Sleep(5 * time.Millisecond)
	inner := stats.Stop()
	time.Sleep(5 * time.Millisecond)
	outer := stats.Stop()
	wall := time.Since(begin).Seconds()

	snap := stats.Snapshot()
	assert.InDelta(t, inner, snap.Check, 1e-9)
	assert.InDelta(t, outer, snap.Flip, 1e-9)
	// The inner frame's time must not be double counted in the outer bucket
	assert.LessOrEqual(t, snap.Flip+snap.Check, wall)
	assert.Less(t, snap.Flip+snap.Check, 0.2)
	assert.Greater(t, snap.Flip, 0.0)
	assert.Greater(t, snap.Check, 0.0)
}

func TestTimerStopWithoutStartPanics(t *testing.T) {
	assert.Panics(t, func() { NewStatistics().Stop() })
}

func TestInterruptAttributesOpenSolve(t *testing.T) {
	stats := NewStatistics()
	stats.Start(bucketSolving)
	time.Sleep(time.Millisecond)
	snap := stats.Interrupt()

	assert.Equal(t, 1, snap.UnknownCalls)
	assert.Equal(t, 1, snap.Calls)
	assert.Greater(t, snap.Unknown, 0.0)
	assert.InDelta(t, snap.Unknown, snap.Solving, 1e-9)
}

func TestInterruptWithoutOpenFrames(t *testing.T) {
	stats := NewStatistics()
	stats.RecordSolve(true, 0.1)
	snap := stats.Interrupt()

	assert.Equal(t, 0, snap.UnknownCalls)
	assert.Equal(t, 1, snap.Calls)
	assert.Equal(t, 0.0, snap.Unknown)
}
