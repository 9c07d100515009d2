package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-challenge/src/models"
)

func outcomeAt(i int) models.MRoundOutcome {
	return models.MRoundOutcome{
		Score:      i * 10,
		Correct:    i%2 == 0,
		DurationMs: int64(i * 100),
		HiddenDays: 1,
		CreatedAt:  time.Unix(int64(1514764800+i), 0).UTC(),
	}
}

// -----------------------------------------------------------------------------

func TestRingBufferAppendAndLatest(t *testing.T) {
	rb := NewRingBuffer(5)

	assert.Zero(t, rb.Size())
	assert.Equal(t, 5, rb.Capacity())
	assert.False(t, rb.IsFull())

	for i := 0; i < 3; i++ {
		rb.Append(outcomeAt(i))
	}

	assert.Equal(t, 3, rb.Size())

	latest := rb.GetLatest(2)
	require.Len(t, latest, 2)
	// Oldest first.
	assert.Equal(t, 10, latest[0].Score)
	assert.Equal(t, 20, latest[1].Score)
}

// -----------------------------------------------------------------------------

func TestRingBufferWraparound(t *testing.T) {
	rb := NewRingBuffer(3)

	for i := 0; i < 7; i++ {
		rb.Append(outcomeAt(i))
	}

	assert.True(t, rb.IsFull())
	assert.Equal(t, 3, rb.Size())

	// Only the last three survive: 4, 5, 6.
	latest := rb.GetLatest(10)
	require.Len(t, latest, 3)
	assert.Equal(t, 40, latest[0].Score)
	assert.Equal(t, 50, latest[1].Score)
	assert.Equal(t, 60, latest[2].Score)
}

// -----------------------------------------------------------------------------

func TestRingBufferRoundTripFields(t *testing.T) {
	rb := NewRingBuffer(4)
	in := outcomeAt(3)
	rb.Append(in)

	out := rb.GetLatest(1)[0]
	assert.Equal(t, in.Score, out.Score)
	assert.Equal(t, in.Correct, out.Correct)
	assert.Equal(t, in.DurationMs, out.DurationMs)
	assert.Equal(t, in.HiddenDays, out.HiddenDays)
	assert.True(t, in.CreatedAt.Equal(out.CreatedAt))
}

// -----------------------------------------------------------------------------

func TestRingBufferSummary(t *testing.T) {
	rb := NewRingBuffer(10)

	played, correct, avg := rb.Summary()
	assert.Zero(t, played)
	assert.Zero(t, correct)
	assert.Zero(t, avg)

	rb.Append(models.MRoundOutcome{Score: 100, Correct: true, CreatedAt: time.Now()})
	rb.Append(models.MRoundOutcome{Score: 0, Correct: false, CreatedAt: time.Now()})
	rb.Append(models.MRoundOutcome{Score: 200, Correct: true, CreatedAt: time.Now()})

	played, correct, avg = rb.Summary()
	assert.Equal(t, 3, played)
	assert.Equal(t, 2, correct)
	assert.InDelta(t, 100.0, avg, 1e-9)
}

// -----------------------------------------------------------------------------

func TestRingBufferClear(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Append(outcomeAt(1))
	rb.Clear()

	assert.Zero(t, rb.Size())
	assert.Empty(t, rb.GetLatest(5))
}
