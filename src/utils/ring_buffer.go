package utils

import (
	"time"

	"chart-challenge/src/models"
)

// -----------------------------------------------------------------------------
// RingBuffer is a fixed-size circular buffer of recent round outcomes.
// True ring buffer - no resizing on append!
// -----------------------------------------------------------------------------

type RingBuffer struct {
	// Data storage as 2D slice (rows x features)
	data     [][models.RB_NUM_FEATURES]float64
	capacity int
	index    int // Next write position
	size     int // Current number of elements
}

// -----------------------------------------------------------------------------

// NewRingBuffer creates a new buffer with fixed capacity
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 100 // Default reasonable size
	}

	return &RingBuffer{
		data:     make([][models.RB_NUM_FEATURES]float64, capacity),
		capacity: capacity,
		index:    0,
		size:     0,
	}
}

// -----------------------------------------------------------------------------

// Append adds one finished round (Strict Type)
func (rb *RingBuffer) Append(outcome models.MRoundOutcome) {
	correct := 0.0
	if outcome.Correct {
		correct = 1.0
	}

	rb.data[rb.index] = [models.RB_NUM_FEATURES]float64{
		float64(outcome.CreatedAt.Unix()),
		float64(outcome.Score),
		correct,
		float64(outcome.DurationMs),
		float64(outcome.HiddenDays),
	}

	rb.index = (rb.index + 1) % rb.capacity

	// Update size (never exceeds capacity)
	if rb.size < rb.capacity {
		rb.size++
	}
}

// -----------------------------------------------------------------------------

// GetLatest returns the n latest outcomes, oldest first
func (rb *RingBuffer) GetLatest(n int) []models.MRoundOutcome {
	if rb.size == 0 || n <= 0 {
		return []models.MRoundOutcome{}
	}

	count := n
	if n > rb.size {
		count = rb.size
	}

	result := make([]models.MRoundOutcome, count)

	// Latest data is at index-1
	startIdx := (rb.index - count + rb.capacity) % rb.capacity

	for i := 0; i < count; i++ {
		idx := (startIdx + i) % rb.capacity
		result[i] = rb.rowToOutcome(rb.data[idx])
	}

	return result
}

// -----------------------------------------------------------------------------

// Summary returns played/correct counts and the average score over the
// retained window. Feeds the /api/metrics endpoint.
func (rb *RingBuffer) Summary() (played int, correct int, avgScore float64) {
	if rb.size == 0 {
		return 0, 0, 0
	}

	total := 0.0
	for i := 0; i < rb.size; i++ {
		row := rb.data[i]
		total += row[models.RB_IDX_SCORE]
		if row[models.RB_IDX_CORRECT] > 0 {
			correct++
		}
	}
	return rb.size, correct, total / float64(rb.size)
}

// -----------------------------------------------------------------------------

// Size returns current number of elements
func (rb *RingBuffer) Size() int {
	return rb.size
}

// -----------------------------------------------------------------------------

// Capacity returns buffer capacity (fixed)
func (rb *RingBuffer) Capacity() int {
	return rb.capacity
}

// -----------------------------------------------------------------------------

// IsFull returns whether buffer is full
func (rb *RingBuffer) IsFull() bool {
	return rb.size == rb.capacity
}

// -----------------------------------------------------------------------------

// Clear resets the buffer
func (rb *RingBuffer) Clear() {
	rb.index = 0
	rb.size = 0
}

// -----------------------------------------------------------------------------
// Helper
// -----------------------------------------------------------------------------

func (rb *RingBuffer) rowToOutcome(row [models.RB_NUM_FEATURES]float64) models.MRoundOutcome {
	return models.MRoundOutcome{
		CreatedAt:  time.Unix(int64(row[models.RB_IDX_TIMESTAMP]), 0).UTC(),
		Score:      int(row[models.RB_IDX_SCORE]),
		Correct:    row[models.RB_IDX_CORRECT] > 0,
		DurationMs: int64(row[models.RB_IDX_DURATION_MS]),
		HiddenDays: int(row[models.RB_IDX_HIDDEN_DAYS]),
	}
}
