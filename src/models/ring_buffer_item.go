package models

// RingBuffer indices and constants
const (
	RB_IDX_TIMESTAMP   = 0
	RB_IDX_SCORE       = 1
	RB_IDX_CORRECT     = 2
	RB_IDX_DURATION_MS = 3
	RB_IDX_HIDDEN_DAYS = 4
	RB_NUM_FEATURES    = 5
)
