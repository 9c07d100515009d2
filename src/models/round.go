package models

import "time"

// -----------------------------------------------------------------------------
// Round state (server side)
// -----------------------------------------------------------------------------

// MRound is one active guessing round. The full dataset and the answer stay
// server-side; clients only ever see the truncated payload.
type MRound struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Difficulty string            `json:"difficulty"`
	Config     MGenerationConfig `json:"config"`
	Dataset    MDataset          `json:"-"`
	HiddenFrom int64             `json:"-"` // epoch seconds; bars at/after this are hidden
	Choices    []string          `json:"choices"`
	Answer     float64           `json:"-"`
	AnswerIdx  int               `json:"-"`
	CreatedAt  time.Time         `json:"created_at"`
	ExpiresAt  time.Time         `json:"-"`
}

// -----------------------------------------------------------------------------
// Chart payload (client side)
// -----------------------------------------------------------------------------

// MChartBar is a bar shaped for the charting library: daily and coarser
// resolutions carry a calendar-date string in Time, sub-daily resolutions
// carry epoch seconds.
type MChartBar struct {
	Time  interface{} `json:"time"`
	Open  float64     `json:"open"`
	High  float64     `json:"high"`
	Low   float64     `json:"low"`
	Close float64     `json:"close"`
}

// MRoundPayload is the client-facing view of a round: the visible part of
// every resolution plus the multiple-choice price strings.
type MRoundPayload struct {
	RoundID    string                     `json:"round_id"`
	Difficulty string                     `json:"difficulty"`
	HiddenDays int                        `json:"hidden_days"`
	Choices    []string                   `json:"choices"`
	Charts     map[Resolution][]MChartBar `json:"charts"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// -----------------------------------------------------------------------------
// Guess evaluation
// -----------------------------------------------------------------------------

// MGuessResult is returned once per round, after the guess. Reveal holds the
// previously hidden bars so the client can complete its charts.
type MGuessResult struct {
	RoundID       string                     `json:"round_id"`
	Correct       bool                       `json:"correct"`
	ChoiceIndex   int                        `json:"choice_index"`
	CorrectIndex  int                        `json:"correct_index"`
	CorrectChoice string                     `json:"correct_choice"`
	Score         int                        `json:"score"`
	Reveal        map[Resolution][]MChartBar `json:"reveal"`
}

// -----------------------------------------------------------------------------
// Persistence
// -----------------------------------------------------------------------------

// MRoundOutcome is the persisted record of a finished round, keyed by the
// anonymous per-client user id.
type MRoundOutcome struct {
	RoundID    string    `json:"round_id"`
	UserID     string    `json:"user_id"`
	Difficulty string    `json:"difficulty"`
	HiddenDays int       `json:"hidden_days"`
	Correct    bool      `json:"correct"`
	Score      int       `json:"score"`
	Guess      string    `json:"guess"`
	Answer     string    `json:"answer"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// MUserStats aggregates a user's persisted outcomes.
type MUserStats struct {
	UserID         string    `json:"user_id"`
	RoundsPlayed   int       `json:"rounds_played"`
	CorrectGuesses int       `json:"correct_guesses"`
	TotalScore     int       `json:"total_score"`
	BestScore      int       `json:"best_score"`
	LastPlayedAt   time.Time `json:"last_played_at"`
}

// -----------------------------------------------------------------------------
// Daily challenge broadcast
// -----------------------------------------------------------------------------

// MDailyChallenge is the shared round pushed to websocket clients whenever
// the scheduler regenerates it.
type MDailyChallenge struct {
	Type      string         `json:"type"` // always "DAILY"
	Date      string         `json:"date"`
	Round     *MRoundPayload `json:"round"`
	Timestamp int64          `json:"timestamp"`
}
