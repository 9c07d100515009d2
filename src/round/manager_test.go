package round

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chart-challenge/src/config"
	"chart-challenge/src/helpers"
	"chart-challenge/src/logger"
	"chart-challenge/src/models"
	"chart-challenge/src/utils"
)

// fakeStore records outcomes in memory.
type fakeStore struct {
	mu       sync.Mutex
	outcomes []models.MRoundOutcome
}

func (f *fakeStore) Initialize() error { return nil }
func (f *fakeStore) SaveOutcome(o models.MRoundOutcome) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.outcomes = append(f.outcomes, o)
	return nil
}
func (f *fakeStore) GetUserStats(userID string) (models.MUserStats, error) {
	return models.MUserStats{UserID: userID}, nil
}
func (f *fakeStore) RecentOutcomes(limit int) ([]models.MRoundOutcome, error) { return nil, nil }
func (f *fakeStore) CleanupOldOutcomes() error                                { return nil }
func (f *fakeStore) Close() error                                             { return nil }

// -----------------------------------------------------------------------------

func newTestManager(t *testing.T) (*Manager, *fakeStore) {
	t.Helper()

	cfg := &config.Config{MConfig: &models.MConfig{
		Name:     "chart-challenge-test",
		LogLevel: "ERROR",
		Generation: models.MGenerationConfig{
			DaysNeeded: 5,
			StartPrice: 100,
			Volatility: 0.8,
			Drift:      0.1,
		},
		Game: models.MGameConfig{
			Difficulties: []models.MDifficultyConfig{
				{Name: "easy", HiddenDays: 1, BaseScore: 100},
				{Name: "hard", HiddenDays: 3, BaseScore: 300},
			},
			ChoiceCount:           4,
			DecoyBandPct:          15,
			MaxGenerationAttempts: 3,
			RoundTTLMinutes:       10,
			RecentOutcomes:        50,
		},
	}}

	store := &fakeStore{}
	return NewManager(cfg, logger.NewLogger("ERROR", "test"), store), store
}

// -----------------------------------------------------------------------------

func TestStartRoundPayload(t *testing.T) {
	m, _ := newTestManager(t)

	payload, err := m.StartRound("user-1", "easy")
	require.NoError(t, err)

	assert.NotEmpty(t, payload.RoundID)
	assert.Equal(t, "easy", payload.Difficulty)
	assert.Equal(t, 1, payload.HiddenDays)
	assert.Len(t, payload.Choices, 4)

	// One hidden day leaves four visible days of base data.
	assert.Len(t, payload.Charts[models.Res1m], 4*utils.MinutesPerDay)
	assert.Len(t, payload.Charts[models.Res1d], 4)

	// Date-string times for daily+, epoch seconds below.
	assert.IsType(t, "", payload.Charts[models.Res1d][0].Time)
	assert.IsType(t, int64(0), payload.Charts[models.Res1h][0].Time)
}

// -----------------------------------------------------------------------------

func TestStartRoundUnknownDifficulty(t *testing.T) {
	m, _ := newTestManager(t)

	_, err := m.StartRound("user-1", "nightmare")
	var cfgErr *helpers.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "expected ConfigurationError, got %v", err)
}

// -----------------------------------------------------------------------------

func TestSubmitGuessCorrect(t *testing.T) {
	m, store := newTestManager(t)

	payload, err := m.StartRound("user-1", "hard")
	require.NoError(t, err)

	m.mu.RLock()
	r := m.active[payload.RoundID]
	m.mu.RUnlock()
	require.NotNil(t, r)

	result, err := m.SubmitGuess(payload.RoundID, "user-1", r.AnswerIdx, 5000)
	require.NoError(t, err)

	assert.True(t, result.Correct)
	assert.Equal(t, r.AnswerIdx, result.CorrectIndex)
	assert.Equal(t, FormatPrice(r.Answer), result.CorrectChoice)
	assert.Greater(t, result.Score, 300) // base plus speed bonus

	// Hidden days revealed.
	assert.Len(t, result.Reveal[models.Res1d], 3)

	// Outcome persisted.
	require.Len(t, store.outcomes, 1)
	assert.Equal(t, "user-1", store.outcomes[0].UserID)
	assert.True(t, store.outcomes[0].Correct)
}

// -----------------------------------------------------------------------------

func TestSubmitGuessIncorrectScoresZero(t *testing.T) {
	m, store := newTestManager(t)

	payload, err := m.StartRound("user-1", "easy")
	require.NoError(t, err)

	m.mu.RLock()
	r := m.active[payload.RoundID]
	m.mu.RUnlock()

	wrong := (r.AnswerIdx + 1) % len(r.Choices)
	result, err := m.SubmitGuess(payload.RoundID, "user-1", wrong, 1000)
	require.NoError(t, err)

	assert.False(t, result.Correct)
	assert.Zero(t, result.Score)
	require.Len(t, store.outcomes, 1)
	assert.False(t, store.outcomes[0].Correct)
}

// -----------------------------------------------------------------------------

func TestSubmitGuessOnlyOnce(t *testing.T) {
	m, _ := newTestManager(t)

	payload, err := m.StartRound("user-1", "easy")
	require.NoError(t, err)

	_, err = m.SubmitGuess(payload.RoundID, "user-1", 0, 1000)
	require.NoError(t, err)

	_, err = m.SubmitGuess(payload.RoundID, "user-1", 0, 1000)
	assert.ErrorIs(t, err, ErrRoundNotFound)
}

// -----------------------------------------------------------------------------

func TestSubmitGuessWrongUser(t *testing.T) {
	m, _ := newTestManager(t)

	payload, err := m.StartRound("user-1", "easy")
	require.NoError(t, err)

	_, err = m.SubmitGuess(payload.RoundID, "user-2", 0, 1000)
	assert.ErrorIs(t, err, ErrWrongUser)
}

// -----------------------------------------------------------------------------

func TestSubmitGuessInvalidChoice(t *testing.T) {
	m, _ := newTestManager(t)

	payload, err := m.StartRound("user-1", "easy")
	require.NoError(t, err)

	_, err = m.SubmitGuess(payload.RoundID, "user-1", 9, 1000)
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

// -----------------------------------------------------------------------------

func TestScore(t *testing.T) {
	m, _ := newTestManager(t)
	diff := models.MDifficultyConfig{Name: "easy", HiddenDays: 1, BaseScore: 100}

	assert.Zero(t, m.score(diff, false, 0))
	assert.Equal(t, 150, m.score(diff, true, 0))       // full speed bonus
	assert.Equal(t, 100, m.score(diff, true, 30000))   // bonus window closed
	assert.Equal(t, 125, m.score(diff, true, 15000))   // half bonus
	assert.Equal(t, 100, m.score(diff, true, 9999999)) // slow guess
}

// -----------------------------------------------------------------------------

func TestDailyChallengeSharedAcrossUsers(t *testing.T) {
	m, store := newTestManager(t)

	require.Nil(t, m.Daily())

	challenge, err := m.RegenerateDaily()
	require.NoError(t, err)
	require.NotNil(t, challenge)
	assert.Equal(t, "DAILY", challenge.Type)
	assert.Same(t, challenge, m.Daily())

	// Two different users can answer the same shared round.
	_, err = m.SubmitGuess(challenge.Round.RoundID, "user-1", 0, 1000)
	require.NoError(t, err)
	_, err = m.SubmitGuess(challenge.Round.RoundID, "user-2", 1, 2000)
	require.NoError(t, err)

	assert.Len(t, store.outcomes, 2)
}

// -----------------------------------------------------------------------------

func TestSnapshotCountsRecentOutcomes(t *testing.T) {
	m, _ := newTestManager(t)

	payload, err := m.StartRound("user-1", "easy")
	require.NoError(t, err)

	m.mu.RLock()
	r := m.active[payload.RoundID]
	m.mu.RUnlock()

	_, err = m.SubmitGuess(payload.RoundID, "user-1", r.AnswerIdx, 1000)
	require.NoError(t, err)

	active, played, correct, avg := m.Snapshot()
	assert.Zero(t, active)
	assert.Equal(t, 1, played)
	assert.Equal(t, 1, correct)
	assert.Greater(t, avg, 0.0)
}
