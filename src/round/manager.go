package round

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"chart-challenge/src/config"
	"chart-challenge/src/generator"
	"chart-challenge/src/helpers"
	"chart-challenge/src/interfaces"
	"chart-challenge/src/logger"
	"chart-challenge/src/models"
	"chart-challenge/src/utils"
)

// -----------------------------------------------------------------------------

var (
	ErrRoundNotFound = errors.New("round not found or expired")
	ErrInvalidChoice = errors.New("choice index out of range")
	ErrWrongUser     = errors.New("round belongs to a different user")
)

// dailyUserID marks the shared daily-challenge round; any user may answer it.
const dailyUserID = ""

// -----------------------------------------------------------------------------

// Manager owns round lifecycle: generation (with regeneration retries),
// truncation into visible/hidden halves, guess evaluation, scoring and
// outcome persistence. Each round draws from its own random stream, so
// concurrent rounds never share generator state.
type Manager struct {
	Config *config.Config
	Logger *logger.Logger
	Store  interfaces.IRoundStore

	mu     sync.RWMutex
	active map[string]*models.MRound
	daily  *models.MDailyChallenge
	recent *utils.RingBuffer
}

// -----------------------------------------------------------------------------

func NewManager(cfg *config.Config, log *logger.Logger, store interfaces.IRoundStore) *Manager {
	return &Manager{
		Config: cfg,
		Logger: log,
		Store:  store,
		active: make(map[string]*models.MRound),
		recent: utils.NewRingBuffer(cfg.Game.RecentOutcomes),
	}
}

// -----------------------------------------------------------------------------
// Round creation
// -----------------------------------------------------------------------------

// StartRound generates a fresh validated dataset for one user and turns it
// into a guessing round. Generation failures that stem from probabilistic
// rounding artifacts are retried with a fresh random stream.
func (m *Manager) StartRound(userID, difficulty string) (*models.MRoundPayload, error) {
	diff, ok := m.Config.Difficulty(difficulty)
	if !ok {
		return nil, helpers.NewConfigurationError("unknown difficulty %q", difficulty)
	}

	r, err := m.buildRound(userID, diff)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	m.mu.Lock()
	m.expireLocked(now)
	m.active[r.ID] = r
	m.mu.Unlock()

	return m.payload(r, diff), nil
}

// -----------------------------------------------------------------------------

func (m *Manager) buildRound(userID string, diff models.MDifficultyConfig) (*models.MRound, error) {
	genCfg := m.Config.Generation

	var ds models.MDataset
	err := helpers.RetryGeneration(m.Config.Game.MaxGenerationAttempts, func() error {
		var genErr error
		ds, genErr = generator.Generate(genCfg, generator.NewRandomSource())
		if genErr != nil {
			m.Logger.Warning("Generation attempt failed: %v", genErr)
		}
		return genErr
	})
	if err != nil {
		m.Logger.Error("Generation failed after %d attempts: %v", m.Config.Game.MaxGenerationAttempts, err)
		return nil, err
	}

	// The guessing target is the true final daily close of the untruncated
	// series; after validation it equals the base series' final close.
	daily := ds[models.Res1d]
	answer := daily[len(daily)-1].Close

	choices, answerIdx := BuildChoices(
		answer, m.Config.Game.ChoiceCount, m.Config.Game.DecoyBandPct, generator.NewRandomSource())

	now := time.Now()
	return &models.MRound{
		ID:         uuid.NewString(),
		UserID:     userID,
		Difficulty: diff.Name,
		Config:     genCfg,
		Dataset:    ds,
		HiddenFrom: hiddenCutoff(genCfg.DaysNeeded, diff.HiddenDays),
		Choices:    choices,
		Answer:     answer,
		AnswerIdx:  answerIdx,
		CreatedAt:  now,
		ExpiresAt:  now.Add(time.Duration(m.Config.Game.RoundTTLMinutes) * time.Minute),
	}, nil
}

// -----------------------------------------------------------------------------

// hiddenCutoff maps a hidden-day count to the timestamp from which bars are
// withheld from the client.
func hiddenCutoff(daysNeeded, hiddenDays int) int64 {
	return utils.SyntheticEpoch.Unix() + int64(daysNeeded-hiddenDays)*utils.SecondsPerDay
}

// -----------------------------------------------------------------------------

func (m *Manager) payload(r *models.MRound, diff models.MDifficultyConfig) *models.MRoundPayload {
	return &models.MRoundPayload{
		RoundID:    r.ID,
		Difficulty: r.Difficulty,
		HiddenDays: diff.HiddenDays,
		Choices:    r.Choices,
		Charts:     visibleCharts(r.Dataset, r.HiddenFrom),
		CreatedAt:  r.CreatedAt,
	}
}

// -----------------------------------------------------------------------------
// Guess evaluation
// -----------------------------------------------------------------------------

// SubmitGuess resolves a round: evaluates the chosen price, scores it,
// persists the outcome and returns the hidden bars. A round can be answered
// exactly once.
func (m *Manager) SubmitGuess(roundID, userID string, choiceIdx int, durationMs int64) (*models.MGuessResult, error) {
	now := time.Now()

	m.mu.Lock()
	r, ok := m.active[roundID]
	if ok && now.After(r.ExpiresAt) {
		delete(m.active, roundID)
		ok = false
	}
	if ok && r.UserID != dailyUserID && r.UserID != userID {
		m.mu.Unlock()
		return nil, ErrWrongUser
	}
	if ok && r.UserID != dailyUserID {
		// Per-user rounds are answerable exactly once. The shared daily
		// round stays active until the scheduler replaces it.
		delete(m.active, roundID)
	}
	m.mu.Unlock()

	if !ok {
		return nil, ErrRoundNotFound
	}
	if choiceIdx < 0 || choiceIdx >= len(r.Choices) {
		return nil, ErrInvalidChoice
	}

	diff, _ := m.Config.Difficulty(r.Difficulty)
	correct := choiceIdx == r.AnswerIdx
	score := m.score(diff, correct, durationMs)

	outcome := models.MRoundOutcome{
		RoundID:    r.ID,
		UserID:     userID,
		Difficulty: r.Difficulty,
		HiddenDays: diff.HiddenDays,
		Correct:    correct,
		Score:      score,
		Guess:      r.Choices[choiceIdx],
		Answer:     FormatPrice(r.Answer),
		DurationMs: durationMs,
		CreatedAt:  now,
	}

	m.mu.Lock()
	m.recent.Append(outcome)
	m.mu.Unlock()

	if err := m.Store.SaveOutcome(outcome); err != nil {
		// The player still gets their result; losing one row is preferable
		// to failing the guess.
		m.Logger.Error("Failed to persist outcome %s: %v", r.ID, err)
	}

	return &models.MGuessResult{
		RoundID:       r.ID,
		Correct:       correct,
		ChoiceIndex:   choiceIdx,
		CorrectIndex:  r.AnswerIdx,
		CorrectChoice: FormatPrice(r.Answer),
		Score:         score,
		Reveal:        hiddenCharts(r.Dataset, r.HiddenFrom),
	}, nil
}

// -----------------------------------------------------------------------------

// score awards the difficulty's base score for a correct guess plus a speed
// bonus of up to half the base score, fading linearly over 30 seconds.
func (m *Manager) score(diff models.MDifficultyConfig, correct bool, durationMs int64) int {
	if !correct {
		return 0
	}

	score := diff.BaseScore
	if durationMs >= 0 && durationMs < 30000 {
		score += int(float64(diff.BaseScore) * 0.5 * (1 - float64(durationMs)/30000))
	}
	return score
}

// -----------------------------------------------------------------------------
// Daily challenge
// -----------------------------------------------------------------------------

// RegenerateDaily builds the shared daily round and caches it for broadcast.
func (m *Manager) RegenerateDaily() (*models.MDailyChallenge, error) {
	if len(m.Config.Game.Difficulties) == 0 {
		return nil, helpers.NewConfigurationError("no difficulties configured")
	}
	diff := m.Config.Game.Difficulties[0]

	r, err := m.buildRound(dailyUserID, diff)
	if err != nil {
		return nil, err
	}
	// The shared round outlives per-user TTLs; it is replaced on the next
	// scheduler tick.
	r.ExpiresAt = r.CreatedAt.Add(25 * time.Hour)

	challenge := &models.MDailyChallenge{
		Type:      "DAILY",
		Date:      r.CreatedAt.UTC().Format("2006-01-02"),
		Round:     m.payload(r, diff),
		Timestamp: r.CreatedAt.Unix(),
	}

	m.mu.Lock()
	if m.daily != nil {
		delete(m.active, m.daily.Round.RoundID)
	}
	m.active[r.ID] = r
	m.daily = challenge
	m.mu.Unlock()

	return challenge, nil
}

// -----------------------------------------------------------------------------

// Daily returns the cached daily challenge, if one has been generated.
func (m *Manager) Daily() *models.MDailyChallenge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.daily
}

// -----------------------------------------------------------------------------
// Introspection
// -----------------------------------------------------------------------------

// Snapshot reports active round count and a summary of recent outcomes for
// the metrics endpoint.
func (m *Manager) Snapshot() (active int, played int, correct int, avgScore float64) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	played, correct, avgScore = m.recent.Summary()
	return len(m.active), played, correct, avgScore
}

// -----------------------------------------------------------------------------

// expireLocked drops timed-out rounds. Callers hold m.mu.
func (m *Manager) expireLocked(now time.Time) {
	for id, r := range m.active {
		if now.After(r.ExpiresAt) {
			delete(m.active, id)
		}
	}
}
