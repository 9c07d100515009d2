package storage

import (
	"database/sql"
	"fmt"
	"time"

	"chart-challenge/src/helpers"
	"chart-challenge/src/logger"
	"chart-challenge/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

type SQLiteStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewSQLiteStore(cfg *models.MConfig, log *logger.Logger) (*SQLiteStore, error) {
	return &SQLiteStore{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Initialize() error {
	dsn := d.Config.Storage.DBPath

	// Open DB
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return helpers.NewDatabaseError("failed to open sqlite db", err)
	}

	if err := db.Ping(); err != nil {
		return helpers.NewDatabaseError("failed to ping sqlite db", err)
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	return d.createTables()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) createTables() error {
	// Outcomes survive restarts, so unlike a pure cache this table is
	// created once and kept.
	// SQLite types: INTEGER for int64, REAL for float64, TEXT for string
	query := `
		CREATE TABLE IF NOT EXISTS round_outcomes (
			round_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			difficulty TEXT,
			hidden_days INTEGER,
			correct INTEGER,
			score INTEGER,
			guess TEXT,
			answer TEXT,
			duration_ms INTEGER,
			created_at INTEGER
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create round_outcomes: %w", err)
	}

	query = `CREATE INDEX IF NOT EXISTS idx_round_outcomes_user ON round_outcomes (user_id, created_at);`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to index round_outcomes: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) SaveOutcome(o models.MRoundOutcome) error {
	query := `
		INSERT INTO round_outcomes (round_id, user_id, difficulty, hidden_days, correct, score, guess, answer, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.DB.Exec(query,
		o.RoundID, o.UserID, o.Difficulty, o.HiddenDays, boolToInt(o.Correct),
		o.Score, o.Guess, o.Answer, o.DurationMs, o.CreatedAt.Unix())
	if err != nil {
		return helpers.NewDatabaseError("failed to save outcome", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) GetUserStats(userID string) (models.MUserStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(correct), 0), COALESCE(SUM(score), 0),
		       COALESCE(MAX(score), 0), COALESCE(MAX(created_at), 0)
		FROM round_outcomes WHERE user_id = ?
	`

	stats := models.MUserStats{UserID: userID}
	var lastPlayed int64
	err := d.DB.QueryRow(query, userID).Scan(
		&stats.RoundsPlayed, &stats.CorrectGuesses, &stats.TotalScore,
		&stats.BestScore, &lastPlayed)
	if err != nil {
		return stats, helpers.NewDatabaseError("failed to read user stats", err)
	}

	if lastPlayed > 0 {
		stats.LastPlayedAt = time.Unix(lastPlayed, 0).UTC()
	}
	return stats, nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) RecentOutcomes(limit int) ([]models.MRoundOutcome, error) {
	query := `
		SELECT round_id, user_id, difficulty, hidden_days, correct, score, guess, answer, duration_ms, created_at
		FROM round_outcomes ORDER BY created_at DESC LIMIT ?
	`

	rows, err := d.DB.Query(query, limit)
	if err != nil {
		return nil, helpers.NewDatabaseError("failed to query outcomes", err)
	}
	defer rows.Close()

	var outcomes []models.MRoundOutcome
	for rows.Next() {
		var o models.MRoundOutcome
		var correct int
		var created int64
		if err := rows.Scan(&o.RoundID, &o.UserID, &o.Difficulty, &o.HiddenDays,
			&correct, &o.Score, &o.Guess, &o.Answer, &o.DurationMs, &created); err != nil {
			return nil, helpers.NewDatabaseError("failed to scan outcome", err)
		}
		o.Correct = correct != 0
		o.CreatedAt = time.Unix(created, 0).UTC()
		outcomes = append(outcomes, o)
	}

	return outcomes, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) CleanupOldOutcomes() error {
	cutoff := time.Now().AddDate(0, 0, -d.Config.Storage.RetentionDays).Unix()

	res, err := d.DB.Exec(`DELETE FROM round_outcomes WHERE created_at < ?`, cutoff)
	if err != nil {
		return helpers.NewDatabaseError("failed to cleanup outcomes", err)
	}

	if n, err := res.RowsAffected(); err == nil && n > 0 {
		d.Logger.Info("Cleaned up %d outcomes older than %d days", n, d.Config.Storage.RetentionDays)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *SQLiteStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}

// -----------------------------------------------------------------------------

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
