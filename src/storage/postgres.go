package storage

import (
	"database/sql"
	"fmt"
	"time"

	"chart-challenge/src/helpers"
	"chart-challenge/src/logger"
	"chart-challenge/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

type PostgresStore struct {
	Config *models.MConfig
	DB     *sql.DB
	Schema string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewPostgresStore(cfg *models.MConfig, log *logger.Logger) (*PostgresStore, error) {
	return &PostgresStore{
		Config: cfg,
		Schema: "chart_challenge",
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return helpers.NewDatabaseError("failed to open postgres db", err)
	}

	if err := db.Ping(); err != nil {
		return helpers.NewDatabaseError("failed to ping postgres db", err)
	}

	d.DB = db

	// Create Schema
	if _, err := d.DB.Exec(fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS "%s"`, d.Schema)); err != nil {
		return fmt.Errorf("failed to create schema %s: %w", d.Schema, err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	d.Logger.Info("PostgresStore initialized successfully (Schema: %s)", d.Schema)
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) createTables() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."round_outcomes" (
			round_id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			difficulty TEXT,
			hidden_days INTEGER,
			correct BOOLEAN,
			score INTEGER,
			guess TEXT,
			answer TEXT,
			duration_ms BIGINT,
			created_at BIGINT
		);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create round_outcomes: %w", err)
	}

	query = fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_round_outcomes_user
		ON "%s"."round_outcomes" (user_id, created_at);
	`, d.Schema)
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to index round_outcomes: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) SaveOutcome(o models.MRoundOutcome) error {
	query := fmt.Sprintf(`
		INSERT INTO "%s"."round_outcomes" (round_id, user_id, difficulty, hidden_days, correct, score, guess, answer, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, d.Schema)

	_, err := d.DB.Exec(query,
		o.RoundID, o.UserID, o.Difficulty, o.HiddenDays, o.Correct,
		o.Score, o.Guess, o.Answer, o.DurationMs, o.CreatedAt.Unix())
	if err != nil {
		return helpers.NewDatabaseError("failed to save outcome", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) GetUserStats(userID string) (models.MUserStats, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN correct THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(score), 0),
		       COALESCE(MAX(score), 0),
		       COALESCE(MAX(created_at), 0)
		FROM "%s"."round_outcomes" WHERE user_id = $1
	`, d.Schema)

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

func (d *PostgresStore) RecentOutcomes(limit int) ([]models.MRoundOutcome, error) {
	query := fmt.Sprintf(`
		SELECT round_id, user_id, difficulty, hidden_days, correct, score, guess, answer, duration_ms, created_at
		FROM "%s"."round_outcomes" ORDER BY created_at DESC LIMIT $1
	`, d.Schema)

	rows, err := d.DB.Query(query, limit)
	if err != nil {
		return nil, helpers.NewDatabaseError("failed to query outcomes", err)
	}
	defer rows.Close()

	var outcomes []models.MRoundOutcome
	for rows.Next() {
		var o models.MRoundOutcome
		var created int64
		if err := rows.Scan(&o.RoundID, &o.UserID, &o.Difficulty, &o.HiddenDays,
			&o.Correct, &o.Score, &o.Guess, &o.Answer, &o.DurationMs, &created); err != nil {
			return nil, helpers.NewDatabaseError("failed to scan outcome", err)
		}
		o.CreatedAt = time.Unix(created, 0).UTC()
		outcomes = append(outcomes, o)
	}

	return outcomes, rows.Err()
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) CleanupOldOutcomes() error {
	cutoff := time.Now().AddDate(0, 0, -d.Config.Storage.RetentionDays).Unix()

	query := fmt.Sprintf(`DELETE FROM "%s"."round_outcomes" WHERE created_at < $1`, d.Schema)
	if _, err := d.DB.Exec(query, cutoff); err != nil {
		return helpers.NewDatabaseError("failed to cleanup outcomes", err)
	}
	return nil
}

// -----------------------------------------------------------------------------

func (d *PostgresStore) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
