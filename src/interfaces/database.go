package interfaces

import "chart-challenge/src/models"

// -----------------------------------------------------------------------------
// IRoundStore defines the contract for outcome persistence.
// -----------------------------------------------------------------------------

type IRoundStore interface {

	// -----------------------------------------------------------------------------

	// Initialize sets up the database schema and tables.
	Initialize() error

	// -----------------------------------------------------------------------------

	// SaveOutcome persists one finished round, keyed by the anonymous user id.
	SaveOutcome(outcome models.MRoundOutcome) error

	// -----------------------------------------------------------------------------

	// GetUserStats aggregates the persisted outcomes of one user.
	GetUserStats(userID string) (models.MUserStats, error)

	// -----------------------------------------------------------------------------

	// RecentOutcomes returns up to limit outcomes, newest first.
	RecentOutcomes(limit int) ([]models.MRoundOutcome, error)

	// -----------------------------------------------------------------------------

	// CleanupOldOutcomes removes outcomes older than the retention policy.
	CleanupOldOutcomes() error

	// -----------------------------------------------------------------------------

	// Close the database connection
	Close() error
}
