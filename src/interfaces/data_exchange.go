package interfaces

import "chart-challenge/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the push surface towards connected clients.
// -----------------------------------------------------------------------------

type IDataExchanger interface {
	// -----------------------------------------------------------------------------
	// BroadcastDaily pushes a regenerated daily challenge to all listeners.
	BroadcastDaily(challenge *models.MDailyChallenge)

	// -----------------------------------------------------------------------------
	// Start the server
	Start() error

	// -----------------------------------------------------------------------------
	// Stop the server gracefully
	Stop() error
}
