package scheduler

import (
	"chart-challenge/src/interfaces"
	"chart-challenge/src/logger"
	"chart-challenge/src/round"

	"github.com/robfig/cron/v3"
)

// -----------------------------------------------------------------------------
// Scheduler regenerates the shared daily challenge on a cron spec and
// pushes it to connected clients.
// -----------------------------------------------------------------------------

type Scheduler struct {
	Logger    *logger.Logger
	Rounds    *round.Manager
	Exchanger interfaces.IDataExchanger
	cron      *cron.Cron
	spec      string
}

// -----------------------------------------------------------------------------

func NewScheduler(spec string, log *logger.Logger, rounds *round.Manager, exchanger interfaces.IDataExchanger) *Scheduler {
	return &Scheduler{
		Logger:    log,
		Rounds:    rounds,
		Exchanger: exchanger,
		cron:      cron.New(),
		spec:      spec,
	}
}

// -----------------------------------------------------------------------------

// Start registers the cron job and runs the first regeneration
// immediately so the server never serves an empty daily slot.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.regenerate); err != nil {
		return err
	}

	s.regenerate()

	s.cron.Start()
	s.Logger.Info("Daily challenge scheduler started (spec %q)", s.spec)
	return nil
}

// -----------------------------------------------------------------------------

// Stop halts the cron loop. Running jobs finish on their own.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.Logger.Info("Daily challenge scheduler stopped")
}

// -----------------------------------------------------------------------------

func (s *Scheduler) regenerate() {
	challenge, err := s.Rounds.RegenerateDaily()
	if err != nil {
		// Keep serving yesterday's challenge rather than taking the
		// daily slot down.
		s.Logger.Error("Daily challenge regeneration failed: %v", err)
		return
	}

	s.Logger.Info("Daily challenge regenerated (round %s)", challenge.Round.RoundID)
	s.Exchanger.BroadcastDaily(challenge)
}
