package sync

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler reruns the full bulk projection on a cron cadence so the graph
// keeps tracking the relational store without anyone calling the sync
// endpoints. Overlapping runs are skipped, not queued: a tick that fires
// while the previous bulk run is still going is dropped.
type Scheduler struct {
	cron  *cron.Cron
	coord *Coordinator
	log   *zap.Logger
}

func NewScheduler(coord *Coordinator, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:  cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		coord: coord,
		log:   log,
	}
}

// Start registers the bulk job under the given cron spec (standard five-field
// syntax or a @descriptor such as "@hourly") and starts the ticker.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runBulk); err != nil {
		return fmt.Errorf("schedule bulk sync %q: %w", spec, err)
	}
	s.cron.Start()
	s.log.Info("bulk sync scheduled", zap.String("cron", spec))
	return nil
}

// Stop halts the ticker and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runBulk() {
	report, err := s.coord.BulkSyncAll(context.Background(), 0)
	if err != nil {
		s.log.Error("scheduled bulk sync failed",
			zap.String("run_id", report.RunID),
			zap.Error(err))
		return
	}
	s.log.Info("scheduled bulk sync complete",
		zap.String("run_id", report.RunID),
		zap.String("duration", report.Duration))
}
