package scheduler

import (
	"context"
	e "medremind/internal/core/domain/errors"
	"medremind/internal/core/domain/logging"
	"medremind/internal/core/services"
	dispatchreminders "medremind/internal/core/services/dispatch_reminders"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// TICK_TIMEOUT bounds one dispatch batch. A batch still running when the
// next minute fires causes that minute to be dropped, so the bound keeps a
// slow delivery backend from silencing the scheduler for long.
const TICK_TIMEOUT = time.Minute

// Scheduler fires a reminder dispatch batch once per minute. Ticks never
// overlap: if a batch is still running when the next minute fires, the new
// tick is dropped and logged, not queued.
type Scheduler struct {
	log      logging.Logger
	dispatch services.Service[dispatchreminders.Input, dispatchreminders.Result]
	now      func() time.Time
	cron     *cron.Cron
	ticking  sync.Mutex
}

func New(
	log logging.Logger,
	dispatch services.Service[dispatchreminders.Input, dispatchreminders.Result],
	now func() time.Time,
	location *time.Location,
) *Scheduler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if dispatch == nil {
		panic(e.NewNilArgumentError("dispatch"))
	}
	if now == nil {
		panic(e.NewNilArgumentError("now"))
	}
	if location == nil {
		panic(e.NewNilArgumentError("location"))
	}
	return &Scheduler{
		log:      log,
		dispatch: dispatch,
		now:      now,
		cron:     cron.New(cron.WithLocation(location)),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", s.tick); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info(context.Background(), "Reminder scheduler started.")
	return nil
}

// Stop stops firing new ticks and waits for an in-flight tick to finish.
// Returns early with the context's error if it expires first.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		s.log.Info(ctx, "Reminder scheduler stopped.")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) tick() {
	if !s.ticking.TryLock() {
		s.log.Warning(
			context.Background(),
			"Previous dispatch batch still running, tick dropped.",
			logging.Entry("at", s.now()),
		)
		return
	}
	defer s.ticking.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), TICK_TIMEOUT)
	defer cancel()
	s.runBatch(ctx)
}

func (s *Scheduler) runBatch(ctx context.Context) {
	at := s.now()
	result, err := s.dispatch.Run(ctx, dispatchreminders.Input{At: at})
	if err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("at", at))
		return
	}
	s.log.Debug(
		ctx,
		"Dispatch batch finished.",
		logging.Entry("tickID", result.TickID),
		logging.Entry("outcomeCount", len(result.Outcomes)),
	)
}
