package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"bookcatalog-backend/internal/shared"
	"bookcatalog-backend/pkg/logger"
)

// Scheduler registers the periodic engagement maintenance jobs.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler}
}

func (s *Scheduler) RegisterMaintenanceJobs() error {
	if err := s.registerOrphanSweepJob(); err != nil {
		return err
	}
	return s.registerAggregateReconcileJob()
}

// Nightly at 3 AM: drop metadata documents whose entity row is gone.
func (s *Scheduler) registerOrphanSweepJob() error {
	task := asynq.NewTask(shared.TypeOrphanSweep, nil)

	_, err := s.scheduler.Register(
		"0 3 * * *",
		task,
		asynq.Queue(shared.QueueEngagement),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register OrphanSweep job", err)
		return err
	}

	logger.Info("Registered OrphanSweep: daily at 3 AM", map[string]interface{}{})
	return nil
}

// Nightly at 4 AM: recompute aggregates and repair drift.
func (s *Scheduler) registerAggregateReconcileJob() error {
	task := asynq.NewTask(shared.TypeAggregateReconcile, nil)

	_, err := s.scheduler.Register(
		"0 4 * * *",
		task,
		asynq.Queue(shared.QueueEngagement),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register AggregateReconcile job", err)
		return err
	}

	logger.Info("Registered AggregateReconcile: daily at 4 AM", map[string]interface{}{})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
