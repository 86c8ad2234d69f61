package queue

import (
	"log"

	"github.com/hibiken/asynq"

	"fitlink-backend/internal/shared"
)

// Scheduler registers the recurring maintenance tasks: retiring
// expired postings and pruning old read notifications.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, password string, db int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{Addr: redisAddr, Password: password, DB: db},
			&asynq.SchedulerOpts{},
		),
	}
}

// RegisterJobs wires the cron entries. Expired postings are swept
// hourly; notification cleanup runs nightly at 03:00.
func (s *Scheduler) RegisterJobs() error {
	entries := []struct {
		spec  string
		typ   string
		queue string
	}{
		{"@every 1h", shared.TypeCloseExpiredPostings, shared.QueuePosting},
		{"0 3 * * *", shared.TypeCleanupOldNotifications, shared.QueueNotification},
	}

	for _, e := range entries {
		id, err := s.scheduler.Register(e.spec, asynq.NewTask(e.typ, nil), asynq.Queue(e.queue))
		if err != nil {
			return err
		}
		log.Printf("[Scheduler] registered %s (%s) as %s", e.typ, e.spec, id)
	}

	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
