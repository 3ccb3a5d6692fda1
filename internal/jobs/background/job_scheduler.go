package background

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"qrdine/internal/logger"
	"qrdine/internal/models"

	"github.com/go-co-op/gocron/v2"
)

const backlogJobName = "kitchen-backlog-snapshot"

// BacklogSource reports the active order queue per restaurant
type BacklogSource interface {
	Backlog(ctx context.Context) ([]*models.KitchenBacklog, error)
}

// JobScheduler runs the periodic read-only jobs of the service
type JobScheduler struct {
	scheduler gocron.Scheduler
	orders    BacklogSource
	log       *logger.Logger
	interval  time.Duration
	now       func() time.Time
	jobs      map[string]gocron.Job
	mu        sync.RWMutex
}

// NewJobScheduler creates the scheduler and registers its jobs
func NewJobScheduler(orders BacklogSource, interval time.Duration, log *logger.Logger) (*JobScheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("backlog interval must be positive, got %s", interval)
	}
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	if log == nil {
		log = logger.Nop()
	}

	js := &JobScheduler{
		scheduler: scheduler,
		orders:    orders,
		log:       log,
		interval:  interval,
		now:       time.Now,
		jobs:      make(map[string]gocron.Job),
	}

	if err := js.registerJobs(); err != nil {
		_ = scheduler.Shutdown()
		return nil, err
	}
	return js, nil
}

func (js *JobScheduler) Start() {
	js.log.Info("scheduler_start", "", "starting background job scheduler", slog.Int("jobs", len(js.jobs)))
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	js.log.Info("scheduler_stop", "", "stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() error {
	js.mu.Lock()
	defer js.mu.Unlock()

	backlogJob, err := js.scheduler.NewJob(
		gocron.DurationJob(js.interval),
		gocron.NewTask(js.runBacklogSnapshot),
		gocron.WithName(backlogJobName),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("create backlog job: %w", err)
	}
	js.jobs[backlogJobName] = backlogJob
	return nil
}

// JobNames lists the registered jobs
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()
	names := make([]string, 0, len(js.jobs))
	for name := range js.jobs {
		names = append(names, name)
	}
	return names
}

func (js *JobScheduler) runBacklogSnapshot() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if _, err := js.SnapshotBacklog(ctx); err != nil {
		js.log.Error("backlog_snapshot", "", "kitchen backlog snapshot failed", err)
	}
}

// SnapshotBacklog logs one line per restaurant with queued orders. It never
// touches order rows.
func (js *JobScheduler) SnapshotBacklog(ctx context.Context) ([]*models.KitchenBacklog, error) {
	backlog, err := js.orders.Backlog(ctx)
	if err != nil {
		return nil, err
	}
	now := js.now()
	for _, b := range backlog {
		js.log.Info("backlog_snapshot", "", "kitchen backlog",
			slog.Int64("restaurant_id", b.RestaurantID),
			slog.Int("active_orders", b.ActiveOrders),
			slog.Duration("oldest_age", now.Sub(b.OldestAt)))
	}
	return backlog, nil
}
