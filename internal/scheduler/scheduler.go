// Package scheduler enqueues recurring maintenance tasks on cron schedules.
//
// The scheduler itself does no work: each activation saves a task to the
// queue and the task workers pick it up, so a slow report never blocks the
// next tick.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/robfig/cron/v3"

	"github.com/Tocea2003/Practica-BookSystem/internal/config"
	"github.com/Tocea2003/Practica-BookSystem/internal/tasks"
)

// Enqueuer saves a task for the workers to process.
type Enqueuer interface {
	Enqueue(ctx context.Context, task backlite.Task) (string, error)
}

// Job is a task enqueued every time Schedule fires.
type Job struct {
	Name     string
	Schedule string
	Task     func() backlite.Task
}

// JobStatus describes a registered job.
type JobStatus struct {
	Name        string     `json:"name"`
	Schedule    string     `json:"schedule"`
	Description string     `json:"description"`
	NextRun     *time.Time `json:"next_run,omitempty"`
}

// MaintenanceJobs returns the overdue report and audit cleanup jobs.
// Jobs with an empty schedule are left out.
func MaintenanceJobs(cfg config.Scheduler, auditRetentionDays int) []Job {
	var jobs []Job
	if cfg.OverdueReportSchedule != "" {
		jobs = append(jobs, Job{
			Name:     tasks.QueueOverdueReport,
			Schedule: cfg.OverdueReportSchedule,
			Task:     func() backlite.Task { return tasks.OverdueReportTask{} },
		})
	}
	if cfg.AuditCleanupSchedule != "" {
		jobs = append(jobs, Job{
			Name:     tasks.QueueCleanupAuditEvents,
			Schedule: cfg.AuditCleanupSchedule,
			Task: func() backlite.Task {
				return tasks.CleanupAuditEventsTask{RetentionDays: auditRetentionDays}
			},
		})
	}
	return jobs
}

// MaintenanceScheduler manages periodic maintenance tasks.
type MaintenanceScheduler struct {
	enqueuer Enqueuer
	jobs     map[string]Job

	cron       *cron.Cron
	entryIDs   map[string]cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

// NewMaintenanceScheduler creates a scheduler for jobs. Nothing runs until Start.
func NewMaintenanceScheduler(enqueuer Enqueuer, jobs ...Job) *MaintenanceScheduler {
	s := &MaintenanceScheduler{
		enqueuer: enqueuer,
		jobs:     make(map[string]Job, len(jobs)),
		entryIDs: make(map[string]cron.EntryID),
	}
	for _, job := range jobs {
		s.jobs[job.Name] = job
	}
	return s
}

// Start validates every schedule and begins firing jobs. It stops when ctx
// is cancelled or Stop is called.
func (s *MaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if len(s.jobs) == 0 {
		log.Printf("Maintenance scheduler: no jobs configured")
		return nil
	}

	c := cron.New(cron.WithParser(parser), cron.WithLocation(time.UTC))
	entryIDs := make(map[string]cron.EntryID, len(s.jobs))
	for _, name := range s.jobNames() {
		job := s.jobs[name]
		if err := ValidateSchedule(job.Schedule); err != nil {
			return fmt.Errorf("invalid cron schedule '%s' for %s: %w", job.Schedule, name, err)
		}
		entryID, err := c.AddFunc(job.Schedule, func() {
			s.enqueue(context.Background(), job)
		})
		if err != nil {
			return fmt.Errorf("failed to schedule %s: %w", name, err)
		}
		entryIDs[name] = entryID
	}

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron = c
	s.entryIDs = entryIDs
	s.cron.Start()
	s.isRunning = true

	for _, name := range s.jobNames() {
		schedule := s.jobs[name].Schedule
		next, _ := NextRunTime(schedule, time.Now().UTC())
		log.Printf("Maintenance scheduler: %s scheduled '%s' (%s). Next run: %v",
			name, schedule, DescribeSchedule(schedule), next)
	}

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for in-flight activations to finish and halts the scheduler.
func (s *MaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	if s.cancelFunc != nil {
		s.cancelFunc()
		s.cancelFunc = nil
	}

	log.Printf("Maintenance scheduler: stopped")
}

// RunNow enqueues the named job immediately and returns the task ID.
func (s *MaintenanceScheduler) RunNow(ctx context.Context, name string) (string, error) {
	s.mu.RLock()
	job, ok := s.jobs[name]
	s.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("unknown maintenance job %q", name)
	}
	return s.enqueue(ctx, job)
}

// IsRunning returns whether the scheduler is active.
func (s *MaintenanceScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the named job fires next, or nil if the scheduler
// is stopped or the job is unknown.
func (s *MaintenanceScheduler) NextRun(name string) *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nextRunLocked(name)
}

func (s *MaintenanceScheduler) nextRunLocked(name string) *time.Time {
	if !s.isRunning {
		return nil
	}
	id, ok := s.entryIDs[name]
	if !ok {
		return nil
	}
	entry := s.cron.Entry(id)
	if !entry.Valid() || entry.Next.IsZero() {
		return nil
	}
	next := entry.Next
	return &next
}

// Jobs lists the registered jobs ordered by name.
func (s *MaintenanceScheduler) Jobs() []JobStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()

	statuses := make([]JobStatus, 0, len(s.jobs))
	for _, name := range s.jobNames() {
		job := s.jobs[name]
		statuses = append(statuses, JobStatus{
			Name:        name,
			Schedule:    job.Schedule,
			Description: DescribeSchedule(job.Schedule),
			NextRun:     s.nextRunLocked(name),
		})
	}
	return statuses
}

func (s *MaintenanceScheduler) jobNames() []string {
	names := make([]string, 0, len(s.jobs))
	for name := range s.jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *MaintenanceScheduler) enqueue(ctx context.Context, job Job) (string, error) {
	if s.enqueuer == nil {
		return "", fmt.Errorf("task queue not configured")
	}
	id, err := s.enqueuer.Enqueue(ctx, job.Task())
	if err != nil {
		log.Printf("Maintenance scheduler: failed to enqueue %s: %v", job.Name, err)
		return "", err
	}
	log.Printf("Maintenance scheduler: enqueued %s (task %s)", job.Name, id)
	return id, nil
}
