package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
)

// Job is a periodic task run by the Scheduler.
type Job interface {
	Name() string
	Execute(ctx context.Context) error
	Interval() time.Duration
}

type Scheduler struct {
	scheduler *gocron.Scheduler
	jobs      []Job
	started   bool
	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
}

// New creates a scheduler ticking in loc (the business time zone).
func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		scheduler: gocron.NewScheduler(loc),
		ctx:       ctx,
		cancel:    cancel,
	}
}

func (s *Scheduler) run(job Job) {
	start := time.Now()
	if err := job.Execute(s.ctx); err != nil {
		log.Error().Err(err).Str("job", job.Name()).Msg("scheduled job failed")
		return
	}
	log.Debug().
		Str("job", job.Name()).
		Dur("took", time.Since(start)).
		Msg("scheduled job finished")
}

// AddJob registers job. A run still in progress when the next tick fires
// makes that tick a no-op.
func (s *Scheduler) AddJob(job Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.Interval() <= 0 {
		return fmt.Errorf("job %s: interval must be positive", job.Name())
	}

	_, err := s.scheduler.
		Every(job.Interval()).
		SingletonMode().
		Do(func() { s.run(job) })
	if err != nil {
		return fmt.Errorf("job %s: %w", job.Name(), err)
	}

	s.jobs = append(s.jobs, job)
	log.Info().
		Str("job", job.Name()).
		Dur("interval", job.Interval()).
		Msg("job registered")
	return nil
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || len(s.jobs) == 0 {
		return
	}

	s.scheduler.StartAsync()
	s.started = true
	log.Info().Int("jobs", len(s.jobs)).Msg("scheduler started")
}

// Stop cancels running jobs and waits for the scheduler to halt.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.cancel()
	s.scheduler.Stop()
	s.started = false
	log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// RunNow executes the named job synchronously, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	var target Job
	for _, job := range s.jobs {
		if job.Name() == name {
			target = job
			break
		}
	}
	s.mu.Unlock()

	if target == nil {
		return fmt.Errorf("job not found: %s", name)
	}
	return target.Execute(ctx)
}
