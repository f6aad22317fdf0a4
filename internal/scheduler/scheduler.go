// Package scheduler runs the periodic background jobs: upstream availability probes and
// rate limiter housekeeping.
package scheduler

import (
	"context"
	"sort"
	"sync"
	"time"

	"weather-api/internal/logger"
	"weather-api/internal/observability"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"
	"github.com/sirupsen/logrus"
)

const probeTimeout = 10 * time.Second

// Check reports whether a dependency is reachable.
type Check func(ctx context.Context) error

// Status is the outcome of the latest probe of one dependency.
type Status struct {
	Up        bool      `json:"up"`
	CheckedAt time.Time `json:"checkedAt"`
	Error     string    `json:"error,omitempty"`
}

type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	clock     clockwork.Clock
	metrics   *observability.Metrics

	checks map[string]Check
	tasks  []func()

	mu       sync.RWMutex
	statuses map[string]Status
}

// New creates a Scheduler that runs every registered probe and task each interval.
func New(interval time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		clock:     clock,
		metrics:   metrics,
		checks:    make(map[string]Check),
		statuses:  make(map[string]Status),
	}
}

// AddProbe registers a dependency check under name. Must be called before Start.
func (s *Scheduler) AddProbe(name string, check Check) {
	s.checks[name] = check
}

// AddTask registers a housekeeping function. Must be called before Start.
func (s *Scheduler) AddTask(task func()) {
	s.tasks = append(s.tasks, task)
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Every(s.interval).Do(func() {
		s.RunProbes(context.Background())
		for _, task := range s.tasks {
			task()
		}
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

// RunProbes checks every dependency concurrently and records the results.
func (s *Scheduler) RunProbes(ctx context.Context) {
	var wg sync.WaitGroup
	for name, check := range s.checks {
		wg.Add(1)
		go func(name string, check Check) {
			defer wg.Done()

			probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
			defer cancel()

			s.record(name, check(probeCtx))
		}(name, check)
	}
	wg.Wait()
}

func (s *Scheduler) record(name string, err error) {
	status := Status{Up: err == nil, CheckedAt: s.clock.Now()}
	if err != nil {
		status.Error = err.Error()
		logger.LogEvent(logrus.WarnLevel, "Dependency probe failed", logrus.Fields{
			"dependency": name,
			"error":      err.Error(),
		})
	}

	s.mu.Lock()
	s.statuses[name] = status
	s.mu.Unlock()

	if s.metrics != nil {
		up := 0.0
		if status.Up {
			up = 1
		}
		s.metrics.UpstreamUp.WithLabelValues(name).Set(up)
	}
}

// Statuses returns a copy of the latest probe results keyed by dependency name.
func (s *Scheduler) Statuses() map[string]Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]Status, len(s.statuses))
	for name, status := range s.statuses {
		out[name] = status
	}
	return out
}

// ProbeNames lists the registered dependencies in name order.
func (s *Scheduler) ProbeNames() []string {
	names := make([]string, 0, len(s.checks))
	for name := range s.checks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
