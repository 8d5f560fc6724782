package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/feedpress/pkg/config"
	"github.com/umputun/feedpress/pkg/domain"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner
//go:generate moq -out mocks/setting_store.go -pkg mocks -skip-ensure -fmt goimports . SettingStore

// Runner executes a single pipeline run
type Runner interface {
	Run(ctx context.Context) domain.RunReport
}

// SettingStore persists the schedule interval between restarts
type SettingStore interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Params defines scheduler dependencies and settings
type Params struct {
	Runner     Runner
	Settings   SettingStore // optional
	Interval   time.Duration
	RunOnStart bool
}

// Scheduler triggers pipeline runs on a recurring interval and on demand.
// Overlapping runs are allowed, the post store deduplicates atomically.
type Scheduler struct {
	runner     Runner
	settings   SettingStore
	runOnStart bool

	mu         sync.Mutex
	interval   time.Duration
	nextRun    time.Time
	lastReport *domain.RunReport

	reset  chan struct{}
	wg     sync.WaitGroup
	cancel context.CancelFunc
	now    func() time.Time
}

// New makes a scheduler, interval defaults to one hour
func New(p Params) *Scheduler {
	if p.Interval <= 0 {
		p.Interval = time.Hour
	}
	return &Scheduler{
		runner:     p.Runner,
		settings:   p.Settings,
		runOnStart: p.RunOnStart,
		interval:   p.Interval,
		reset:      make(chan struct{}, 1),
		now:        time.Now,
	}
}

// Start begins the recurring trigger. A persisted interval overrides the configured one.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	if interval, ok := s.storedInterval(ctx); ok {
		s.mu.Lock()
		s.interval = interval
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.nextRun = s.now().Add(s.interval)
	if s.runOnStart {
		s.nextRun = s.now()
	}
	interval := s.interval
	s.mu.Unlock()

	s.wg.Add(1)
	go s.loop(ctx)
	lgr.Printf("[INFO] scheduler started with interval %v", interval)
}

// Stop cancels the trigger and waits for an in-flight scheduled run to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// NextRun returns the time of the next scheduled run
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

// Interval returns the current schedule interval
func (s *Scheduler) Interval() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.interval
}

// LastReport returns the report of the most recent finished run
func (s *Scheduler) LastReport() (domain.RunReport, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lastReport == nil {
		return domain.RunReport{}, false
	}
	return *s.lastReport, true
}

// Reschedule changes the interval to a named interval or duration, persists it
// and moves the next run to now plus the new interval
func (s *Scheduler) Reschedule(ctx context.Context, interval string) error {
	d, err := config.ParseInterval(interval)
	if err != nil {
		return fmt.Errorf("reschedule: %w", err)
	}
	if s.settings != nil {
		if err := s.settings.SetSetting(ctx, domain.SettingScheduleInterval, interval); err != nil {
			return fmt.Errorf("save schedule interval: %w", err)
		}
	}
	s.setInterval(d)
	lgr.Printf("[INFO] rescheduled to %s (%v), next run at %s", interval, d, s.NextRun().Format(time.RFC3339))
	return nil
}

// RunNow runs the pipeline immediately and returns its report. The regular schedule is not affected.
func (s *Scheduler) RunNow(ctx context.Context) domain.RunReport {
	lgr.Printf("[INFO] manual run triggered")
	return s.run(ctx)
}

func (s *Scheduler) setInterval(d time.Duration) {
	s.mu.Lock()
	s.interval = d
	s.nextRun = s.now().Add(d)
	s.mu.Unlock()

	select {
	case s.reset <- struct{}{}:
	default:
	}
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	timer := time.NewTimer(s.untilNext())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.reset:
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.untilNext())
		case <-timer.C:
			s.mu.Lock()
			s.nextRun = s.now().Add(s.interval)
			s.mu.Unlock()
			s.run(ctx)
			timer.Reset(s.untilNext())
		}
	}
}

func (s *Scheduler) run(ctx context.Context) domain.RunReport {
	report := s.runner.Run(ctx)
	s.mu.Lock()
	s.lastReport = &report
	s.mu.Unlock()
	lgr.Printf("[INFO] run finished, imported %d posts from %d feeds", report.Imported(), len(report.Feeds))
	return report
}

func (s *Scheduler) untilNext() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d := s.nextRun.Sub(s.now()); d > 0 {
		return d
	}
	return 0
}

// storedInterval loads a previously rescheduled interval, invalid values are ignored
func (s *Scheduler) storedInterval(ctx context.Context) (time.Duration, bool) {
	if s.settings == nil {
		return 0, false
	}
	val, err := s.settings.GetSetting(ctx, domain.SettingScheduleInterval)
	if err != nil {
		lgr.Printf("[WARN] can't load schedule interval: %v", err)
		return 0, false
	}
	if val == "" {
		return 0, false
	}
	d, err := config.ParseInterval(val)
	if err != nil {
		lgr.Printf("[WARN] ignoring stored schedule interval: %v", err)
		return 0, false
	}
	return d, true
}
