package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/feedpress/pkg/domain"
	"github.com/umputun/feedpress/pkg/scheduler/mocks"
)

func newRunner() *mocks.RunnerMock {
	return &mocks.RunnerMock{RunFunc: func(context.Context) domain.RunReport {
		return domain.RunReport{Feeds: []domain.FeedReport{{Result: domain.ImportResult{Imported: 2}}}}
	}}
}

func TestNew(t *testing.T) {
	s := New(Params{Runner: newRunner()})
	assert.Equal(t, time.Hour, s.Interval())
	assert.True(t, s.NextRun().IsZero())
	_, ok := s.LastReport()
	assert.False(t, ok)

	s = New(Params{Runner: newRunner(), Interval: 12 * time.Hour})
	assert.Equal(t, 12*time.Hour, s.Interval())
}

func TestScheduler_StartStop(t *testing.T) {
	runner := newRunner()
	s := New(Params{Runner: runner, Interval: 20 * time.Millisecond})
	s.Start(context.Background())

	require.Eventually(t, func() bool { return len(runner.RunCalls()) >= 2 }, time.Second, 5*time.Millisecond)
	s.Stop()

	calls := len(runner.RunCalls())
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, runner.RunCalls(), calls, "no runs after stop")

	report, ok := s.LastReport()
	require.True(t, ok)
	assert.Equal(t, 2, report.Imported())
}

func TestScheduler_RunOnStart(t *testing.T) {
	runner := newRunner()
	s := New(Params{Runner: runner, Interval: time.Hour, RunOnStart: true})
	s.Start(context.Background())
	defer s.Stop()

	require.Eventually(t, func() bool { return len(runner.RunCalls()) == 1 }, time.Second, 5*time.Millisecond)
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.NextRun(), time.Second)
}

func TestScheduler_NoRunBeforeInterval(t *testing.T) {
	runner := newRunner()
	s := New(Params{Runner: runner, Interval: time.Hour})
	s.Start(context.Background())
	time.Sleep(30 * time.Millisecond)
	s.Stop()
	assert.Empty(t, runner.RunCalls())
	assert.WithinDuration(t, time.Now().Add(time.Hour), s.NextRun(), time.Second)
}

func TestScheduler_StoredInterval(t *testing.T) {
	tbl := []struct {
		name   string
		stored string
		err    error
		want   time.Duration
	}{
		{name: "named", stored: "daily", want: 24 * time.Hour},
		{name: "duration", stored: "90m", want: 90 * time.Minute},
		{name: "empty keeps configured", stored: "", want: 2 * time.Hour},
		{name: "invalid ignored", stored: "monthly", want: 2 * time.Hour},
		{name: "store error ignored", err: errors.New("db down"), want: 2 * time.Hour},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			settings := &mocks.SettingStoreMock{GetSettingFunc: func(_ context.Context, key string) (string, error) {
				assert.Equal(t, domain.SettingScheduleInterval, key)
				return tt.stored, tt.err
			}}
			s := New(Params{Runner: newRunner(), Settings: settings, Interval: 2 * time.Hour})
			s.Start(context.Background())
			defer s.Stop()
			assert.Equal(t, tt.want, s.Interval())
			assert.WithinDuration(t, time.Now().Add(tt.want), s.NextRun(), time.Second)
		})
	}
}

func TestScheduler_Reschedule(t *testing.T) {
	t.Run("valid interval persisted", func(t *testing.T) {
		settings := &mocks.SettingStoreMock{
			SetSettingFunc: func(context.Context, string, string) error { return nil },
		}
		s := New(Params{Runner: newRunner(), Settings: settings})
		require.NoError(t, s.Reschedule(context.Background(), "weekly"))

		assert.Equal(t, 7*24*time.Hour, s.Interval())
		assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), s.NextRun(), time.Second)
		require.Len(t, settings.SetSettingCalls(), 1)
		assert.Equal(t, domain.SettingScheduleInterval, settings.SetSettingCalls()[0].Key)
		assert.Equal(t, "weekly", settings.SetSettingCalls()[0].Value)
	})

	t.Run("invalid interval rejected", func(t *testing.T) {
		settings := &mocks.SettingStoreMock{}
		s := New(Params{Runner: newRunner(), Settings: settings})
		err := s.Reschedule(context.Background(), "fortnightly")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown interval")
		assert.Equal(t, time.Hour, s.Interval())
		assert.Empty(t, settings.SetSettingCalls())

		require.Error(t, s.Reschedule(context.Background(), "10s"), "too short")
	})

	t.Run("store failure keeps interval", func(t *testing.T) {
		settings := &mocks.SettingStoreMock{
			SetSettingFunc: func(context.Context, string, string) error { return errors.New("locked") },
		}
		s := New(Params{Runner: newRunner(), Settings: settings})
		err := s.Reschedule(context.Background(), "daily")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "save schedule interval")
		assert.Equal(t, time.Hour, s.Interval())
	})

	t.Run("running loop picks up new interval", func(t *testing.T) {
		runner := newRunner()
		s := New(Params{Runner: runner, Interval: time.Hour})
		s.Start(context.Background())
		defer s.Stop()

		time.Sleep(20 * time.Millisecond)
		assert.Empty(t, runner.RunCalls())

		s.setInterval(20 * time.Millisecond)
		require.Eventually(t, func() bool { return len(runner.RunCalls()) >= 1 }, time.Second, 5*time.Millisecond)
	})
}

func TestScheduler_RunNow(t *testing.T) {
	runner := newRunner()
	s := New(Params{Runner: runner, Interval: time.Hour})
	s.Start(context.Background())
	defer s.Stop()
	next := s.NextRun()

	report := s.RunNow(context.Background())
	assert.Equal(t, 2, report.Imported())
	assert.Len(t, runner.RunCalls(), 1)
	assert.Equal(t, next, s.NextRun(), "schedule not shifted")

	last, ok := s.LastReport()
	require.True(t, ok)
	assert.Equal(t, report.Imported(), last.Imported())
}

func TestScheduler_ContextCancel(t *testing.T) {
	runner := newRunner()
	ctx, cancel := context.WithCancel(context.Background())
	s := New(Params{Runner: runner, Interval: 10 * time.Millisecond})
	s.Start(ctx)
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
}
