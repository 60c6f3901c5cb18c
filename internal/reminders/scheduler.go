package reminders

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymrats/internal/calendar"
	"github.com/2beens/gymrats/internal/messaging"
	"github.com/2beens/gymrats/internal/telemetry/metrics"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=scheduler_mocks_test.go -package=reminders_test

const (
	DefaultScanInterval = time.Minute
	// MaxCatchUpMinutes bounds how many minutes a single scan covers after
	// ticks were delayed or a scan failed.
	MaxCatchUpMinutes = 5
)

type dueFinder interface {
	ListDue(ctx context.Context, clock, weekday string) ([]Reminder, error)
}

type duePublisher interface {
	PublishReminderDue(ctx context.Context, event messaging.ReminderDue) error
}

type SchedulerParams struct {
	Finder         dueFinder
	Publisher      duePublisher
	Calendar       *calendar.Calendar
	MetricsManager *metrics.Manager
	// Interval defaults to DefaultScanInterval.
	Interval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Scheduler publishes reminders when their wall clock time comes up in the
// calendar's timezone. Each minute is scanned at most once, and minutes
// skipped by a late tick are caught up on the next one.
type Scheduler struct {
	finder         dueFinder
	publisher      duePublisher
	cal            *calendar.Calendar
	metricsManager *metrics.Manager
	interval       time.Duration
	now            func() time.Time

	mu          sync.Mutex
	cancel      context.CancelFunc
	done        chan struct{}
	lastScanned time.Time
}

func NewScheduler(params SchedulerParams) *Scheduler {
	interval := params.Interval
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Scheduler{
		finder:         params.Finder,
		publisher:      params.Publisher,
		cal:            params.Calendar,
		metricsManager: params.MetricsManager,
		interval:       interval,
		now:            now,
	}
}

// Start launches the scan loop. It returns an error if the scheduler is already running.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return errors.New("reminder scheduler already started")
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.done = make(chan struct{})

	go s.loop(ctx, s.done)

	log.Infof("reminder scheduler started, scanning every %s", s.interval)
	return nil
}

// Stop cancels the scan loop and waits for it to exit. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel = nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	log.Info("reminder scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, done chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer func() {
		ticker.Stop()
		close(done)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.RunOnce(ctx, s.now()); err != nil && !errors.Is(err, context.Canceled) {
				log.Errorf("reminder scan: %s", err)
			}
		}
	}
}

// RunOnce publishes the reminders due at the minute of at, plus any minutes
// missed since the previous scan, and returns how many were published.
// A minute already scanned is skipped.
func (s *Scheduler) RunOnce(ctx context.Context, at time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "reminders.scheduler.scan")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	minutes := s.claimMinutes(at.In(s.cal.Location()).Truncate(time.Minute))

	published := 0
	for _, minute := range minutes {
		n, err := s.scanMinute(ctx, minute)
		published += n
		if err != nil {
			// let the next tick retry from this minute
			s.rewind(minute)
			return published, err
		}
	}
	return published, nil
}

func (s *Scheduler) scanMinute(ctx context.Context, minute time.Time) (int, error) {
	begin := time.Now()
	defer func() {
		if s.metricsManager != nil {
			s.metricsManager.HistReminderScanDuration.Observe(time.Since(begin).Seconds())
		}
	}()

	clock := minute.Format(ClockLayout)
	weekday := s.cal.Weekday(minute).String()
	due, err := s.finder.ListDue(ctx, clock, weekday)
	if err != nil {
		return 0, fmt.Errorf("list due reminders at %s %s: %w", weekday, clock, err)
	}

	dueAt := minute.Format(time.RFC3339)
	published := 0
	for _, reminder := range due {
		event := messaging.ReminderDue{
			ReminderID:       reminder.ID,
			UserID:           reminder.UserID,
			Type:             string(reminder.Type),
			Message:          reminder.Message,
			Time:             reminder.Time,
			DueAt:            dueAt,
			PushSubscription: reminder.PushSubscription,
		}
		if err := s.publisher.PublishReminderDue(ctx, event); err != nil {
			log.Errorf("publish reminder %d: %s", reminder.ID, err)
			s.countPublished("error")
			continue
		}
		s.countPublished("ok")
		published++
	}

	if len(due) > 0 {
		log.Debugf("reminder scan %s %s: %d due, %d published", weekday, clock, len(due), published)
	}
	return published, nil
}

// claimMinutes returns the minutes after the last scanned one up to target,
// oldest first, and marks target as scanned. At most MaxCatchUpMinutes are
// returned.
func (s *Scheduler) claimMinutes(target time.Time) []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	from := target
	if !s.lastScanned.IsZero() {
		if !target.After(s.lastScanned) {
			return nil
		}
		from = s.lastScanned.Add(time.Minute)
		earliest := target.Add(-time.Duration(MaxCatchUpMinutes-1) * time.Minute)
		if from.Before(earliest) {
			log.Warnf(
				"reminder scan fell behind, skipping %s to %s",
				from.Format(ClockLayout), earliest.Add(-time.Minute).Format(ClockLayout),
			)
			from = earliest
		}
	}

	var minutes []time.Time
	for m := from; !m.After(target); m = m.Add(time.Minute) {
		minutes = append(minutes, m)
	}
	s.lastScanned = target
	return minutes
}

// rewind marks everything from minute on as not scanned yet.
func (s *Scheduler) rewind(minute time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.lastScanned.Before(minute) {
		s.lastScanned = minute.Add(-time.Minute)
	}
}

func (s *Scheduler) countPublished(result string) {
	if s.metricsManager == nil {
		return
	}
	s.metricsManager.CounterRemindersPublished.With(prometheus.Labels{"result": result}).Inc()
}
