package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests             *prometheus.CounterVec
	CounterHandleRequestPanic   prometheus.Counter
	CounterRateLimitedRequests  prometheus.Counter
	CounterCompletedDays        *prometheus.CounterVec
	CounterXPAwarded            prometheus.Counter
	CounterWeeklyBonuses        prometheus.Counter
	CounterCompletionConflicts  prometheus.Counter
	CounterIntegrityFailures    *prometheus.CounterVec
	CounterAchievementsUnlocked prometheus.Counter
	CounterRemindersPublished   *prometheus.CounterVec
	CounterSocialActions        *prometheus.CounterVec

	// gauges
	GaugeRequests   prometheus.Gauge
	GaugeLifeSignal prometheus.Gauge

	// histograms
	HistReminderScanDuration prometheus.Histogram
	HistogramRequestDuration *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("backend", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("backend", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterRateLimitedRequests := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "rate_limited_requests",
		Help:      "The total number of rate limited requests",
	})
	counterCompletedDays := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "completed_days",
		Help:      "The total number of plan days marked complete",
	}, []string{"rest_day"})
	counterXPAwarded := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "xp_awarded",
		Help:      "The total amount of xp awarded",
	})
	counterWeeklyBonuses := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "weekly_bonuses",
		Help:      "The total number of weekly completion bonuses granted",
	})
	counterCompletionConflicts := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "completion_conflicts",
		Help:      "The total number of rejected duplicate day completions",
	})
	counterIntegrityFailures := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "integrity_failures",
		Help:      "The total number of plans rejected due to an invalid signature",
	}, []string{"kind"})
	counterAchievementsUnlocked := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "achievements_unlocked",
		Help:      "The total number of unlocked achievements",
	})
	counterRemindersPublished := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reminders_published",
		Help:      "The total number of due reminders handed to the broker",
	}, []string{"result"})
	counterSocialActions := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "social_actions",
		Help:      "The total number of feed posts, likes and comments",
	}, []string{"action"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})

	histReminderScanDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reminder_scan_duration_seconds",
		Help:      "Duration of a single due reminders scan in seconds",
		Buckets:   []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10, 30},
	})
	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})

	return &Manager{
		CounterRequests:             counterRequests,
		CounterHandleRequestPanic:   counterHandleRequestPanic,
		CounterRateLimitedRequests:  counterRateLimitedRequests,
		CounterCompletedDays:        counterCompletedDays,
		CounterXPAwarded:            counterXPAwarded,
		CounterWeeklyBonuses:        counterWeeklyBonuses,
		CounterCompletionConflicts:  counterCompletionConflicts,
		CounterIntegrityFailures:    counterIntegrityFailures,
		CounterAchievementsUnlocked: counterAchievementsUnlocked,
		CounterRemindersPublished:   counterRemindersPublished,
		CounterSocialActions:        counterSocialActions,
		GaugeRequests:               gaugeRequests,
		GaugeLifeSignal:             gaugeLifeSignal,
		HistReminderScanDuration:    histReminderScanDuration,
		HistogramRequestDuration:    histogramRequestDuration,
	}
}
