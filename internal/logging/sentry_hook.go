package logging

import (
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

const sentryFlushTimeout = 2 * time.Second

var sentryLevels = map[logrus.Level]sentry.Level{
	logrus.PanicLevel: sentry.LevelFatal,
	logrus.FatalLevel: sentry.LevelFatal,
	logrus.ErrorLevel: sentry.LevelError,
	logrus.WarnLevel:  sentry.LevelWarning,
	logrus.InfoLevel:  sentry.LevelInfo,
	logrus.DebugLevel: sentry.LevelDebug,
	logrus.TraceLevel: sentry.LevelDebug,
}

// SentryHook forwards logrus entries of the configured levels to Sentry.
type SentryHook struct {
	levels []logrus.Level
	hub    *sentry.Hub
}

func NewSentryHook(levels []logrus.Level) *SentryHook {
	return &SentryHook{
		levels: levels,
		hub:    sentry.CurrentHub(),
	}
}

func (h *SentryHook) Levels() []logrus.Level {
	return h.levels
}

func (h *SentryHook) Fire(entry *logrus.Entry) error {
	h.hub.CaptureEvent(eventFromEntry(entry))
	// the process is about to exit
	if entry.Level <= logrus.FatalLevel {
		h.hub.Flush(sentryFlushTimeout)
	}
	return nil
}

func eventFromEntry(entry *logrus.Entry) *sentry.Event {
	event := sentry.NewEvent()
	event.Level = sentryLevels[entry.Level]
	event.Message = entry.Message
	event.Timestamp = entry.Time
	event.Logger = "logrus"

	for k, v := range entry.Data {
		if k == logrus.ErrorKey {
			continue
		}
		event.Extra[k] = v
	}

	var err error
	if fieldErr, ok := entry.Data[logrus.ErrorKey].(error); ok {
		err = fieldErr
	}
	for err != nil {
		event.Exception = append(event.Exception, sentry.Exception{
			Type:  fmt.Sprintf("%T", err),
			Value: err.Error(),
		})
		err = errors.Unwrap(err)
	}

	return event
}
