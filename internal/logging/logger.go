package logging

import (
	"net/http"
	"os"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFileMaxSizeMB = 50

type LoggerSetupParams struct {
	LogFileName       string
	LogFileMaxSizeMB  int
	LogFileMaxBackups int
	LogFileMaxAgeDays int
	LogToStdout       bool
	LogLevel          string
	LogFormatJSON     bool
	ServiceName       string
	Environment       string
	Release           string
	SentryEnabled     bool
	SentryDSN         string
	SentryServerName  string
	// SentryHTTPClient is optional, used to trace outgoing event uploads.
	SentryHTTPClient *http.Client
}

func Setup(params LoggerSetupParams) {
	if params.LogFormatJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	if params.ServiceName != "" {
		logrus.AddHook(newStaticFieldsHook(logrus.Fields{
			"service": params.ServiceName,
			"env":     params.Environment,
		}))
	}

	if params.SentryEnabled {
		err := sentry.Init(sentry.ClientOptions{
			Environment:      params.Environment,
			Dsn:              params.SentryDSN,
			Release:          params.Release,
			TracesSampleRate: 1.0,
			ServerName:       params.SentryServerName,
			HTTPClient:       params.SentryHTTPClient,
		})
		if err != nil {
			logrus.Errorf("sentry.Init: %s", err)
		}

		hook := NewSentryHook([]logrus.Level{
			logrus.PanicLevel,
			logrus.FatalLevel,
			logrus.ErrorLevel,
		})
		logrus.AddHook(hook)

		logrus.Infoln("Sentry set up successfully")
	}

	logrus.SetLevel(GetLevel(params.LogLevel))

	if params.LogFileName == "" {
		logrus.SetOutput(os.Stdout)
		logrus.Println("writing logs only to STDOUT")
		return
	}

	if params.LogToStdout {
		logrus.Println("writing logs to file and STDOUT")
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}

	maxSize := params.LogFileMaxSizeMB
	if maxSize <= 0 {
		maxSize = defaultLogFileMaxSizeMB
	}
	// zero backups and age keep rotated files forever
	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    maxSize, // megabytes
		MaxBackups: params.LogFileMaxBackups,
		MaxAge:     params.LogFileMaxAgeDays,
		LocalTime:  false, // false -> use UTC
		Compress:   true,
	}

	if params.LogToStdout {
		logrus.SetOutput(
			newFanoutWriter(os.Stdout, lumberJackLogger),
		)
	} else {
		logrus.SetOutput(lumberJackLogger)
	}
}

// GetLevel parses a level name, falling back to info for unknown names.
func GetLevel(level string) logrus.Level {
	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return logrus.InfoLevel
	}
	return parsed
}
