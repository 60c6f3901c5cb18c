package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/2beens/gymrats/internal"
	"github.com/2beens/gymrats/internal/config"
	"github.com/2beens/gymrats/internal/logging"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		versionInfo = "unknown"
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:       cfg.LogsPath,
		LogFileMaxSizeMB:  cfg.LogFileMaxSizeMB,
		LogFileMaxBackups: cfg.LogFileMaxBackups,
		LogFileMaxAgeDays: cfg.LogFileMaxAgeDays,
		LogToStdout:       cfg.LogToStdout,
		LogLevel:          cfg.LogLevel,
		LogFormatJSON:     cfg.LogFormatJSON,
		ServiceName:       "gymrats",
		Environment:       cfg.Environment,
		Release:           versionInfo,
		SentryEnabled:     cfg.SentryEnabled,
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		SentryServerName:  "gymrats-service",
		SentryHTTPClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)
	log.Tracef("running version: %s", versionInfo)

	integritySecret := os.Getenv("GYMRATS_INTEGRITY_SECRET")
	if integritySecret == "" {
		log.Fatalln("integrity secret not set. use GYMRATS_INTEGRITY_SECRET")
	}

	jwtSecret := os.Getenv("GYMRATS_JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalln("jwt secret not set. use GYMRATS_JWT_SECRET")
	}

	postgresPassword := os.Getenv("GYMRATS_POSTGRES_PASS")
	if postgresPassword == "" {
		log.Warnln("postgres password not set. use GYMRATS_POSTGRES_PASS")
	}

	redisPassword := os.Getenv("GYMRATS_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use GYMRATS_REDIS_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             versionInfo,
			IntegritySecret:         integritySecret,
			JWTSecret:               jwtSecret,
			PostgresPassword:        postgresPassword,
			RedisPassword:           redisPassword,
			HoneycombTracingEnabled: honeycombEnabled,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(ctx, cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, killing everything ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(stdout)), nil
}
