package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"

	"github.com/2beens/gymrats/internal/achievements"
	"github.com/2beens/gymrats/internal/apperrors"
	"github.com/2beens/gymrats/internal/auth"
	"github.com/2beens/gymrats/internal/cache"
	"github.com/2beens/gymrats/internal/calendar"
	"github.com/2beens/gymrats/internal/config"
	"github.com/2beens/gymrats/internal/db"
	"github.com/2beens/gymrats/internal/integrity"
	"github.com/2beens/gymrats/internal/levels"
	"github.com/2beens/gymrats/internal/messaging"
	"github.com/2beens/gymrats/internal/middleware"
	"github.com/2beens/gymrats/internal/misc"
	"github.com/2beens/gymrats/internal/notifications"
	"github.com/2beens/gymrats/internal/plans"
	"github.com/2beens/gymrats/internal/posts"
	"github.com/2beens/gymrats/internal/progress"
	"github.com/2beens/gymrats/internal/reminders"
	"github.com/2beens/gymrats/internal/telemetry/metrics"
	"github.com/2beens/gymrats/internal/telemetry/tracing"
	"github.com/2beens/gymrats/internal/users"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client
	calendar    *calendar.Calendar
	levels      *levels.Table
	signer      *integrity.Signer
	tokens      *auth.TokenIssuer
	revoker     *auth.Revoker

	kafkaProducer *messaging.KafkaProducer
	publisher     *messaging.Publisher
	scheduler     *reminders.Scheduler

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	IntegritySecret         string
	JWTSecret               string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	cal, err := calendar.Load(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load calendar: %w", err)
	}

	levelTable, err := levels.NewTable(cfg.LevelTiers)
	if err != nil {
		return nil, fmt.Errorf("level table: %w", err)
	}

	signer, err := integrity.NewSigner(params.IntegritySecret)
	if err != nil {
		return nil, fmt.Errorf("integrity signer: %w", err)
	}

	tokens, err := auth.NewTokenIssuer(params.JWTSecret, cfg.TokenIssuer, cfg.TokenTTL.Duration)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       cfg.PostgresMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": cfg.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "gymrats", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "gymrats-backend", rdb)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:      cfg,
		versionInfo: params.VersionInfo,
		dbPool:      dbPool,
		redisClient: rdb,
		calendar:    cal,
		levels:      levelTable,
		signer:      signer,
		tokens:      tokens,
		revoker:     auth.NewRevoker(rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if cfg.Kafka.Enabled {
		s.kafkaProducer = messaging.NewKafkaProducer(cfg.Kafka.Brokers)
		s.publisher = messaging.NewPublisher(s.kafkaProducer, messaging.Topics{
			DayCompleted: cfg.Kafka.TopicDayCompleted,
			RemindersDue: cfg.Kafka.TopicRemindersDue,
		})
		log.Infof("kafka publishing enabled, brokers: %v", cfg.Kafka.Brokers)
	} else {
		s.publisher = messaging.NewNoopPublisher()
		log.Debugln("kafka publishing disabled")
	}

	return s, nil
}

func (s *Server) routerSetup() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("gymrats-router"))

	achievementsService := achievements.NewService(
		achievements.NewRepo(s.dbPool),
		s.metricsManager,
	)
	achievements.NewHandler(achievementsService).SetupRoutes(r)

	plansService := plans.NewService(plans.NewRepo(s.dbPool), s.signer, s.metricsManager)
	plans.NewHandler(plansService).SetupRoutes(r)

	progressService := progress.NewService(progress.ServiceParams{
		Store:          progress.NewRepo(s.dbPool),
		Plans:          plansService,
		StatsCache:     cache.NewFreeCache(s.config.StatsCacheSizeMB, s.config.StatsCacheTTL.Duration),
		Achievements:   achievementsService,
		Publisher:      s.publisher,
		Levels:         s.levels,
		Calendar:       s.calendar,
		MetricsManager: s.metricsManager,
	})
	progress.NewHandler(progressService).SetupRoutes(r)

	profileCache := cache.NewExpiring(s.config.ProfileCacheTTL.Duration, cache.DefaultCleanupInterval)
	usersService := users.NewService(
		users.NewRepo(s.dbPool),
		s.tokens,
		s.revoker,
		achievementsService,
		s.levels,
		profileCache,
	)
	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	users.NewHandler(usersService).SetupRoutes(r, reqRateLimiter, s.metricsManager, s.config.LoginRateLimitAllowedPerMin)

	notificationsService := notifications.NewService(
		notifications.NewRepo(s.dbPool),
		cache.NewExpiring(notifications.DefaultCacheTTL, cache.DefaultCleanupInterval),
	)
	notifications.NewHandler(notificationsService).SetupRoutes(r)

	postsService := posts.NewService(posts.NewRepo(s.dbPool), notificationsService, s.metricsManager)
	posts.NewHandler(postsService).SetupRoutes(r)

	remindersRepo := reminders.NewRepo(s.dbPool)
	reminders.NewHandler(reminders.NewService(remindersRepo)).SetupRoutes(r)
	s.scheduler = reminders.NewScheduler(reminders.SchedulerParams{
		Finder:         remindersRepo,
		Publisher:      s.publisher,
		Calendar:       s.calendar,
		MetricsManager: s.metricsManager,
		Interval:       s.config.ReminderScanEvery.Duration,
	})

	misc.NewHandler(s.versionInfo, map[string]misc.HealthCheck{
		"postgres": s.dbPool.Ping,
		"redis": func(ctx context.Context) error {
			return s.redisClient.Ping(ctx).Err()
		},
	}).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		apperrors.WriteHTTP(w, apperrors.NotFound("router", "route not found"))
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.tokens, s.revoker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.CorsAllowedOrigins))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.LimitRequestBody(middleware.DefaultMaxBodyBytes))

	return r, nil
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router, err := s.routerSetup()
	if err != nil {
		log.Fatalf("failed to setup router: %s", err)
	}

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.InstrumentMetricHandler(
		s.promRegistry,
		promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if err := s.scheduler.Start(ctx); err != nil {
		log.Errorf("start reminder scheduler: %s", err)
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests before closing what they depend on
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.scheduler != nil {
		s.scheduler.Stop()
	}

	if s.kafkaProducer != nil {
		if err := s.kafkaProducer.Close(); err != nil {
			log.Errorf("failed to close kafka producer: %s", err)
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
