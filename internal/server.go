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
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/2beens/roundtracker/internal/archive"
	"github.com/2beens/roundtracker/internal/config"
	"github.com/2beens/roundtracker/internal/db"
	"github.com/2beens/roundtracker/internal/events"
	"github.com/2beens/roundtracker/internal/health"
	"github.com/2beens/roundtracker/internal/middleware"
	"github.com/2beens/roundtracker/internal/program"
	"github.com/2beens/roundtracker/internal/rounds"
	"github.com/2beens/roundtracker/internal/stats"
	"github.com/2beens/roundtracker/internal/telemetry/metrics"
	"github.com/2beens/roundtracker/internal/telemetry/tracing"
	"github.com/2beens/roundtracker/internal/workouts"
	"github.com/2beens/roundtracker/pkg"
)

// the consistency journal is process wide and only kept for this long
const journalRetention = 24 * time.Hour

type lifecyclePublisher interface {
	Publish(ctx context.Context, evs ...events.Event) error
	Close() error
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	healthBridgeToken string

	config           *config.Config
	dbPool           *pgxpool.Pool
	redisClient      *redis.Client
	tracedHttpClient *http.Client
	calc             *rounds.Calculator
	journal          *rounds.Journal
	publisher        lifecyclePublisher

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	RedisPassword           string
	HealthBridgeToken       string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	loc, err := params.Config.Location()
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}
	if err := db.ApplySchema(ctx, dbPool); err != nil {
		return nil, err
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "roundtracker", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
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
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "roundtracker", rdb)
	if err != nil {
		return nil, err
	}

	var publisher lifecyclePublisher = events.NoopPublisher{}
	if params.Config.KafkaEnabled() {
		publisher = events.NewKafkaPublisher(params.Config.KafkaBrokers, params.Config.KafkaTopic, metricsManager)
		log.Infof("publishing round lifecycle events to [%s]", params.Config.KafkaTopic)
	}

	return &Server{
		config:            params.Config,
		dbPool:            dbPool,
		redisClient:       rdb,
		healthBridgeToken: params.HealthBridgeToken,
		tracedHttpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
		calc:      rounds.NewCalculator(loc),
		journal:   rounds.NewJournal(log.StandardLogger()),
		publisher: publisher,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("roundtracker-router"))

	r.HandleFunc("/", handleRoot).Methods("GET", "POST", "OPTIONS").Name("root")
	r.HandleFunc("/ping", handleRoot).Methods("GET", "OPTIONS").Name("ping")

	validator := rounds.NewValidator(s.calc, s.journal)
	workoutsRepo := workouts.NewRepo(s.dbPool)
	healthRepo := health.NewRepo(s.dbPool)

	programService := program.NewService(program.ServiceParams{
		Repo:           program.NewRepo(s.dbPool, s.calc),
		Workouts:       workoutsRepo,
		Health:         healthRepo,
		Cache:          program.NewRoundCache(s.config.RoundCacheSizeMB),
		Validator:      validator,
		Publisher:      s.publisher,
		MetricsManager: s.metricsManager,
	})
	programHandler := program.NewHandler(programService, s.calc)
	r.HandleFunc("/rounds", programHandler.HandleList).Methods("GET", "OPTIONS").Name("list-rounds")
	r.HandleFunc("/rounds/start", programHandler.HandleStart).Methods("POST", "OPTIONS").Name("start-round")
	r.HandleFunc("/rounds/integrity", programHandler.HandleIntegrity).Methods("GET", "OPTIONS").Name("rounds-integrity")
	r.HandleFunc("/rounds/journal", programHandler.HandleJournal).Methods("GET", "OPTIONS").Name("rounds-journal")
	r.HandleFunc("/rounds/current", programHandler.HandleCurrent).Methods("GET", "OPTIONS").Name("current-round")
	r.HandleFunc("/rounds/current/start-date", programHandler.HandleChangeStartDate).Methods("PUT", "OPTIONS").Name("change-round-start")
	r.HandleFunc("/rounds/current/end", programHandler.HandleEnd).Methods("POST", "OPTIONS").Name("end-round")
	r.HandleFunc("/rounds/current/restart", programHandler.HandleRestart).Methods("POST", "OPTIONS").Name("restart-round")
	r.HandleFunc("/rounds/current/weeks", programHandler.HandleWeeks).Methods("GET", "OPTIONS").Name("round-weeks")
	r.HandleFunc("/rounds/current/consistency", programHandler.HandleConsistency).Methods("GET", "OPTIONS").Name("round-consistency")

	statsHandler := stats.NewHandler(stats.NewAnalyzer(
		programService,
		workoutsRepo,
		healthRepo,
		s.calc,
		stats.Goals{
			PlannedSessionsPerWeek: s.config.PlannedSessionsPerWeek,
			DailyStepsGoal:         s.config.DailyStepsGoal,
		},
	))
	r.HandleFunc("/rounds/current/stats", statsHandler.HandleCurrent).Methods("GET", "OPTIONS").Name("round-stats")

	archiveHandler := archive.NewHandler(archive.NewExporter(programService, workoutsRepo))
	r.HandleFunc("/rounds/{round}/archive.parquet", archiveHandler.HandleDownload).Methods("GET", "OPTIONS").Name("round-archive")

	workoutsHandler := workouts.NewHandler(workouts.NewService(workoutsRepo, programService, s.calc))
	r.HandleFunc("/workouts", workoutsHandler.HandleLog).Methods("POST", "OPTIONS").Name("log-workout")
	r.HandleFunc("/workouts", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")
	r.HandleFunc("/workouts/suggest/{exercise}", workoutsHandler.HandleSuggest).Methods("GET", "OPTIONS").Name("suggest-workout")

	healthHandler := health.NewHandler(health.NewService(
		healthRepo,
		health.NewBridge(
			s.config.HealthBridgeURL,
			s.healthBridgeToken,
			time.Duration(s.config.HealthBridgeCacheTTL)*time.Second,
			s.tracedHttpClient,
			s.redisClient,
		),
		programService,
		validator,
		s.publisher,
		s.metricsManager,
	))
	r.HandleFunc("/health", healthHandler.HandleList).Methods("GET", "OPTIONS").Name("list-health")

	// the bridge is an external API, syncs are limited per user
	healthSyncRouter := r.PathPrefix("/health").Subrouter()
	healthSyncRouter.
		HandleFunc("/sync", healthHandler.HandleSync).
		Methods("POST", "OPTIONS").Name("sync-health")
	healthSyncRouter.Use(middleware.RateLimit(
		redis_rate.NewLimiter(s.redisClient),
		"health-sync",
		s.config.HealthSyncAllowedPerMin,
		s.metricsManager,
	))

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.Identity())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "I'm OK, thanks ;)")
}

func (s *Server) Serve(ctx context.Context, host string, port int) {
	router := s.routerSetup()

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

	go clearJournalEvery(ctx, s.journal, journalRetention)

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func clearJournalEvery(ctx context.Context, journal *rounds.Journal, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			log.Debugf("clearing consistency journal, %d entries", journal.Len())
			journal.Clear()
		}
	}
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	// stop taking requests first, the handlers still need db and redis
	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.publisher.Close(); err != nil {
		log.Errorf("failed to close lifecycle events publisher: %s", err)
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

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
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
