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
	"go.uber.org/multierr"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/cache"
	"github.com/2beens/fittrack/internal/config"
	"github.com/2beens/fittrack/internal/db"
	"github.com/2beens/fittrack/internal/exercises"
	"github.com/2beens/fittrack/internal/middleware"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/internal/users"
	"github.com/2beens/fittrack/internal/workouts"
)

const (
	maxRequestBodyBytes = 1 << 20
	shutdownTimeout     = 15 * time.Second
	healthCheckTimeout  = 2 * time.Second
)

type healthCheck struct {
	name string
	ping func(ctx context.Context) error
}

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	usersRepo    *users.Repo
	authService  *auth.Service
	healthChecks []healthCheck

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config      *config.Config
	Secrets     config.Secrets
	VersionInfo string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	poolParams := db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.Secrets.PostgresPassword,
		TracingEnabled: params.Secrets.HoneycombEnabled,
	}
	dbPool, err := db.NewDBPool(ctx, poolParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.Config.AutoMigrate {
		if err := db.MigrateUp(poolParams.ConnString()); err != nil {
			dbPool.Close()
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("fittrack", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.Secrets.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.Secrets.HoneycombEnabled, "fittrack-backend", rdb)
	if err != nil {
		return nil, err
	}

	usersRepo := users.NewRepo(dbPool)
	authService := auth.NewService(
		usersRepo,
		auth.NewTokenIssuer(params.Secrets.JWTSecret, params.Config.TokenTTL.Duration),
		auth.NewRevocationStore(rdb),
	)

	if params.Secrets.AdminUsername != "" && params.Secrets.AdminPasswordHash != "" {
		created, err := usersRepo.EnsureAdmin(ctx, params.Secrets.AdminUsername, params.Secrets.AdminPasswordHash)
		if err != nil {
			return nil, fmt.Errorf("ensure admin user: %w", err)
		}
		if created {
			log.Infof("bootstrap admin [%s] created", params.Secrets.AdminUsername)
		}
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		redisClient: rdb,
		usersRepo:   usersRepo,
		authService: authService,
		versionInfo: params.VersionInfo,
		healthChecks: []healthCheck{
			{name: "db", ping: dbPool.Ping},
			{name: "redis", ping: func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}},
		},

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fittrack-router"))

	exerciseCache := cache.NewJSONCache[exercises.Exercise](
		s.config.ExerciseCacheSizeMB,
		s.config.ExerciseCacheTTL.Duration,
	)
	exercisesHandler := exercises.NewHandler(
		exercises.NewService(
			exercises.NewRepo(s.dbPool),
			exerciseCache,
			s.config.PublicExercisesMutable,
			s.metricsManager,
		),
	)
	exercisesHandler.SetupRoutes(r)

	usersHandler := users.NewHandler(s.usersRepo, s.authService, s.metricsManager, exerciseCache)
	usersHandler.SetupRoutes(
		r,
		redis_rate.NewLimiter(s.redisClient),
		s.config.LoginRateLimitAllowedPerMin,
		s.config.TrustProxyHeaders,
	)

	workoutsHandler := workouts.NewHandler(
		workouts.NewService(workouts.NewRepo(s.dbPool), s.metricsManager),
		s.config.WorkoutsRequireAuth,
	)
	workoutsHandler.SetupRoutes(r)

	s.setupOpsRoutes(r)

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.authService)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r
}

// Handler is the complete HTTP handler. CORS wraps the router so preflight requests
// are answered even for routes that do not list OPTIONS.
func (s *Server) Handler() http.Handler {
	return middleware.Cors(s.config.AllowedOrigins)(s.routerSetup())
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.Handler(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           metricsRouter,
		ReadHeaderTimeout: 10 * time.Second,
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

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	ctx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
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

	return err
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
