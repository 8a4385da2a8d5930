package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"safeher/internal/alert"
	alertkafka "safeher/internal/alert/kafka"
	contacthandler "safeher/internal/contact/handler"
	contactservice "safeher/internal/contact/service"
	contactstore "safeher/internal/contact/store"
	locationhandler "safeher/internal/location/handler"
	locationmetrics "safeher/internal/location/metrics"
	locationservice "safeher/internal/location/service"
	locationstore "safeher/internal/location/store"
	"safeher/internal/platform/config"
	"safeher/internal/platform/httpserver"
	"safeher/internal/platform/logger"
	"safeher/internal/platform/metrics"
	"safeher/internal/platform/postgres"
	"safeher/internal/platform/redis"
	ratelimitmetrics "safeher/internal/ratelimit/metrics"
	ratelimitmw "safeher/internal/ratelimit/middleware"
	ratelimitmodels "safeher/internal/ratelimit/models"
	ratelimitstore "safeher/internal/ratelimit/store"
	"safeher/internal/risk"
	"safeher/internal/routine/deviation"
	routinehandler "safeher/internal/routine/handler"
	routinemetrics "safeher/internal/routine/metrics"
	routineservice "safeher/internal/routine/service"
	routinestore "safeher/internal/routine/store"
	soshandler "safeher/internal/sos/handler"
	sosmetrics "safeher/internal/sos/metrics"
	sosservice "safeher/internal/sos/service"
	sosstore "safeher/internal/sos/store"
	httptransport "safeher/internal/transport/http"
	userhandler "safeher/internal/user/handler"
	userservice "safeher/internal/user/service"
	userstore "safeher/internal/user/store"
	"safeher/pkg/platform/circuit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

type infra struct {
	db     *sql.DB
	redis  *redis.Client
	alerts alert.Publisher
	close  []func() error
}

func (i *infra) shutdown(log *slog.Logger) {
	for n := len(i.close) - 1; n >= 0; n-- {
		if err := i.close[n](); err != nil {
			log.Warn("failed to release resource", "error", err)
		}
	}
}

// run wires dependencies and blocks until ctx is cancelled or the server fails.
func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	deps, err := connect(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.shutdown(log)

	router, err := buildRouter(cfg, log, deps)
	if err != nil {
		return err
	}
	srv := httpserver.New(cfg.Server, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting safeher", "addr", cfg.Server.Addr, "postgres", deps.db != nil, "redis", deps.redis != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.Server.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func connect(ctx context.Context, cfg config.Config, log *slog.Logger) (*infra, error) {
	deps := &infra{}

	db, err := postgres.Open(ctx, cfg.Postgres, log)
	if err != nil {
		return nil, err
	}
	if db != nil {
		deps.db = db
		deps.close = append(deps.close, db.Close)
		if err := postgres.Migrate(ctx, db); err != nil {
			deps.shutdown(log)
			return nil, fmt.Errorf("migrate: %w", err)
		}
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	rc, err := redis.New(ctx, cfg.Redis, log)
	if err != nil {
		deps.shutdown(log)
		return nil, err
	}
	if rc != nil {
		deps.redis = rc
		deps.close = append(deps.close, rc.Close)
	}

	if len(cfg.Kafka.Brokers) == 0 {
		log.Warn("KAFKA_BROKERS not set, alerts are only logged")
		deps.alerts = alert.NewLogPublisher(log)
		return deps, nil
	}
	client, err := alertkafka.NewClient(cfg.Kafka.Brokers, cfg.Kafka.ClientID, cfg.Kafka.Topic)
	if err != nil {
		deps.shutdown(log)
		return nil, err
	}
	deps.close = append(deps.close, func() error { client.Close(); return nil })
	if err := alertkafka.EnsureTopic(ctx, client, cfg.Kafka.Topic); err != nil {
		deps.shutdown(log)
		return nil, err
	}
	pub, err := alertkafka.New(client, cfg.Kafka.Topic,
		alertkafka.WithLogger(log),
		alertkafka.WithRetry(cfg.Kafka.PublishRetries, 200*time.Millisecond),
	)
	if err != nil {
		deps.shutdown(log)
		return nil, err
	}
	deps.alerts = pub
	return deps, nil
}

func buildRouter(cfg config.Config, log *slog.Logger, deps *infra) (http.Handler, error) {
	tz, err := cfg.Routine.Location()
	if err != nil {
		return nil, err
	}

	var routines routineservice.Store = routinestore.NewInMemory()
	var history locationservice.HistoryStore = locationstore.NewInMemoryHistory()
	var contacts contactservice.Store = contactstore.NewInMemory()
	var sosEvents sosservice.Store = sosstore.NewInMemory()
	var users userservice.Store = userstore.NewInMemory()
	var dbProbe, cacheProbe httptransport.Probe
	if deps.db != nil {
		pgRoutines := routinestore.NewPostgres(deps.db, routinestore.WithPostgresLogger(log))
		routines = pgRoutines
		if cfg.Routine.CacheTTL > 0 {
			routines = routinestore.NewCached(pgRoutines, cfg.Routine.CacheSize, cfg.Routine.CacheTTL)
		}
		history = locationstore.NewPostgresHistory(deps.db)
		contacts = contactstore.NewPostgres(deps.db)
		sosEvents = sosstore.NewPostgres(deps.db)
		users = userstore.NewPostgres(deps.db)
		dbProbe = deps.db.PingContext
	}

	routineSvc, err := routineservice.New(routines,
		routineservice.WithLogger(log),
		routineservice.WithMetrics(routinemetrics.New()),
		routineservice.WithEvaluator(deviation.New(deviation.WithThresholdKm(cfg.Routine.ThresholdKm))),
		routineservice.WithStoreTimeout(cfg.Routine.StoreTimeout),
		routineservice.WithLocation(tz),
	)
	if err != nil {
		return nil, err
	}

	locationOpts := []locationservice.Option{
		locationservice.WithLogger(log),
		locationservice.WithMetrics(locationmetrics.New()),
		locationservice.WithRoutineChecker(routineSvc),
		locationservice.WithAlertPublisher(deps.alerts),
		locationservice.WithLocation(tz),
	}
	if deps.redis != nil {
		locationOpts = append(locationOpts,
			locationservice.WithLatestStore(locationstore.NewGuardedLatest(
				locationstore.NewRedisLatest(deps.redis.Client, cfg.Redis.LatestTTL),
				circuit.New("redis-latest", circuit.WithCooldown(cfg.Redis.BreakerCooldown)),
				log,
			)))
		cacheProbe = deps.redis.Health
	}
	classifier := risk.NewClassifier(risk.Config{
		NightStartHour: cfg.Risk.NightStartHour,
		NightEndHour:   cfg.Risk.NightEndHour,
		IsolatedAreas:  cfg.Risk.IsolatedAreas,
	})
	locationSvc, err := locationservice.New(history, classifier, locationOpts...)
	if err != nil {
		return nil, err
	}

	userSvc, err := userservice.New(users, userservice.WithLogger(log))
	if err != nil {
		return nil, err
	}
	contactSvc, err := contactservice.New(contacts, contactservice.WithLogger(log))
	if err != nil {
		return nil, err
	}
	sosSvc, err := sosservice.New(sosEvents, deps.alerts,
		sosservice.WithLogger(log),
		sosservice.WithMetrics(sosmetrics.New()),
	)
	if err != nil {
		return nil, err
	}

	var limiterStore ratelimitmw.Store = ratelimitstore.NewInMemory()
	if deps.redis != nil {
		limiterStore = ratelimitstore.NewRedis(deps.redis.Client)
	}
	limiter := ratelimitmw.New(limiterStore, map[ratelimitmodels.EndpointClass]ratelimitmodels.Limit{
		ratelimitmodels.ClassRead:    {Requests: cfg.RateLimit.Read, Window: cfg.RateLimit.Window},
		ratelimitmodels.ClassWrite:   {Requests: cfg.RateLimit.Write, Window: cfg.RateLimit.Window},
		ratelimitmodels.ClassAnalyze: {Requests: cfg.RateLimit.Analyze, Window: cfg.RateLimit.Window},
	}, log,
		ratelimitmw.WithDisabled(!cfg.RateLimit.Enabled),
		ratelimitmw.WithMetrics(ratelimitmetrics.New()),
	)

	httpMetrics := metrics.New()
	return httptransport.NewRouter(httptransport.RouterConfig{
		Logger:         log,
		Metrics:        httpMetrics,
		RequestTimeout: cfg.Server.RequestTimeout,
		Health:         httptransport.NewHealthHandler(dbProbe, cacheProbe, httpMetrics, log),
		MetricsHandler: metrics.Handler(),
		RateLimit:      limiter.Handler,
	},
		userhandler.New(userSvc, log),
		routinehandler.New(routineSvc, log),
		locationhandler.New(locationSvc, log),
		contacthandler.New(contactSvc, log),
		soshandler.New(sosSvc, log),
	), nil
}
