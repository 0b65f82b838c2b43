package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	httpAdapter "github.com/iho/corebank/internal/adapter/http"
	"github.com/iho/corebank/internal/adapter/http/handler"
	"github.com/iho/corebank/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/corebank/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/corebank/internal/adapter/repository/redis"
	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/infrastructure/config"
	"github.com/iho/corebank/internal/infrastructure/eventpublisher"
	"github.com/iho/corebank/internal/infrastructure/logger"
	"github.com/iho/corebank/internal/infrastructure/metrics"
	"github.com/iho/corebank/internal/infrastructure/postgres"
	"github.com/iho/corebank/internal/infrastructure/redis"
	"github.com/iho/corebank/internal/infrastructure/scheduler"
	"github.com/iho/corebank/internal/usecase"
)

const limiterIdleTimeout = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	if err := postgres.NewMigrator(cfg.DatabaseURL, cfg.MigrationsPath, log).Up(); err != nil {
		return err
	}

	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	redisClient, err := redis.NewClient(ctx, cfg.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	domain.DefaultInterestDivisor = interestDivisor(cfg)

	app := wire(pool, redisClient, cfg, log, m)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		HealthHandler: handler.NewHealthHandler(
			handler.PingFunc(pool.Ping),
			handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		),
		BatchHandler: handler.NewBatchHandler(handler.BatchServices{
			EOD:       app.eod,
			BOD:       app.bod,
			Movements: app.movements,
			Accruals:  app.accruals,
			Clock:     app.clock,
		}),
		TransactionHandler: handler.NewTransactionHandler(app.transactions),
		AccountHandler:     handler.NewAccountHandler(app.accounts, app.resolver),
		GLHandler:          handler.NewGLHandler(app.glSetup, app.glHierarchy),
		RateHandler:        handler.NewRateHandler(app.currency, app.clock),
		SystemDateHandler:  handler.NewSystemDateHandler(app.clock),
		SettlementHandler:  handler.NewSettlementHandler(app.settlements),
		IdempotencyStore:   redisRepo.NewIdempotencyStore(redisClient),
		IdempotencyTTL:     cfg.IdempotencyTTL,
		RateLimiter:        rateLimiter,
		Metrics:            m,
		Gatherer:           registry,
		Logger:             log,
	})

	server := newHTTPServer(cfg, router)

	bgCtx, cancelBackground := context.WithCancel(ctx)
	defer cancelBackground()

	var wg sync.WaitGroup
	background := func(name string, fn func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(bgCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error().Err(err).Str("worker", name).Msg("background worker stopped")
			}
		}()
	}

	publisher := eventpublisher.NewEventPublisher(eventpublisher.Config{
		OutboxRepo: postgresRepo.NewOutboxRepository(pool),
		Publisher:  eventpublisher.NewStreamPublisher(redisClient, eventpublisher.DefaultStream),
		Logger:     log,
		Metrics:    m,
	})
	background("outbox", publisher.Start)

	bodTicker := scheduler.NewTicker("bod", cfg.BODScheduleInterval, func(ctx context.Context) error {
		_, err := app.bod.Run(ctx, cfg.EODAdminUser)
		return err
	}, log, scheduler.WithQuietErrors(domain.ErrBatchInProgress))
	background("bod", bodTicker.Start)

	limiterTicker := scheduler.NewTicker("ratelimit-cleanup", time.Minute, func(context.Context) error {
		if removed := rateLimiter.CleanupLimiters(limiterIdleTimeout); removed > 0 {
			log.Debug().Int("removed", removed).Msg("idle rate limiters evicted")
		}
		return nil
	}, log)
	background("ratelimit-cleanup", limiterTicker.Start)

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down server...")
	case err := <-serveErr:
		if err != nil {
			cancelBackground()
			wg.Wait()
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	cancelBackground()
	wg.Wait()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info().Msg("server stopped")
	return nil
}

type application struct {
	clock        *usecase.SystemDateUseCase
	currency     *usecase.CurrencyUseCase
	resolver     *usecase.AccountResolver
	accounts     *usecase.AccountOpeningUseCase
	glSetup      *usecase.GLSetupUseCase
	glHierarchy  *usecase.GLHierarchyUseCase
	transactions *usecase.TransactionUseCase
	movements    *usecase.MovementPoster
	accruals     *usecase.AccrualPoster
	eod          *usecase.EODUseCase
	bod          *usecase.BODUseCase
	settlements  *usecase.SettlementAlertUseCase
}

func wire(pool *pgxpool.Pool, client *goredis.Client, cfg *config.Config, log zerolog.Logger, m *metrics.Metrics) *application {
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrierWithLogger(log)
	idGen := postgresRepo.NewULIDGenerator()

	accountRepo := postgresRepo.NewAccountRepository(pool)
	productRepo := postgresRepo.NewProductRepository(pool)
	balanceRepo := postgresRepo.NewBalanceRepository(pool)
	glRepo := postgresRepo.NewGLRepository(pool)
	seqRepo := postgresRepo.NewSequenceRepository(pool)
	tranRepo := postgresRepo.NewTransactionRepository(pool)
	movementRepo := postgresRepo.NewGLMovementRepository(pool)
	accrualRepo := postgresRepo.NewAccrualRepository(pool)
	valueDateLogRepo := postgresRepo.NewValueDateLogRepository(pool)
	jobLogRepo := postgresRepo.NewEODLogRepository(pool)
	outboxRepo := postgresRepo.NewOutboxRepository(pool)
	auditRepo := postgresRepo.NewAuditRepository(pool)
	rateRepo := postgresRepo.NewExchangeRateRepository(pool)
	paramRepo := postgresRepo.NewParameterRepository(pool)

	cache := redisRepo.NewCache(client)
	locker := redisRepo.NewLocker(client)

	params := usecase.NewParameterUseCase(paramRepo, cache, cfg.ParameterCacheTTL, log, m)
	clock := usecase.NewSystemDateUseCase(params, cfg.SystemDate, auditRepo, idGen, m)
	currency := usecase.NewCurrencyUseCase(rateRepo, cache, auditRepo, idGen, m, usecase.CurrencyConfig{
		Local:   cfg.CurrencyLocal,
		Allowed: cfg.CurrencyAllowed,
	})

	hierarchy := usecase.NewGLHierarchyUseCase(glRepo)
	resolver := usecase.NewAccountResolver(accountRepo, productRepo, balanceRepo, tranRepo, hierarchy, currency.LocalCurrency())
	allocator := usecase.NewSequenceAllocator(glRepo, seqRepo, m)
	valueDate := usecase.NewValueDateUseCase(tranRepo, glRepo, movementRepo, valueDateLogRepo, balanceRepo, resolver, params, currency, idGen, m)

	movements := usecase.NewMovementPoster(txManager, retrier, tranRepo, movementRepo, glRepo, resolver, idGen, log, m)
	accruals := usecase.NewAccrualPoster(txManager, retrier, accrualRepo, glRepo, idGen, log, m)
	accrualGen := usecase.NewAccrualGenerator(txManager, retrier, accountRepo, accrualRepo, resolver, currency, params, log, m)

	return &application{
		clock:        clock,
		currency:     currency,
		resolver:     resolver,
		accounts:     usecase.NewAccountOpeningUseCase(txManager, retrier, accountRepo, productRepo, seqRepo, allocator, clock),
		glSetup:      usecase.NewGLSetupUseCase(txManager, glRepo, productRepo, auditRepo, idGen),
		glHierarchy:  hierarchy,
		transactions: usecase.NewTransactionUseCase(txManager, retrier, tranRepo, outboxRepo, auditRepo, resolver, currency, valueDate, clock, idGen, m),
		movements:    movements,
		accruals:     accruals,
		eod: usecase.NewEODUseCase(usecase.EODDeps{
			TxManager:      txManager,
			Locker:         locker,
			LockTTL:        cfg.BatchLockTTL,
			Clock:          clock,
			Validator:      usecase.NewPreEODValidator(tranRepo, params, cfg.EODAdminUser),
			MovementPoster: movements,
			AccrualGen:     accrualGen,
			AccrualPoster:  accruals,
			Aggregator:     usecase.NewEODAggregator(txManager, retrier, accountRepo, tranRepo, movementRepo, accrualRepo, balanceRepo, currency, log),
			JobLogRepo:     jobLogRepo,
			OutboxRepo:     outboxRepo,
			AuditRepo:      auditRepo,
			IDGen:          idGen,
			Logger:         log,
			Metrics:        m,
		}),
		bod: usecase.NewBODUseCase(usecase.BODDeps{
			TxManager:    txManager,
			Retrier:      retrier,
			Locker:       locker,
			LockTTL:      cfg.BatchLockTTL,
			TranRepo:     tranRepo,
			MovementRepo: movementRepo,
			GLRepo:       glRepo,
			LogRepo:      valueDateLogRepo,
			JobLogRepo:   jobLogRepo,
			OutboxRepo:   outboxRepo,
			BalanceRepo:  balanceRepo,
			AuditRepo:    auditRepo,
			Resolver:     resolver,
			Currency:     currency,
			Clock:        clock,
			IDGen:        idGen,
			Logger:       log,
			Metrics:      m,
		}),
		settlements: usecase.NewSettlementAlertUseCase(params, txManager, outboxRepo, idGen, log, m),
	}
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:         listenAddr(cfg.HTTPPort),
		Handler:      h,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}
}

func listenAddr(port string) string {
	if port == "" {
		port = "8080"
	}
	return ":" + port
}

// interestDivisor is the fallback used when Interest_Default_Divisor is
// missing from the parameter store.
func interestDivisor(cfg *config.Config) decimal.Decimal {
	if cfg.InterestDefaultDivisor <= 0 {
		return decimal.NewFromInt(36500)
	}
	return decimal.NewFromInt(int64(cfg.InterestDefaultDivisor))
}
