package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"settlement-orchestrator/config"
	"settlement-orchestrator/internal/adapter/bus/rabbitmq"
	"settlement-orchestrator/internal/adapter/chain"
	"settlement-orchestrator/internal/adapter/chain/evm"
	"settlement-orchestrator/internal/adapter/chain/solana"
	"settlement-orchestrator/internal/adapter/exchange/binance"
	httpHandler "settlement-orchestrator/internal/adapter/http/handler"
	pgStorage "settlement-orchestrator/internal/adapter/storage/postgres"
	redisStorage "settlement-orchestrator/internal/adapter/storage/redis"
	"settlement-orchestrator/internal/core/ports"
	"settlement-orchestrator/internal/service"
	"settlement-orchestrator/migrations"
	"settlement-orchestrator/pkg/logger"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const resubscribeDelay = 5 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.NewWithOptions(logger.Options{
		Level:      cfg.Log.Level,
		Pretty:     cfg.Log.Pretty,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})

	instanceID := cfg.Worker.InstanceID
	if instanceID == "" {
		instanceID = uuid.NewString()
	}
	log = log.With().Str("instance", instanceID).Logger()
	log.Info().Msg("Starting settlement orchestrator worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Database.AutoMigrate {
		if err := pgStorage.Migrate(migrations.FS, cfg.Database, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate PostgreSQL schema")
		}
	}

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// Redis and AMQP connect on first use
	rdb := redisStorage.NewLazyClient(cfg.Redis, log)
	defer func() {
		if c, ok := rdb.Peek(); ok {
			c.Close()
		}
	}()
	amqpConn := rabbitmq.NewConnection(cfg.AMQP.URL, log)
	defer func() {
		if c, ok := amqpConn.Peek(); ok {
			c.Close()
		}
	}()
	broker := rabbitmq.NewBroker(cfg.AMQP, rabbitmq.ConnectionChannels(amqpConn), instanceID, log)
	defer broker.Close()

	// Initialize repositories and stores
	reservationRepo := pgStorage.NewReservationRepo(pool)
	sliceRepo := pgStorage.NewConversionSliceRepo(pool)
	orphanRepo := pgStorage.NewOrphanRefundRepo(pool)
	unmatchedRepo := pgStorage.NewUnmatchedPaymentRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	reservationCache := redisStorage.NewReservationCache(rdb)
	budget := redisStorage.NewRequestBudget(rdb)
	locker, err := redisStorage.NewLocker(rdb, cfg.Lock, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid lock configuration")
	}

	// Initialize wallets
	wallets, err := buildWallets(cfg, locker, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize wallets")
	}
	registry := chain.NewRegistry(wallets...)
	log.Info().Strs("chains", chainNames(registry)).Msg("Wallets ready")

	exchange := binance.NewClient(cfg.Exchange, budget, log)

	// Initialize services
	ledger := service.NewReservationLedger(reservationRepo, reservationCache, log)
	reconciler := service.NewConversionReconciler(sliceRepo, exchange, transactor, log)
	refunds := service.NewRefundCoordinator(ledger, registry, broker, cfg.AMQP.Topics.RefundCompleted, log)
	orphans := service.NewOrphanRefunder(
		orphanRepo,
		unmatchedRepo,
		registry,
		broker,
		cfg.AMQP.Topics.RefundCompleted,
		cfg.Orphans.BatchSize,
		log,
	)
	dispatcher := service.NewDispatcher(reconciler, refunds, orphans, log)

	// Ops server
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		HealthCheckers: []ports.HealthChecker{
			pgStorage.NewHealthCheck(pool),
			redisStorage.NewHealthCheck(rdb),
			rabbitmq.NewHealthCheck(amqpConn),
		},
		Reconciler: reconciler,
		Orphans:    orphans,
		Budget:     budget,
		Logger:     log,
	})
	srv := &http.Server{
		Addr:              cfg.Ops.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	for topic, handler := range dispatcher.Routes(cfg.AMQP.Topics) {
		topic, handler := topic, rabbitmq.Handler(handler)
		g.Go(func() error {
			consume(gctx, broker, topic, handler, log)
			return nil
		})
	}

	g.Go(func() error {
		service.RunEvery(gctx, "reconcile", cfg.Reconcile.PollInterval, func(ctx context.Context) error {
			_, err := reconciler.Reconcile(ctx)
			return err
		}, log)
		return nil
	})
	g.Go(func() error {
		service.RunEvery(gctx, "orphan_sweep", cfg.Orphans.SweepInterval, func(ctx context.Context) error {
			_, err := orphans.Sweep(ctx)
			return err
		}, log)
		return nil
	})

	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("Ops server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ops server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down worker...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Worker.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Ops server forced to shutdown")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Worker stopped with error")
		return
	}
	log.Info().Msg("Worker exited")
}

// consume keeps a subscription alive, resubscribing after broker failures.
func consume(ctx context.Context, broker *rabbitmq.Broker, topic string, handler rabbitmq.Handler, log zerolog.Logger) {
	for {
		err := broker.Subscribe(ctx, topic, handler)
		if ctx.Err() != nil {
			return
		}
		log.Warn().Err(err).Str("topic", topic).Dur("retry_in", resubscribeDelay).Msg("subscription ended, resubscribing")

		select {
		case <-ctx.Done():
			return
		case <-time.After(resubscribeDelay):
		}
	}
}

func buildWallets(cfg *config.Config, locker ports.Locker, log zerolog.Logger) ([]ports.Wallet, error) {
	var wallets []ports.Wallet

	if cfg.Chains.EVM.Enabled {
		variant, err := evm.NewVariant(cfg.Chains.EVM, evm.NewLazyClient(cfg.Chains.EVM.RPCURL, cfg.Chains.EVM.Timeout))
		if err != nil {
			return nil, fmt.Errorf("evm wallet: %w", err)
		}
		wallets = append(wallets, chain.NewWallet(variant, locker, cfg.Lock.TTL, cfg.Chains.EVM.Timeout, log))
	}

	if cfg.Chains.Solana.Enabled {
		variant, err := solana.NewVariant(cfg.Chains.Solana, solana.NewRPCLedger(cfg.Chains.Solana.RPCURL, cfg.Chains.Solana.Timeout))
		if err != nil {
			return nil, fmt.Errorf("solana wallet: %w", err)
		}
		wallets = append(wallets, chain.NewWallet(variant, locker, cfg.Lock.TTL, cfg.Chains.Solana.Timeout, log))
	}

	return wallets, nil
}

func chainNames(r *chain.Registry) []string {
	chains := r.Chains()
	names := make([]string, len(chains))
	for i, c := range chains {
		names[i] = string(c)
	}
	return names
}
