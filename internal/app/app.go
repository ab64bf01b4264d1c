package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/GlebRadaev/ebookmarket/internal/config"
	"github.com/GlebRadaev/ebookmarket/internal/handlers"
	"github.com/GlebRadaev/ebookmarket/internal/kvstore"
	"github.com/GlebRadaev/ebookmarket/internal/payout"
	"github.com/GlebRadaev/ebookmarket/internal/pg"
	"github.com/GlebRadaev/ebookmarket/internal/repo"
	"github.com/GlebRadaev/ebookmarket/internal/service"
	"github.com/GlebRadaev/ebookmarket/pkg/clients"
	"github.com/GlebRadaev/ebookmarket/pkg/generator"
	"github.com/GlebRadaev/ebookmarket/pkg/logger"
	"github.com/GlebRadaev/ebookmarket/pkg/payment"
)

const redisKeyPrefix = "ebookmarket:"

type ApplicationI interface {
	Start(ctx context.Context) error
	Wait(ctx context.Context, cancel context.CancelFunc) error
}

type Application struct {
	cfg  *config.Config
	api  *handlers.Handlers
	srv  *service.Services
	repo *repo.Repositories
	ext  *payout.Service

	errCh   chan error
	wg      sync.WaitGroup
	ready   bool
	closers []func()
}

func New() *Application {
	return &Application{
		errCh: make(chan error),
	}
}

func (a *Application) Start(ctx context.Context) error {
	cfg := config.New()

	err := logger.InitLogger(cfg)
	if err != nil {
		return fmt.Errorf("can't init logger: %w", err)
	}

	return a.start(ctx, cfg)
}

func (a *Application) start(ctx context.Context, cfg *config.Config) error {
	repos, closeStorage, err := buildRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, closeStorage)

	payments := payment.NewSimulator(cfg.SimulatedDelay)

	a.cfg = cfg
	a.repo = repos
	a.srv = service.New(a.repo, cfg, payments, buildGenerator(cfg))
	a.api = handlers.New(a.srv, a.repo)
	a.ext = payout.New(cfg, a.repo.Withdrawal, a.repo.BalanceRepo, a.repo.TxManager, payments)

	if err := a.srv.Seeder.Seed(ctx); err != nil {
		zap.L().Warn("seeding catalogue failed", zap.Error(err))
	}

	if err = a.startHTTPServer(ctx); err != nil {
		return fmt.Errorf("can't start http server: %w", err)
	}

	a.startPayoutService(ctx)

	a.ready = true
	zap.L().Info("all systems started successfully", zap.String("storage", cfg.Storage))
	return nil
}

// buildRepositories also returns the function that releases the storage
// connections once the application has stopped.
func buildRepositories(ctx context.Context, cfg *config.Config) (*repo.Repositories, func(), error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		pool, err := getPgxpool(ctx, cfg)
		if err != nil {
			zap.L().Error("build pgx pool failed: ", zap.Error(err))
			return nil, nil, fmt.Errorf("can't build pgx pool: %w", err)
		}
		if err := pg.RunMigrations(ctx, pool); err != nil {
			pool.Close()
			zap.L().Error("migrations failed: ", zap.Error(err))
			return nil, nil, fmt.Errorf("can't run migrations: %w", err)
		}
		sessions := kvstore.New(kvstore.NewMemoryBackend())
		return repo.New(pg.New(pool), pg.NewTXManager(pool), sessions), pool.Close, nil
	case config.StorageRedis:
		store, client := kvstore.NewRedisStore(ctx, cfg.RedisAddress, cfg.RedisPassword, cfg.RedisDB, redisKeyPrefix)
		if store.Degraded() {
			zap.L().Warn("redis unavailable, data will not survive a restart", zap.String("address", cfg.RedisAddress))
			return repo.NewKV(store), func() {}, nil
		}
		closeRedis := func() {
			if err := client.Close(); err != nil {
				zap.L().Warn("failed to close redis client", zap.Error(err))
			}
		}
		return repo.NewKV(store), closeRedis, nil
	case config.StorageMemory:
		return repo.NewKV(kvstore.New(kvstore.NewMemoryBackend())), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage: %s", cfg.Storage)
	}
}

func buildGenerator(cfg *config.Config) generator.ContentGenerator {
	if cfg.GeneratorAddress != "" {
		return generator.NewHTTPGenerator(cfg.GeneratorAddress, clients.NewHTTPClient())
	}
	return generator.NewSimulator(cfg.SimulatedDelay)
}

func getPgxpool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	cfgpool, err := pgxpool.ParseConfig(cfg.Database)
	if err != nil {
		return nil, err
	}
	dbpool, err := pgxpool.NewWithConfig(ctx, cfgpool)
	if err != nil {
		return nil, err
	}
	if err = dbpool.Ping(ctx); err != nil {
		return nil, err
	}
	return dbpool, nil
}

func (a *Application) startHTTPServer(ctx context.Context) error {
	router := chi.NewRouter()
	a.api.InitRoutes(router)
	server := http.Server{
		Addr:    a.cfg.Address,
		Handler: router,
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		<-ctx.Done()

		sCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(sCtx)
	}()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		zap.L().Info("starting http server on port", zap.String("port", a.cfg.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.errCh <- fmt.Errorf("http server exited with error: %w", err)
		}
	}()

	return nil
}

func (a *Application) startPayoutService(ctx context.Context) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.ext.Start(ctx)
	}()
}

func (a *Application) Wait(ctx context.Context, cancel context.CancelFunc) error {
	var appErr error

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		defer wg.Done()

		for err := range a.errCh {
			cancel()
			zap.L().Error(err.Error())
			appErr = err
		}
	}()

	<-ctx.Done()
	a.wg.Wait()
	for _, closeFn := range a.closers {
		closeFn()
	}
	close(a.errCh)
	wg.Wait()

	return appErr
}
