package main // Entry point package

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/iliyamo/hbnb/internal/config"   // Internal config loader
	"github.com/iliyamo/hbnb/internal/database" // SQL store bootstrap
	"github.com/iliyamo/hbnb/internal/logger"
	"github.com/iliyamo/hbnb/internal/model"
	"github.com/iliyamo/hbnb/internal/queue"
	"github.com/iliyamo/hbnb/internal/repository"
	"github.com/iliyamo/hbnb/internal/router" // Internal router setup
	"github.com/iliyamo/hbnb/internal/service"
	"github.com/iliyamo/hbnb/internal/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load() // Load environment config
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.Primary.Env, cfg.Logging.Level)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, ping, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	rdb := config.NewRedisClient(cfg.Redis, log)
	if rdb != nil {
		defer func(c *redis.Client) { _ = c.Close() }(rdb)
	}

	var events service.Publisher = queue.Nop{}
	if cfg.RabbitMQ.URL != "" {
		pub := queue.NewPublisher(cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
		defer func() { _ = pub.Close() }()
		events = pub
		go queue.StartConsumer(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.Queue, log)
	}

	svc := service.New(store, utils.NewBcrypt(cfg.Auth.BcryptCost), events, log)
	if cfg.Admin.Email != "" {
		admin, err := svc.EnsureAdmin(ctx, model.UserInput{
			FirstName: cfg.Admin.FirstName,
			LastName:  cfg.Admin.LastName,
			Email:     cfg.Admin.Email,
			Password:  cfg.Admin.Password,
		})
		if err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
		log.Info().Str("user_id", admin.ID).Msg("admin account ready")
	}

	e := router.New(router.Deps{Cfg: cfg, Svc: svc, Redis: rdb, Log: log, Ping: ping})
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port, // Address string with port
		Handler:      e,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Primary.Env).Str("store", cfg.Database.Driver).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// openStore returns the repositories selected by database.driver, a
// liveness ping (nil for memory) and a function releasing them.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (repository.Store, func(context.Context) error, func(), error) {
	if cfg.Database.Driver == database.DriverMemory {
		log.Warn().Msg("using in-memory store; data is lost on restart")
		return repository.NewMemoryStore(), nil, func() {}, nil
	}

	db, dialect, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return repository.Store{}, nil, nil, fmt.Errorf("open database: %w", err)
	}
	if err := database.Migrate(ctx, db, dialect, log); err != nil {
		_ = db.Close()
		return repository.Store{}, nil, nil, fmt.Errorf("migrate: %w", err)
	}
	return repository.NewSQLStore(db, dialect), db.PingContext, func() { _ = db.Close() }, nil
}
