package builder

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const shutdownTimeout = 30 * time.Second

// App is the HTTP server with the connections it owns
type App struct {
	server *http.Server
	db     *pgxpool.Pool
	redis  *redis.Client
	logger *zap.Logger
}

// Run serves HTTP until SIGINT/SIGTERM or a server error, then shuts down
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		a.logger.Error("Server error", zap.Error(err))
		a.release()
		return err
	case <-ctx.Done():
		a.logger.Info("Received shutdown signal")
	}

	return a.shutdown()
}

// shutdown lets in-flight requests, open streams included, finish before closing the stores
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("Shutting down server gracefully", zap.Duration("timeout", shutdownTimeout))

	err := a.server.Shutdown(ctx)
	if err != nil {
		a.logger.Error("Server shutdown error", zap.Error(err))
	}

	a.release()

	a.logger.Info("Application stopped")
	_ = a.logger.Sync()
	return err
}

func (a *App) release() {
	if a.db != nil {
		a.logger.Info("Closing database connections")
		a.db.Close()
	}

	if a.redis != nil {
		a.logger.Info("Closing redis connection")
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("Redis close error", zap.Error(err))
		}
	}
}
