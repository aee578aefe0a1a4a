package router

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/yukikurage/task-management-services/internal/config"
)

// Serve runs handler on the configured port until SIGINT or SIGTERM, then
// drains in-flight requests for at most SHUTDOWN_TIMEOUT.
func Serve(cfg *config.Config, log *logrus.Logger, handler http.Handler) error {
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("service", cfg.ServiceName).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	log.Info("server exited properly")
	return nil
}
