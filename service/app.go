package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"blogapi/app/config"
	"blogapi/app/logger"
	"blogapi/app/middleware"
	"blogapi/app/routes"

	"github.com/rs/zerolog"
)

// RunAppServer serves the blog API until ctx is cancelled, then drains
// in-flight requests for at most cfg.ShutdownTimeout and closes the store.
func RunAppServer(ctx context.Context, cfg config.Config) error {
	logData, err := logger.New().
		FromPath(cfg.Log.File).
		WithLevel(cfg.Log.Level).
		WithFormat(cfg.Log.Format).
		Make()
	if err != nil {
		return err
	}
	defer logData.Close()
	log := logData.Logger

	st, err := openStore(ctx, cfg.Store, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	handler, err := newHandler(cfg, st, log)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Addr).Str("driver", cfg.Store.Driver).Msg("starting blog API")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info().Dur("timeout", cfg.ShutdownTimeout).Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

func newHandler(cfg config.Config, st *store, log zerolog.Logger) (http.Handler, error) {
	start := time.Now()
	auth, err := middleware.NewAuthenticator(cfg.Auth.Login, cfg.Auth.Password, cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	log.Debug().Dur("took", time.Since(start)).Msg("hashed credentials")

	if cfg.TestingRoutes {
		log.Warn().Msg("testing routes enabled; DELETE /testing/all-data wipes the store")
	}
	return routes.SetupRoutes(routes.Dependencies{
		Blogs:         st.blogs,
		Posts:         st.posts,
		Auth:          auth,
		Logger:        log,
		TestingRoutes: cfg.TestingRoutes,
	}), nil
}
