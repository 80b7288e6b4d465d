package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/securecookie"

	"gameadmin/internal/config"
	"gameadmin/internal/database"
	"gameadmin/internal/handler"
	"gameadmin/internal/logger"
	"gameadmin/internal/middleware"
	"gameadmin/internal/repository"
	"gameadmin/internal/service"
	"gameadmin/internal/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logger.New(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if cfg.MigrateOnStart {
		if err := database.Migrate(db, cfg.DB.DBName); err != nil {
			return err
		}
	}

	admins := repository.NewAdminRepository(db)
	accounts := service.NewAccountService(
		repository.NewTeacherRepository(db),
		repository.NewStudentRepository(db),
		repository.NewUserRepository(db),
		cfg.DefaultResetPassword,
	)
	sessions := session.NewManager(cfg.SessionKey, cfg.SecureCookies)

	router, err := handler.NewRouter(handler.Deps{
		Auth:     service.NewAuthService(admins),
		Accounts: accounts,
		Stats:    repository.NewDashboardRepository(db),
		Sessions: sessions,
	})
	if err != nil {
		return err
	}

	csrfKey := cfg.CSRFKey
	if len(csrfKey) == 0 {
		csrfKey = securecookie.GenerateRandomKey(32)
		slog.Warn("CSRF_KEY is not set, using a random key")
	}

	var h http.Handler = router
	h = middleware.CSRF(csrfKey, cfg.SecureCookies, nil)(h)
	h = middleware.SecurityHeaders(h)
	h = middleware.Logging(h)
	h = middleware.Recover(h)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", srv.Addr)
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

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
