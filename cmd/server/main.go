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
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/avasquez/tally/internal/api"
	"github.com/avasquez/tally/internal/auth"
	"github.com/avasquez/tally/internal/config"
	"github.com/avasquez/tally/internal/metrics"
	"github.com/avasquez/tally/internal/middleware"
	"github.com/avasquez/tally/internal/notify"
	"github.com/avasquez/tally/internal/service"
	"github.com/avasquez/tally/internal/storage/sqlite"
	"github.com/avasquez/tally/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))

	// Initialize SQLite-backed record store
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	// Wire services
	repos := service.NewRepositories(store)
	notifier := notify.LogNotifier{}
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenDuration)
	authenticator := auth.NewPasswordAuthenticator(auth.NewUserStore(store))

	groupSvc := service.NewGroupService(repos, notifier)
	expenseSvc := service.NewExpenseService(repos, notifier)
	authSvc := service.NewAuthService(authenticator, jwtManager)

	// Assemble routes
	mux := api.NewServer(groupSvc, expenseSvc, authSvc, jwtManager).Routes()
	mux.Handle("GET /metrics", metrics.Handler())

	handler := middleware.Logging(middleware.CORS(metrics.Instrument(mux)))

	// h2c serves HTTP/2 without TLS for local and reverse-proxied deployments
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: h2cHandler,
	}

	go func() {
		slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Shutdown failed", "error", err)
	}
}
