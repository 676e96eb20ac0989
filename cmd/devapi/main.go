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

	"github.com/didacticiel/Gpresence/internal/config"
	"github.com/didacticiel/Gpresence/internal/devapi"
	appHTTP "github.com/didacticiel/Gpresence/internal/handler/http"
	"github.com/didacticiel/Gpresence/internal/pkg/database"
	"github.com/didacticiel/Gpresence/internal/repository/memory"
	"github.com/didacticiel/Gpresence/internal/repository/postgresql"
	"golang.org/x/crypto/bcrypt"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Println("Invalid config:", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel(cfg.App.LogLevel),
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var repos devapi.Repositories
	switch cfg.Storage.Type {
	case "postgres":
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns:          cfg.Database.MaxConns,
			MinConns:          1,
			HealthCheckPeriod: time.Minute,
			ConnectTimeout:    5 * time.Second,
		})
		if err != nil {
			slog.Error("Error connecting to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := postgresql.Migrate(ctx, db); err != nil {
			slog.Error("Error migrating database", "error", err)
			os.Exit(1)
		}
		repos = devapi.PostgresRepositories(db)
	default:
		repos = devapi.MemoryRepositories(memory.NewDB())
	}

	server := devapi.New(repos, devapi.Options{
		JWTSecret:        cfg.JWT.Secret,
		AccessExpiration: cfg.JWT.AccessExpiration,
		Router: appHTTP.RouterOptions{
			Env:            cfg.App.Env,
			Version:        version,
			AllowedOrigins: cfg.Server.AllowedOrigins,
		},
	})

	seeded, err := server.Seed(ctx, bcrypt.DefaultCost)
	if err != nil {
		slog.Error("Error seeding demo accounts", "error", err)
		os.Exit(1)
	}
	slog.Info("Demo accounts ready", "count", len(seeded), "storage", cfg.Storage.Type)

	server.Scheduler.Start(ctx)
	defer server.Scheduler.Stop()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	}()

	slog.Info("Server running", "addr", "http://localhost"+httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func logLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
