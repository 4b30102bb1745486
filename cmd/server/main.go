package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/halaqahq/halaqa/internal/auth"
	"github.com/halaqahq/halaqa/internal/config"
	"github.com/halaqahq/halaqa/internal/handlers"
	"github.com/halaqahq/halaqa/internal/service"
	"github.com/halaqahq/halaqa/internal/storage/sqlite"
	"github.com/halaqahq/halaqa/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.LogLevel)

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	authenticator := auth.NewPasswordAuthenticator(store)

	authService := service.NewAuthService(authenticator, jwtManager, store, slog.Default())
	groupService := service.NewGroupService(store)
	paymentService := service.NewPaymentService(store)

	router := handlers.NewRouter(
		handlers.NewAuthHandler(authService),
		handlers.NewGroupHandler(groupService),
		handlers.NewPaymentHandler(paymentService),
		jwtManager,
	)

	addr := fmt.Sprintf(":%d", cfg.Port)
	slog.Info("Server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := http.ListenAndServe(addr, router); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
