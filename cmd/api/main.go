package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/finlogger/finlogger/internal/config"
	"github.com/finlogger/finlogger/internal/database"
	"github.com/finlogger/finlogger/internal/expense"
	expenseStore "github.com/finlogger/finlogger/internal/expense/store"
	apiHttp "github.com/finlogger/finlogger/internal/http"
	expenseHandler "github.com/finlogger/finlogger/internal/http/expense"
)

func main() {
	// Optional .env for local development; the environment wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	expenseService := expense.NewService(expenseStore.New(db))
	expenseH := expenseHandler.NewHandler(expenseService)

	router := apiHttp.New(expenseH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
