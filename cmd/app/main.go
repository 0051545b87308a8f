package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/Mithunit18/freelance/docs"
	"github.com/Mithunit18/freelance/internal/config"
	"github.com/Mithunit18/freelance/internal/db"
	"github.com/Mithunit18/freelance/internal/gateway"
	"github.com/Mithunit18/freelance/internal/logger"
	"github.com/Mithunit18/freelance/internal/server"
)

// @title Freelance Escrow API
// @version 1.0
// @description Escrow payment lifecycle engine for the freelance marketplace.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {

	logger.Init()
	defer logger.Sync()
	logger.Info("Starting escrow engine")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	var gw gateway.Client
	if cfg.PayoutMode == "live" && cfg.RazorpayKeyID != "" {
		gw = gateway.NewRazorpayClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayBaseURL, cfg.GatewayTimeout)
		logger.Info("Payment gateway initialized", "mode", "live")
	} else {
		gw = gateway.NewSimulatedClient(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
		logger.Info("Payment gateway initialized", "mode", "simulated")
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	srv := server.New(database, cfg, gw, redisClient)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go srv.Worker.Start(ctx)
	go srv.Scanner.Start(ctx, cfg.AutoReleaseInterval)

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
