// main.go
package main

import (
	"context"
	"log"

	"cinema-reservation/cmd"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/payment"
	"cinema-reservation/internal/realtime"
	"cinema-reservation/internal/ticket"
	"cinema-reservation/internal/wire"
	"cinema-reservation/internal/worker"
	"cinema-reservation/pkg/database"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Realtime hub for the live seat feed
	hub := realtime.NewHub(logger)

	// Payment provider and ticket delivery
	gateway := payment.NewStripeGateway(config.Stripe, config.Checkout, logger)
	issuer := ticket.NewIssuer(config.Ticket, config.Email, logger)

	// Background sweep of expired holds
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := worker.NewSweeper(repos.Reservation, hub, config.Checkout.SweepInterval, logger)
	go sweeper.Run(ctx)

	// Wire all dependencies
	app := wire.Wiring(repos, config, gateway, hub, issuer, logger)

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	cmd.APIServer(app.Router, config.App.Port)
}
