package main

import (
	"context"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/techstud-dev/schedule-university/config"
	"github.com/techstud-dev/schedule-university/db"
	"github.com/techstud-dev/schedule-university/internal/auth/handler"
	"github.com/techstud-dev/schedule-university/internal/auth/ratelimit"
	repo "github.com/techstud-dev/schedule-university/internal/auth/repository/postgres"
	"github.com/techstud-dev/schedule-university/internal/auth/service"
	"github.com/techstud-dev/schedule-university/internal/mailer"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	if err := db.RunMigrations(ctx, cfg.DBURL); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	pool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		log.Fatalf("failed to load AWS config: %v", err)
	}
	sender := mailer.NewSESSender(ses.NewFromConfig(awsCfg), cfg.EmailSender)

	userRepo := repo.NewUserRepository(pool)
	pendingRepo := repo.NewPendingRegistrationRepository(pool)

	tokenService, err := service.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience,
		cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	if err != nil {
		log.Fatalf("failed to initialize token service: %v", err)
	}

	confirmation := service.NewConfirmationService(pendingRepo, sender, cfg)
	userService := service.NewUserService(userRepo, tokenService, confirmation)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go confirmation.Run(sweepCtx)

	limiter := ratelimit.New()
	authHandler := handler.NewAuthHandler(userService, cfg)

	app := fiber.New()
	app.Use(recover.New())
	handler.RegisterRoutes(app, authHandler, limiter, tokenService, cfg)

	log.Fatal(app.Listen(":" + cfg.Port))
}
