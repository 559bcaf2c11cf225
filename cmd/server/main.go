package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/gkidjo/train-booking-api/internal/booking"
	"github.com/gkidjo/train-booking-api/internal/config"
	"github.com/gkidjo/train-booking-api/internal/database"
	"github.com/gkidjo/train-booking-api/internal/handler"
	"github.com/gkidjo/train-booking-api/internal/logger"
	"github.com/gkidjo/train-booking-api/internal/mail"
	"github.com/gkidjo/train-booking-api/internal/middleware"
	"github.com/gkidjo/train-booking-api/internal/queue"
	"github.com/gkidjo/train-booking-api/internal/repository"
	"github.com/gkidjo/train-booking-api/internal/router"
)

func main() {
	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer func() { _ = log.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal("database connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()
	if err := database.EnsureSchema(context.Background(), db); err != nil {
		log.Fatal("schema migration failed", zap.Error(err))
	}

	users := repository.NewUserRepo(db)
	trips := repository.NewTripRepo(db)
	seats := repository.NewSeatRepo(db)
	reservations := repository.NewReservationRepo(db)

	// Without a broker URL the booking workflow still works, it just
	// skips the notification mails.
	var publisher booking.EventPublisher
	if cfg.AMQPURL != "" {
		publisher = queue.NewPublisher(cfg.AMQPURL)

		consumer := queue.NewConsumer(cfg.AMQPURL, mail.NewFromConfig(cfg.Mail))
		go func() {
			if err := consumer.Run(context.Background()); err != nil {
				log.Warn("mail consumer stopped", zap.Error(err))
			}
		}()
	} else {
		log.Warn("no RABBITMQ_URL configured, reservation mails disabled")
	}

	svc := booking.NewService(users, trips, seats, reservations, publisher)

	e := echo.New()
	e.HideBanner = true

	// Redis is optional as well: with no reachable instance both the
	// response cache and the rate limiter degrade to pass-through.
	rdb := config.NewRedisClient()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
	e.Use(middleware.NewRedisCache(config.LoadCacheConfig(), rdb))

	router.Register(e, router.Handlers{
		Auth:        handler.NewAuthHandler(cfg, users),
		Trip:        handler.NewTripHandler(trips, seats),
		Seat:        handler.NewSeatHandler(seats),
		Reservation: handler.NewReservationHandler(reservations, svc),
	}, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
