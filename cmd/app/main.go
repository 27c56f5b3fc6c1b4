package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/zvrva/littlelemon/config"
	"github.com/zvrva/littlelemon/internal/bootstrap"
	"github.com/zvrva/littlelemon/internal/cache"
	"github.com/zvrva/littlelemon/internal/kafka"
	"github.com/zvrva/littlelemon/internal/repository"
	"github.com/zvrva/littlelemon/internal/service/auth"
	"github.com/zvrva/littlelemon/internal/service/booking"
	"github.com/zvrva/littlelemon/internal/service/menu"
)

func main() {
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(
		cfg.Redis,
		time.Duration(cfg.Menu.CacheTTL)*time.Second,
		time.Duration(cfg.Auth.TokenCacheTTL)*time.Second,
	)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	menuRepo := repository.NewMenuRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	menuService := menu.NewMenuService(menuRepo, redisCache)
	bookingService := booking.NewBookingService(
		bookingRepo,
		producer,
		cfg.Kafka.BookingTopic,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)
	authService := auth.NewAuthService(userRepo, redisCache)

	if err := bootstrap.Run(ctx, cfg, menuService, bookingService, authService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
