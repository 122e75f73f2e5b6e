package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/simitmodi/Stride-sub000/internal/config"
	"github.com/simitmodi/Stride-sub000/internal/database"
	"github.com/simitmodi/Stride-sub000/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)
	rdb := connectRedis(cfg.RedisURL)

	app := fiber.New(fiber.Config{
		AppName:      "Stride Backend",
		ErrorHandler: jsonErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, rdb, cfg)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}

// jsonErrorHandler renders every uncaught handler error as the standard
// response envelope instead of fiber's plain-text default.
func jsonErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   err.Error(),
	})
}

// connectRedis opens the client backing the session event stream. Redis is
// optional: without it the per-request session check still applies, only the
// live watch endpoint is disabled.
func connectRedis(url string) *redis.Client {
	if url == "" {
		log.Println("REDIS_URL not set, session watch disabled")
		return nil
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Redis ping failed, session watch disabled: %v", err)
		return nil
	}

	return client
}
