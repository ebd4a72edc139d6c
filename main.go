package main

import (
	"log"
	"time"

	"revio/config"
	"revio/database"
	"revio/middleware"
	authRoutes "revio/routers/authRoutes"
	companyRoutes "revio/routers/companyRoutes"
	reviewRoutes "revio/routers/reviewRoutes"
	"revio/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/google/uuid"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	instanceID := uuid.NewString()
	startedAt := time.Now()

	app := fiber.New(fiber.Config{
		// Single catch-all responder: detail only outside production
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
			message := "Something went wrong!"
			if !config.AppConfig.IsProduction() {
				message = err.Error()
			}
			return middleware.JsonResponse(c, code, false, message, nil)
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// 100 requests per 15 minutes per client IP on the API surface
	app.Use("/api", limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := database.Ping(); err != nil {
			return middleware.JsonResponse(c, fiber.StatusServiceUnavailable, false, "Store unreachable!", fiber.Map{
				"instance": instanceID,
			})
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "OK", fiber.Map{
			"instance": instanceID,
			"uptime":   time.Since(startedAt).String(),
		})
	})

	api := app.Group("/api")
	authRoutes.SetupAuthRoutes(api)
	companyRoutes.SetupCompanyRoutes(api)
	reviewRoutes.SetupReviewRoutes(api)

	ratingCron := utils.StartRatingScheduler()
	defer ratingCron.Stop()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
