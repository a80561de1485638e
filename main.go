package main

import (
	"log"
	"time"

	"olc/config"
	"olc/database"
	authRoutes "olc/routers/authRoutes"
	enrollmentRoutes "olc/routers/enrollmentRoutes"
	resourceRoutes "olc/routers/resourceRoutes"
	userRoutes "olc/routers/userRoutes"
	"olc/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,x-access-token",
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	authRoutes.SetupAuthRoutes(app)
	resourceRoutes.SetupResourceRoutes(app)
	enrollmentRoutes.SetupEnrollmentRoutes(app)
	userRoutes.SetupUserRoutes(app)

	utils.InitializeReminderScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
