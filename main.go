package main

import (
	"log"

	"storefront/backend"
	"storefront/checkout"
	"storefront/config"
	"storefront/player"
	playerRoutes "storefront/routers/playerRoutes"
	storeRoutes "storefront/routers/storeRoutes"
	"storefront/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	backend.Connect()
	player.InitStore(config.AppConfig.SessionTTL)
	checkout.InitStore(config.AppConfig.SessionTTL)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve staged slip previews
	app.Static("/uploads", config.AppConfig.UploadDir)

	storeRoutes.SetupStoreRoutes(app)
	playerRoutes.SetupPlayerRoutes(app)

	utils.StartCleanupScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
