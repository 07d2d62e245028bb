package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

const defaultOrigins = "http://localhost:3000,http://localhost:5173"

// CORS - cross-origin access for browser clients; empty origins falls back to local dev hosts
func CORS(origins string) fiber.Handler {
	if origins == "" {
		origins = defaultOrigins
	}
	return cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type,Accept,Authorization",
	})
}
