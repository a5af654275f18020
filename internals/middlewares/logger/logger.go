package logger

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/skip"
)

// LoggerMiddleware untuk mencatat semua request (kecuali health & metrics)
func LoggerMiddleware() fiber.Handler {
	return skip.New(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Asia/Jakarta",
		Format:     "[${time}] ${ip} - ${locals:request_id} ${method} ${path} - ${status} - ${latency}\n",
	}), func(c *fiber.Ctx) bool {
		p := c.Path()
		return p == "/health" || p == "/metrics"
	})
}
