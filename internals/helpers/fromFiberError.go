package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FromFiberError mengubah error hasil service (biasanya *fiber.Error)
// menjadi response JSON konsisten via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 tanpa membocorkan pesan internal.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	zap.L().Error("[HTTP] unhandled error",
		zap.String("path", c.Path()),
		zap.String("request_id", RequestID(c)),
		zap.Error(err),
	)
	return JsonError(c, fiber.StatusInternalServerError, "Terjadi kesalahan pada server")
}

// ErrorHandler dipasang di fiber.Config agar error yang lolos dari handler tetap ber-envelope.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}

func RequestID(c *fiber.Ctx) string {
	if v, ok := c.Locals("request_id").(string); ok {
		return v
	}
	return ""
}
