package observability

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// TrackingIDKey is the fiber locals key holding the request tracking id.
const TrackingIDKey = "tracking_id"

// TrackingID returns the tracking id assigned to the request, if any.
func TrackingID(c *fiber.Ctx) string {
	id, _ := c.Locals(TrackingIDKey).(string)
	return id
}

// RequestLogger logs one line per request and feeds the request counters.
// It must wrap the error handling middleware to observe the final status.
func RequestLogger(logger *zap.Logger, metrics *Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		duration := time.Since(start)
		status := c.Response().StatusCode()

		// Route patterns keep the counter keys bounded; unmatched paths share one.
		metrics.RecordRequest(c.Route().Path, c.Method(), status, duration)
		logger.Info("request completed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", duration),
			zap.String("tracking_id", TrackingID(c)),
		)
		return err
	}
}
