package http

import (
	"context"
	"runtime/debug"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/jwt-issuer/internal/config"
	"github.com/spec-kit/jwt-issuer/internal/observability"
	apperrors "github.com/spec-kit/jwt-issuer/pkg/util"
)

// TrackingHeader carries the per-request tracking id.
const TrackingHeader = "Trackingid"

// MiddlewareConfig tunes the global middlewares.
type MiddlewareConfig struct {
	Timeout        time.Duration
	TrackingPrefix string
}

// NewApp creates the fiber application with the JSON codec and routing
// options the service relies on.
func NewApp(cfg config.AppConfig) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:               cfg.Name,
		CaseSensitive:         true,
		StrictRouting:         false,
		BodyLimit:             cfg.BodyLimitBytes,
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
	})
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, logger *zap.Logger, metrics *observability.Metrics, cfg MiddlewareConfig) {
	app.Use(trackingMiddleware(cfg.TrackingPrefix))
	app.Use(observability.RequestLogger(logger, metrics))
	app.Use(errorHandlingMiddleware(logger, metrics))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func trackingMiddleware(prefix string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := prefix + uuid.NewString()
		c.Locals(observability.TrackingIDKey, id)
		c.Set(TrackingHeader, id)
		c.Set(fiber.HeaderCacheControl, "no-cache")
		return c.Next()
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				domainErr := apperrors.ToDomainError(err)
				metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
				body := fiber.Map{
					"code":    domainErr.Code,
					"status":  domainErr.HTTPStatus,
					"message": domainErr.PublicMessage(),
				}
				if len(domainErr.Details) > 0 {
					body["details"] = domainErr.Details
				}
				if domainErr.HTTPStatus >= 500 {
					logger.Error("request failed", zap.Error(domainErr), zap.String("tracking_id", observability.TrackingID(c)))
				}
				c.Status(domainErr.HTTPStatus)
				_ = c.JSON(fiber.Map{"error": body})
				err = nil
			}
		}()
		return c.Next()
	}
}
