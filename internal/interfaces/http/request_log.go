package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Gimnasio-api/pkg/logger"
	"github.com/jhoicas/Gimnasio-api/pkg/metrics"
)

const (
	requestIDHeader = "X-Request-Id"
	LocalRequestID  = "request_id"
)

// RequestLogger asigna un request id, registra cada petición y alimenta las métricas HTTP.
// Las métricas se etiquetan con la ruta registrada (/api/clients/:id), no con el path crudo.
func RequestLogger(log *logger.Logger, m *metrics.HTTPMetrics) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDHeader, reqID)
		c.Locals(LocalRequestID, reqID)

		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler fije el status antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()
		m.Observe(c.Method(), c.Route().Path, status, latency)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", reqID).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", latency).
			Int64("user_id", GetUserID(c)).
			Msg("petición")
		return nil
	}
}
