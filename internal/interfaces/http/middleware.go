package http

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/pkg/logger"
)

// AccessLog registra método, ruta, estado y duración de cada petición.
// Las respuestas 5xx se registran como error con la causa que dejó respondError.
func AccessLog(log *logger.Logger) fiber.Handler {
	log = log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// El ErrorHandler escribe la respuesta; aquí solo se fija el estado para el log.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()

		ev := log.Info()
		switch {
		case status >= 500:
			ev = log.Error()
			if cause, ok := c.Locals(localError).(error); ok {
				ev = ev.Err(cause)
			}
		case status >= 400:
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.IP()).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return nil
	}
}

type ipLimiter struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// RateLimit limita peticiones por IP con un token bucket por cliente.
// requestsPerMinute <= 0 desactiva el límite.
func RateLimit(requestsPerMinute, burst int) fiber.Handler {
	if requestsPerMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	if burst <= 0 {
		burst = requestsPerMinute
	}
	limiters := &sync.Map{}
	every := rate.Every(time.Minute / time.Duration(requestsPerMinute))
	var sweeps atomic.Int64

	return func(c *fiber.Ctx) error {
		now := time.Now()
		val, _ := limiters.LoadOrStore(c.IP(), &ipLimiter{limiter: rate.NewLimiter(every, burst), lastSeen: now})
		l := val.(*ipLimiter)
		l.mu.Lock()
		l.lastSeen = now
		l.mu.Unlock()

		// Limpieza perezosa de IPs inactivas cada mil peticiones.
		if sweeps.Add(1)%1000 == 0 {
			limiters.Range(func(key, value any) bool {
				v := value.(*ipLimiter)
				v.mu.Lock()
				idle := now.Sub(v.lastSeen) > 10*time.Minute
				v.mu.Unlock()
				if idle {
					limiters.Delete(key)
				}
				return true
			})
		}

		if !l.limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{Code: "RATE_LIMITED", Message: "demasiadas peticiones, intente más tarde"})
		}
		return c.Next()
	}
}
