package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/petshop-api/internal/application/dto"
	"github.com/jhoicas/petshop-api/internal/domain"
)

// localError guarda el error interno para que el access log lo registre.
const localError = "handler_error"

// errorMapping código HTTP y código de negocio por error de dominio. El orden importa:
// un ErrAlreadyCancelled de compra también es ErrInvalidState.
var errorMapping = []struct {
	target error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrCreditLimitExceeded, fiber.StatusConflict, "CREDIT_LIMIT"},
	{domain.ErrAlreadyCancelled, fiber.StatusConflict, "ALREADY_CANCELLED"},
	{domain.ErrInvalidState, fiber.StatusConflict, "INVALID_STATE"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
}

// respondError traduce un error de caso de uso a dto.ErrorResponse.
// Los errores no tipados responden 500 sin filtrar el detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.target) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	c.Locals(localError, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badQuery(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: message})
}

// ErrorHandler manejador de errores de Fiber (rutas inexistentes, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusBadRequest:
			code = "VALIDATION"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return respondError(c, err)
}

// checkID exige un UUID canónico; vacío se acepta para campos opcionales.
func checkID(field, id string) error {
	if id == "" {
		return nil
	}
	if len(id) != 36 {
		return domain.Invalid(field, "identificador inválido")
	}
	if _, err := uuid.Parse(id); err != nil {
		return domain.Invalid(field, "identificador inválido")
	}
	return nil
}

// checkIDs valida pares campo, valor.
func checkIDs(fieldValues ...string) error {
	for i := 0; i+1 < len(fieldValues); i += 2 {
		if err := checkID(fieldValues[i], fieldValues[i+1]); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// queryIDs valida los filtros por id presentes en la query.
func queryIDs(c *fiber.Ctx, keys ...string) error {
	for _, k := range keys {
		if err := checkID(k, c.Query(k)); err != nil {
			return err
		}
	}
	return nil
}

// RequireUUIDParam responde 400 VALIDATION si el parámetro de ruta no es un UUID.
func RequireUUIDParam(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Params(param) == "" {
			return respondError(c, domain.Invalid(param, "requerido"))
		}
		if err := checkID(param, c.Params(param)); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// page lee limit y offset con los mismos topes que los repositorios.
func page(c *fiber.Ctx) (limit, offset int) {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p.Limit, p.Offset
}

// dateRange interpreta from/to (YYYY-MM-DD). to incluye el día completo.
func dateRange(c *fiber.Ctx) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(time.DateOnly, s)
		if perr != nil {
			return nil, nil, domain.Invalid("from", "formato esperado YYYY-MM-DD")
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(time.DateOnly, s)
		if perr != nil {
			return nil, nil, domain.Invalid("to", "formato esperado YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, domain.Invalid("to", "anterior a from")
	}
	return from, to, nil
}

// boolQuery devuelve nil si el parámetro no vino.
func boolQuery(c *fiber.Ctx, key string) *bool {
	if c.Query(key) == "" {
		return nil
	}
	v := c.QueryBool(key)
	return &v
}
