package middleware

import (
	"errors"
	"net/http"

	"github.com/bilgisen/newz/internal/logger"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Validator wraps a shared validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

// ValidationError carries the failed field tags of a request body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "Validation failed"
}

// Validate checks s against its validate tags. Failures are returned as *ValidationError.
func (v *Validator) Validate(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fe.Tag()
	}
	return &ValidationError{Fields: fields}
}

type normalizer interface {
	Normalize()
}

// BindJSON decodes the request body into out, normalizes it when out has a
// Normalize method, and validates it.
// It returns a *fiber.Error (400) for an unreadable body.
func (v *Validator) BindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if n, ok := out.(normalizer); ok {
		n.Normalize()
	}
	return v.Validate(out)
}

func statusOf(err error) int {
	var fe *fiber.Error
	var ve *ValidationError
	switch {
	case errors.As(err, &fe):
		return fe.Code
	case errors.As(err, &ve):
		return fiber.StatusUnprocessableEntity
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders every error returned by a handler as {"error": ...}.
// Unexpected errors are logged and hidden behind the status text.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := statusOf(err)

	var ve *ValidationError
	if errors.As(err, &ve) {
		return c.Status(code).JSON(fiber.Map{
			"error":  ve.Error(),
			"fields": ve.Fields,
		})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}

	logger.Get().Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Int("status", code).
		Msg("HTTP error")

	return c.Status(code).JSON(fiber.Map{
		"error": http.StatusText(code),
	})
}
