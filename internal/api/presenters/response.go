package presenters

import (
	"Dishcovery-Backend/domain"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	res := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(statusCode).JSON(res)
}

// StatusFor maps an error to the HTTP status it should be reported with.
func StatusFor(err error) int {
	var verr validator.ValidationErrors
	if errors.As(err, &verr) {
		return fiber.StatusBadRequest
	}

	switch domain.KindOf(err) {
	case domain.KindValidation:
		return fiber.StatusBadRequest
	case domain.KindUnauthenticated:
		return fiber.StatusUnauthorized
	case domain.KindForbidden:
		return fiber.StatusForbidden
	case domain.KindNotFound:
		return fiber.StatusNotFound
	case domain.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError writes err with the status its kind calls for. Internal errors
// are logged in full and replaced by a generic message.
func HandleError(c *fiber.Ctx, message string, err error) error {
	status := StatusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorf("%s %s: %s: %v", c.Method(), c.OriginalURL(), message, err)
		return ErrorResponse(c, status, message, errors.New(domain.MessageInternalError))
	}
	return ErrorResponse(c, status, message, err)
}
