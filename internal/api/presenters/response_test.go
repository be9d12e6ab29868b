package presenters

import (
	"Dishcovery-Backend/domain"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}
	verr := validator.New().Struct(payload{})

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validator errors", verr, fiber.StatusBadRequest},
		{"validation", domain.ErrInvalidID, fiber.StatusBadRequest},
		{"unauthenticated", domain.ErrAuthRequired, fiber.StatusUnauthorized},
		{"forbidden", domain.ErrAdminRequired, fiber.StatusForbidden},
		{"not found", domain.ErrRecipeNotFound, fiber.StatusNotFound},
		{"conflict", domain.ErrFavoriteExists, fiber.StatusConflict},
		{"plain error", errors.New("db is down"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestHandleError_HidesInternalErrors(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c *fiber.Ctx) error {
		return HandleError(c, "failed", errors.New("pq: password authentication failed"))
	})
	app.Get("/missing", func(c *fiber.Ctx) error {
		return HandleError(c, "failed", domain.ErrRecipeNotFound)
	})

	decode := func(path string) (int, Response) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, path, nil))
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		var res Response
		require.NoError(t, json.Unmarshal(body, &res))
		return resp.StatusCode, res
	}

	status, res := decode("/internal")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.False(t, res.Status)
	assert.Equal(t, domain.MessageInternalError, res.Error)

	status, res = decode("/missing")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "recipe not found", res.Error)
}
