package handlers

import (
	"Dishcovery-Backend/domain"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func parseUint(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return uint(id), nil
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	return parseUint(c.Params(name))
}

// paramOrQueryID reads the id from the :id route param, falling back to the
// named query parameter (e.g. ?commentId=3) older clients send.
func paramOrQueryID(c *fiber.Ctx, query string) (uint, error) {
	if raw := c.Params("id"); raw != "" {
		return parseUint(raw)
	}
	return parseUint(c.Query(query))
}

// bodyError keeps typed decode errors (such as a malformed ingredients
// payload) and reports anything else as a bad request.
func bodyError(err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return de
	}
	return domain.NewError(domain.KindValidation, err.Error())
}
