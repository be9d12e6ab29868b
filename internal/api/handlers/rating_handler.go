package handlers

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/internal/api/presenters"
	"Dishcovery-Backend/internal/middleware"
	"Dishcovery-Backend/pkg/rating"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RatingHandler interface {
		InsertRating(c *fiber.Ctx) error
		GetAllRatings(c *fiber.Ctx) error
		GetRating(c *fiber.Ctx) error
		GetRatingsByRecipe(c *fiber.Ctx) error
		GetRecipeRatingSummary(c *fiber.Ctx) error
		UpdateRating(c *fiber.Ctx) error
		DeleteRating(c *fiber.Ctx) error
	}

	ratingHandler struct {
		ratingService rating.RatingService
		validator     *validator.Validate
	}
)

func NewRatingHandler(ratingService rating.RatingService, validator *validator.Validate) RatingHandler {
	return &ratingHandler{
		ratingService: ratingService,
		validator:     validator,
	}
}

func (h *ratingHandler) InsertRating(c *fiber.Ctx) error {
	req := new(domain.CreateRatingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRating, err)
	}

	res, err := h.ratingService.InsertRating(c.Context(), middleware.CallerFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRating, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCreateRating)
}

func (h *ratingHandler) GetAllRatings(c *fiber.Ctx) error {
	res, err := h.ratingService.GetAllRatings(c.Context())
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRatings, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRatings)
}

func (h *ratingHandler) GetRating(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRating, err)
	}

	res, err := h.ratingService.GetRatingByID(c.Context(), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRating, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRating)
}

func (h *ratingHandler) GetRatingsByRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "recipeId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRatings, err)
	}

	res, err := h.ratingService.GetRatingsByRecipeID(c.Context(), recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRatings, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRatings)
}

func (h *ratingHandler) GetRecipeRatingSummary(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "recipeId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetSummary, err)
	}

	res, err := h.ratingService.GetRecipeRatingSummary(c.Context(), recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetSummary, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetSummary)
}

func (h *ratingHandler) UpdateRating(c *fiber.Ctx) error {
	id, err := paramOrQueryID(c, "ratingId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRating, err)
	}
	req := new(domain.UpdateRatingRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRating, err)
	}

	res, err := h.ratingService.UpdateRating(c.Context(), middleware.CallerFrom(c), id, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRating, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRating)
}

func (h *ratingHandler) DeleteRating(c *fiber.Ctx) error {
	id, err := paramOrQueryID(c, "ratingId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRating, err)
	}

	if err := h.ratingService.DeleteRating(c.Context(), middleware.CallerFrom(c), id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRating, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRating)
}
