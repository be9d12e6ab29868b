package handlers

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/internal/api/presenters"
	"Dishcovery-Backend/internal/middleware"
	"Dishcovery-Backend/pkg/ingredient"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	IngredientHandler interface {
		AddIngredient(c *fiber.Ctx) error
		GetAllIngredients(c *fiber.Ctx) error
		GetIngredient(c *fiber.Ctx) error
		GetIngredientsByRecipe(c *fiber.Ctx) error
		UpdateIngredient(c *fiber.Ctx) error
		DeleteIngredient(c *fiber.Ctx) error
	}

	ingredientHandler struct {
		ingredientService ingredient.IngredientService
		validator         *validator.Validate
	}
)

func NewIngredientHandler(ingredientService ingredient.IngredientService, validator *validator.Validate) IngredientHandler {
	return &ingredientHandler{
		ingredientService: ingredientService,
		validator:         validator,
	}
}

func (h *ingredientHandler) AddIngredient(c *fiber.Ctx) error {
	req := new(domain.AddIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddIngredient, err)
	}

	res, err := h.ingredientService.AddIngredient(c.Context(), middleware.CallerFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedAddIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddIngredient)
}

func (h *ingredientHandler) GetAllIngredients(c *fiber.Ctx) error {
	res, err := h.ingredientService.GetAllIngredients(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) GetIngredient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetIngredient, err)
	}

	res, err := h.ingredientService.GetIngredientByID(c.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredient)
}

func (h *ingredientHandler) GetIngredientsByRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "recipeId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetIngredients, err)
	}

	res, err := h.ingredientService.GetIngredientsByRecipeID(c.Context(), middleware.CallerFrom(c), recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetIngredients, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetIngredients)
}

func (h *ingredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateIngredient, err)
	}
	req := new(domain.UpdateIngredientRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateIngredient, err)
	}

	res, err := h.ingredientService.UpdateIngredient(c.Context(), middleware.CallerFrom(c), id, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateIngredient, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateIngredient)
}

func (h *ingredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteIngredient, err)
	}

	if err := h.ingredientService.DeleteIngredient(c.Context(), middleware.CallerFrom(c), id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteIngredient, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteIngredient)
}
