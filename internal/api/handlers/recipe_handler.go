package handlers

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/internal/api/presenters"
	"Dishcovery-Backend/internal/middleware"
	"Dishcovery-Backend/pkg/recipe"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		InsertRecipe(c *fiber.Ctx) error
		GetAllRecipes(c *fiber.Ctx) error
		GetRecipe(c *fiber.Ctx) error
		GetRecipesByUserID(c *fiber.Ctx) error
		SearchRecipes(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadImage(c *fiber.Ctx) error

		GetPendingRecipes(c *fiber.Ctx) error
		GetApprovedRecipes(c *fiber.Ctx) error
		ApproveRecipe(c *fiber.Ctx) error
		RejectRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

func (h *recipeHandler) InsertRecipe(c *fiber.Ctx) error {
	caller := middleware.CallerFrom(c)
	if !caller.Authenticated() {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, domain.ErrAuthRequired)
	}

	req := new(domain.CreateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedBodyRequest, bodyError(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.InsertRecipe(c.Context(), caller, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetAllRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetAllRecipes(c.Context())
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipe, err)
	}

	res, err := h.recipeService.GetRecipeByID(c.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipe)
}

func (h *recipeHandler) GetRecipesByUserID(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, domain.ErrInvalidUserID)
	}

	res, err := h.recipeService.GetRecipesByUserID(c.Context(), middleware.CallerFrom(c), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) SearchRecipes(c *fiber.Ctx) error {
	req := domain.RecipeSearchRequest{
		Query:      c.Query("q"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
	}

	if raw := c.Query("maxPrice"); raw != "" {
		maxPrice, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, err)
		}
		req.MaxPrice = &maxPrice
	}
	if raw := c.Query("maxCookTime"); raw != "" {
		maxCookTime, err := strconv.Atoi(raw)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, err)
		}
		req.MaxCookTime = &maxCookTime
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSearchRecipes, err)
	}

	res, err := h.recipeService.SearchRecipes(c.Context(), req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedSearchRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSearchRecipes)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	req := new(domain.UpdateRecipeRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.HandleError(c, domain.MessageFailedBodyRequest, bodyError(err))
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), middleware.CallerFrom(c), id, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}

	if err := h.recipeService.DeleteRecipe(c.Context(), middleware.CallerFrom(c), id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteRecipe, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) UploadImage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadImage, err)
	}
	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUploadImage, err)
	}

	res, err := h.recipeService.UploadImage(c.Context(), middleware.CallerFrom(c), id, file)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUploadImage, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) GetPendingRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetPendingRecipes(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetApprovedRecipes(c *fiber.Ctx) error {
	res, err := h.recipeService.GetApprovedRecipes(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetRecipes, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) ApproveRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedApproveRecipe, err)
	}

	res, err := h.recipeService.ApproveRecipe(c.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedApproveRecipe, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessApproveRecipe)
}

func (h *recipeHandler) RejectRecipe(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedRejectRecipe, err)
	}

	if err := h.recipeService.RejectRecipe(c.Context(), middleware.CallerFrom(c), id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedRejectRecipe, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessRejectRecipe)
}
