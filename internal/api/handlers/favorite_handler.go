package handlers

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/internal/api/presenters"
	"Dishcovery-Backend/internal/middleware"
	"Dishcovery-Backend/pkg/favorite"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FavoriteHandler interface {
		InsertFavorite(c *fiber.Ctx) error
		GetAllFavorites(c *fiber.Ctx) error
		GetFavorite(c *fiber.Ctx) error
		GetUserFavorites(c *fiber.Ctx) error
		UpdateFavorite(c *fiber.Ctx) error
		DeleteFavorite(c *fiber.Ctx) error
	}

	favoriteHandler struct {
		favoriteService favorite.FavoriteService
		validator       *validator.Validate
	}
)

func NewFavoriteHandler(favoriteService favorite.FavoriteService, validator *validator.Validate) FavoriteHandler {
	return &favoriteHandler{
		favoriteService: favoriteService,
		validator:       validator,
	}
}

func (h *favoriteHandler) InsertFavorite(c *fiber.Ctx) error {
	req := new(domain.CreateFavoriteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFavorite, err)
	}

	res, err := h.favoriteService.InsertFavorite(c.Context(), middleware.CallerFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateFavorite, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCreateFavorite)
}

func (h *favoriteHandler) GetAllFavorites(c *fiber.Ctx) error {
	res, err := h.favoriteService.GetAllFavorites(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFavorites, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

func (h *favoriteHandler) GetFavorite(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFavorite, err)
	}

	res, err := h.favoriteService.GetFavoriteByID(c.Context(), middleware.CallerFrom(c), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFavorite, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorite)
}

func (h *favoriteHandler) GetUserFavorites(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFavorites, domain.ErrInvalidUserID)
	}

	res, err := h.favoriteService.GetUserFavorites(c.Context(), middleware.CallerFrom(c), userID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetFavorites, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFavorites)
}

func (h *favoriteHandler) UpdateFavorite(c *fiber.Ctx) error {
	id, err := paramOrQueryID(c, "favoriteId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateFavorite, err)
	}
	req := new(domain.UpdateFavoriteRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateFavorite, err)
	}

	res, err := h.favoriteService.UpdateFavorite(c.Context(), middleware.CallerFrom(c), id, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateFavorite, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateFavorite)
}

func (h *favoriteHandler) DeleteFavorite(c *fiber.Ctx) error {
	id, err := paramOrQueryID(c, "favoriteId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteFavorite, err)
	}

	if err := h.favoriteService.DeleteFavorite(c.Context(), middleware.CallerFrom(c), id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteFavorite, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteFavorite)
}
