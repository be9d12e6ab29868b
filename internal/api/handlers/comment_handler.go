package handlers

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/internal/api/presenters"
	"Dishcovery-Backend/internal/middleware"
	"Dishcovery-Backend/pkg/comment"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CommentHandler interface {
		InsertComment(c *fiber.Ctx) error
		GetAllComments(c *fiber.Ctx) error
		GetComment(c *fiber.Ctx) error
		GetCommentsByRecipe(c *fiber.Ctx) error
		UpdateComment(c *fiber.Ctx) error
		DeleteComment(c *fiber.Ctx) error
	}

	commentHandler struct {
		commentService comment.CommentService
		validator      *validator.Validate
	}
)

func NewCommentHandler(commentService comment.CommentService, validator *validator.Validate) CommentHandler {
	return &commentHandler{
		commentService: commentService,
		validator:      validator,
	}
}

func (h *commentHandler) InsertComment(c *fiber.Ctx) error {
	req := new(domain.CreateCommentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateComment, err)
	}

	res, err := h.commentService.InsertComment(c.Context(), middleware.CallerFrom(c), *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedCreateComment, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCreateComment)
}

func (h *commentHandler) GetAllComments(c *fiber.Ctx) error {
	res, err := h.commentService.GetAllComments(c.Context())
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComments, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComments)
}

func (h *commentHandler) GetComment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComment, err)
	}

	res, err := h.commentService.GetCommentByID(c.Context(), id)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComment, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComment)
}

func (h *commentHandler) GetCommentsByRecipe(c *fiber.Ctx) error {
	recipeID, err := paramID(c, "recipeId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComments, err)
	}

	res, err := h.commentService.GetCommentsByRecipeID(c.Context(), recipeID)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedGetComments, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetComments)
}

func (h *commentHandler) UpdateComment(c *fiber.Ctx) error {
	id, err := paramOrQueryID(c, "commentId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateComment, err)
	}
	req := new(domain.UpdateCommentRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateComment, err)
	}

	res, err := h.commentService.UpdateComment(c.Context(), middleware.CallerFrom(c), id, *req)
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedUpdateComment, err)
	}
	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateComment)
}

func (h *commentHandler) DeleteComment(c *fiber.Ctx) error {
	id, err := paramOrQueryID(c, "commentId")
	if err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}

	if err := h.commentService.DeleteComment(c.Context(), middleware.CallerFrom(c), id); err != nil {
		return presenters.HandleError(c, domain.MessageFailedDeleteComment, err)
	}
	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteComment)
}
