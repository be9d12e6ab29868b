package domain

import (
	"time"
)

var (
	MessageSuccessCreateComment = "comment created successfully"
	MessageSuccessGetComments   = "comments retrieved successfully"
	MessageSuccessGetComment    = "comment retrieved successfully"
	MessageSuccessUpdateComment = "comment updated successfully"
	MessageSuccessDeleteComment = "comment deleted successfully"

	MessageFailedCreateComment = "failed to create comment"
	MessageFailedGetComments   = "failed to retrieve comments"
	MessageFailedGetComment    = "failed to retrieve comment"
	MessageFailedUpdateComment = "failed to update comment"
	MessageFailedDeleteComment = "failed to delete comment"

	ErrCommentNotFound = NewError(KindNotFound, "comment not found")
)

type (
	CreateCommentRequest struct {
		Content  string `json:"content" validate:"required,notblank"`
		UserID   uint   `json:"user_id"`
		RecipeID uint   `json:"recipe_id" validate:"required,gt=0"`
	}

	UpdateCommentRequest struct {
		Content *string `json:"content" validate:"omitempty,notblank"`
	}

	Comment struct {
		ID        uint      `json:"id"`
		Content   string    `json:"content"`
		UserID    uint      `json:"user_id"`
		Username  string    `json:"username,omitempty"`
		RecipeID  uint      `json:"recipe_id"`
		CreatedAt time.Time `json:"created_at"`
	}
)
