package domain

import (
	"time"
)

const (
	MinRatingScore    = 1
	MaxRatingScore    = 5
	MaxFeedbackLength = 1000
)

var (
	MessageSuccessCreateRating = "rating created successfully"
	MessageSuccessGetRatings   = "ratings retrieved successfully"
	MessageSuccessGetRating    = "rating retrieved successfully"
	MessageSuccessGetSummary   = "rating summary retrieved successfully"
	MessageSuccessUpdateRating = "rating updated successfully"
	MessageSuccessDeleteRating = "rating deleted successfully"

	MessageFailedCreateRating = "failed to create rating"
	MessageFailedGetRatings   = "failed to retrieve ratings"
	MessageFailedGetRating    = "failed to retrieve rating"
	MessageFailedGetSummary   = "failed to retrieve rating summary"
	MessageFailedUpdateRating = "failed to update rating"
	MessageFailedDeleteRating = "failed to delete rating"

	ErrRatingNotFound        = NewError(KindNotFound, "rating not found")
	ErrRatingScoreOutOfRange = NewError(KindValidation, "score must be between 1 and 5")
	ErrRatingFeedbackTooLong = NewError(KindValidation, "feedback must be at most 1000 characters")
)

type (
	CreateRatingRequest struct {
		UserID   uint   `json:"user_id"`
		RecipeID uint   `json:"recipe_id" validate:"required,gt=0"`
		Score    int    `json:"score" validate:"required,min=1,max=5"`
		Feedback string `json:"feedback" validate:"max=1000"`
	}

	UpdateRatingRequest struct {
		Score    *int    `json:"score" validate:"omitempty,min=1,max=5"`
		Feedback *string `json:"feedback" validate:"omitempty,max=1000"`
	}

	Rating struct {
		ID        uint      `json:"id"`
		UserID    uint      `json:"user_id"`
		RecipeID  uint      `json:"recipe_id"`
		Score     int       `json:"score"`
		Feedback  string    `json:"feedback"`
		CreatedAt time.Time `json:"created_at"`
	}

	RatingSummary struct {
		RecipeID uint    `json:"recipe_id"`
		Average  float64 `json:"average"`
		Count    int64   `json:"count"`
	}
)
