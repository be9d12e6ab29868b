package domain

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RecipeStatusPending  = "pending"
	RecipeStatusApproved = "approved"
)

var (
	MessageSuccessGetRecipes    = "success get recipes"
	MessageSuccessGetRecipe     = "success get recipe detail"
	MessageSuccessCreateRecipe  = "recipe created successfully"
	MessageSuccessUpdateRecipe  = "recipe updated successfully"
	MessageSuccessDeleteRecipe  = "recipe deleted successfully"
	MessageSuccessApproveRecipe = "recipe approved successfully"
	MessageSuccessRejectRecipe  = "recipe rejected successfully"
	MessageSuccessUploadImage   = "recipe image uploaded successfully"
	MessageSuccessSearchRecipes = "success search recipes"

	MessageFailedGetRecipes    = "failed to get recipes"
	MessageFailedGetRecipe     = "failed to get recipe detail"
	MessageFailedCreateRecipe  = "failed to create recipe"
	MessageFailedUpdateRecipe  = "failed to update recipe"
	MessageFailedDeleteRecipe  = "failed to delete recipe"
	MessageFailedApproveRecipe = "failed to approve recipe"
	MessageFailedRejectRecipe  = "failed to reject recipe"
	MessageFailedUploadImage   = "failed to upload recipe image"
	MessageFailedSearchRecipes = "failed to search recipes"

	ErrRecipeNotFound            = NewError(KindNotFound, "recipe not found")
	ErrRecipeTitleRequired       = NewError(KindValidation, "recipe title is required")
	ErrRecipeOwnerMismatch       = NewError(KindForbidden, "recipes can only be created for your own account")
	ErrUnauthorizedRecipeAccess  = NewError(KindForbidden, "unauthorized access to recipe")
	ErrRecipeOwnerChangeDenied   = NewError(KindForbidden, "only administrators can reassign a recipe")
	ErrInvalidImageFormat        = NewError(KindValidation, "invalid image format")
	ErrImageStorageUnavailable   = NewError(KindInternal, "image storage is not configured")
	ErrInvalidLegacyIngredients  = NewError(KindValidation, "legacy ingredients must be a JSON-encoded list")
	ErrInvalidIngredientsPayload = NewError(KindValidation, "ingredients must be a list or a JSON-encoded string")
)

type (
	CreateRecipeRequest struct {
		Title           string           `json:"title" validate:"required,notblank"`
		Description     string           `json:"description" validate:"max=5000"`
		Steps           string           `json:"steps" validate:"max=5000"`
		Category        string           `json:"category"`
		Difficulty      string           `json:"difficulty"`
		CookTimeMinutes *int             `json:"cook_time_minutes" validate:"omitempty,min=0"`
		Image           string           `json:"image"`
		EstimatedPrice  *float64         `json:"estimated_price" validate:"omitempty,min=0"`
		UserID          uint             `json:"user_id" validate:"required,gt=0"`
		IsApproved      *bool            `json:"is_approved"`
		Ingredients     *IngredientInput `json:"ingredients"`
	}

	// UpdateRecipeRequest is a partial update; nil fields are left untouched.
	// A nil Ingredients leaves the ingredient rows as they are.
	UpdateRecipeRequest struct {
		Title           *string          `json:"title" validate:"omitempty,notblank"`
		Description     *string          `json:"description" validate:"omitempty,max=5000"`
		Steps           *string          `json:"steps" validate:"omitempty,max=5000"`
		Category        *string          `json:"category"`
		Difficulty      *string          `json:"difficulty"`
		CookTimeMinutes *int             `json:"cook_time_minutes" validate:"omitempty,min=0"`
		Image           *string          `json:"image"`
		EstimatedPrice  *float64         `json:"estimated_price" validate:"omitempty,min=0"`
		UserID          *uint            `json:"user_id" validate:"omitempty,gt=0"`
		Ingredients     *IngredientInput `json:"ingredients"`
	}

	RecipeSearchRequest struct {
		Query       string   `query:"q"`
		Category    string   `query:"category"`
		Difficulty  string   `query:"difficulty"`
		MaxPrice    *float64 `query:"maxPrice" validate:"omitempty,min=0"`
		MaxCookTime *int     `query:"maxCookTime" validate:"omitempty,min=0"`
	}

	Recipe struct {
		ID              uint                 `json:"id"`
		UserID          uint                 `json:"user_id"`
		Title           string               `json:"title"`
		Description     string               `json:"description"`
		Steps           string               `json:"steps"`
		Category        string               `json:"category"`
		Difficulty      string               `json:"difficulty"`
		CookTimeMinutes *int                 `json:"cook_time_minutes"`
		Image           string               `json:"image"`
		EstimatedPrice  *float64             `json:"estimated_price"`
		IsApproved      bool                 `json:"is_approved"`
		Status          string               `json:"status"`
		Ingredients     []IngredientResponse `json:"ingredients"`
		IngredientsJSON datatypes.JSON       `json:"ingredients_json,omitempty"`
		CreatedAt       time.Time            `json:"created_at"`
		UpdatedAt       time.Time            `json:"updated_at"`
	}
)
