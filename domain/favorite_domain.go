package domain

var (
	MessageSuccessCreateFavorite = "favorite added successfully"
	MessageSuccessGetFavorites   = "favorites retrieved successfully"
	MessageSuccessGetFavorite    = "favorite retrieved successfully"
	MessageSuccessUpdateFavorite = "favorite updated successfully"
	MessageSuccessDeleteFavorite = "favorite removed successfully"

	MessageFailedCreateFavorite = "failed to add favorite"
	MessageFailedGetFavorites   = "failed to retrieve favorites"
	MessageFailedGetFavorite    = "failed to retrieve favorite"
	MessageFailedUpdateFavorite = "failed to update favorite"
	MessageFailedDeleteFavorite = "failed to remove favorite"

	ErrFavoriteNotFound = NewError(KindNotFound, "favorite not found")
	ErrFavoriteExists   = NewError(KindConflict, "recipe is already in favorites")
)

type (
	CreateFavoriteRequest struct {
		UserID   uint `json:"user_id"`
		RecipeID uint `json:"recipe_id" validate:"required,gt=0"`
	}

	UpdateFavoriteRequest struct {
		UserID   *uint `json:"user_id" validate:"omitempty,gt=0"`
		RecipeID *uint `json:"recipe_id" validate:"omitempty,gt=0"`
	}

	Favorite struct {
		ID       uint    `json:"id"`
		UserID   uint    `json:"user_id"`
		RecipeID uint    `json:"recipe_id"`
		Recipe   *Recipe `json:"recipe,omitempty"`
	}
)
