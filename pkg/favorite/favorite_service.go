package favorite

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/pkg/auth"
	"Dishcovery-Backend/pkg/recipe"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	RecipeLookup interface {
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
	}

	FavoriteService interface {
		InsertFavorite(ctx context.Context, caller domain.Caller, req domain.CreateFavoriteRequest) (domain.Favorite, error)
		GetAllFavorites(ctx context.Context, caller domain.Caller) ([]domain.Favorite, error)
		GetFavoriteByID(ctx context.Context, caller domain.Caller, id uint) (domain.Favorite, error)
		GetUserFavorites(ctx context.Context, caller domain.Caller, userID uint) ([]domain.Favorite, error)
		UpdateFavorite(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateFavoriteRequest) (domain.Favorite, error)
		DeleteFavorite(ctx context.Context, caller domain.Caller, id uint) error
	}

	favoriteService struct {
		favoriteRepository FavoriteRepository
		recipes            RecipeLookup
		guard              auth.Guard
	}
)

func NewFavoriteService(favoriteRepository FavoriteRepository, recipes RecipeLookup, guard auth.Guard) FavoriteService {
	return &favoriteService{
		favoriteRepository: favoriteRepository,
		recipes:            recipes,
		guard:              guard,
	}
}

func toFavoriteResponse(favorite *entities.Favorite) domain.Favorite {
	res := domain.Favorite{
		ID:       favorite.ID,
		UserID:   favorite.UserID,
		RecipeID: favorite.RecipeID,
	}
	if favorite.Recipe != nil {
		r := recipe.ToRecipeResponse(favorite.Recipe)
		res.Recipe = &r
	}
	return res
}

func toFavoriteResponses(favorites []*entities.Favorite) []domain.Favorite {
	res := make([]domain.Favorite, 0, len(favorites))
	for _, f := range favorites {
		res = append(res, toFavoriteResponse(f))
	}
	return res
}

func (s *favoriteService) getFavorite(ctx context.Context, id uint) (*entities.Favorite, error) {
	favorite, err := s.favoriteRepository.GetFavoriteByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFavoriteNotFound
		}
		return nil, err
	}
	return favorite, nil
}

func (s *favoriteService) requireRecipe(ctx context.Context, caller domain.Caller, recipeID uint) error {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	return s.guard.RequireRecipeVisible(ctx, caller, recipe)
}

// visibleFavorites drops favorites whose recipe the caller may no longer see.
func (s *favoriteService) visibleFavorites(ctx context.Context, caller domain.Caller, favorites []*entities.Favorite) ([]*entities.Favorite, error) {
	visible := make([]*entities.Favorite, 0, len(favorites))
	for _, f := range favorites {
		if f.Recipe != nil {
			ok, err := s.guard.CanViewRecipe(ctx, caller, f.Recipe)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
		}
		visible = append(visible, f)
	}
	return visible, nil
}

func (s *favoriteService) requireUnique(ctx context.Context, userID uint, recipeID uint) error {
	exists, err := s.favoriteRepository.FavoriteExists(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrFavoriteExists
	}
	return nil
}

func (s *favoriteService) InsertFavorite(ctx context.Context, caller domain.Caller, req domain.CreateFavoriteRequest) (domain.Favorite, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Favorite{}, err
	}
	userID := req.UserID
	if userID == 0 {
		userID = caller.UserID
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, userID); err != nil {
		return domain.Favorite{}, err
	}
	if err := s.requireRecipe(ctx, caller, req.RecipeID); err != nil {
		return domain.Favorite{}, err
	}
	if err := s.requireUnique(ctx, userID, req.RecipeID); err != nil {
		return domain.Favorite{}, err
	}

	favorite := &entities.Favorite{
		UserID:   userID,
		RecipeID: req.RecipeID,
	}
	if err := s.favoriteRepository.CreateFavorite(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Favorite{}, domain.ErrFavoriteExists
		}
		return domain.Favorite{}, err
	}
	return toFavoriteResponse(favorite), nil
}

// GetAllFavorites lists every user's favorites, so it is admin-only.
func (s *favoriteService) GetAllFavorites(ctx context.Context, caller domain.Caller) ([]domain.Favorite, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepository.GetAllFavorites(ctx)
	if err != nil {
		return nil, err
	}
	return toFavoriteResponses(favorites), nil
}

func (s *favoriteService) GetFavoriteByID(ctx context.Context, caller domain.Caller, id uint) (domain.Favorite, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Favorite{}, err
	}
	favorite, err := s.getFavorite(ctx, id)
	if err != nil {
		return domain.Favorite{}, err
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, favorite.UserID); err != nil {
		return domain.Favorite{}, err
	}
	return toFavoriteResponse(favorite), nil
}

func (s *favoriteService) GetUserFavorites(ctx context.Context, caller domain.Caller, userID uint) ([]domain.Favorite, error) {
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, userID); err != nil {
		return nil, err
	}
	favorites, err := s.favoriteRepository.GetFavoritesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	favorites, err = s.visibleFavorites(ctx, caller, favorites)
	if err != nil {
		return nil, err
	}
	return toFavoriteResponses(favorites), nil
}

func (s *favoriteService) UpdateFavorite(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateFavoriteRequest) (domain.Favorite, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Favorite{}, err
	}
	favorite, err := s.getFavorite(ctx, id)
	if err != nil {
		return domain.Favorite{}, err
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, favorite.UserID); err != nil {
		return domain.Favorite{}, err
	}

	userID, recipeID := favorite.UserID, favorite.RecipeID
	if req.UserID != nil && *req.UserID != userID {
		if err := s.guard.RequireOwnerOrAdmin(ctx, caller, *req.UserID); err != nil {
			return domain.Favorite{}, err
		}
		userID = *req.UserID
	}
	if req.RecipeID != nil && *req.RecipeID != recipeID {
		if err := s.requireRecipe(ctx, caller, *req.RecipeID); err != nil {
			return domain.Favorite{}, err
		}
		recipeID = *req.RecipeID
	}

	if userID == favorite.UserID && recipeID == favorite.RecipeID {
		return toFavoriteResponse(favorite), nil
	}
	if err := s.requireUnique(ctx, userID, recipeID); err != nil {
		return domain.Favorite{}, err
	}

	favorite.UserID = userID
	favorite.RecipeID = recipeID
	if err := s.favoriteRepository.UpdateFavorite(ctx, favorite); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.Favorite{}, domain.ErrFavoriteExists
		}
		return domain.Favorite{}, err
	}
	return toFavoriteResponse(favorite), nil
}

func (s *favoriteService) DeleteFavorite(ctx context.Context, caller domain.Caller, id uint) error {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return err
	}
	favorite, err := s.getFavorite(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, favorite.UserID); err != nil {
		return err
	}

	if err := s.favoriteRepository.DeleteFavorite(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrFavoriteNotFound
		}
		return err
	}
	return nil
}
