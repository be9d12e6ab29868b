package ingredient

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/pkg/auth"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type (
	// RecipeLookup resolves the recipe an ingredient belongs to, for ownership checks.
	RecipeLookup interface {
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
	}

	IngredientService interface {
		AddIngredient(ctx context.Context, caller domain.Caller, req domain.AddIngredientRequest) (domain.IngredientResponse, error)
		GetAllIngredients(ctx context.Context, caller domain.Caller) ([]domain.IngredientResponse, error)
		GetIngredientByID(ctx context.Context, caller domain.Caller, id uint) (domain.IngredientResponse, error)
		GetIngredientsByRecipeID(ctx context.Context, caller domain.Caller, recipeID uint) ([]domain.IngredientResponse, error)
		UpdateIngredient(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateIngredientRequest) (domain.IngredientResponse, error)
		DeleteIngredient(ctx context.Context, caller domain.Caller, id uint) error
	}

	ingredientService struct {
		ingredientRepository IngredientRepository
		recipes              RecipeLookup
		guard                auth.Guard
	}
)

func NewIngredientService(ingredientRepository IngredientRepository, recipes RecipeLookup, guard auth.Guard) IngredientService {
	return &ingredientService{
		ingredientRepository: ingredientRepository,
		recipes:              recipes,
		guard:                guard,
	}
}

func (s *ingredientService) authorizeRecipe(ctx context.Context, caller domain.Caller, recipeID uint) error {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return err
	}
	recipe, err := s.lookupRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, recipe.UserID); err != nil {
		if domain.IsForbidden(err) {
			return domain.ErrUnauthorizedRecipeAccess
		}
		return err
	}
	return nil
}

func (s *ingredientService) getIngredient(ctx context.Context, id uint) (*entities.Ingredient, error) {
	ingredient, err := s.ingredientRepository.GetIngredientByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrIngredientNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *ingredientService) AddIngredient(ctx context.Context, caller domain.Caller, req domain.AddIngredientRequest) (domain.IngredientResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.IngredientResponse{}, domain.ErrIngredientNameRequired
	}
	if err := s.authorizeRecipe(ctx, caller, req.RecipeID); err != nil {
		return domain.IngredientResponse{}, err
	}

	ingredient := &entities.Ingredient{
		Name:     name,
		Quantity: strings.TrimSpace(req.Quantity),
		RecipeID: req.RecipeID,
	}
	if err := s.ingredientRepository.CreateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return ToIngredientResponse(ingredient), nil
}

func (s *ingredientService) lookupRecipe(ctx context.Context, recipeID uint) (*entities.Recipe, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// requireVisibleRecipe hides the ingredients of pending recipes from
// everyone but the owner and administrators.
func (s *ingredientService) requireVisibleRecipe(ctx context.Context, caller domain.Caller, recipeID uint) error {
	recipe, err := s.lookupRecipe(ctx, recipeID)
	if err != nil {
		return err
	}
	return s.guard.RequireRecipeVisible(ctx, caller, recipe)
}

func (s *ingredientService) GetAllIngredients(ctx context.Context, caller domain.Caller) ([]domain.IngredientResponse, error) {
	admin, err := s.guard.IsAdmin(ctx, caller)
	if err != nil {
		return nil, err
	}

	var ingredients []*entities.Ingredient
	if admin {
		ingredients, err = s.ingredientRepository.GetAllIngredients(ctx)
	} else {
		ingredients, err = s.ingredientRepository.GetVisibleIngredients(ctx, caller.UserID)
	}
	if err != nil {
		return nil, err
	}
	return ToIngredientResponses(ingredients), nil
}

func (s *ingredientService) GetIngredientByID(ctx context.Context, caller domain.Caller, id uint) (domain.IngredientResponse, error) {
	ingredient, err := s.getIngredient(ctx, id)
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	if err := s.requireVisibleRecipe(ctx, caller, ingredient.RecipeID); err != nil {
		if errors.Is(err, domain.ErrRecipeNotFound) {
			return domain.IngredientResponse{}, domain.ErrIngredientNotFound
		}
		return domain.IngredientResponse{}, err
	}
	return ToIngredientResponse(ingredient), nil
}

func (s *ingredientService) GetIngredientsByRecipeID(ctx context.Context, caller domain.Caller, recipeID uint) ([]domain.IngredientResponse, error) {
	if err := s.requireVisibleRecipe(ctx, caller, recipeID); err != nil {
		return nil, err
	}
	ingredients, err := s.ingredientRepository.GetIngredientsByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return ToIngredientResponses(ingredients), nil
}

func (s *ingredientService) UpdateIngredient(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateIngredientRequest) (domain.IngredientResponse, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.IngredientResponse{}, err
	}
	ingredient, err := s.getIngredient(ctx, id)
	if err != nil {
		return domain.IngredientResponse{}, err
	}
	if err := s.authorizeRecipe(ctx, caller, ingredient.RecipeID); err != nil {
		return domain.IngredientResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.IngredientResponse{}, domain.ErrIngredientNameRequired
		}
		ingredient.Name = name
	}
	if req.Quantity != nil {
		ingredient.Quantity = strings.TrimSpace(*req.Quantity)
	}

	if err := s.ingredientRepository.UpdateIngredient(ctx, ingredient); err != nil {
		return domain.IngredientResponse{}, err
	}
	return ToIngredientResponse(ingredient), nil
}

func (s *ingredientService) DeleteIngredient(ctx context.Context, caller domain.Caller, id uint) error {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return err
	}
	ingredient, err := s.getIngredient(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorizeRecipe(ctx, caller, ingredient.RecipeID); err != nil {
		return err
	}

	if err := s.ingredientRepository.DeleteIngredient(ctx, ingredient); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrIngredientNotFound
		}
		return err
	}
	return nil
}
