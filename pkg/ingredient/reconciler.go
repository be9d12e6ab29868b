package ingredient

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"context"
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
)

type (
	// Reconciler applies an ingredient payload to a recipe as a full replace.
	Reconciler interface {
		Reconcile(ctx context.Context, recipeID uint, input *domain.IngredientInput) ([]*entities.Ingredient, error)
	}

	reconciler struct {
		ingredientRepository IngredientRepository
	}
)

func NewReconciler(ingredientRepository IngredientRepository) Reconciler {
	return &reconciler{ingredientRepository: ingredientRepository}
}

// Reconcile leaves the stored rows alone when input is nil. Otherwise the
// stored set becomes exactly Normalize(input.Items), possibly empty.
func (r *reconciler) Reconcile(ctx context.Context, recipeID uint, input *domain.IngredientInput) ([]*entities.Ingredient, error) {
	if input == nil {
		return r.ingredientRepository.GetIngredientsByRecipeID(ctx, recipeID)
	}
	return r.ingredientRepository.ReplaceRecipeIngredients(ctx, recipeID, Normalize(input.Items))
}

// Normalize trims names and quantities and drops entries without a name.
func Normalize(items []domain.IngredientItem) []domain.IngredientItem {
	out := make([]domain.IngredientItem, 0, len(items))
	for _, item := range items {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			continue
		}
		out = append(out, domain.IngredientItem{
			Name:     name,
			Quantity: strings.TrimSpace(item.Quantity),
		})
	}
	return out
}

func ToEntities(recipeID uint, items []domain.IngredientItem) []*entities.Ingredient {
	rows := make([]*entities.Ingredient, 0, len(items))
	for _, item := range items {
		rows = append(rows, &entities.Ingredient{
			Name:     item.Name,
			Quantity: item.Quantity,
			RecipeID: recipeID,
		})
	}
	return rows
}

// LegacyJSON encodes the ingredient names the way the recipes.ingredients
// column stores them.
func LegacyJSON(items []domain.IngredientItem) (datatypes.JSON, error) {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}

func ToIngredientResponse(ingredient *entities.Ingredient) domain.IngredientResponse {
	return domain.IngredientResponse{
		ID:       ingredient.ID,
		Name:     ingredient.Name,
		Quantity: ingredient.Quantity,
		RecipeID: ingredient.RecipeID,
	}
}

func ToIngredientResponses(ingredients []*entities.Ingredient) []domain.IngredientResponse {
	res := make([]domain.IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		res = append(res, ToIngredientResponse(i))
	}
	return res
}
