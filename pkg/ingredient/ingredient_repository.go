package ingredient

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"context"
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type (
	IngredientRepository interface {
		CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error)
		GetAllIngredients(ctx context.Context) ([]*entities.Ingredient, error)
		GetVisibleIngredients(ctx context.Context, viewerID uint) ([]*entities.Ingredient, error)
		GetIngredientsByRecipeID(ctx context.Context, recipeID uint) ([]*entities.Ingredient, error)
		UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		DeleteIngredient(ctx context.Context, ingredient *entities.Ingredient) error
		ReplaceRecipeIngredients(ctx context.Context, recipeID uint, items []domain.IngredientItem) ([]*entities.Ingredient, error)
	}

	ingredientRepository struct {
		db *gorm.DB
	}
)

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) CreateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Recipe").Create(ingredient).Error; err != nil {
			return err
		}
		return syncLegacyColumn(tx, ingredient.RecipeID)
	})
}

func (r *ingredientRepository) GetIngredientByID(ctx context.Context, id uint) (*entities.Ingredient, error) {
	var ingredient entities.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) GetAllIngredients(ctx context.Context) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetVisibleIngredients returns ingredients of approved recipes plus those of
// recipes owned by viewerID.
func (r *ingredientRepository) GetVisibleIngredients(ctx context.Context, viewerID uint) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Select("ingredients.*").
		Joins("JOIN recipes ON recipes.id = ingredients.recipe_id").
		Where("recipes.is_approved = ? OR recipes.user_id = ?", true, viewerID).
		Order("ingredients.id asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetIngredientsByRecipeID(ctx context.Context, recipeID uint) ([]*entities.Ingredient, error) {
	var ingredients []*entities.Ingredient
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("id asc").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (r *ingredientRepository) UpdateIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Recipe").Save(ingredient).Error; err != nil {
			return err
		}
		return syncLegacyColumn(tx, ingredient.RecipeID)
	})
}

func (r *ingredientRepository) DeleteIngredient(ctx context.Context, ingredient *entities.Ingredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&entities.Ingredient{}, ingredient.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return syncLegacyColumn(tx, ingredient.RecipeID)
	})
}

// ReplaceRecipeIngredients swaps the recipe's whole ingredient set for items
// in one transaction. items must already be normalized.
func (r *ingredientRepository) ReplaceRecipeIngredients(ctx context.Context, recipeID uint, items []domain.IngredientItem) ([]*entities.Ingredient, error) {
	rows := ToEntities(recipeID, items)
	legacy, err := LegacyJSON(items)
	if err != nil {
		return nil, err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipeID).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Omit("Recipe").Create(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Model(&entities.Recipe{}).
			Where("id = ?", recipeID).
			UpdateColumn("ingredients", legacy).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// syncLegacyColumn rewrites recipes.ingredients from the rows currently
// stored for the recipe.
func syncLegacyColumn(tx *gorm.DB, recipeID uint) error {
	var names []string
	if err := tx.Model(&entities.Ingredient{}).
		Where("recipe_id = ?", recipeID).
		Order("id asc").
		Pluck("name", &names).Error; err != nil {
		return err
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return err
	}
	if names == nil {
		encoded = []byte("[]")
	}
	return tx.Model(&entities.Recipe{}).
		Where("id = ?", recipeID).
		UpdateColumn("ingredients", datatypes.JSON(encoded)).Error
}
