package recipe

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
		GetRecipesByApproval(ctx context.Context, approved bool) ([]*entities.Recipe, error)
		GetRecipesByUserID(ctx context.Context, userID uint, approvedOnly bool) ([]*entities.Recipe, error)
		SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) ([]*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		SetApproval(ctx context.Context, id uint, approved bool) error
		DeleteRecipe(ctx context.Context, id uint) error
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("id asc") }).
		Preload("User")
}

// CreateRecipe inserts the recipe and its Ingredients in one transaction.
func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit("User").Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.withRelations(ctx).Where("id = ?", id).First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipesByApproval(ctx context.Context, approved bool) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.withRelations(ctx).
		Where("is_approved = ?", approved).
		Order("created_at desc, id desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipesByUserID(ctx context.Context, userID uint, approvedOnly bool) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	query := r.withRelations(ctx).Where("user_id = ?", userID)
	if approvedOnly {
		query = query.Where("is_approved = ?", true)
	}
	if err := query.Order("created_at desc, id desc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) ([]*entities.Recipe, error) {
	where, args, err := SearchPredicate(req).ToSql()
	if err != nil {
		return nil, err
	}

	var recipes []*entities.Recipe
	if err := r.withRelations(ctx).
		Where(where, args...).
		Order("created_at desc, id desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SearchPredicate builds the WHERE clause for a recipe search. Only approved
// recipes ever match.
func SearchPredicate(req domain.RecipeSearchRequest) sq.And {
	pred := sq.And{sq.Eq{"is_approved": true}}

	if q := strings.TrimSpace(req.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		pred = append(pred, sq.Or{
			sq.Expr("LOWER(title) LIKE ?", like),
			sq.Expr("LOWER(description) LIKE ?", like),
			sq.Expr("LOWER(category) LIKE ?", like),
		})
	}
	if c := strings.TrimSpace(req.Category); c != "" {
		pred = append(pred, sq.Expr("LOWER(category) = ?", strings.ToLower(c)))
	}
	if d := strings.TrimSpace(req.Difficulty); d != "" {
		pred = append(pred, sq.Expr("LOWER(difficulty) = ?", strings.ToLower(d)))
	}
	if req.MaxPrice != nil {
		pred = append(pred, sq.LtOrEq{"estimated_price": *req.MaxPrice})
	}
	if req.MaxCookTime != nil {
		pred = append(pred, sq.LtOrEq{"cook_time_minutes": *req.MaxCookTime})
	}
	return pred
}

// UpdateRecipe writes the recipe's own columns. Ingredient rows are left to
// the reconciler and the approval flag to SetApproval.
func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Omit(clause.Associations, "ingredients", "is_approved").Save(recipe).Error
}

func (r *recipeRepository) SetApproval(ctx context.Context, id uint, approved bool) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ?", id).
		Update("is_approved", approved)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRecipe removes the recipe along with its ingredients, comments,
// favorites and ratings.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dependents := []any{
			&entities.Ingredient{},
			&entities.Comment{},
			&entities.Favorite{},
			&entities.Rating{},
		}
		for _, model := range dependents {
			if err := tx.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&entities.Recipe{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
