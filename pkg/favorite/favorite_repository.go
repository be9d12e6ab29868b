package favorite

import (
	"Dishcovery-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	FavoriteRepository interface {
		CreateFavorite(ctx context.Context, favorite *entities.Favorite) error
		GetFavoriteByID(ctx context.Context, id uint) (*entities.Favorite, error)
		GetAllFavorites(ctx context.Context) ([]*entities.Favorite, error)
		GetFavoritesByUserID(ctx context.Context, userID uint) ([]*entities.Favorite, error)
		FavoriteExists(ctx context.Context, userID uint, recipeID uint) (bool, error)
		UpdateFavorite(ctx context.Context, favorite *entities.Favorite) error
		DeleteFavorite(ctx context.Context, id uint) error
	}

	favoriteRepository struct {
		db *gorm.DB
	}
)

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) CreateFavorite(ctx context.Context, favorite *entities.Favorite) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(favorite).Error
}

func (r *favoriteRepository) GetFavoriteByID(ctx context.Context, id uint) (*entities.Favorite, error) {
	var favorite entities.Favorite
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&favorite).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

func (r *favoriteRepository) GetAllFavorites(ctx context.Context) ([]*entities.Favorite, error) {
	var favorites []*entities.Favorite
	if err := r.db.WithContext(ctx).Order("id asc").Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) GetFavoritesByUserID(ctx context.Context, userID uint) ([]*entities.Favorite, error) {
	var favorites []*entities.Favorite
	if err := r.db.WithContext(ctx).
		Preload("Recipe").
		Preload("Recipe.Ingredients").
		Where("user_id = ?", userID).
		Order("created_at desc, id desc").
		Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

func (r *favoriteRepository) FavoriteExists(ctx context.Context, userID uint, recipeID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *favoriteRepository) UpdateFavorite(ctx context.Context, favorite *entities.Favorite) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(favorite).Error
}

func (r *favoriteRepository) DeleteFavorite(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Favorite{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
