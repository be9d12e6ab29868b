package rating

import (
	"Dishcovery-Backend/entities"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	RatingRepository interface {
		CreateRating(ctx context.Context, rating *entities.Rating) error
		GetRatingByID(ctx context.Context, id uint) (*entities.Rating, error)
		GetAllRatings(ctx context.Context) ([]*entities.Rating, error)
		GetRatingsByRecipeID(ctx context.Context, recipeID uint) ([]*entities.Rating, error)
		GetRecipeRatingSummary(ctx context.Context, recipeID uint) (float64, int64, error)
		UpdateRating(ctx context.Context, rating *entities.Rating) error
		DeleteRating(ctx context.Context, id uint) error
	}

	ratingRepository struct {
		db *gorm.DB
	}
)

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) CreateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(rating).Error
}

func (r *ratingRepository) GetRatingByID(ctx context.Context, id uint) (*entities.Rating, error) {
	var rating entities.Rating
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&rating).Error; err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetAllRatings(ctx context.Context) ([]*entities.Rating, error) {
	var ratings []*entities.Rating
	if err := r.db.WithContext(ctx).Order("id asc").Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetRatingsByRecipeID(ctx context.Context, recipeID uint) ([]*entities.Rating, error) {
	var ratings []*entities.Rating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at desc, id desc").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

func (r *ratingRepository) GetRecipeRatingSummary(ctx context.Context, recipeID uint) (float64, int64, error) {
	var row struct {
		Average float64
		Count   int64
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.Rating{}).
		Select("COALESCE(AVG(score), 0) AS average, COUNT(*) AS count").
		Where("recipe_id = ?", recipeID).
		Scan(&row).Error; err != nil {
		return 0, 0, err
	}
	return row.Average, row.Count, nil
}

func (r *ratingRepository) UpdateRating(ctx context.Context, rating *entities.Rating) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(rating).Error
}

func (r *ratingRepository) DeleteRating(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Rating{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
