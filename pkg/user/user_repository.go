package user

import (
	"Dishcovery-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id uint) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetAllUsers(ctx context.Context) ([]*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error
		DeleteUser(ctx context.Context, id uint) error
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetAllUsers(ctx context.Context) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Omit("Recipes", "Comments", "Favorites", "Ratings").Save(user).Error
}

// DeleteUser removes the user together with everything they own: their
// comments, favorites and ratings, their recipes, and whatever hangs off
// those recipes.
func (r *userRepository) DeleteUser(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ownedRecipes := func() *gorm.DB {
			return tx.Model(&entities.Recipe{}).Select("id").Where("user_id = ?", id)
		}

		if err := tx.Where("recipe_id IN (?)", ownedRecipes()).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR recipe_id IN (?)", id, ownedRecipes()).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR recipe_id IN (?)", id, ownedRecipes()).Delete(&entities.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR recipe_id IN (?)", id, ownedRecipes()).Delete(&entities.Rating{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&entities.Recipe{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&entities.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
