package testutil

import (
	migration "Dishcovery-Backend/cmd/database/migrate"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/internal/utils"
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a migrated SQLite database in the test's temp dir.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dishcovery.db")
	db, err := gorm.Open(sqlite.Open(utils.SQLiteDSN(path)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migration.Migrate(db))
	return db
}

func CreateUser(t *testing.T, db *gorm.DB, email string, isAdmin bool) *entities.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &entities.User{
		Username: email,
		Email:    email,
		Password: string(hashed),
		IsAdmin:  isAdmin,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateRecipe(t *testing.T, db *gorm.DB, ownerID uint, title string, approved bool) *entities.Recipe {
	t.Helper()

	recipe := &entities.Recipe{
		UserID:     ownerID,
		Title:      title,
		IsApproved: approved,
	}
	require.NoError(t, db.Omit("User", "Ingredients").Create(recipe).Error)
	return recipe
}

// Lookup resolves users and recipes straight from the database. It satisfies
// the narrow lookup interfaces the services depend on.
type Lookup struct {
	DB *gorm.DB
}

func (l Lookup) GetUserByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := l.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (l Lookup) GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := l.DB.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}
