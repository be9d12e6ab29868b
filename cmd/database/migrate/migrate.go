package migration

import (
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/pkg/auth"
	"Dishcovery-Backend/pkg/credential"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	models := []struct {
		name  string
		model any
	}{
		{"user", &entities.User{}},
		{"recipe", &entities.Recipe{}},
		{"ingredient", &entities.Ingredient{}},
		{"comment", &entities.Comment{}},
		{"favorite", &entities.Favorite{}},
		{"rating", &entities.Rating{}},
	}

	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			log.Errorf("Error migrating %s database: %v", m.name, err)
			return err
		}
	}

	log.Info("Database migration complete")
	return nil
}

type RootAdmin struct {
	Email    string
	Username string
	Password string
}

// SeedRootAdmin creates the root admin account, or repairs its admin flag if
// it already exists. Without a password nothing is created.
func SeedRootAdmin(ctx context.Context, db *gorm.DB, policy auth.Policy, hasher credential.Hasher, admin RootAdmin) error {
	email := strings.ToLower(strings.TrimSpace(policy.RootAdminEmail))
	if email == "" {
		return nil
	}

	var existing entities.User
	err := db.WithContext(ctx).Where("LOWER(email) = ?", email).First(&existing).Error
	if err == nil {
		if existing.IsAdmin {
			return nil
		}
		log.Warnf("root admin %s had lost its admin flag, restoring it", email)
		return db.WithContext(ctx).Model(&existing).Update("is_admin", true).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if admin.Password == "" {
		log.Warnf("root admin %s does not exist and ROOT_ADMIN_PASSWORD is empty, skipping seed", email)
		return nil
	}

	hashed, err := hasher.Hash(admin.Password)
	if err != nil {
		return err
	}
	username := admin.Username
	if username == "" {
		username = "admin"
	}

	if err := db.WithContext(ctx).Create(&entities.User{
		Username: username,
		Email:    email,
		Password: hashed,
		IsAdmin:  true,
	}).Error; err != nil {
		return err
	}
	log.Infof("seeded root admin %s", email)
	return nil
}
