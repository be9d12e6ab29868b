package auth

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"context"
	"errors"

	"gorm.io/gorm"
)

type (
	// UserLookup is the slice of the user repository the guard needs.
	UserLookup interface {
		GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	}

	Guard interface {
		RequireAuthenticated(caller domain.Caller) error
		IsAdmin(ctx context.Context, caller domain.Caller) (bool, error)
		RequireAdmin(ctx context.Context, caller domain.Caller) error
		RequireOwnerOrAdmin(ctx context.Context, caller domain.Caller, ownerID uint) error
		CanViewRecipe(ctx context.Context, caller domain.Caller, recipe *entities.Recipe) (bool, error)
		RequireRecipeVisible(ctx context.Context, caller domain.Caller, recipe *entities.Recipe) error
	}

	guard struct {
		users UserLookup
	}
)

func NewGuard(users UserLookup) Guard {
	return &guard{users: users}
}

func (g *guard) RequireAuthenticated(caller domain.Caller) error {
	if !caller.Authenticated() {
		return domain.ErrAuthRequired
	}
	return nil
}

// IsAdmin reads the admin flag from the caller's stored record. An identity
// with no matching user is never an administrator.
func (g *guard) IsAdmin(ctx context.Context, caller domain.Caller) (bool, error) {
	if !caller.Authenticated() {
		return false, nil
	}
	user, err := g.users.GetUserByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsAdmin, nil
}

func (g *guard) RequireAdmin(ctx context.Context, caller domain.Caller) error {
	if err := g.RequireAuthenticated(caller); err != nil {
		return err
	}
	admin, err := g.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrAdminRequired
	}
	return nil
}

func (g *guard) RequireOwnerOrAdmin(ctx context.Context, caller domain.Caller, ownerID uint) error {
	if err := g.RequireAuthenticated(caller); err != nil {
		return err
	}
	if caller.UserID == ownerID {
		return nil
	}
	admin, err := g.IsAdmin(ctx, caller)
	if err != nil {
		return err
	}
	if !admin {
		return domain.ErrUserNotAllowed
	}
	return nil
}

// CanViewRecipe reports whether the caller may see the recipe. Approved
// recipes are public; pending ones belong to their owner and administrators.
func (g *guard) CanViewRecipe(ctx context.Context, caller domain.Caller, recipe *entities.Recipe) (bool, error) {
	if recipe.IsApproved {
		return true, nil
	}
	if caller.Authenticated() && caller.UserID == recipe.UserID {
		return true, nil
	}
	return g.IsAdmin(ctx, caller)
}

// RequireRecipeVisible reports a hidden recipe as missing so pending ids are
// not disclosed.
func (g *guard) RequireRecipeVisible(ctx context.Context, caller domain.Caller, recipe *entities.Recipe) error {
	visible, err := g.CanViewRecipe(ctx, caller, recipe)
	if err != nil {
		return err
	}
	if !visible {
		return domain.ErrRecipeNotFound
	}
	return nil
}
