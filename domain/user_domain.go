package domain

import (
	"time"
)

var (
	MessageSuccessRegister   = "user registered successfully"
	MessageSuccessLogin      = "login successful"
	MessageSuccessGetUsers   = "users retrieved successfully"
	MessageSuccessGetUser    = "user retrieved successfully"
	MessageSuccessUpdateUser = "user updated successfully"
	MessageSuccessDeleteUser = "user deleted successfully"

	MessageFailedRegister   = "failed to register user"
	MessageFailedLogin      = "failed to login"
	MessageFailedGetUsers   = "failed to retrieve users"
	MessageFailedGetUser    = "failed to retrieve user"
	MessageFailedUpdateUser = "failed to update user"
	MessageFailedDeleteUser = "failed to delete user"

	ErrUserNotFound        = NewError(KindNotFound, "user not found")
	ErrEmailAlreadyExists  = NewError(KindConflict, "an account with this email already exists")
	ErrInvalidCredentials  = NewError(KindUnauthenticated, "invalid email or password")
	ErrUpdateOtherUser     = NewError(KindForbidden, "you can only update your own profile")
	ErrRootAdminProtected  = NewError(KindForbidden, "the root administrator account cannot be deleted")
	ErrRootAdminEmailFixed = NewError(KindForbidden, "the root administrator email cannot be changed")
	ErrEmailReserved       = NewError(KindForbidden, "this email address is reserved")
	ErrAdminFlagDenied     = NewError(KindForbidden, "only administrators can change admin status")
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"omitempty,max=100"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,notblank"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	// UpdateUserRequest is a partial update; nil fields are left untouched.
	UpdateUserRequest struct {
		Username *string `json:"username" validate:"omitempty,max=100"`
		Email    *string `json:"email" validate:"omitempty,email"`
		Password *string `json:"password"`
		IsAdmin  *bool   `json:"is_admin"`
	}

	UserResponse struct {
		ID        uint      `json:"id"`
		Username  string    `json:"username"`
		Email     string    `json:"email"`
		IsAdmin   bool      `json:"is_admin"`
		CreatedAt time.Time `json:"created_at"`
	}

	LoginResponse struct {
		User  UserResponse `json:"user"`
		Token string       `json:"token"`
	}
)
