package user

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/internal/utils/mailing"
	"Dishcovery-Backend/pkg/auth"
	"Dishcovery-Backend/pkg/credential"
	"Dishcovery-Backend/pkg/jwt"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		GetAllUsers(ctx context.Context, caller domain.Caller) ([]domain.UserResponse, error)
		GetUserByID(ctx context.Context, id uint) (domain.UserResponse, error)
		UpdateUser(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateUserRequest) (domain.UserResponse, error)
		DeleteUser(ctx context.Context, caller domain.Caller, id uint) error
	}

	userService struct {
		userRepository UserRepository
		guard          auth.Guard
		policy         auth.Policy
		hasher         credential.Hasher
		jwtService     jwt.JWTService
		mailer         mailing.Mailer
		appURL         string
	}
)

func NewUserService(
	userRepository UserRepository,
	guard auth.Guard,
	policy auth.Policy,
	hasher credential.Hasher,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	appURL string,
) UserService {
	return &userService{
		userRepository: userRepository,
		guard:          guard,
		policy:         policy,
		hasher:         hasher,
		jwtService:     jwtService,
		mailer:         mailer,
		appURL:         appURL,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ToUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	}
}

func (s *userService) emailTaken(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepository.GetUserByEmail(ctx, email)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	email := normalizeEmail(req.Email)
	if s.policy.IsRootAdminEmail(email) {
		return domain.UserResponse{}, domain.ErrEmailReserved
	}

	taken, err := s.emailTaken(ctx, email)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if taken {
		return domain.UserResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		Username: strings.TrimSpace(req.Username),
		Email:    email,
		Password: hashed,
		IsAdmin:  false,
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	subject, body := mailing.WelcomeEmail(user.Username, s.appURL)
	if err := s.mailer.SendMail(user.Email, subject, body); err != nil {
		log.Errorf("failed to send welcome email to user %d: %v", user.ID, err)
	}

	return ToUserResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	ok, err := s.hasher.Verify(user.Password, req.Password)
	if err != nil {
		log.Warnf("stored password hash for user %d is unusable: %v", user.ID, err)
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}
	if !ok {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID)
	if err != nil {
		return domain.LoginResponse{}, err
	}

	return domain.LoginResponse{
		User:  ToUserResponse(user),
		Token: token,
	}, nil
}

func (s *userService) GetAllUsers(ctx context.Context, caller domain.Caller) ([]domain.UserResponse, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}

	users, err := s.userRepository.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]domain.UserResponse, 0, len(users))
	for _, u := range users {
		res = append(res, ToUserResponse(u))
	}
	return res, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uint) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	return ToUserResponse(user), nil
}

func (s *userService) UpdateUser(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateUserRequest) (domain.UserResponse, error) {
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, id); err != nil {
		if domain.IsForbidden(err) {
			return domain.UserResponse{}, domain.ErrUpdateOtherUser
		}
		return domain.UserResponse{}, err
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}
	isRoot := s.policy.IsRootAdmin(user)

	if req.Username != nil {
		user.Username = strings.TrimSpace(*req.Username)
	}

	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != normalizeEmail(user.Email) {
			if isRoot {
				return domain.UserResponse{}, domain.ErrRootAdminEmailFixed
			}
			if s.policy.IsRootAdminEmail(email) {
				return domain.UserResponse{}, domain.ErrEmailReserved
			}
			taken, err := s.emailTaken(ctx, email)
			if err != nil {
				return domain.UserResponse{}, err
			}
			if taken {
				return domain.UserResponse{}, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}

	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return domain.UserResponse{}, err
		}
		user.Password = hashed
	}

	if req.IsAdmin != nil && *req.IsAdmin != user.IsAdmin {
		admin, err := s.guard.IsAdmin(ctx, caller)
		if err != nil {
			return domain.UserResponse{}, err
		}
		if !admin {
			return domain.UserResponse{}, domain.ErrAdminFlagDenied
		}
		user.IsAdmin = *req.IsAdmin
	}

	// The root admin keeps its privilege whatever the request asked for.
	if isRoot {
		user.IsAdmin = true
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.UserResponse{}, domain.ErrEmailAlreadyExists
		}
		return domain.UserResponse{}, err
	}

	return ToUserResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, caller domain.Caller, id uint) error {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return err
	}

	user, err := s.userRepository.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	if s.policy.IsRootAdmin(user) {
		return domain.ErrRootAdminProtected
	}

	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}
