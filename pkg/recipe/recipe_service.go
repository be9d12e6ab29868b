package recipe

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/internal/utils/mailing"
	"Dishcovery-Backend/internal/utils/storage"
	"Dishcovery-Backend/pkg/auth"
	"Dishcovery-Backend/pkg/ingredient"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const imageFolder = "recipes"

type (
	RecipeService interface {
		InsertRecipe(ctx context.Context, caller domain.Caller, req domain.CreateRecipeRequest) (domain.Recipe, error)
		GetAllRecipes(ctx context.Context) ([]domain.Recipe, error)
		GetRecipeByID(ctx context.Context, caller domain.Caller, id uint) (domain.Recipe, error)
		GetRecipesByUserID(ctx context.Context, caller domain.Caller, userID uint) ([]domain.Recipe, error)
		SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) ([]domain.Recipe, error)
		UpdateRecipe(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateRecipeRequest) (domain.Recipe, error)
		DeleteRecipe(ctx context.Context, caller domain.Caller, id uint) error
		UploadImage(ctx context.Context, caller domain.Caller, id uint, image *multipart.FileHeader) (domain.Recipe, error)

		GetPendingRecipes(ctx context.Context, caller domain.Caller) ([]domain.Recipe, error)
		GetApprovedRecipes(ctx context.Context, caller domain.Caller) ([]domain.Recipe, error)
		ApproveRecipe(ctx context.Context, caller domain.Caller, id uint) (domain.Recipe, error)
		RejectRecipe(ctx context.Context, caller domain.Caller, id uint) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		reconciler       ingredient.Reconciler
		guard            auth.Guard
		s3               storage.AwsS3
		mailer           mailing.Mailer
	}
)

func NewRecipeService(
	recipeRepository RecipeRepository,
	reconciler ingredient.Reconciler,
	guard auth.Guard,
	s3 storage.AwsS3,
	mailer mailing.Mailer,
) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		reconciler:       reconciler,
		guard:            guard,
		s3:               s3,
		mailer:           mailer,
	}
}

func ToRecipeResponse(recipe *entities.Recipe) domain.Recipe {
	status := domain.RecipeStatusPending
	if recipe.IsApproved {
		status = domain.RecipeStatusApproved
	}
	return domain.Recipe{
		ID:              recipe.ID,
		UserID:          recipe.UserID,
		Title:           recipe.Title,
		Description:     recipe.Description,
		Steps:           recipe.Steps,
		Category:        recipe.Category,
		Difficulty:      recipe.Difficulty,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Image:           recipe.Image,
		EstimatedPrice:  recipe.EstimatedPrice,
		IsApproved:      recipe.IsApproved,
		Status:          status,
		Ingredients:     ingredient.ToIngredientResponses(recipe.Ingredients),
		IngredientsJSON: recipe.IngredientsJSON,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
	}
}

func toRecipeResponses(recipes []*entities.Recipe) []domain.Recipe {
	res := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		res = append(res, ToRecipeResponse(r))
	}
	return res
}

func (s *recipeService) getRecipe(ctx context.Context, id uint) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

func (s *recipeService) requireRecipeAccess(ctx context.Context, caller domain.Caller, recipe *entities.Recipe) error {
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, recipe.UserID); err != nil {
		if domain.IsForbidden(err) {
			return domain.ErrUnauthorizedRecipeAccess
		}
		return err
	}
	return nil
}

// InsertRecipe stores a new recipe owned by the caller. It always starts out
// pending, whatever approval flag the client sent.
func (s *recipeService) InsertRecipe(ctx context.Context, caller domain.Caller, req domain.CreateRecipeRequest) (domain.Recipe, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Recipe{}, err
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return domain.Recipe{}, domain.ErrRecipeTitleRequired
	}
	if req.UserID == 0 {
		return domain.Recipe{}, domain.ErrInvalidUserID
	}
	if req.UserID != caller.UserID {
		return domain.Recipe{}, domain.ErrRecipeOwnerMismatch
	}

	recipe := &entities.Recipe{
		UserID:          req.UserID,
		Title:           title,
		Description:     req.Description,
		Steps:           req.Steps,
		Category:        strings.TrimSpace(req.Category),
		Difficulty:      strings.TrimSpace(req.Difficulty),
		CookTimeMinutes: req.CookTimeMinutes,
		Image:           req.Image,
		EstimatedPrice:  req.EstimatedPrice,
		IsApproved:      false,
	}
	if req.Ingredients != nil {
		items := ingredient.Normalize(req.Ingredients.Items)
		legacy, err := ingredient.LegacyJSON(items)
		if err != nil {
			return domain.Recipe{}, err
		}
		recipe.Ingredients = ingredient.ToEntities(0, items)
		recipe.IngredientsJSON = legacy
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.Recipe{}, err
	}
	return ToRecipeResponse(recipe), nil
}

func (s *recipeService) GetAllRecipes(ctx context.Context) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetRecipesByApproval(ctx, true)
	if err != nil {
		return nil, err
	}
	return toRecipeResponses(recipes), nil
}

// GetRecipeByID hides pending recipes from everyone but their owner and
// administrators.
func (s *recipeService) GetRecipeByID(ctx context.Context, caller domain.Caller, id uint) (domain.Recipe, error) {
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := s.guard.RequireRecipeVisible(ctx, caller, recipe); err != nil {
		return domain.Recipe{}, err
	}
	return ToRecipeResponse(recipe), nil
}

func (s *recipeService) GetRecipesByUserID(ctx context.Context, caller domain.Caller, userID uint) ([]domain.Recipe, error) {
	approvedOnly := true
	if caller.Authenticated() {
		if caller.UserID == userID {
			approvedOnly = false
		} else {
			admin, err := s.guard.IsAdmin(ctx, caller)
			if err != nil {
				return nil, err
			}
			approvedOnly = !admin
		}
	}

	recipes, err := s.recipeRepository.GetRecipesByUserID(ctx, userID, approvedOnly)
	if err != nil {
		return nil, err
	}
	return toRecipeResponses(recipes), nil
}

func (s *recipeService) SearchRecipes(ctx context.Context, req domain.RecipeSearchRequest) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.SearchRecipes(ctx, req)
	if err != nil {
		return nil, err
	}
	return toRecipeResponses(recipes), nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateRecipeRequest) (domain.Recipe, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Recipe{}, err
	}
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := s.requireRecipeAccess(ctx, caller, recipe); err != nil {
		return domain.Recipe{}, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return domain.Recipe{}, domain.ErrRecipeTitleRequired
		}
		recipe.Title = title
	}
	if req.Description != nil {
		recipe.Description = *req.Description
	}
	if req.Steps != nil {
		recipe.Steps = *req.Steps
	}
	if req.Category != nil {
		recipe.Category = strings.TrimSpace(*req.Category)
	}
	if req.Difficulty != nil {
		recipe.Difficulty = strings.TrimSpace(*req.Difficulty)
	}
	if req.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = req.CookTimeMinutes
	}
	if req.Image != nil {
		recipe.Image = *req.Image
	}
	if req.EstimatedPrice != nil {
		recipe.EstimatedPrice = req.EstimatedPrice
	}
	if req.UserID != nil && *req.UserID != recipe.UserID {
		admin, err := s.guard.IsAdmin(ctx, caller)
		if err != nil {
			return domain.Recipe{}, err
		}
		if !admin {
			return domain.Recipe{}, domain.ErrRecipeOwnerChangeDenied
		}
		recipe.UserID = *req.UserID
		recipe.User = nil
	}

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.Recipe{}, err
	}
	if req.Ingredients != nil {
		if _, err := s.reconciler.Reconcile(ctx, recipe.ID, req.Ingredients); err != nil {
			return domain.Recipe{}, err
		}
	}

	updated, err := s.getRecipe(ctx, recipe.ID)
	if err != nil {
		return domain.Recipe{}, err
	}
	return ToRecipeResponse(updated), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, caller domain.Caller, id uint) error {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return err
	}
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return err
	}
	if err := s.requireRecipeAccess(ctx, caller, recipe); err != nil {
		return err
	}
	return s.deleteRecipe(ctx, recipe)
}

func (s *recipeService) deleteRecipe(ctx context.Context, recipe *entities.Recipe) error {
	if err := s.recipeRepository.DeleteRecipe(ctx, recipe.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	s.removeImage(ctx, recipe.Image)
	return nil
}

func (s *recipeService) removeImage(ctx context.Context, link string) {
	key := s.s3.GetObjectKeyFromLink(link)
	if key == "" {
		return
	}
	if err := s.s3.DeleteFile(ctx, key); err != nil {
		log.Errorf("failed to delete recipe image %s: %v", key, err)
	}
}

func (s *recipeService) UploadImage(ctx context.Context, caller domain.Caller, id uint, image *multipart.FileHeader) (domain.Recipe, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Recipe{}, err
	}
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	if err := s.requireRecipeAccess(ctx, caller, recipe); err != nil {
		return domain.Recipe{}, err
	}

	fileName := fmt.Sprintf("recipe-%d-%s", recipe.ID, uuid.NewString())
	key, err := s.s3.UploadFile(ctx, fileName, image, imageFolder, storage.AllowImage...)
	if err != nil {
		return domain.Recipe{}, err
	}

	previous := recipe.Image
	recipe.Image = s.s3.GetPublicLinkKey(key)
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		s.removeImage(ctx, recipe.Image)
		return domain.Recipe{}, err
	}
	s.removeImage(ctx, previous)

	return ToRecipeResponse(recipe), nil
}

func (s *recipeService) GetPendingRecipes(ctx context.Context, caller domain.Caller) ([]domain.Recipe, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	recipes, err := s.recipeRepository.GetRecipesByApproval(ctx, false)
	if err != nil {
		return nil, err
	}
	return toRecipeResponses(recipes), nil
}

func (s *recipeService) GetApprovedRecipes(ctx context.Context, caller domain.Caller) ([]domain.Recipe, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return nil, err
	}
	recipes, err := s.recipeRepository.GetRecipesByApproval(ctx, true)
	if err != nil {
		return nil, err
	}
	return toRecipeResponses(recipes), nil
}

func (s *recipeService) ApproveRecipe(ctx context.Context, caller domain.Caller, id uint) (domain.Recipe, error) {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return domain.Recipe{}, err
	}
	if err := s.recipeRepository.SetApproval(ctx, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Recipe{}, domain.ErrRecipeNotFound
		}
		return domain.Recipe{}, err
	}

	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return domain.Recipe{}, err
	}
	subject, body := mailing.RecipeApprovedEmail(recipe.Title)
	s.notifyOwner(recipe, subject, body)

	return ToRecipeResponse(recipe), nil
}

// RejectRecipe is the moderation path for deleting a submission; the owner
// is told why it disappeared.
func (s *recipeService) RejectRecipe(ctx context.Context, caller domain.Caller, id uint) error {
	if err := s.guard.RequireAdmin(ctx, caller); err != nil {
		return err
	}
	recipe, err := s.getRecipe(ctx, id)
	if err != nil {
		return err
	}
	if err := s.deleteRecipe(ctx, recipe); err != nil {
		return err
	}

	subject, body := mailing.RecipeRejectedEmail(recipe.Title)
	s.notifyOwner(recipe, subject, body)
	return nil
}

func (s *recipeService) notifyOwner(recipe *entities.Recipe, subject string, body string) {
	if recipe.User == nil || recipe.User.Email == "" {
		return
	}
	if err := s.mailer.SendMail(recipe.User.Email, subject, body); err != nil {
		log.Errorf("failed to notify owner of recipe %d: %v", recipe.ID, err)
	}
}
