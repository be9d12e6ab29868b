package rating

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/pkg/auth"
	"context"
	"errors"
	"math"
	"unicode/utf8"

	"gorm.io/gorm"
)

type (
	RecipeLookup interface {
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
	}

	RatingService interface {
		InsertRating(ctx context.Context, caller domain.Caller, req domain.CreateRatingRequest) (domain.Rating, error)
		GetAllRatings(ctx context.Context) ([]domain.Rating, error)
		GetRatingByID(ctx context.Context, id uint) (domain.Rating, error)
		GetRatingsByRecipeID(ctx context.Context, recipeID uint) ([]domain.Rating, error)
		GetRecipeRatingSummary(ctx context.Context, recipeID uint) (domain.RatingSummary, error)
		UpdateRating(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateRatingRequest) (domain.Rating, error)
		DeleteRating(ctx context.Context, caller domain.Caller, id uint) error
	}

	ratingService struct {
		ratingRepository RatingRepository
		recipes          RecipeLookup
		guard            auth.Guard
	}
)

func NewRatingService(ratingRepository RatingRepository, recipes RecipeLookup, guard auth.Guard) RatingService {
	return &ratingService{
		ratingRepository: ratingRepository,
		recipes:          recipes,
		guard:            guard,
	}
}

func toRatingResponse(rating *entities.Rating) domain.Rating {
	return domain.Rating{
		ID:        rating.ID,
		UserID:    rating.UserID,
		RecipeID:  rating.RecipeID,
		Score:     rating.Score,
		Feedback:  rating.Feedback,
		CreatedAt: rating.CreatedAt,
	}
}

func toRatingResponses(ratings []*entities.Rating) []domain.Rating {
	res := make([]domain.Rating, 0, len(ratings))
	for _, r := range ratings {
		res = append(res, toRatingResponse(r))
	}
	return res
}

func validateScore(score int) error {
	if score < domain.MinRatingScore || score > domain.MaxRatingScore {
		return domain.ErrRatingScoreOutOfRange
	}
	return nil
}

func validateFeedback(feedback string) error {
	if utf8.RuneCountInString(feedback) > domain.MaxFeedbackLength {
		return domain.ErrRatingFeedbackTooLong
	}
	return nil
}

func (s *ratingService) getRating(ctx context.Context, id uint) (*entities.Rating, error) {
	rating, err := s.ratingRepository.GetRatingByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRatingNotFound
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) InsertRating(ctx context.Context, caller domain.Caller, req domain.CreateRatingRequest) (domain.Rating, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Rating{}, err
	}
	if err := validateScore(req.Score); err != nil {
		return domain.Rating{}, err
	}
	if err := validateFeedback(req.Feedback); err != nil {
		return domain.Rating{}, err
	}

	userID := req.UserID
	if userID == 0 {
		userID = caller.UserID
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, userID); err != nil {
		return domain.Rating{}, err
	}
	recipe, err := s.recipes.GetRecipeByID(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Rating{}, domain.ErrRecipeNotFound
		}
		return domain.Rating{}, err
	}
	if err := s.guard.RequireRecipeVisible(ctx, caller, recipe); err != nil {
		return domain.Rating{}, err
	}

	rating := &entities.Rating{
		UserID:   userID,
		RecipeID: req.RecipeID,
		Score:    req.Score,
		Feedback: req.Feedback,
	}
	if err := s.ratingRepository.CreateRating(ctx, rating); err != nil {
		return domain.Rating{}, err
	}
	return toRatingResponse(rating), nil
}

func (s *ratingService) GetAllRatings(ctx context.Context) ([]domain.Rating, error) {
	ratings, err := s.ratingRepository.GetAllRatings(ctx)
	if err != nil {
		return nil, err
	}
	return toRatingResponses(ratings), nil
}

func (s *ratingService) GetRatingByID(ctx context.Context, id uint) (domain.Rating, error) {
	rating, err := s.getRating(ctx, id)
	if err != nil {
		return domain.Rating{}, err
	}
	return toRatingResponse(rating), nil
}

func (s *ratingService) GetRatingsByRecipeID(ctx context.Context, recipeID uint) ([]domain.Rating, error) {
	ratings, err := s.ratingRepository.GetRatingsByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return toRatingResponses(ratings), nil
}

func (s *ratingService) GetRecipeRatingSummary(ctx context.Context, recipeID uint) (domain.RatingSummary, error) {
	average, count, err := s.ratingRepository.GetRecipeRatingSummary(ctx, recipeID)
	if err != nil {
		return domain.RatingSummary{}, err
	}
	return domain.RatingSummary{
		RecipeID: recipeID,
		Average:  math.Round(average*100) / 100,
		Count:    count,
	}, nil
}

func (s *ratingService) UpdateRating(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateRatingRequest) (domain.Rating, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Rating{}, err
	}
	rating, err := s.getRating(ctx, id)
	if err != nil {
		return domain.Rating{}, err
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, rating.UserID); err != nil {
		return domain.Rating{}, err
	}

	if req.Score != nil {
		if err := validateScore(*req.Score); err != nil {
			return domain.Rating{}, err
		}
		rating.Score = *req.Score
	}
	if req.Feedback != nil {
		if err := validateFeedback(*req.Feedback); err != nil {
			return domain.Rating{}, err
		}
		rating.Feedback = *req.Feedback
	}

	if err := s.ratingRepository.UpdateRating(ctx, rating); err != nil {
		return domain.Rating{}, err
	}
	return toRatingResponse(rating), nil
}

func (s *ratingService) DeleteRating(ctx context.Context, caller domain.Caller, id uint) error {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return err
	}
	rating, err := s.getRating(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, rating.UserID); err != nil {
		return err
	}

	if err := s.ratingRepository.DeleteRating(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRatingNotFound
		}
		return err
	}
	return nil
}
