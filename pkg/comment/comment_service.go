package comment

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/pkg/auth"
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

type (
	RecipeLookup interface {
		GetRecipeByID(ctx context.Context, id uint) (*entities.Recipe, error)
	}

	CommentService interface {
		InsertComment(ctx context.Context, caller domain.Caller, req domain.CreateCommentRequest) (domain.Comment, error)
		GetAllComments(ctx context.Context) ([]domain.Comment, error)
		GetCommentByID(ctx context.Context, id uint) (domain.Comment, error)
		GetCommentsByRecipeID(ctx context.Context, recipeID uint) ([]domain.Comment, error)
		UpdateComment(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateCommentRequest) (domain.Comment, error)
		DeleteComment(ctx context.Context, caller domain.Caller, id uint) error
	}

	commentService struct {
		commentRepository CommentRepository
		recipes           RecipeLookup
		guard             auth.Guard
	}
)

func NewCommentService(commentRepository CommentRepository, recipes RecipeLookup, guard auth.Guard) CommentService {
	return &commentService{
		commentRepository: commentRepository,
		recipes:           recipes,
		guard:             guard,
	}
}

func toCommentResponse(comment *entities.Comment) domain.Comment {
	res := domain.Comment{
		ID:        comment.ID,
		Content:   comment.Content,
		UserID:    comment.UserID,
		RecipeID:  comment.RecipeID,
		CreatedAt: comment.CreatedAt,
	}
	if comment.User != nil {
		res.Username = comment.User.Username
	}
	return res
}

func toCommentResponses(comments []*entities.Comment) []domain.Comment {
	res := make([]domain.Comment, 0, len(comments))
	for _, c := range comments {
		res = append(res, toCommentResponse(c))
	}
	return res
}

func (s *commentService) getComment(ctx context.Context, id uint) (*entities.Comment, error) {
	comment, err := s.commentRepository.GetCommentByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// InsertComment posts as the caller unless an admin names another author.
func (s *commentService) InsertComment(ctx context.Context, caller domain.Caller, req domain.CreateCommentRequest) (domain.Comment, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Comment{}, err
	}
	userID := req.UserID
	if userID == 0 {
		userID = caller.UserID
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, userID); err != nil {
		return domain.Comment{}, err
	}

	recipe, err := s.recipes.GetRecipeByID(ctx, req.RecipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, domain.ErrRecipeNotFound
		}
		return domain.Comment{}, err
	}
	if err := s.guard.RequireRecipeVisible(ctx, caller, recipe); err != nil {
		return domain.Comment{}, err
	}

	comment := &entities.Comment{
		Content:  strings.TrimSpace(req.Content),
		UserID:   userID,
		RecipeID: req.RecipeID,
	}
	if err := s.commentRepository.CreateComment(ctx, comment); err != nil {
		return domain.Comment{}, err
	}

	created, err := s.getComment(ctx, comment.ID)
	if err != nil {
		return domain.Comment{}, err
	}
	return toCommentResponse(created), nil
}

func (s *commentService) GetAllComments(ctx context.Context) ([]domain.Comment, error) {
	comments, err := s.commentRepository.GetAllComments(ctx)
	if err != nil {
		return nil, err
	}
	return toCommentResponses(comments), nil
}

func (s *commentService) GetCommentByID(ctx context.Context, id uint) (domain.Comment, error) {
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	return toCommentResponse(comment), nil
}

func (s *commentService) GetCommentsByRecipeID(ctx context.Context, recipeID uint) ([]domain.Comment, error) {
	comments, err := s.commentRepository.GetCommentsByRecipeID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	return toCommentResponses(comments), nil
}

func (s *commentService) UpdateComment(ctx context.Context, caller domain.Caller, id uint, req domain.UpdateCommentRequest) (domain.Comment, error) {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return domain.Comment{}, err
	}
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return domain.Comment{}, err
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, comment.UserID); err != nil {
		return domain.Comment{}, err
	}

	if req.Content != nil {
		comment.Content = strings.TrimSpace(*req.Content)
	}
	if err := s.commentRepository.UpdateComment(ctx, comment); err != nil {
		return domain.Comment{}, err
	}
	return toCommentResponse(comment), nil
}

func (s *commentService) DeleteComment(ctx context.Context, caller domain.Caller, id uint) error {
	if err := s.guard.RequireAuthenticated(caller); err != nil {
		return err
	}
	comment, err := s.getComment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.guard.RequireOwnerOrAdmin(ctx, caller, comment.UserID); err != nil {
		return err
	}

	if err := s.commentRepository.DeleteComment(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return err
	}
	return nil
}
