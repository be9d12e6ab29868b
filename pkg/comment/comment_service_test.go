package comment

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/internal/testutil"
	"Dishcovery-Backend/pkg/auth"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	lookup := testutil.Lookup{DB: db}
	svc := NewCommentService(NewCommentRepository(db), lookup, auth.NewGuard(lookup))

	cook := testutil.CreateUser(t, db, "cook@example.com", false)
	fan := testutil.CreateUser(t, db, "fan@example.com", false)
	admin := testutil.CreateUser(t, db, "admin@example.com", true)
	soup := testutil.CreateRecipe(t, db, cook.ID, "Soup", true)

	_, err := svc.InsertComment(ctx, domain.Caller{}, domain.CreateCommentRequest{Content: "hi", RecipeID: soup.ID})
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	_, err = svc.InsertComment(ctx, domain.Caller{UserID: fan.ID}, domain.CreateCommentRequest{Content: "hi", UserID: cook.ID, RecipeID: soup.ID})
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	_, err = svc.InsertComment(ctx, domain.Caller{UserID: fan.ID}, domain.CreateCommentRequest{Content: "hi", RecipeID: 404})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	created, err := svc.InsertComment(ctx, domain.Caller{UserID: fan.ID}, domain.CreateCommentRequest{Content: "  Lovely soup ", RecipeID: soup.ID})
	require.NoError(t, err)
	assert.Equal(t, "Lovely soup", created.Content)
	assert.Equal(t, fan.ID, created.UserID)
	assert.Equal(t, "fan@example.com", created.Username)

	byRecipe, err := svc.GetCommentsByRecipeID(ctx, soup.ID)
	require.NoError(t, err)
	require.Len(t, byRecipe, 1)

	content := "Edited"
	_, err = svc.UpdateComment(ctx, domain.Caller{UserID: cook.ID}, created.ID, domain.UpdateCommentRequest{Content: &content})
	assert.ErrorIs(t, err, domain.ErrUserNotAllowed)

	updated, err := svc.UpdateComment(ctx, domain.Caller{UserID: admin.ID}, created.ID, domain.UpdateCommentRequest{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Content)

	got, err := svc.GetCommentByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Edited", got.Content)

	require.NoError(t, svc.DeleteComment(ctx, domain.Caller{UserID: fan.ID}, created.ID))
	_, err = svc.GetCommentByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)

	all, err := svc.GetAllComments(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCommentService_PendingRecipe(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	lookup := testutil.Lookup{DB: db}
	svc := NewCommentService(NewCommentRepository(db), lookup, auth.NewGuard(lookup))

	cook := testutil.CreateUser(t, db, "cook@example.com", false)
	snoop := testutil.CreateUser(t, db, "snoop@example.com", false)
	admin := testutil.CreateUser(t, db, "admin@example.com", true)
	draft := testutil.CreateRecipe(t, db, cook.ID, "Secret pending", false)

	_, err := svc.InsertComment(ctx, domain.Caller{UserID: snoop.ID}, domain.CreateCommentRequest{Content: "what is this", RecipeID: draft.ID})
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	for _, author := range []uint{cook.ID, admin.ID} {
		_, err := svc.InsertComment(ctx, domain.Caller{UserID: author}, domain.CreateCommentRequest{Content: "draft note", RecipeID: draft.ID})
		require.NoError(t, err)
	}
}
