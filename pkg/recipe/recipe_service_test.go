package recipe

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/internal/testutil"
	"Dishcovery-Backend/pkg/auth"
	"Dishcovery-Backend/pkg/ingredient"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db     *gorm.DB
	svc    RecipeService
	mailer *testutil.MockMailer
	s3     *testutil.MockS3

	owner    *entities.User
	stranger *entities.User
	admin    *entities.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	mailer := &testutil.MockMailer{}
	s3 := &testutil.MockS3{}
	lookup := testutil.Lookup{DB: db}

	svc := NewRecipeService(
		NewRecipeRepository(db),
		ingredient.NewReconciler(ingredient.NewIngredientRepository(db)),
		auth.NewGuard(lookup),
		s3,
		mailer,
	)

	return &fixture{
		db:       db,
		svc:      svc,
		mailer:   mailer,
		s3:       s3,
		owner:    testutil.CreateUser(t, db, "owner@example.com", false),
		stranger: testutil.CreateUser(t, db, "stranger@example.com", false),
		admin:    testutil.CreateUser(t, db, "admin@example.com", true),
	}
}

func caller(u *entities.User) domain.Caller {
	return domain.Caller{UserID: u.ID}
}

func names(items []domain.IngredientResponse) []string {
	out := make([]string, 0, len(items))
	for _, i := range items {
		out = append(out, i.Name)
	}
	return out
}

func ingredientsPayload(t *testing.T, raw string) *domain.IngredientInput {
	t.Helper()
	var in domain.IngredientInput
	require.NoError(t, json.Unmarshal([]byte(raw), &in))
	return &in
}

func TestSearchPredicate(t *testing.T) {
	sql, args, err := SearchPredicate(domain.RecipeSearchRequest{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(is_approved = ?)", sql)
	assert.Equal(t, []any{true}, args)

	price := 10.5
	cook := 30
	sql, args, err = SearchPredicate(domain.RecipeSearchRequest{
		Query:       " Soup ",
		Category:    "Dinner",
		Difficulty:  "EASY",
		MaxPrice:    &price,
		MaxCookTime: &cook,
	}).ToSql()
	require.NoError(t, err)
	assert.Equal(t,
		"(is_approved = ? AND (LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(category) LIKE ?) "+
			"AND LOWER(category) = ? AND LOWER(difficulty) = ? AND estimated_price <= ? AND cook_time_minutes <= ?)",
		sql)
	assert.Equal(t, []any{true, "%soup%", "%soup%", "%soup%", "dinner", "easy", 10.5, 30}, args)
}

func TestRecipeService_InsertRecipe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	approved := true

	t.Run("anonymous", func(t *testing.T) {
		_, err := f.svc.InsertRecipe(ctx, domain.Caller{}, domain.CreateRecipeRequest{Title: "Soup", UserID: f.owner.ID})
		assert.ErrorIs(t, err, domain.ErrAuthRequired)
	})

	t.Run("someone else's account", func(t *testing.T) {
		_, err := f.svc.InsertRecipe(ctx, caller(f.stranger), domain.CreateRecipeRequest{Title: "Soup", UserID: f.owner.ID})
		assert.ErrorIs(t, err, domain.ErrRecipeOwnerMismatch)
	})

	t.Run("blank title", func(t *testing.T) {
		_, err := f.svc.InsertRecipe(ctx, caller(f.owner), domain.CreateRecipeRequest{Title: "   ", UserID: f.owner.ID})
		assert.ErrorIs(t, err, domain.ErrRecipeTitleRequired)
	})

	t.Run("starts pending with ingredients", func(t *testing.T) {
		got, err := f.svc.InsertRecipe(ctx, caller(f.owner), domain.CreateRecipeRequest{
			Title:       " Tomato Soup ",
			UserID:      f.owner.ID,
			IsApproved:  &approved,
			Ingredients: ingredientsPayload(t, `["Tomato"," ","Salt"]`),
		})
		require.NoError(t, err)
		assert.Equal(t, "Tomato Soup", got.Title)
		assert.False(t, got.IsApproved)
		assert.Equal(t, domain.RecipeStatusPending, got.Status)
		assert.Equal(t, []string{"Tomato", "Salt"}, names(got.Ingredients))

		var count int64
		require.NoError(t, f.db.Model(&entities.Ingredient{}).Where("recipe_id = ?", got.ID).Count(&count).Error)
		assert.EqualValues(t, 2, count)

		var stored entities.Recipe
		require.NoError(t, f.db.First(&stored, got.ID).Error)
		assert.False(t, stored.IsApproved)
		assert.JSONEq(t, `["Tomato","Salt"]`, string(stored.IngredientsJSON))
	})
}

func TestRecipeService_Visibility(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pending := testutil.CreateRecipe(t, f.db, f.owner.ID, "Secret Stew", false)
	public := testutil.CreateRecipe(t, f.db, f.owner.ID, "Open Pie", true)

	all, err := f.svc.GetAllRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, public.ID, all[0].ID)

	_, err = f.svc.GetRecipeByID(ctx, caller(f.stranger), pending.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	_, err = f.svc.GetRecipeByID(ctx, domain.Caller{}, pending.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	got, err := f.svc.GetRecipeByID(ctx, caller(f.owner), pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RecipeStatusPending, got.Status)

	_, err = f.svc.GetRecipeByID(ctx, caller(f.admin), pending.ID)
	require.NoError(t, err)

	mine, err := f.svc.GetRecipesByUserID(ctx, caller(f.owner), f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	theirs, err := f.svc.GetRecipesByUserID(ctx, caller(f.stranger), f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, theirs, 1)

	moderated, err := f.svc.GetRecipesByUserID(ctx, caller(f.admin), f.owner.ID)
	require.NoError(t, err)
	assert.Len(t, moderated, 2)
}

func TestRecipeService_Moderation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	soup := testutil.CreateRecipe(t, f.db, f.owner.ID, "Soup", false)
	stew := testutil.CreateRecipe(t, f.db, f.owner.ID, "Stew", false)

	_, err := f.svc.GetPendingRecipes(ctx, caller(f.owner))
	assert.ErrorIs(t, err, domain.ErrAdminRequired)

	_, err = f.svc.ApproveRecipe(ctx, caller(f.owner), soup.ID)
	assert.ErrorIs(t, err, domain.ErrAdminRequired)

	err = f.svc.RejectRecipe(ctx, domain.Caller{}, soup.ID)
	assert.ErrorIs(t, err, domain.ErrAuthRequired)

	pending, err := f.svc.GetPendingRecipes(ctx, caller(f.admin))
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	f.mailer.On("SendMail", "owner@example.com", mock.Anything, mock.Anything).Return(nil).Twice()

	approved, err := f.svc.ApproveRecipe(ctx, caller(f.admin), soup.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	assert.Equal(t, domain.RecipeStatusApproved, approved.Status)

	_, err = f.svc.ApproveRecipe(ctx, caller(f.admin), 9999)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)

	require.NoError(t, f.svc.RejectRecipe(ctx, caller(f.admin), stew.ID))
	err = f.db.First(&entities.Recipe{}, stew.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	all, err := f.svc.GetApprovedRecipes(ctx, caller(f.admin))
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, soup.ID, all[0].ID)

	pending, err = f.svc.GetPendingRecipes(ctx, caller(f.admin))
	require.NoError(t, err)
	assert.Empty(t, pending)

	f.mailer.AssertExpectations(t)
}

func TestRecipeService_UpdateRecipe(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.InsertRecipe(ctx, caller(f.owner), domain.CreateRecipeRequest{
		Title:       "Soup",
		UserID:      f.owner.ID,
		Ingredients: ingredientsPayload(t, `[{"name":"Water","quantity":"1 l"}]`),
	})
	require.NoError(t, err)

	title := "Better Soup"
	_, err = f.svc.UpdateRecipe(ctx, caller(f.stranger), created.ID, domain.UpdateRecipeRequest{Title: &title})
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	newOwner := f.stranger.ID
	_, err = f.svc.UpdateRecipe(ctx, caller(f.owner), created.ID, domain.UpdateRecipeRequest{UserID: &newOwner})
	assert.ErrorIs(t, err, domain.ErrRecipeOwnerChangeDenied)

	got, err := f.svc.UpdateRecipe(ctx, caller(f.owner), created.ID, domain.UpdateRecipeRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Better Soup", got.Title)
	assert.Equal(t, []string{"Water"}, names(got.Ingredients))

	got, err = f.svc.UpdateRecipe(ctx, caller(f.owner), created.ID, domain.UpdateRecipeRequest{
		Ingredients: ingredientsPayload(t, `"[\"Salt\",\"Pepper\"]"`),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Salt", "Pepper"}, names(got.Ingredients))
	assert.False(t, got.IsApproved)

	got, err = f.svc.UpdateRecipe(ctx, caller(f.admin), created.ID, domain.UpdateRecipeRequest{UserID: &newOwner})
	require.NoError(t, err)
	assert.Equal(t, f.stranger.ID, got.UserID)

	got, err = f.svc.UpdateRecipe(ctx, caller(f.stranger), created.ID, domain.UpdateRecipeRequest{
		Ingredients: ingredientsPayload(t, `[]`),
	})
	require.NoError(t, err)
	assert.Empty(t, got.Ingredients)
}

func TestRecipeRepository_UpdateKeepsApproval(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := NewRecipeRepository(db)
	owner := testutil.CreateUser(t, db, "owner@example.com", false)
	created := testutil.CreateRecipe(t, db, owner.ID, "Soup", false)

	stale, err := repo.GetRecipeByID(ctx, created.ID)
	require.NoError(t, err)
	require.False(t, stale.IsApproved)

	require.NoError(t, repo.SetApproval(ctx, created.ID, true))

	stale.Title = "Soup, edited"
	require.NoError(t, repo.UpdateRecipe(ctx, stale))

	var stored entities.Recipe
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.True(t, stored.IsApproved)
	assert.Equal(t, "Soup, edited", stored.Title)
}

func TestRecipeService_DeleteRecipeCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	recipe := testutil.CreateRecipe(t, f.db, f.owner.ID, "Soup", true)
	keep := testutil.CreateRecipe(t, f.db, f.owner.ID, "Bread", true)

	require.NoError(t, f.db.Model(recipe).Update("image", "https://bucket.example/recipes/soup.png").Error)
	for _, id := range []uint{recipe.ID, keep.ID} {
		require.NoError(t, f.db.Create(&entities.Ingredient{Name: "Salt", RecipeID: id}).Error)
		require.NoError(t, f.db.Create(&entities.Comment{Content: "yum", UserID: f.stranger.ID, RecipeID: id}).Error)
		require.NoError(t, f.db.Create(&entities.Favorite{UserID: f.stranger.ID, RecipeID: id}).Error)
		require.NoError(t, f.db.Create(&entities.Rating{Score: 5, UserID: f.stranger.ID, RecipeID: id}).Error)
	}

	err := f.svc.DeleteRecipe(ctx, caller(f.stranger), recipe.ID)
	assert.ErrorIs(t, err, domain.ErrUnauthorizedRecipeAccess)

	f.s3.On("DeleteFile", mock.Anything, "recipes/soup.png").Return(nil).Once()
	require.NoError(t, f.svc.DeleteRecipe(ctx, caller(f.owner), recipe.ID))
	f.s3.AssertExpectations(t)

	for _, model := range []any{&entities.Ingredient{}, &entities.Comment{}, &entities.Favorite{}, &entities.Rating{}} {
		var gone, kept int64
		require.NoError(t, f.db.Model(model).Where("recipe_id = ?", recipe.ID).Count(&gone).Error)
		require.NoError(t, f.db.Model(model).Where("recipe_id = ?", keep.ID).Count(&kept).Error)
		assert.Zero(t, gone)
		assert.EqualValues(t, 1, kept)
	}

	err = f.svc.DeleteRecipe(ctx, caller(f.owner), recipe.ID)
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestRecipeService_SearchRecipes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	price := func(v float64) *float64 { return &v }
	minutes := func(v int) *int { return &v }
	seed := []*entities.Recipe{
		{UserID: f.owner.ID, Title: "Tomato Soup", Category: "Dinner", Difficulty: "Easy", EstimatedPrice: price(5), CookTimeMinutes: minutes(20), IsApproved: true},
		{UserID: f.owner.ID, Title: "Beef Stew", Description: "hearty soup-like stew", Category: "dinner", Difficulty: "Hard", EstimatedPrice: price(20), CookTimeMinutes: minutes(120), IsApproved: true},
		{UserID: f.owner.ID, Title: "Pancakes", Category: "Breakfast", Difficulty: "easy", EstimatedPrice: price(3), CookTimeMinutes: minutes(15), IsApproved: true},
		{UserID: f.owner.ID, Title: "Secret Soup", Category: "Dinner", IsApproved: false},
	}
	for _, r := range seed {
		require.NoError(t, f.db.Omit("User", "Ingredients").Create(r).Error)
	}

	titles := func(recipes []domain.Recipe) []string {
		out := make([]string, 0, len(recipes))
		for _, r := range recipes {
			out = append(out, r.Title)
		}
		return out
	}

	tests := []struct {
		name string
		req  domain.RecipeSearchRequest
		want []string
	}{
		{"no filters", domain.RecipeSearchRequest{}, []string{"Tomato Soup", "Beef Stew", "Pancakes"}},
		{"keyword matches title and description", domain.RecipeSearchRequest{Query: "SOUP"}, []string{"Tomato Soup", "Beef Stew"}},
		{"category ignores case", domain.RecipeSearchRequest{Category: "DINNER"}, []string{"Tomato Soup", "Beef Stew"}},
		{"difficulty", domain.RecipeSearchRequest{Difficulty: "easy"}, []string{"Tomato Soup", "Pancakes"}},
		{"max price", domain.RecipeSearchRequest{MaxPrice: price(5)}, []string{"Tomato Soup", "Pancakes"}},
		{"max cook time", domain.RecipeSearchRequest{MaxCookTime: minutes(60), Category: "dinner"}, []string{"Tomato Soup"}},
		{"nothing matches", domain.RecipeSearchRequest{Query: "sushi"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.SearchRecipes(ctx, tt.req)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, titles(got))
		})
	}
}
