package config

import (
	"Dishcovery-Backend/domain"
	"Dishcovery-Backend/entities"
	"Dishcovery-Backend/internal/testutil"
	"Dishcovery-Backend/internal/utils"
	"Dishcovery-Backend/pkg/auth"
	"Dishcovery-Backend/pkg/credential"
	"Dishcovery-Backend/pkg/jwt"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const rootEmail = "root@dishcovery.test"

type apiResponse struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	t      *testing.T
	app    *fiber.App
	db     *gorm.DB
	mailer *testutil.MockMailer
	s3     *testutil.MockS3
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	prev := utils.CurrentConfig()
	t.Cleanup(func() { utils.SetConfig(prev) })
	utils.SetConfig(utils.Config{
		CORSOrigins:         "*",
		AllowIdentityHeader: true,
		RootAdminEmail:      rootEmail,
	})

	db := testutil.NewDB(t)
	mailer := &testutil.MockMailer{}
	mailer.On("SendMail", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	s3 := &testutil.MockS3{}

	app := NewFiber()
	RegisterRoutes(app, db, Dependencies{
		JWTService: jwt.NewJWTServiceWithSecret("test-secret", time.Hour),
		Hasher:     credential.NewHasher(bcrypt.MinCost),
		Policy:     auth.Policy{RootAdminEmail: rootEmail},
		Mailer:     mailer,
		S3:         s3,
		AppURL:     "http://localhost:3000",
	})

	return &testServer{t: t, app: app, db: db, mailer: mailer, s3: s3}
}

func (s *testServer) send(req *http.Request) (int, apiResponse) {
	s.t.Helper()

	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)

	var res apiResponse
	if len(raw) > 0 {
		require.NoError(s.t, json.Unmarshal(raw, &res), string(raw))
	}
	return resp.StatusCode, res
}

// do sends body as JSON; strings go out verbatim. A non-zero as is sent as
// the X-User-Id header, extra headers come in name/value pairs.
func (s *testServer) do(method, path string, body any, as uint, headers ...string) (int, apiResponse) {
	s.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if as != 0 {
		req.Header.Set(domain.HeaderUserID, strconv.FormatUint(uint64(as), 10))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return s.send(req)
}

func decodeData[T any](t *testing.T, res apiResponse) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(res.Data, &out))
	return out
}

func TestPing(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"pong"}`, string(body))
}

func TestRegisterLoginAndCreateRecipe(t *testing.T) {
	s := newTestServer(t)

	status, res := s.do(fiber.MethodPost, "/user/add", map[string]string{
		"username": "cook",
		"email":    "Cook@Example.com",
		"password": "hunter22",
	}, 0)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	user := decodeData[domain.UserResponse](t, res)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.NotContains(t, string(res.Data), "password")

	status, res = s.do(fiber.MethodPost, "/user/add", map[string]string{
		"email":    "cook@example.com",
		"password": "again",
	}, 0)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = s.do(fiber.MethodPost, "/user/login", map[string]string{
		"email":    "cook@example.com",
		"password": "wrong",
	}, 0)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, res = s.do(fiber.MethodPost, "/user/login", map[string]string{
		"email":    "cook@example.com",
		"password": "hunter22",
	}, 0)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	login := decodeData[domain.LoginResponse](t, res)
	require.NotEmpty(t, login.Token)

	body := fmt.Sprintf(`{"title":"Soup","user_id":%d,"is_approved":true,"ingredients":["Salt","Pepper"]}`, user.ID)
	status, res = s.do(fiber.MethodPost, "/recipe/insertRecipe", body, 0, fiber.HeaderAuthorization, "Bearer "+login.Token)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	recipe := decodeData[domain.Recipe](t, res)
	assert.False(t, recipe.IsApproved)
	assert.Equal(t, domain.RecipeStatusPending, recipe.Status)
	require.Len(t, recipe.Ingredients, 2)
	assert.Equal(t, "Salt", recipe.Ingredients[0].Name)

	status, _ = s.do(fiber.MethodGet, fmt.Sprintf("/recipe/getRecipe/%d", recipe.ID), nil, 0)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = s.do(fiber.MethodPost, "/recipe/insertRecipe", body, 0, fiber.HeaderAuthorization, "Bearer forged")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestInsertRecipeErrors(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", false)
	other := testutil.CreateUser(t, s.db, "other@example.com", false)

	tests := []struct {
		name   string
		as     uint
		body   string
		status int
	}{
		{"anonymous", 0, fmt.Sprintf(`{"title":"Soup","user_id":%d}`, owner.ID), fiber.StatusUnauthorized},
		{"someone else's account", other.ID, fmt.Sprintf(`{"title":"Soup","user_id":%d}`, owner.ID), fiber.StatusForbidden},
		{"missing title", owner.ID, fmt.Sprintf(`{"user_id":%d}`, owner.ID), fiber.StatusBadRequest},
		{"missing user id", owner.ID, `{"title":"Soup"}`, fiber.StatusBadRequest},
		{"malformed ingredients", owner.ID, fmt.Sprintf(`{"title":"Soup","user_id":%d,"ingredients":42}`, owner.ID), fiber.StatusBadRequest},
		{"malformed legacy ingredients", owner.ID, fmt.Sprintf(`{"title":"Soup","user_id":%d,"ingredients":"Salt"}`, owner.ID), fiber.StatusBadRequest},
		{"broken json", owner.ID, `{"title":`, fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := s.do(fiber.MethodPost, "/recipe/insertRecipe", tt.body, tt.as)
			assert.Equal(t, tt.status, status, res.Error)
			assert.False(t, res.Status)
		})
	}

	var count int64
	require.NoError(t, s.db.Model(&entities.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestModerationFlow(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", false)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", true)
	recipe := testutil.CreateRecipe(t, s.db, owner.ID, "Soup", false)

	status, _ := s.do(fiber.MethodGet, "/recipe/admin/pending", nil, owner.ID)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.do(fiber.MethodPut, fmt.Sprintf("/recipe/admin/approve/%d", recipe.ID), nil, 0)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, res := s.do(fiber.MethodGet, "/recipe/admin/pending", nil, admin.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decodeData[[]domain.Recipe](t, res), 1)

	status, res = s.do(fiber.MethodPut, fmt.Sprintf("/recipe/admin/approve/%d", recipe.ID), nil, admin.ID)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	assert.Equal(t, domain.RecipeStatusApproved, decodeData[domain.Recipe](t, res).Status)

	status, res = s.do(fiber.MethodGet, "/recipe/getAllRecipes", nil, 0)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decodeData[[]domain.Recipe](t, res), 1)

	status, res = s.do(fiber.MethodGet, "/recipe/search?q=SOUP&maxCookTime=abc", nil, 0)
	assert.Equal(t, fiber.StatusBadRequest, status, res.Error)

	status, res = s.do(fiber.MethodGet, "/recipe/search?q=SOUP", nil, 0)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	assert.Len(t, decodeData[[]domain.Recipe](t, res), 1)

	status, _ = s.do(fiber.MethodDelete, fmt.Sprintf("/recipe/admin/reject/%d", recipe.ID), nil, admin.ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(fiber.MethodGet, fmt.Sprintf("/recipe/getRecipe/%d", recipe.ID), nil, admin.ID)
	assert.Equal(t, fiber.StatusNotFound, status)

	s.mailer.AssertNumberOfCalls(t, "SendMail", 2)
}

func TestRecipeIngredientsEndpoints(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", false)
	other := testutil.CreateUser(t, s.db, "other@example.com", false)
	recipe := testutil.CreateRecipe(t, s.db, owner.ID, "Soup", true)

	update := fmt.Sprintf("/recipe/updateRecipe/%d", recipe.ID)
	status, _ := s.do(fiber.MethodPut, update, `{"ingredients":["Salt"]}`, other.ID)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, res := s.do(fiber.MethodPut, update, `{"ingredients":"[\"Salt\",\"Pepper\"]"}`, owner.ID)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	assert.Len(t, decodeData[domain.Recipe](t, res).Ingredients, 2)

	status, res = s.do(fiber.MethodPut, update, `{"title":"Soup II"}`, owner.ID)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	assert.Len(t, decodeData[domain.Recipe](t, res).Ingredients, 2)

	status, res = s.do(fiber.MethodPost, "/ingredients", map[string]any{"name": "Garlic", "quantity": "2 cloves", "recipe_id": recipe.ID}, owner.ID)
	require.Equal(t, fiber.StatusCreated, status, res.Error)

	status, res = s.do(fiber.MethodGet, fmt.Sprintf("/ingredients/recipe/%d", recipe.ID), nil, 0)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decodeData[[]domain.IngredientResponse](t, res), 3)

	status, _ = s.do(fiber.MethodGet, "/ingredients/abc", nil, 0)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, res = s.do(fiber.MethodPut, update, `{"ingredients":[]}`, owner.ID)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	assert.Empty(t, decodeData[domain.Recipe](t, res).Ingredients)
}

func TestPendingRecipeStaysHidden(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", false)
	snoop := testutil.CreateUser(t, s.db, "snoop@example.com", false)
	draft := testutil.CreateRecipe(t, s.db, owner.ID, "Secret pending", false)

	status, res := s.do(fiber.MethodPost, "/ingredients", map[string]any{"name": "Truffle", "recipe_id": draft.ID}, owner.ID)
	require.Equal(t, fiber.StatusCreated, status, res.Error)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"recipe", fiber.MethodGet, fmt.Sprintf("/recipe/getRecipe/%d", draft.ID), nil},
		{"ingredients", fiber.MethodGet, fmt.Sprintf("/ingredients/recipe/%d", draft.ID), nil},
		{"favorite", fiber.MethodPost, "/favorite/insertFavorite", map[string]any{"recipe_id": draft.ID}},
		{"comment", fiber.MethodPost, "/comment/insertComment", map[string]any{"content": "hm", "recipe_id": draft.ID}},
		{"rating", fiber.MethodPost, "/rating/insertRating", map[string]any{"recipe_id": draft.ID, "score": 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := s.do(tt.method, tt.path, tt.body, snoop.ID)
			assert.Equal(t, fiber.StatusNotFound, status)
		})
	}

	status, res = s.do(fiber.MethodGet, fmt.Sprintf("/ingredients/recipe/%d", draft.ID), nil, owner.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decodeData[[]domain.IngredientResponse](t, res), 1)
}

func TestCommentQueryFallback(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", false)
	fan := testutil.CreateUser(t, s.db, "fan@example.com", false)
	recipe := testutil.CreateRecipe(t, s.db, owner.ID, "Soup", true)

	status, res := s.do(fiber.MethodPost, "/comment/insertComment", map[string]any{"content": "Tasty", "recipe_id": recipe.ID}, fan.ID)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	comment := decodeData[domain.Comment](t, res)
	assert.Equal(t, fan.ID, comment.UserID)

	status, _ = s.do(fiber.MethodDelete, fmt.Sprintf("/comment/deleteComment?commentId=%d", comment.ID), nil, owner.ID)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.do(fiber.MethodDelete, fmt.Sprintf("/comment/deleteComment?commentId=%d", comment.ID), nil, fan.ID)
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = s.do(fiber.MethodDelete, "/comment/deleteComment", nil, fan.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestFavoritesAndRatings(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", false)
	fan := testutil.CreateUser(t, s.db, "fan@example.com", false)
	recipe := testutil.CreateRecipe(t, s.db, owner.ID, "Soup", true)

	fav := map[string]any{"recipe_id": recipe.ID}
	status, res := s.do(fiber.MethodPost, "/favorite/insertFavorite", fav, fan.ID)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	status, _ = s.do(fiber.MethodPost, "/favorite/insertFavorite", fav, fan.ID)
	assert.Equal(t, fiber.StatusConflict, status)

	status, _ = s.do(fiber.MethodGet, "/favorite/getAllFavorites", nil, fan.ID)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, res = s.do(fiber.MethodGet, fmt.Sprintf("/favorite/getUserFavorites/%d", fan.ID), nil, fan.ID)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decodeData[[]domain.Favorite](t, res), 1)

	status, _ = s.do(fiber.MethodPost, "/rating/insertRating", map[string]any{"recipe_id": recipe.ID, "score": 7}, fan.ID)
	assert.Equal(t, fiber.StatusBadRequest, status)

	for _, rater := range []uint{fan.ID, owner.ID} {
		status, res = s.do(fiber.MethodPost, "/rating/insertRating", map[string]any{"recipe_id": recipe.ID, "score": 4}, rater)
		require.Equal(t, fiber.StatusOK, status, res.Error)
	}

	status, res = s.do(fiber.MethodGet, fmt.Sprintf("/rating/getRecipeRatingSummary/%d", recipe.ID), nil, 0)
	require.Equal(t, fiber.StatusOK, status)
	summary := decodeData[domain.RatingSummary](t, res)
	assert.EqualValues(t, 2, summary.Count)
	assert.Equal(t, 4.0, summary.Average)
}

func TestRootAdminProtection(t *testing.T) {
	s := newTestServer(t)
	root := testutil.CreateUser(t, s.db, rootEmail, true)
	admin := testutil.CreateUser(t, s.db, "admin@example.com", true)

	status, _ := s.do(fiber.MethodDelete, fmt.Sprintf("/user/delete/%d", root.ID), nil, admin.ID)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, res := s.do(fiber.MethodPut, fmt.Sprintf("/user/update/%d", root.ID), map[string]any{"is_admin": false}, admin.ID)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	assert.True(t, decodeData[domain.UserResponse](t, res).IsAdmin)

	status, _ = s.do(fiber.MethodPost, "/user/add", map[string]string{"email": rootEmail, "password": "pw"}, 0)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = s.do(fiber.MethodDelete, fmt.Sprintf("/user/delete/%d", admin.ID), nil, root.ID)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUploadImage(t *testing.T) {
	s := newTestServer(t)
	owner := testutil.CreateUser(t, s.db, "owner@example.com", false)
	other := testutil.CreateUser(t, s.db, "other@example.com", false)
	recipe := testutil.CreateRecipe(t, s.db, owner.ID, "Soup", true)

	upload := func(as uint) (int, apiResponse) {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("image", "soup.png")
		require.NoError(t, err)
		_, err = part.Write([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(fiber.MethodPost, fmt.Sprintf("/recipe/uploadImage/%d", recipe.ID), &buf)
		req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
		req.Header.Set(domain.HeaderUserID, strconv.FormatUint(uint64(as), 10))
		return s.send(req)
	}

	status, _ := upload(other.ID)
	assert.Equal(t, fiber.StatusForbidden, status)

	s.s3.On("UploadFile", mock.Anything, mock.AnythingOfType("string"), mock.Anything, "recipes").
		Return("recipes/soup.png", nil).Once()

	status, res := upload(owner.ID)
	require.Equal(t, fiber.StatusOK, status, res.Error)
	assert.Equal(t, "https://bucket.example/recipes/soup.png", decodeData[domain.Recipe](t, res).Image)
	s.s3.AssertExpectations(t)

	var stored entities.Recipe
	require.NoError(t, s.db.First(&stored, recipe.ID).Error)
	assert.Equal(t, "https://bucket.example/recipes/soup.png", stored.Image)
}
