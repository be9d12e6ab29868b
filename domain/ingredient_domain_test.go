package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientInput_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		wantKind IngredientInputKind
		want     []IngredientItem
	}{
		{
			name:     "structured items",
			payload:  `[{"name":"Salt","quantity":"1 tsp"},{"name":"Flour","quantity":250}]`,
			wantKind: IngredientInputStructured,
			want: []IngredientItem{
				{Name: "Salt", Quantity: "1 tsp"},
				{Name: "Flour", Quantity: "250"},
			},
		},
		{
			name:     "bare names",
			payload:  `["Salt","Pepper"]`,
			wantKind: IngredientInputNames,
			want:     []IngredientItem{{Name: "Salt"}, {Name: "Pepper"}},
		},
		{
			name:     "mixed names and objects",
			payload:  `["Salt",{"name":"Egg"}]`,
			wantKind: IngredientInputStructured,
			want:     []IngredientItem{{Name: "Salt"}, {Name: "Egg"}},
		},
		{
			name:     "legacy encoded string",
			payload:  `"[\"Salt\",\"Pepper\"]"`,
			wantKind: IngredientInputLegacy,
			want:     []IngredientItem{{Name: "Salt"}, {Name: "Pepper"}},
		},
		{
			name:     "blank legacy string clears",
			payload:  `"  "`,
			wantKind: IngredientInputLegacy,
			want:     []IngredientItem{},
		},
		{
			name:     "empty list",
			payload:  `[]`,
			wantKind: IngredientInputStructured,
			want:     []IngredientItem{},
		},
		{
			name:     "null elements are skipped",
			payload:  `[null,"Salt"]`,
			wantKind: IngredientInputNames,
			want:     []IngredientItem{{Name: "Salt"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in IngredientInput
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &in))
			assert.Equal(t, tt.wantKind, in.Kind)
			assert.Equal(t, tt.want, in.Items)
		})
	}
}

func TestIngredientInput_UnmarshalJSONErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    error
	}{
		{"number", `42`, ErrInvalidIngredientsPayload},
		{"object", `{"name":"Salt"}`, ErrInvalidIngredientsPayload},
		{"nested list", `[["Salt"]]`, ErrInvalidIngredientsPayload},
		{"legacy not a list", `"Salt, Pepper"`, ErrInvalidLegacyIngredients},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in IngredientInput
			err := json.Unmarshal([]byte(tt.payload), &in)
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, KindValidation, KindOf(err))
		})
	}
}

func TestIngredientInput_AbsentAndNull(t *testing.T) {
	var req UpdateRecipeRequest
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Soup"}`), &req))
	assert.Nil(t, req.Ingredients)

	require.NoError(t, json.Unmarshal([]byte(`{"ingredients":null}`), &req))
	assert.Nil(t, req.Ingredients)

	require.NoError(t, json.Unmarshal([]byte(`{"ingredients":["Salt"]}`), &req))
	require.NotNil(t, req.Ingredients)
	assert.Equal(t, IngredientInputNames, req.Ingredients.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(ErrRecipeNotFound))
	assert.Equal(t, KindConflict, KindOf(ErrEmailAlreadyExists))
	assert.Equal(t, KindInternal, KindOf(assert.AnError))
	assert.True(t, IsForbidden(ErrAdminRequired))
	assert.Equal(t, "unauthenticated", KindUnauthenticated.String())
}
