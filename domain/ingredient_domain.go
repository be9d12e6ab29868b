package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
)

var (
	MessageSuccessGetIngredients   = "ingredients retrieved successfully"
	MessageSuccessGetIngredient    = "ingredient retrieved successfully"
	MessageSuccessAddIngredient    = "ingredient added successfully"
	MessageSuccessUpdateIngredient = "ingredient updated successfully"
	MessageSuccessDeleteIngredient = "ingredient deleted successfully"

	MessageFailedGetIngredients   = "failed to retrieve ingredients"
	MessageFailedGetIngredient    = "failed to retrieve ingredient"
	MessageFailedAddIngredient    = "failed to add ingredient"
	MessageFailedUpdateIngredient = "failed to update ingredient"
	MessageFailedDeleteIngredient = "failed to delete ingredient"

	ErrIngredientNotFound     = NewError(KindNotFound, "ingredient not found")
	ErrIngredientNameRequired = NewError(KindValidation, "ingredient name is required")
)

// IngredientInputKind tells which payload shape an IngredientInput was decoded from.
type IngredientInputKind int

const (
	IngredientInputStructured IngredientInputKind = iota + 1
	IngredientInputNames
	IngredientInputLegacy
)

func (k IngredientInputKind) String() string {
	switch k {
	case IngredientInputStructured:
		return "structured"
	case IngredientInputNames:
		return "names"
	case IngredientInputLegacy:
		return "legacy"
	default:
		return "absent"
	}
}

type IngredientItem struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
}

// IngredientInput accepts the three ingredient shapes clients send:
//
//	[{"name": "Salt", "quantity": "1 tsp"}, ...]
//	["Salt", "Pepper"]
//	"[\"Salt\", \"Pepper\"]"
//
// The payload is decoded once here; a nil *IngredientInput means the field was
// absent or null.
type IngredientInput struct {
	Kind  IngredientInputKind
	Items []IngredientItem
}

func (in *IngredientInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ErrInvalidIngredientsPayload
	}

	switch data[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return ErrInvalidIngredientsPayload
		}
		in.Kind = IngredientInputLegacy
		if len(bytes.TrimSpace([]byte(encoded))) == 0 {
			in.Items = []IngredientItem{}
			return nil
		}
		items, _, err := decodeIngredientList([]byte(encoded))
		if err != nil {
			return ErrInvalidLegacyIngredients
		}
		in.Items = items
		return nil
	case '[':
		items, allNames, err := decodeIngredientList(data)
		if err != nil {
			return err
		}
		in.Kind = IngredientInputStructured
		if allNames && len(items) > 0 {
			in.Kind = IngredientInputNames
		}
		in.Items = items
		return nil
	default:
		return ErrInvalidIngredientsPayload
	}
}

func (in IngredientInput) MarshalJSON() ([]byte, error) {
	if in.Items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(in.Items)
}

// decodeIngredientList decodes a JSON array whose elements are either bare
// names or {name, quantity} objects. allNames is true when every non-null
// element was a string.
func decodeIngredientList(data []byte) (items []IngredientItem, allNames bool, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, ErrInvalidIngredientsPayload
	}

	items = make([]IngredientItem, 0, len(raw))
	allNames = true
	for _, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || bytes.Equal(elem, []byte("null")) {
			continue
		}

		switch elem[0] {
		case '"':
			var name string
			if err := json.Unmarshal(elem, &name); err != nil {
				return nil, false, ErrInvalidIngredientsPayload
			}
			items = append(items, IngredientItem{Name: name})
		case '{':
			allNames = false
			var obj struct {
				Name     string `json:"name"`
				Quantity any    `json:"quantity"`
			}
			if err := json.Unmarshal(elem, &obj); err != nil {
				return nil, false, ErrInvalidIngredientsPayload
			}
			items = append(items, IngredientItem{Name: obj.Name, Quantity: quantityString(obj.Quantity)})
		default:
			return nil, false, ErrInvalidIngredientsPayload
		}
	}
	return items, allNames, nil
}

func quantityString(v any) string {
	switch q := v.(type) {
	case string:
		return q
	case float64:
		return strconv.FormatFloat(q, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(q)
	default:
		return ""
	}
}

type (
	AddIngredientRequest struct {
		Name     string `json:"name" validate:"required,notblank"`
		Quantity string `json:"quantity"`
		RecipeID uint   `json:"recipe_id" validate:"required,gt=0"`
	}

	UpdateIngredientRequest struct {
		Name     *string `json:"name" validate:"omitempty,notblank"`
		Quantity *string `json:"quantity"`
	}

	IngredientResponse struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
		RecipeID uint   `json:"recipe_id"`
	}
)
