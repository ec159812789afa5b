package serializer

import (
	"github.com/rotem123456/recipe-app-api/internal/model"
)

// IngredientResponse is the wire representation of an ingredient. The id
// is read-only and the owner is never exposed.
type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewIngredient builds the wire representation of an ingredient
func NewIngredient(ingredient model.Ingredient) IngredientResponse {
	return IngredientResponse{
		ID:   ingredient.ID,
		Name: ingredient.Name,
	}
}

// Ingredients builds the wire representation of an ingredient list.
// A nil slice renders as an empty JSON array, not null.
func Ingredients(ingredients []model.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		out = append(out, NewIngredient(ingredient))
	}
	return out
}

// IngredientCreate is the request body for creating an ingredient
type IngredientCreate struct {
	Name string `json:"name"`
}

// Validate checks the request and returns per-field errors
func (r *IngredientCreate) Validate() FieldErrors {
	errs := FieldErrors{}
	validateName(errs, r.Name)
	return errs
}

// IngredientPatch is the partial-update body; only non-nil fields are applied
type IngredientPatch struct {
	Name *string `json:"name"`
}

// Apply validates the supplied fields and writes them onto the ingredient
func (p *IngredientPatch) Apply(ingredient *model.Ingredient) FieldErrors {
	errs := FieldErrors{}
	if p.Name != nil {
		validateName(errs, *p.Name)
		if !errs.Any() {
			ingredient.Name = *p.Name
		}
	}
	return errs
}

func validateName(errs FieldErrors, name string) {
	if name == "" {
		errs.Add("name", "this field may not be blank")
	}
	if len(name) > 255 {
		errs.Add("name", "ensure this field has no more than 255 characters")
	}
}
