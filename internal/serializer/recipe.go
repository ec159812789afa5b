package serializer

import (
	"github.com/rotem123456/recipe-app-api/internal/model"
)

// RecipeResponse is the wire representation of a recipe. Price renders as
// a fixed-point two-decimal string.
type RecipeResponse struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Price       string               `json:"price"`
	TimeMinutes int                  `json:"time_minutes"`
	Description string               `json:"description"`
	Link        string               `json:"link"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

// NewRecipe builds the wire representation of a recipe
func NewRecipe(recipe model.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		Price:       FormatPrice(recipe.PriceCents),
		TimeMinutes: recipe.TimeMinutes,
		Description: recipe.Description,
		Link:        recipe.Link,
		Tags:        Tags(recipe.Tags),
		Ingredients: Ingredients(recipe.Ingredients),
	}
}

// Recipes builds the wire representation of a recipe list
func Recipes(recipes []model.Recipe) []RecipeResponse {
	out := make([]RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		out = append(out, NewRecipe(recipe))
	}
	return out
}

// RecipeCreate is the request body for creating a recipe. Tags and
// ingredients are referenced by id.
type RecipeCreate struct {
	Title         string `json:"title"`
	Price         string `json:"price"`
	TimeMinutes   int    `json:"time_minutes"`
	Description   string `json:"description"`
	Link          string `json:"link"`
	TagIDs        []uint `json:"tag_ids"`
	IngredientIDs []uint `json:"ingredient_ids"`
}

// Validate checks the request and returns the price in cents together
// with any per-field errors.
func (r *RecipeCreate) Validate() (int64, FieldErrors) {
	errs := FieldErrors{}

	if r.Title == "" {
		errs.Add("title", "this field may not be blank")
	}
	if len(r.Title) > 255 {
		errs.Add("title", "ensure this field has no more than 255 characters")
	}

	priceCents := validatePrice(errs, r.Price)
	validateTimeMinutes(errs, r.TimeMinutes)
	validateLink(errs, r.Link)

	return priceCents, errs
}

// RecipePatch is the partial-update body; only non-nil fields are
// applied. Nil tag/ingredient id lists leave the relations untouched,
// while an empty list clears them.
type RecipePatch struct {
	Title         *string `json:"title"`
	Price         *string `json:"price"`
	TimeMinutes   *int    `json:"time_minutes"`
	Description   *string `json:"description"`
	Link          *string `json:"link"`
	TagIDs        *[]uint `json:"tag_ids"`
	IngredientIDs *[]uint `json:"ingredient_ids"`
}

// Apply validates the supplied scalar fields and writes them onto the
// recipe. Relation id lists are resolved by the caller, which owns the
// tenant-scoped lookup.
func (p *RecipePatch) Apply(recipe *model.Recipe) FieldErrors {
	errs := FieldErrors{}

	if p.Title != nil {
		if *p.Title == "" {
			errs.Add("title", "this field may not be blank")
		}
		if len(*p.Title) > 255 {
			errs.Add("title", "ensure this field has no more than 255 characters")
		}
	}

	var priceCents int64
	if p.Price != nil {
		priceCents = validatePrice(errs, *p.Price)
	}
	if p.TimeMinutes != nil {
		validateTimeMinutes(errs, *p.TimeMinutes)
	}
	if p.Link != nil {
		validateLink(errs, *p.Link)
	}

	if errs.Any() {
		return errs
	}

	if p.Title != nil {
		recipe.Title = *p.Title
	}
	if p.Price != nil {
		recipe.PriceCents = priceCents
	}
	if p.TimeMinutes != nil {
		recipe.TimeMinutes = *p.TimeMinutes
	}
	if p.Description != nil {
		recipe.Description = *p.Description
	}
	if p.Link != nil {
		recipe.Link = *p.Link
	}

	return errs
}

func validatePrice(errs FieldErrors, price string) int64 {
	cents, err := ParsePrice(price)
	if err != nil {
		errs.Add("price", "a valid number with up to 3 digits and 2 decimal places is required")
	}
	return cents
}

func validateTimeMinutes(errs FieldErrors, minutes int) {
	if minutes < 0 {
		errs.Add("time_minutes", "ensure this value is greater than or equal to 0")
	}
}

func validateLink(errs FieldErrors, link string) {
	if len(link) > 255 {
		errs.Add("link", "ensure this field has no more than 255 characters")
	}
}
