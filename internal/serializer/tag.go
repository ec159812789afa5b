package serializer

import (
	"github.com/rotem123456/recipe-app-api/internal/model"
)

// TagResponse is the wire representation of a tag
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// NewTag builds the wire representation of a tag
func NewTag(tag model.Tag) TagResponse {
	return TagResponse{
		ID:   tag.ID,
		Name: tag.Name,
	}
}

// Tags builds the wire representation of a tag list
func Tags(tags []model.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, NewTag(tag))
	}
	return out
}

// TagCreate is the request body for creating a tag
type TagCreate struct {
	Name string `json:"name"`
}

// Validate checks the request and returns per-field errors
func (r *TagCreate) Validate() FieldErrors {
	errs := FieldErrors{}
	validateName(errs, r.Name)
	return errs
}

// TagPatch is the partial-update body; only non-nil fields are applied
type TagPatch struct {
	Name *string `json:"name"`
}

// Apply validates the supplied fields and writes them onto the tag
func (p *TagPatch) Apply(tag *model.Tag) FieldErrors {
	errs := FieldErrors{}
	if p.Name != nil {
		validateName(errs, *p.Name)
		if !errs.Any() {
			tag.Name = *p.Name
		}
	}
	return errs
}
