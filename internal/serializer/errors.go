// Package serializer defines the wire representations of the domain
// entities: response shapes, create requests with field-level validation,
// and patch types whose pointer fields make partial updates explicit.
// Validation failures collect into a field -> messages map, which is the
// body of every 400 response.
package serializer

// FieldErrors maps a field name to the validation messages for it
type FieldErrors map[string][]string

// Add appends a validation message for a field
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Any reports whether any field failed validation
func (e FieldErrors) Any() bool {
	return len(e) > 0
}
