package catalog

import "errors"

var (
	// -- Validation & Input --
	ErrValidation       = errors.New("catalog validation failed")
	ErrDuplicateName    = errors.New("name already in use")
	ErrCategoryMismatch = errors.New("subcategory belongs to a different category")

	// -- Resource State --
	ErrNotFound          = errors.New("catalog record not found")
	ErrInactiveParent    = errors.New("parent is deactivated")
	ErrProductReferenced = errors.New("product is referenced by existing orders")
)

// -- Constants (External Systems) --
const (
	PgUniqueViolation     = "23505"
	PgForeignKeyViolation = "23503"
)
