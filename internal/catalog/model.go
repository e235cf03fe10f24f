package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Active      bool    `json:"active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Subcategory struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CategoryID  string  `json:"category_id"`
	Active      bool    `json:"active"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Product struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price"`
	Stock         int             `json:"stock"`
	ImageName     *string         `json:"image_name,omitempty"`
	CategoryID    string          `json:"category_id"`
	SubcategoryID string          `json:"subcategory_id"`
	Active        bool            `json:"active"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CascadeResult reports how many dependents a deactivation touched.
type CascadeResult struct {
	Subcategories int `json:"subcategories"`
	Products      int `json:"products"`
}

type CreateCategoryParams struct {
	Name        string `validate:"required,min=2,max=100"`
	Description *string
}

type UpdateCategoryParams struct {
	Name        string `validate:"required,min=2,max=100"`
	Description *string
}

type CreateSubcategoryParams struct {
	Name        string `validate:"required,min=2,max=100"`
	Description *string
	CategoryID  string `validate:"required"`
}

type CreateProductParams struct {
	Name          string `validate:"required,min=2,max=200"`
	Description   *string
	Price         decimal.Decimal `validate:"-"`
	Stock         int             `validate:"min=0"`
	ImageName     *string
	CategoryID    string `validate:"required"`
	SubcategoryID string `validate:"required"`
}

type UpdateProductParams struct {
	Name          string `validate:"required,min=2,max=200"`
	Description   *string
	Price         decimal.Decimal `validate:"-"`
	ImageName     *string
	CategoryID    string `validate:"required"`
	SubcategoryID string `validate:"required"`
}

type ListProductsFilter struct {
	CategoryID    *string
	SubcategoryID *string
	OnlyActive    bool
	Search        *string
	Limit         *int32
	Page          *int32
}
