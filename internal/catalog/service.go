package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Nikolai0169/Ecommerce/internal/logger"
	"github.com/Nikolai0169/Ecommerce/internal/metrics"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the business logic for the catalog.
type Service interface {
	CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error)
	UpdateCategory(ctx context.Context, id string, params UpdateCategoryParams) (*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	ListCategories(ctx context.Context, filter *string, onlyActive bool, limit, page *int32) ([]*Category, error)
	SetCategoryActive(ctx context.Context, id string, active bool) (*CascadeResult, error)

	CreateSubcategory(ctx context.Context, params CreateSubcategoryParams) (*Subcategory, error)
	GetSubcategory(ctx context.Context, id string) (*Subcategory, error)
	ListSubcategories(ctx context.Context, categoryID string, onlyActive bool) ([]*Subcategory, error)
	SetSubcategoryActive(ctx context.Context, id string, active bool) (*CascadeResult, error)

	CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error)
	UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*Product, error)
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context, filter ListProductsFilter) ([]*Product, error)
	SetProductActive(ctx context.Context, id string, active bool) error
	DeleteProduct(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	assets   AssetDeleter
	registry *metrics.Registry
	validate *validator.Validate
}

func NewService(repo Repository, assets AssetDeleter, registry *metrics.Registry) Service {
	if assets == nil {
		assets = NopAssets{}
	}
	return &service{
		repo:     repo,
		assets:   assets,
		registry: registry,
		validate: validator.New(),
	}
}

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

func validImageName(name *string) bool {
	if name == nil || *name == "" {
		return true
	}
	ext := strings.ToLower(filepath.Ext(*name))
	return allowedImageExts[ext]
}

func (s *service) CreateCategory(ctx context.Context, params CreateCategoryParams) (*Category, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	c := &Category{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Description: params.Description,
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *service) UpdateCategory(ctx context.Context, id string, params UpdateCategoryParams) (*Category, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	c.Name = params.Name
	c.Description = params.Description

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		return nil, err
	}

	return c, nil
}

func (s *service) GetCategory(ctx context.Context, id string) (*Category, error) {
	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *service) ListCategories(ctx context.Context, filter *string, onlyActive bool, limit, page *int32) ([]*Category, error) {
	return s.repo.ListCategories(ctx, filter, onlyActive, limit, page)
}

// SetCategoryActive flips a category. Reactivation deliberately leaves the
// dependents untouched; which subcategories come back is an admin call.
func (s *service) SetCategoryActive(ctx context.Context, id string, active bool) (*CascadeResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "SetCategoryActive"),
		zap.String("category_id", id),
		zap.Bool("active", active),
	)

	result, err := s.repo.SetCategoryActive(ctx, id, active)
	if err != nil {
		log.Error("failed to update category activation", zap.Error(err))
		return nil, err
	}

	if !active {
		s.registry.IncCascadeRun()
	}

	log.Info("SetCategoryActive success",
		zap.Int("subcategories", result.Subcategories),
		zap.Int("products", result.Products),
	)
	return result, nil
}

func (s *service) CreateSubcategory(ctx context.Context, params CreateSubcategoryParams) (*Subcategory, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	parent, err := s.repo.GetCategoryByID(ctx, params.CategoryID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, ErrNotFound
	}
	if !parent.Active {
		return nil, ErrInactiveParent
	}

	sc := &Subcategory{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Description: params.Description,
		CategoryID:  params.CategoryID,
	}

	if err := s.repo.CreateSubcategory(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

func (s *service) GetSubcategory(ctx context.Context, id string) (*Subcategory, error) {
	sc, err := s.repo.GetSubcategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sc == nil {
		return nil, ErrNotFound
	}
	return sc, nil
}

func (s *service) ListSubcategories(ctx context.Context, categoryID string, onlyActive bool) ([]*Subcategory, error) {
	return s.repo.ListSubcategories(ctx, categoryID, onlyActive)
}

func (s *service) SetSubcategoryActive(ctx context.Context, id string, active bool) (*CascadeResult, error) {
	result, err := s.repo.SetSubcategoryActive(ctx, id, active)
	if err != nil {
		return nil, err
	}

	if !active {
		s.registry.IncCascadeRun()
	}

	return result, nil
}

// checkParents enforces the category/subcategory linkage a product must
// satisfy: both present, both active, and the subcategory under the category.
func (s *service) checkParents(ctx context.Context, categoryID, subcategoryID string) error {
	parent, err := s.repo.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if parent == nil {
		return ErrNotFound
	}
	if !parent.Active {
		return ErrInactiveParent
	}

	sc, err := s.repo.GetSubcategoryByID(ctx, subcategoryID)
	if err != nil {
		return err
	}
	if sc == nil {
		return ErrNotFound
	}
	if sc.CategoryID != categoryID {
		return ErrCategoryMismatch
	}
	if !sc.Active {
		return ErrInactiveParent
	}

	return nil
}

func (s *service) CreateProduct(ctx context.Context, params CreateProductParams) (*Product, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if params.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if !validImageName(params.ImageName) {
		return nil, fmt.Errorf("%w: unsupported image extension", ErrValidation)
	}

	if err := s.checkParents(ctx, params.CategoryID, params.SubcategoryID); err != nil {
		return nil, err
	}

	p := &Product{
		ID:            uuid.New().String(),
		Name:          params.Name,
		Description:   params.Description,
		Price:         params.Price,
		Stock:         params.Stock,
		ImageName:     params.ImageName,
		CategoryID:    params.CategoryID,
		SubcategoryID: params.SubcategoryID,
	}

	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) UpdateProduct(ctx context.Context, id string, params UpdateProductParams) (*Product, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if params.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if !validImageName(params.ImageName) {
		return nil, fmt.Errorf("%w: unsupported image extension", ErrValidation)
	}

	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}

	if err := s.checkParents(ctx, params.CategoryID, params.SubcategoryID); err != nil {
		return nil, err
	}

	p.Name = params.Name
	p.Description = params.Description
	p.Price = params.Price
	p.ImageName = params.ImageName
	p.CategoryID = params.CategoryID
	p.SubcategoryID = params.SubcategoryID

	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *service) ListProducts(ctx context.Context, filter ListProductsFilter) ([]*Product, error) {
	return s.repo.ListProducts(ctx, filter)
}

func (s *service) SetProductActive(ctx context.Context, id string, active bool) error {
	return s.repo.SetProductActive(ctx, id, active)
}

// DeleteProduct removes the product row, then tries to drop the image asset.
// Asset failures are logged and swallowed; the row is already gone.
func (s *service) DeleteProduct(ctx context.Context, id string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DeleteProduct"),
		zap.String("product_id", id),
	)

	imageName, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		log.Error("failed to delete product", zap.Error(err))
		return err
	}

	if imageName != nil {
		if err := s.assets.DeleteAsset(ctx, *imageName); err != nil {
			log.Warn("failed to delete product image asset",
				zap.String("image_name", *imageName),
				zap.Error(err),
			)
		}
	}

	log.Info("product deleted")
	return nil
}
