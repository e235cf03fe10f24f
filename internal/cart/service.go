package cart

import (
	"context"
	"fmt"

	"github.com/Nikolai0169/Ecommerce/internal/catalog"
	"github.com/Nikolai0169/Ecommerce/internal/inventory"
	"github.com/Nikolai0169/Ecommerce/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	AddItem(ctx context.Context, params AddItemParams) (*CartItem, error)
	UpdateQuantity(ctx context.Context, itemID string, quantity int) (*CartItem, error)
	GetCart(ctx context.Context, userID string) ([]CartRow, error)
	CartTotal(ctx context.Context, userID string) (decimal.Decimal, error)
	RemoveItem(ctx context.Context, itemID, userID string) error
	ClearCart(ctx context.Context, userID string) error
}

type service struct {
	repo        Repository
	catalogRepo catalog.Repository
	stock       inventory.Service
	validate    *validator.Validate
}

// NewService creates a new cart service.
func NewService(repo Repository, catalogRepo catalog.Repository, stock inventory.Service) Service {
	return &service{
		repo:        repo,
		catalogRepo: catalogRepo,
		stock:       stock,
		validate:    validator.New(),
	}
}

// AddItem puts a product in the user's cart. An existing (user, product) row
// has its quantity bumped instead; the unit price snapshot taken on first
// insert is never retaken.
func (s *service) AddItem(ctx context.Context, params AddItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	if err := s.validate.Struct(params); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	product, err := s.catalogRepo.GetProductByID(ctx, params.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if !product.Active {
		return nil, ErrInactiveProduct
	}

	existing, err := s.repo.GetItemByUserAndProduct(ctx, params.UserID, params.ProductID)
	if err != nil {
		return nil, err
	}

	finalQty := params.Quantity
	if existing != nil {
		finalQty += existing.Quantity
	}

	ok, err := s.stock.HasStock(ctx, params.ProductID, finalQty)
	if err != nil {
		return nil, err
	}
	if !ok {
		log.Warn("add to cart rejected: not enough stock",
			zap.Int("requested", finalQty),
		)
		return nil, ErrInsufficientStock
	}

	if existing == nil {
		return s.repo.CreateItem(ctx, createItemParams{
			UserID:    params.UserID,
			ProductID: params.ProductID,
			Quantity:  params.Quantity,
			UnitPrice: product.Price,
		})
	}

	return s.repo.UpdateItemQuantity(ctx, existing.ID, finalQty)
}

// UpdateQuantity re-validates against the product's current stock. The price
// snapshot is left alone.
func (s *service) UpdateQuantity(ctx context.Context, itemID string, quantity int) (*CartItem, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	item, err := s.repo.GetItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	ok, err := s.stock.HasStock(ctx, item.ProductID, quantity)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientStock
	}

	return s.repo.UpdateItemQuantity(ctx, itemID, quantity)
}

func (s *service) GetCart(ctx context.Context, userID string) ([]CartRow, error) {
	return s.repo.GetCartRows(ctx, userID)
}

func (s *service) CartTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	return s.repo.CartTotal(ctx, userID)
}

func (s *service) RemoveItem(ctx context.Context, itemID, userID string) error {
	if itemID == "" || userID == "" {
		return ErrValidation
	}
	return s.repo.RemoveItem(ctx, itemID, userID)
}

func (s *service) ClearCart(ctx context.Context, userID string) error {
	if userID == "" {
		return ErrValidation
	}
	return s.repo.ClearCart(ctx, userID)
}
