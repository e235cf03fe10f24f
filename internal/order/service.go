package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nikolai0169/Ecommerce/internal/inventory"
	"github.com/Nikolai0169/Ecommerce/internal/logger"
	"github.com/Nikolai0169/Ecommerce/internal/metrics"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Service interface {
	CreateFromCart(ctx context.Context, userID string, info CheckoutInfo) (*Order, error)
	ChangeStatus(ctx context.Context, orderID string, next Status) (*Order, error)
	Cancel(ctx context.Context, orderID string) (*Order, error)
	Delete(ctx context.Context, orderID string) error
	Get(ctx context.Context, orderID string) (*Order, error)
	HistoryForUser(ctx context.Context, userID string) ([]*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
}

type service struct {
	repo     Repository
	registry *metrics.Registry
	validate *validator.Validate
}

func NewService(repo Repository, registry *metrics.Registry) Service {
	return &service{
		repo:     repo,
		registry: registry,
		validate: validator.New(),
	}
}

func (s *service) CreateFromCart(ctx context.Context, userID string, info CheckoutInfo) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateFromCart"),
		zap.String("user_id", userID),
	)

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if err := s.validate.Struct(info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.registry.IncCheckoutStarted()

	o, err := s.repo.CreateFromCart(ctx, userID, info)
	if err != nil {
		s.registry.IncCheckoutFailed()
		if errors.Is(err, inventory.ErrInsufficientStock) {
			s.registry.IncStockRejection()
		}
		log.Warn("checkout failed", zap.Error(err))
		return nil, err
	}

	s.registry.IncCheckoutCompleted()
	log.Info("checkout complete",
		zap.String("order_id", o.ID),
		zap.String("total", o.Total.String()),
	)
	return o, nil
}

// ChangeStatus validates the transition against the state machine. Moving to
// cancelled is routed to Cancel so line stock comes back.
func (s *service) ChangeStatus(ctx context.Context, orderID string, next Status) (*Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, next)
	}

	if next == StatusCancelled {
		return s.Cancel(ctx, orderID)
	}

	return s.repo.ChangeStatus(ctx, orderID, next)
}

func (s *service) Cancel(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.repo.Cancel(ctx, orderID)
	if err != nil {
		return nil, err
	}

	s.registry.IncOrderCancelled()
	return o, nil
}

// Delete always refuses. Orders are audit history; cancellation is the only
// retraction path.
func (s *service) Delete(ctx context.Context, orderID string) error {
	logger.FromCtx(ctx).Warn("order deletion attempted",
		zap.String("order_id", orderID),
	)
	return ErrOperationNotAllowed
}

func (s *service) Get(ctx context.Context, orderID string) (*Order, error) {
	o, err := s.repo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrOrderNotFound
	}
	return o, nil
}

func (s *service) HistoryForUser(ctx context.Context, userID string) ([]*Order, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrValidation)
	}
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.List(ctx, filter)
}
