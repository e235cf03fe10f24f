package order

import (
	"context"
	"fmt"
	"testing"

	"github.com/Nikolai0169/Ecommerce/internal/inventory"
	"github.com/Nikolai0169/Ecommerce/internal/metrics"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateFromCart(ctx context.Context, userID string, info CheckoutInfo) (*Order, error) {
	args := m.Called(ctx, userID, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Order), args.Error(1)
}

func (m *MockRepository) ChangeStatus(ctx context.Context, orderID string, next Status) (*Order, error) {
	args := m.Called(ctx, orderID, next)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) Cancel(ctx context.Context, orderID string) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func TestService_CreateFromCart(t *testing.T) {
	info := CheckoutInfo{ShippingAddress: "123 Main St", Phone: "555-0100"}

	t.Run("Success counts a completed checkout", func(t *testing.T) {
		repo := new(MockRepository)
		registry := metrics.NewRegistry()
		svc := NewService(repo, registry)

		repo.On("CreateFromCart", mock.Anything, "user-1", info).
			Return(&Order{ID: "order-1", Total: decimal.RequireFromString("25.00")}, nil)

		o, err := svc.CreateFromCart(context.Background(), "user-1", info)
		require.NoError(t, err)
		assert.Equal(t, "order-1", o.ID)

		assert.Equal(t, uint64(1), registry.CheckoutsStarted.Load())
		assert.Equal(t, uint64(1), registry.CheckoutsCompleted.Load())
		assert.Equal(t, uint64(0), registry.CheckoutsFailed.Load())
	})

	t.Run("Failure counts a failed checkout", func(t *testing.T) {
		repo := new(MockRepository)
		registry := metrics.NewRegistry()
		svc := NewService(repo, registry)

		repo.On("CreateFromCart", mock.Anything, "user-1", info).Return(nil, ErrEmptyCart)

		_, err := svc.CreateFromCart(context.Background(), "user-1", info)
		assert.ErrorIs(t, err, ErrEmptyCart)

		assert.Equal(t, uint64(1), registry.CheckoutsStarted.Load())
		assert.Equal(t, uint64(0), registry.CheckoutsCompleted.Load())
		assert.Equal(t, uint64(1), registry.CheckoutsFailed.Load())
	})

	t.Run("Stock shortage counts a rejection", func(t *testing.T) {
		repo := new(MockRepository)
		registry := metrics.NewRegistry()
		svc := NewService(repo, registry)

		repo.On("CreateFromCart", mock.Anything, "user-1", info).
			Return(nil, fmt.Errorf("product prod-a: %w", inventory.ErrInsufficientStock))

		_, err := svc.CreateFromCart(context.Background(), "user-1", info)
		assert.ErrorIs(t, err, inventory.ErrInsufficientStock)
		assert.Equal(t, uint64(1), registry.StockRejections.Load())
	})

	t.Run("Missing shipping address", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		_, err := svc.CreateFromCart(context.Background(), "user-1", CheckoutInfo{Phone: "555-0100"})
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "CreateFromCart")
	})

	t.Run("Missing user", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		_, err := svc.CreateFromCart(context.Background(), "", info)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestService_ChangeStatus(t *testing.T) {
	t.Run("Forward transition goes to the repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("ChangeStatus", mock.Anything, "order-1", StatusPaid).
			Return(&Order{ID: "order-1", Status: StatusPaid}, nil)

		o, err := svc.ChangeStatus(context.Background(), "order-1", StatusPaid)
		require.NoError(t, err)
		assert.Equal(t, StatusPaid, o.Status)
	})

	t.Run("Cancelled routes through Cancel", func(t *testing.T) {
		repo := new(MockRepository)
		registry := metrics.NewRegistry()
		svc := NewService(repo, registry)

		repo.On("Cancel", mock.Anything, "order-1").
			Return(&Order{ID: "order-1", Status: StatusCancelled}, nil)

		o, err := svc.ChangeStatus(context.Background(), "order-1", StatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, StatusCancelled, o.Status)
		assert.Equal(t, uint64(1), registry.OrdersCancelled.Load())
		repo.AssertNotCalled(t, "ChangeStatus")
	})

	t.Run("Unknown status", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		_, err := svc.ChangeStatus(context.Background(), "order-1", Status("refunded"))
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "ChangeStatus")
	})
}

func TestService_Delete(t *testing.T) {
	svc := NewService(new(MockRepository), nil)

	err := svc.Delete(context.Background(), "order-1")
	assert.ErrorIs(t, err, ErrOperationNotAllowed)
}

func TestService_Get(t *testing.T) {
	t.Run("Missing order", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo, nil)

		repo.On("GetByID", mock.Anything, "ghost").Return(nil, nil)

		_, err := svc.Get(context.Background(), "ghost")
		assert.ErrorIs(t, err, ErrOrderNotFound)
	})
}
