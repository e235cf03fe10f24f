package inventory

import (
	"context"
	"database/sql"

	"github.com/Nikolai0169/Ecommerce/internal/logger"

	"go.uber.org/zap"
)

// Service is the stock ledger over the shared database handle.
type Service interface {
	HasStock(ctx context.Context, productID string, qty int) (bool, error)
	Decrease(ctx context.Context, productID string, qty int) error
	Increase(ctx context.Context, productID string, qty int) error
	Stock(ctx context.Context, productID string) (int, error)
}

type service struct {
	db *sql.DB
}

func NewService(db *sql.DB) Service {
	return &service{db: db}
}

func (s *service) HasStock(ctx context.Context, productID string, qty int) (bool, error) {
	if qty <= 0 {
		return false, ErrInvalidQuantity
	}

	stock, err := Stock(ctx, s.db, productID)
	if err != nil {
		return false, err
	}

	return qty <= stock, nil
}

func (s *service) Decrease(ctx context.Context, productID string, qty int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "DecreaseStock"),
		zap.String("product_id", productID),
		zap.Int("quantity", qty),
	)

	if err := Decrease(ctx, s.db, productID, qty); err != nil {
		log.Warn("stock decrease rejected", zap.Error(err))
		return err
	}

	log.Info("stock decreased")
	return nil
}

func (s *service) Increase(ctx context.Context, productID string, qty int) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "IncreaseStock"),
		zap.String("product_id", productID),
		zap.Int("quantity", qty),
	)

	if err := Increase(ctx, s.db, productID, qty); err != nil {
		log.Error("stock increase failed", zap.Error(err))
		return err
	}

	log.Info("stock increased")
	return nil
}

func (s *service) Stock(ctx context.Context, productID string) (int, error) {
	return Stock(ctx, s.db, productID)
}
