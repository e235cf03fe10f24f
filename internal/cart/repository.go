package cart

import (
	"context"
	"database/sql"

	"github.com/Nikolai0169/Ecommerce/internal/logger"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	GetItemByID(ctx context.Context, itemID string) (*CartItem, error)
	GetItemByUserAndProduct(ctx context.Context, userID, productID string) (*CartItem, error)
	CreateItem(ctx context.Context, params createItemParams) (*CartItem, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*CartItem, error)
	GetCartRows(ctx context.Context, userID string) ([]CartRow, error)
	CartTotal(ctx context.Context, userID string) (decimal.Decimal, error)
	RemoveItem(ctx context.Context, itemID, userID string) error
	ClearCart(ctx context.Context, userID string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetItemByID(ctx context.Context, itemID string) (*CartItem, error) {
	query := `
	SELECT id, user_id, product_id, quantity, unit_price, created_at, updated_at
	FROM cart_items
	WHERE id = $1
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, itemID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) GetItemByUserAndProduct(ctx context.Context, userID, productID string) (*CartItem, error) {
	query := `
	SELECT id, user_id, product_id, quantity, unit_price, created_at, updated_at
	FROM cart_items
	WHERE user_id = $1 AND product_id = $2
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, userID, productID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *repository) CreateItem(ctx context.Context, params createItemParams) (*CartItem, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateItem"),
		zap.String("user_id", params.UserID),
		zap.String("product_id", params.ProductID),
	)

	log.Debug("start create cart item")

	query := `
	INSERT INTO cart_items (id, user_id, product_id, quantity, unit_price)
	VALUES (gen_random_uuid(), $1, $2, $3, $4)
	RETURNING id, user_id, product_id, quantity, unit_price, created_at, updated_at
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query,
		params.UserID, params.ProductID, params.Quantity, params.UnitPrice,
	).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create cart item", zap.Error(err))
		return nil, err
	}

	log.Info("success create cart item", zap.String("cart_item_id", item.ID))
	return &item, nil
}

func (r *repository) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) (*CartItem, error) {
	query := `
	UPDATE cart_items
	SET quantity = $1, updated_at = NOW()
	WHERE id = $2
	RETURNING id, user_id, product_id, quantity, unit_price, created_at, updated_at
	`

	var item CartItem
	err := r.db.QueryRowContext(ctx, query, quantity, itemID).Scan(
		&item.ID, &item.UserID, &item.ProductID, &item.Quantity,
		&item.UnitPrice, &item.CreatedAt, &item.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// GetCartRows returns the user's cart newest-first joined with product data.
func (r *repository) GetCartRows(ctx context.Context, userID string) ([]CartRow, error) {
	query := `
	SELECT
		c.id,
		c.user_id,
		c.product_id,
		c.quantity,
		c.unit_price,
		c.created_at,
		p.name,
		p.image_name,
		p.price,
		p.stock,
		p.active
	FROM cart_items c
	JOIN products p ON c.product_id = p.id
	WHERE c.user_id = $1
	ORDER BY c.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]CartRow, 0)
	for rows.Next() {
		var row CartRow
		if err := rows.Scan(
			&row.ID,
			&row.UserID,
			&row.ProductID,
			&row.Quantity,
			&row.UnitPrice,
			&row.CreatedAt,
			&row.ProductName,
			&row.ImageName,
			&row.CurrentPrice,
			&row.Stock,
			&row.ProductActive,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

func (r *repository) CartTotal(ctx context.Context, userID string) (decimal.Decimal, error) {
	query := `
	SELECT COALESCE(SUM(unit_price * quantity), 0)
	FROM cart_items
	WHERE user_id = $1
	`

	var total decimal.Decimal
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return decimal.Zero, err
	}

	return total, nil
}

func (r *repository) RemoveItem(ctx context.Context, itemID, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM cart_items
		WHERE id = $1 AND user_id = $2
	`, itemID, userID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}

// ClearCart drops every row for the user. Clearing an empty cart is fine.
func (r *repository) ClearCart(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID)
	return err
}
