package order

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/Nikolai0169/Ecommerce/internal/inventory"
	"github.com/Nikolai0169/Ecommerce/internal/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	CreateFromCart(ctx context.Context, userID string, info CheckoutInfo) (*Order, error)
	GetByID(ctx context.Context, orderID string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	List(ctx context.Context, filter ListFilter) ([]*Order, error)
	ChangeStatus(ctx context.Context, orderID string, next Status) (*Order, error)
	Cancel(ctx context.Context, orderID string) (*Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// CreateFromCart materializes the user's cart into an immutable order inside
// one transaction: lock the cart rows, decrement stock per line, insert the
// order and its lines carrying the cart's snapshot prices, clear the cart.
// Any stock shortage aborts the whole transaction.
func (r *repository) CreateFromCart(ctx context.Context, userID string, info CheckoutInfo) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateFromCart"),
		zap.String("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin checkout tx: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity, unit_price
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at ASC
		FOR UPDATE
	`, userID)
	if err != nil {
		return nil, err
	}

	var lines []OrderLine
	for rows.Next() {
		var line OrderLine
		if err := rows.Scan(&line.ProductID, &line.Quantity, &line.UnitPrice); err != nil {
			rows.Close()
			return nil, err
		}
		line.Subtotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	total := decimal.Zero
	for i := range lines {
		if err := inventory.Decrease(ctx, tx, lines[i].ProductID, lines[i].Quantity); err != nil {
			log.Warn("checkout aborted",
				zap.String("product_id", lines[i].ProductID),
				zap.Error(err),
			)
			return nil, fmt.Errorf("product %s: %w", lines[i].ProductID, err)
		}
		total = total.Add(lines[i].Subtotal)
	}

	o := &Order{
		ID:              uuid.New().String(),
		UserID:          userID,
		Total:           total,
		Status:          StatusPending,
		ShippingAddress: info.ShippingAddress,
		Phone:           info.Phone,
		Notes:           info.Notes,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (id, user_id, total, status, shipping_address, phone, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`, o.ID, o.UserID, o.Total, o.Status, o.ShippingAddress, o.Phone, o.Notes).
		Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].ID = uuid.New().String()
		lines[i].OrderID = o.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (id, order_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, lines[i].ID, lines[i].OrderID, lines[i].ProductID, lines[i].Quantity, lines[i].UnitPrice, lines[i].Subtotal)
		if err != nil {
			return nil, err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE user_id = $1`, userID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit checkout tx: %w", err)
	}

	o.Lines = lines
	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int("lines", len(lines)),
		zap.String("total", o.Total.String()),
	)

	return o, nil
}

func (r *repository) GetByID(ctx context.Context, orderID string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, status, shipping_address, phone, notes,
		       paid_at, shipped_at, delivered_at, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.UserID, &o.Total, &o.Status, &o.ShippingAddress, &o.Phone, &o.Notes,
		&o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, quantity, unit_price, subtotal
		FROM order_lines
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var line OrderLine
		if err := rows.Scan(&line.ID, &line.OrderID, &line.ProductID, &line.Quantity, &line.UnitPrice, &line.Subtotal); err != nil {
			return nil, err
		}
		o.Lines = append(o.Lines, line)
	}

	return &o, rows.Err()
}

func (r *repository) ListByUser(ctx context.Context, userID string) ([]*Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, total, status, shipping_address, phone, notes,
		       paid_at, shipped_at, delivered_at, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	finalLimit := int32(20)
	if filter.Limit != nil && *filter.Limit > 0 {
		finalLimit = *filter.Limit
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	finalPage := int32(1)
	if filter.Page != nil && *filter.Page > 0 {
		finalPage = *filter.Page
	}
	offset := (finalPage - 1) * finalLimit

	where := []string{}
	args := []any{}

	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}

	query := `
	SELECT id, user_id, total, status, shipping_address, phone, notes,
	       paid_at, shipped_at, delivered_at, created_at, updated_at
	FROM orders
	`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]*Order, error) {
	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.UserID, &o.Total, &o.Status, &o.ShippingAddress, &o.Phone, &o.Notes,
			&o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, &o)
	}
	return orders, rows.Err()
}

// ChangeStatus moves the order forward through the state machine while the
// row is locked. Paid stamps paid_at; shipped and delivered stamp their
// timestamps only when still unset. Cancellation goes through Cancel so
// stock is restored.
func (r *repository) ChangeStatus(ctx context.Context, orderID string, next Status) (*Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin status tx: %w", err)
	}
	defer tx.Rollback()

	var current Status
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if !current.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidState, current, next)
	}

	var o Order
	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1,
		    updated_at = NOW(),
		    paid_at = CASE WHEN $1 = 'paid' THEN NOW() ELSE paid_at END,
		    shipped_at = CASE WHEN $1 = 'shipped' THEN COALESCE(shipped_at, NOW()) ELSE shipped_at END,
		    delivered_at = CASE WHEN $1 = 'delivered' THEN COALESCE(delivered_at, NOW()) ELSE delivered_at END
		WHERE id = $2
		RETURNING id, user_id, total, status, shipping_address, phone, notes,
		          paid_at, shipped_at, delivered_at, created_at, updated_at
	`, next, orderID).Scan(
		&o.ID, &o.UserID, &o.Total, &o.Status, &o.ShippingAddress, &o.Phone, &o.Notes,
		&o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &o, tx.Commit()
}

// Cancel restores stock for every line and flips the order to cancelled, all
// in one transaction. Only pending and paid orders can be cancelled.
func (r *repository) Cancel(ctx context.Context, orderID string) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Cancel"),
		zap.String("order_id", orderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin cancel tx: %w", err)
	}
	defer tx.Rollback()

	var current Status
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM orders WHERE id = $1 FOR UPDATE`, orderID,
	).Scan(&current)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if current != StatusPending && current != StatusPaid {
		return nil, fmt.Errorf("%w: cannot cancel %s order", ErrInvalidState, current)
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT product_id, quantity
		FROM order_lines
		WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}

	type restock struct {
		productID string
		quantity  int
	}
	var restocks []restock
	for rows.Next() {
		var rs restock
		if err := rows.Scan(&rs.productID, &rs.quantity); err != nil {
			rows.Close()
			return nil, err
		}
		restocks = append(restocks, rs)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, rs := range restocks {
		if err := inventory.Increase(ctx, tx, rs.productID, rs.quantity); err != nil {
			return nil, fmt.Errorf("restock product %s: %w", rs.productID, err)
		}
	}

	var o Order
	err = tx.QueryRowContext(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id, user_id, total, status, shipping_address, phone, notes,
		          paid_at, shipped_at, delivered_at, created_at, updated_at
	`, StatusCancelled, orderID).Scan(
		&o.ID, &o.UserID, &o.Total, &o.Status, &o.ShippingAddress, &o.Phone, &o.Notes,
		&o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit cancel tx: %w", err)
	}

	log.Info("order cancelled", zap.Int("lines_restocked", len(restocks)))
	return &o, nil
}
