package inventory

import (
	"context"
	"database/sql"
)

// Execer is the slice of database/sql shared by *sql.DB and *sql.Tx. The
// order engine runs stock mutations on its own transaction through the same
// statements the standalone ledger uses.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Decrease subtracts qty conditionally so concurrent checkouts cannot drive
// stock negative: the WHERE clause rejects the update when stock < qty.
func Decrease(ctx context.Context, ex Execer, productID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	res, err := ex.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, qty, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Zero rows means either no such product or not enough stock.
	var stock int
	err = ex.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE id = $1`, productID,
	).Scan(&stock)
	if err == sql.ErrNoRows {
		return ErrProductNotFound
	}
	if err != nil {
		return err
	}

	return ErrInsufficientStock
}

// Increase adds qty back. Used for restocking and order-cancellation reversal.
func Increase(ctx context.Context, ex Execer, productID string, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	res, err := ex.ExecContext(ctx, `
		UPDATE products
		SET stock = stock + $1, updated_at = NOW()
		WHERE id = $2
	`, qty, productID)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// Stock reads the current stock level.
func Stock(ctx context.Context, ex Execer, productID string) (int, error) {
	var stock int
	err := ex.QueryRowContext(ctx,
		`SELECT stock FROM products WHERE id = $1`, productID,
	).Scan(&stock)
	if err == sql.ErrNoRows {
		return 0, ErrProductNotFound
	}
	if err != nil {
		return 0, err
	}
	return stock, nil
}
