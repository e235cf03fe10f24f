package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemColumns = []string{"id", "user_id", "product_id", "quantity", "unit_price", "created_at", "updated_at"}

func itemRow(mock sqlmock.Sqlmock, id, userID, productID string, qty int, price string) *sqlmock.Rows {
	now := time.Now()
	return mock.NewRows(itemColumns).
		AddRow(id, userID, productID, qty, price, now, now)
}

func TestRepository_GetItemByUserAndProduct(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, product_id").
			WithArgs("user-1", "prod-1").
			WillReturnRows(itemRow(mock, "item-1", "user-1", "prod-1", 2, "10.00"))

		item, err := repo.GetItemByUserAndProduct(context.Background(), "user-1", "prod-1")
		require.NoError(t, err)
		assert.Equal(t, "item-1", item.ID)
		assert.Equal(t, 2, item.Quantity)
		assert.True(t, item.UnitPrice.Equal(decimal.RequireFromString("10.00")))
	})

	t.Run("Missing returns nil", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, user_id, product_id").
			WithArgs("user-1", "prod-ghost").
			WillReturnRows(mock.NewRows(itemColumns))

		item, err := repo.GetItemByUserAndProduct(context.Background(), "user-1", "prod-ghost")
		assert.NoError(t, err)
		assert.Nil(t, item)
	})
}

func TestRepository_CreateItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WithArgs("user-1", "prod-1", 3, decimal.RequireFromString("19.99")).
			WillReturnRows(itemRow(mock, "item-1", "user-1", "prod-1", 3, "19.99"))

		item, err := repo.CreateItem(context.Background(), createItemParams{
			UserID:    "user-1",
			ProductID: "prod-1",
			Quantity:  3,
			UnitPrice: decimal.RequireFromString("19.99"),
		})
		require.NoError(t, err)
		assert.Equal(t, "item-1", item.ID)
		assert.Equal(t, 3, item.Quantity)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO cart_items").
			WillReturnError(errors.New("connection reset"))

		_, err := repo.CreateItem(context.Background(), createItemParams{
			UserID:    "user-1",
			ProductID: "prod-1",
			Quantity:  1,
			UnitPrice: decimal.Zero,
		})
		assert.Error(t, err)
	})
}

func TestRepository_UpdateItemQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("UPDATE cart_items").
			WithArgs(5, "item-1").
			WillReturnRows(itemRow(mock, "item-1", "user-1", "prod-1", 5, "10.00"))

		item, err := repo.UpdateItemQuantity(context.Background(), "item-1", 5)
		require.NoError(t, err)
		assert.Equal(t, 5, item.Quantity)
	})

	t.Run("Not found", func(t *testing.T) {
		mock.ExpectQuery("UPDATE cart_items").
			WithArgs(5, "ghost").
			WillReturnRows(mock.NewRows(itemColumns))

		_, err := repo.UpdateItemQuantity(context.Background(), "ghost", 5)
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestRepository_GetCartRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	columns := []string{
		"id", "user_id", "product_id", "quantity", "unit_price", "created_at",
		"name", "image_name", "price", "stock", "active",
	}

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := mock.NewRows(columns).
			AddRow("item-2", "user-1", "prod-b", 1, "5.00", now, "Mouse", nil, "6.00", 8, true).
			AddRow("item-1", "user-1", "prod-a", 2, "10.00", now.Add(-time.Minute), "Keyboard", "kb.png", "10.00", 3, true)

		mock.ExpectQuery("FROM cart_items c").
			WithArgs("user-1").
			WillReturnRows(rows)

		result, err := repo.GetCartRows(context.Background(), "user-1")
		require.NoError(t, err)
		require.Len(t, result, 2)

		assert.Equal(t, "Mouse", result[0].ProductName)
		assert.Nil(t, result[0].ImageName)
		assert.True(t, result[0].Subtotal().Equal(decimal.RequireFromString("5.00")))

		assert.Equal(t, "Keyboard", result[1].ProductName)
		assert.True(t, result[1].Subtotal().Equal(decimal.RequireFromString("20.00")))
	})

	t.Run("Empty cart", func(t *testing.T) {
		mock.ExpectQuery("FROM cart_items c").
			WithArgs("user-2").
			WillReturnRows(mock.NewRows(columns))

		result, err := repo.GetCartRows(context.Background(), "user-2")
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestRepository_CartTotal(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Sums line subtotals", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs("user-1").
			WillReturnRows(mock.NewRows([]string{"total"}).AddRow("25.00"))

		total, err := repo.CartTotal(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.RequireFromString("25.00")))
	})

	t.Run("Empty cart is zero", func(t *testing.T) {
		mock.ExpectQuery("SELECT COALESCE").
			WithArgs("user-2").
			WillReturnRows(mock.NewRows([]string{"total"}).AddRow("0"))

		total, err := repo.CartTotal(context.Background(), "user-2")
		require.NoError(t, err)
		assert.True(t, total.IsZero())
	})
}

func TestRepository_RemoveItem(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("item-1", "user-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.RemoveItem(context.Background(), "item-1", "user-1")
		assert.NoError(t, err)
	})

	t.Run("Wrong owner", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("item-1", "user-other").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.RemoveItem(context.Background(), "item-1", "user-other")
		assert.ErrorIs(t, err, ErrCartItemNotFound)
	})
}

func TestRepository_ClearCart(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)

	t.Run("Empty cart is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM cart_items").
			WithArgs("user-1").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.ClearCart(context.Background(), "user-1")
		assert.NoError(t, err)
	})
}
