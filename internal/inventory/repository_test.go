package inventory

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrease(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(2, "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := Decrease(context.Background(), db, "prod-1", 2)
		assert.NoError(t, err)
	})

	t.Run("Insufficient stock", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(5, "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(3))

		err := Decrease(context.Background(), db, "prod-1", 5)
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("Product missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(1, "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		err := Decrease(context.Background(), db, "ghost", 1)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		err := Decrease(context.Background(), db, "prod-1", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("Error", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WillReturnError(errors.New("db error"))

		err := Decrease(context.Background(), db, "prod-1", 1)
		assert.Error(t, err)
	})
}

func TestIncrease(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(4, "prod-1").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := Increase(context.Background(), db, "prod-1", 4)
		assert.NoError(t, err)
	})

	t.Run("Product missing", func(t *testing.T) {
		mock.ExpectExec("UPDATE products").
			WithArgs(4, "ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := Increase(context.Background(), db, "ghost", 4)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		err := Increase(context.Background(), db, "prod-1", -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(12))

		stock, err := Stock(context.Background(), db, "prod-1")
		assert.NoError(t, err)
		assert.Equal(t, 12, stock)
	})

	t.Run("Product missing", func(t *testing.T) {
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs("ghost").
			WillReturnError(sql.ErrNoRows)

		_, err := Stock(context.Background(), db, "ghost")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
