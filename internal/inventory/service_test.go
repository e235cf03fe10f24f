package inventory

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_HasStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db)

	t.Run("Enough stock", func(t *testing.T) {
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(10))

		ok, err := svc.HasStock(context.Background(), "prod-1", 10)
		assert.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Not enough stock", func(t *testing.T) {
		mock.ExpectQuery("SELECT stock FROM products").
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(3))

		ok, err := svc.HasStock(context.Background(), "prod-1", 4)
		assert.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("Invalid quantity", func(t *testing.T) {
		_, err := svc.HasStock(context.Background(), "prod-1", 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})
}

func TestService_DecreaseLeavesStockOnRejection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db)

	// conditional update touches zero rows, so nothing was subtracted
	mock.ExpectExec("UPDATE products").
		WithArgs(100, "prod-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT stock FROM products").
		WithArgs("prod-1").
		WillReturnRows(sqlmock.NewRows([]string{"stock"}).AddRow(2))

	err = svc.Decrease(context.Background(), "prod-1", 100)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Increase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	svc := NewService(db)

	mock.ExpectExec("UPDATE products").
		WithArgs(7, "prod-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = svc.Increase(context.Background(), "prod-1", 7)
	assert.NoError(t, err)
}
