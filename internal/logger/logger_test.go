package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDContext(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-123")
		assert.Equal(t, "req-123", RequestIDFrom(ctx))
	})

	t.Run("Missing ID", func(t *testing.T) {
		assert.Equal(t, "", RequestIDFrom(context.Background()))
	})
}

func TestFromCtx(t *testing.T) {
	Init("test")

	t.Run("Without request ID returns global", func(t *testing.T) {
		log := FromCtx(context.Background())
		assert.NotNil(t, log)
	})

	t.Run("With request ID returns child", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-456")
		log := FromCtx(ctx)
		assert.NotNil(t, log)
	})
}
