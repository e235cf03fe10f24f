package db

import (
	"testing"

	"github.com/Nikolai0169/Ecommerce/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestOpen(t *testing.T) {
	t.Run("Unreachable database", func(t *testing.T) {
		cfg := &config.Config{
			DBHost:     "127.0.0.1",
			DBUser:     "u",
			DBPassword: "p",
			DBName:     "d",
			DBPort:     "1",
		}

		conn, err := Open(cfg)
		assert.Error(t, err)
		assert.Nil(t, conn)
	})
}
