package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicr/scaffold/core/config"
)

type listenConfig struct {
	Addr string `env:"TEST_LISTEN_ADDR" envDefault:":9090"`
}

type secretConfig struct {
	Value string `env:"TEST_SECRET_VALUE" envDefault:"fallback"`
}

func TestLoad(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		var cfg listenConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, ":9090", cfg.Addr)
	})

	t.Run("reads environment", func(t *testing.T) {
		t.Setenv("TEST_SECRET_VALUE", "from-env")

		var cfg secretConfig
		require.NoError(t, config.Load(&cfg))
		assert.Equal(t, "from-env", cfg.Value)
	})

	t.Run("caches per type", func(t *testing.T) {
		var first listenConfig
		require.NoError(t, config.Load(&first))

		t.Setenv("TEST_LISTEN_ADDR", ":7070")

		var second listenConfig
		require.NoError(t, config.Load(&second))
		assert.Equal(t, first.Addr, second.Addr, "second load must return the cached value")
	})

	t.Run("nil target", func(t *testing.T) {
		require.ErrorIs(t, config.Load[listenConfig](nil), config.ErrNilConfig)
	})
}
