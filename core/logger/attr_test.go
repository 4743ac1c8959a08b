package logger_test

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuicr/scaffold/core/logger"
)

func TestError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.Error(nil))

	attr := logger.Error(errors.New("boom"))
	assert.Equal(t, "error", attr.Key)
}

func TestEmptyValueHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.Attr{}, logger.RequestID(""))
	assert.Equal(t, slog.Attr{}, logger.Username(""))
	assert.Equal(t, slog.Attr{}, logger.RemoteAddr(""))

	assert.Equal(t, "request_id", logger.RequestID("req-1").Key)
	assert.Equal(t, "username", logger.Username("alice").Key)
}

func TestRequestAttrs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "method", logger.Method("GET").Key)
	assert.Equal(t, "path", logger.Path("/login").Key)
	assert.Equal(t, "status", logger.StatusCode(302).Key)
	assert.Equal(t, "component", logger.Component("pipeline").Key)
}
