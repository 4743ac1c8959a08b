package captcha_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicr/scaffold/core/captcha"
)

func TestMemory_Verify(t *testing.T) {
	t.Parallel()

	t.Run("correct answer verifies once", func(t *testing.T) {
		t.Parallel()

		reg := captcha.NewMemory(time.Minute)
		reg.Issue("sess-1", "4711")

		assert.True(t, reg.Verify(context.Background(), "sess-1", "4711"))
		assert.False(t, reg.Verify(context.Background(), "sess-1", "4711"),
			"challenge must be consumed by the first attempt")
	})

	t.Run("wrong answer consumes challenge", func(t *testing.T) {
		t.Parallel()

		reg := captcha.NewMemory(time.Minute)
		reg.Issue("sess-1", "4711")

		assert.False(t, reg.Verify(context.Background(), "sess-1", "0000"))
		assert.False(t, reg.Verify(context.Background(), "sess-1", "4711"),
			"failed attempt must not leave the challenge open for brute force")
	})

	t.Run("unknown session", func(t *testing.T) {
		t.Parallel()

		reg := captcha.NewMemory(time.Minute)
		assert.False(t, reg.Verify(context.Background(), "missing", "any"))
	})

	t.Run("expired challenge", func(t *testing.T) {
		t.Parallel()

		reg := captcha.NewMemory(-time.Second)
		reg.Issue("sess-1", "4711")
		assert.False(t, reg.Verify(context.Background(), "sess-1", "4711"))
	})

	t.Run("reissue replaces challenge", func(t *testing.T) {
		t.Parallel()

		reg := captcha.NewMemory(time.Minute)
		reg.Issue("sess-1", "1111")
		reg.Issue("sess-1", "2222")

		assert.False(t, reg.Verify(context.Background(), "sess-1", "1111"))
	})
}

func TestMemory_Cleanup(t *testing.T) {
	t.Parallel()

	reg := captcha.NewMemory(-time.Second)
	reg.Issue("a", "1")
	reg.Issue("b", "2")

	assert.Equal(t, 2, reg.Cleanup())
	assert.Equal(t, 0, reg.Cleanup())
}

func TestNewAnswer(t *testing.T) {
	t.Parallel()

	answer, err := captcha.NewAnswer(6)
	require.NoError(t, err)
	assert.Len(t, answer, 6)
	for _, c := range answer {
		assert.GreaterOrEqual(t, c, '0')
		assert.LessOrEqual(t, c, '9')
	}

	fallback, err := captcha.NewAnswer(0)
	require.NoError(t, err)
	assert.Len(t, fallback, 6)
}
