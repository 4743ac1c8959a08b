package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuicr/scaffold/core/session"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("save and lookup", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		sess := newTestSession(t, time.Hour)

		require.NoError(t, store.Save(context.Background(), &sess))

		byID, err := store.GetByID(context.Background(), sess.ID)
		require.NoError(t, err)
		assert.Equal(t, sess.Token, byID.Token)

		byToken, err := store.GetByToken(context.Background(), sess.Token)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, byToken.ID)
	})

	t.Run("token rotation reindexes", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		sess := newTestSession(t, time.Hour)
		require.NoError(t, store.Save(context.Background(), &sess))
		oldToken := sess.Token

		require.NoError(t, sess.Authenticate(session.Principal{Username: "alice"}))
		require.NoError(t, store.Save(context.Background(), &sess))

		_, err := store.GetByToken(context.Background(), oldToken)
		require.ErrorIs(t, err, session.ErrNotFound, "stale token must be unindexed")

		got, err := store.GetByToken(context.Background(), sess.Token)
		require.NoError(t, err)
		assert.True(t, got.IsAuthenticated())
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()
		sess := newTestSession(t, time.Hour)
		require.NoError(t, store.Save(context.Background(), &sess))

		require.NoError(t, store.Delete(context.Background(), sess.ID))

		_, err := store.GetByID(context.Background(), sess.ID)
		require.ErrorIs(t, err, session.ErrNotFound)

		err = store.Delete(context.Background(), sess.ID)
		require.ErrorIs(t, err, session.ErrNotFound)
	})

	t.Run("delete expired", func(t *testing.T) {
		t.Parallel()

		store := session.NewMemoryStore()

		live := newTestSession(t, time.Hour)
		expired := newTestSession(t, -time.Hour)
		require.NoError(t, store.Save(context.Background(), &live))
		require.NoError(t, store.Save(context.Background(), &expired))

		n, err := store.DeleteExpired(context.Background())
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		_, err = store.GetByID(context.Background(), live.ID)
		require.NoError(t, err)
		_, err = store.GetByID(context.Background(), expired.ID)
		require.ErrorIs(t, err, session.ErrNotFound)
	})
}
