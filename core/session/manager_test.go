package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tuicr/scaffold/core/session"
)

// mockStore implements session.Store for testing.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *mockStore) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *mockStore) Save(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *mockStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStore) DeleteExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestManager_GetByToken(t *testing.T) {
	t.Parallel()

	t.Run("returns live session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager(store, time.Hour, time.Minute)

		sess := newTestSession(t, time.Hour)
		store.On("GetByToken", mock.Anything, sess.Token).Return(&sess, nil)

		got, err := mgr.GetByToken(context.Background(), sess.Token)
		require.NoError(t, err)
		assert.Equal(t, sess.ID, got.ID)
		store.AssertExpectations(t)
	})

	t.Run("expired session", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager(store, time.Hour, time.Minute)

		sess := newTestSession(t, -time.Hour)
		store.On("GetByToken", mock.Anything, sess.Token).Return(&sess, nil)

		_, err := mgr.GetByToken(context.Background(), sess.Token)
		require.ErrorIs(t, err, session.ErrExpired)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager(store, time.Hour, time.Minute)

		store.On("GetByToken", mock.Anything, "missing").Return(nil, session.ErrNotFound)

		_, err := mgr.GetByToken(context.Background(), "missing")
		require.ErrorIs(t, err, session.ErrNotFound)
	})
}

func TestManager_Store(t *testing.T) {
	t.Parallel()

	t.Run("deleted session removed and signals cookie cleanup", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager(store, time.Hour, time.Minute)

		sess := newTestSession(t, time.Hour)
		sess.Logout()

		store.On("Delete", mock.Anything, sess.ID).Return(nil)

		_, err := mgr.Store(context.Background(), sess)
		require.ErrorIs(t, err, session.ErrNotAuthenticated)
		store.AssertExpectations(t)
	})

	t.Run("delete of already-removed session is not an error", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager(store, time.Hour, time.Minute)

		sess := newTestSession(t, time.Hour)
		sess.Logout()

		store.On("Delete", mock.Anything, sess.ID).Return(session.ErrNotFound)

		_, err := mgr.Store(context.Background(), sess)
		require.ErrorIs(t, err, session.ErrNotAuthenticated)
	})

	t.Run("modified session saved", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager(store, time.Hour, time.Minute)

		sess := newTestSession(t, time.Hour)

		store.On("Save", mock.Anything, mock.AnythingOfType("*session.Session")).Return(nil)

		_, err := mgr.Store(context.Background(), sess)
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("remembered session extended with remember ttl", func(t *testing.T) {
		t.Parallel()

		store := &mockStore{}
		mgr := session.NewManager(store, time.Minute, 0, session.WithRememberTTL(time.Hour))

		sess := newTestSession(t, time.Minute)
		sess.RememberMe = true
		sess.UpdatedAt = time.Now().Add(-time.Second)

		store.On("Save", mock.Anything, mock.AnythingOfType("*session.Session")).Return(nil)

		stored, err := mgr.Store(context.Background(), sess)
		require.NoError(t, err)
		assert.True(t, stored.ExpiresAt.After(time.Now().Add(30*time.Minute)),
			"touch must use the persistent lifetime for remembered sessions")
	})
}

func TestManager_New(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	mgr := session.NewManager(store, time.Hour, time.Minute)

	store.On("Save", mock.Anything, mock.AnythingOfType("*session.Session")).Return(nil)

	sess, err := mgr.New(context.Background(), session.NewSessionParams{IP: "127.0.0.1"})
	require.NoError(t, err)
	assert.False(t, sess.IsAuthenticated())
	store.AssertExpectations(t)
}

func TestManager_CleanupExpired(t *testing.T) {
	t.Parallel()

	store := &mockStore{}
	mgr := session.NewManager(store, time.Hour, time.Minute)

	store.On("DeleteExpired", mock.Anything).Return(int64(3), nil)

	n, err := mgr.CleanupExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
