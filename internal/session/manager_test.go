package session

import (
	"context"
	"testing"

	"psidiario/internal/models"
	"psidiario/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ana = models.User{ID: "u1", Username: "ana", FullName: "Ana Silva", Password: "x123"}

func TestManager_GuardMatrix(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	allViews := []View{ViewLogin, ViewRegister, ViewDashboard, ViewNewEntry, ViewReports, ViewBooking}

	t.Run("logged out", func(t *testing.T) {
		t.Parallel()
		m := NewManager(store.NewMemoryStore())

		for _, v := range allViews {
			resolved := m.Navigate(v)
			switch v {
			case ViewLogin, ViewRegister:
				assert.Equal(t, v, resolved, "auth screens are reachable while logged out")
			default:
				assert.Equal(t, ViewLogin, resolved, "navigating to %s while logged out must redirect to login", v)
			}
		}
	})

	t.Run("logged in", func(t *testing.T) {
		t.Parallel()
		m := NewManager(store.NewMemoryStore())
		require.NoError(t, m.Login(ctx, ana))

		for _, v := range allViews {
			resolved := m.Navigate(v)
			switch v {
			case ViewLogin, ViewRegister:
				assert.Equal(t, ViewDashboard, resolved, "navigating to %s while logged in must redirect to dashboard", v)
			default:
				assert.Equal(t, v, resolved)
			}
		}
	})
}

func TestManager_LoginLogoutTransitions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemoryStore()
	m := NewManager(s)

	assert.False(t, m.State().IsAuthenticated)
	assert.Equal(t, ViewLogin, m.CurrentView())

	require.NoError(t, m.Login(ctx, ana))
	state := m.State()
	require.True(t, state.IsAuthenticated)
	require.NotNil(t, state.User)
	assert.Equal(t, "ana", state.User.Username)
	assert.Equal(t, ViewDashboard, m.CurrentView())

	// Session record persisted
	persisted, ok := store.GetRecord[models.User](ctx, s, store.SessionKey)
	require.True(t, ok)
	assert.Equal(t, ana.ID, persisted.ID)

	require.NoError(t, m.Logout(ctx))
	assert.False(t, m.State().IsAuthenticated)
	assert.Equal(t, ViewLogin, m.CurrentView())
	_, ok = store.GetRecord[models.User](ctx, s, store.SessionKey)
	assert.False(t, ok, "logout clears the persisted session")
}

func TestManager_HydrateFromPersistedSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := store.NewMemoryStore()
	require.NoError(t, store.PutRecord(ctx, s, store.SessionKey, ana))

	m := NewManager(s)
	m.Hydrate(ctx, ViewReports)

	assert.True(t, m.State().IsAuthenticated, "session survives a restart")
	assert.Equal(t, ViewReports, m.CurrentView())

	// Hydrating onto an auth screen while a session exists redirects
	m2 := NewManager(s)
	m2.Hydrate(ctx, ViewLogin)
	assert.Equal(t, ViewDashboard, m2.CurrentView())
}

func TestManager_HydrateWithoutSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := NewManager(store.NewMemoryStore())
	m.Hydrate(ctx, ViewReports)
	assert.False(t, m.State().IsAuthenticated)
	assert.Equal(t, ViewLogin, m.CurrentView(), "protected target without a session lands on login")

	m2 := NewManager(store.NewMemoryStore())
	m2.Hydrate(ctx, "")
	assert.Equal(t, ViewLogin, m2.CurrentView(), "no target defaults to login")
}

func TestManager_RegisterSuccess(t *testing.T) {
	t.Parallel()

	m := NewManager(store.NewMemoryStore())
	m.Navigate(ViewRegister)
	require.Equal(t, ViewRegister, m.CurrentView())

	m.RegisterSuccess()
	assert.Equal(t, ViewLogin, m.CurrentView())
	assert.False(t, m.State().IsAuthenticated, "registering does not log the user in")

	// A no-op when not on the register view
	m.RegisterSuccess()
	assert.Equal(t, ViewLogin, m.CurrentView())
}

func TestParseView(t *testing.T) {
	t.Parallel()

	v, err := ParseView("")
	require.NoError(t, err)
	assert.Equal(t, ViewLogin, v)

	v, err = ParseView("relatorios")
	require.NoError(t, err)
	assert.Equal(t, ViewReports, v)

	_, err = ParseView("configuracoes")
	assert.Error(t, err)
}
