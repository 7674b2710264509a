package session

import (
	"context"
	"sync"

	"psidiario/internal/models"
	"psidiario/internal/store"
)

// Manager is the session/routing state machine. It crosses the two auth
// states (logged out, logged in) with the current view, and re-evaluates the
// route guard on every view-change request and on every auth-state change.
//
// There is one Manager per process, mirroring the single active session the
// store holds.
type Manager struct {
	mu    sync.Mutex
	store store.Store
	state models.AuthState
	view  View
}

// NewManager returns a logged-out Manager positioned on the Login view.
func NewManager(s store.Store) *Manager {
	return &Manager{
		store: s,
		state: models.AuthState{IsAuthenticated: false},
		view:  ViewLogin,
	}
}

// Hydrate initializes the state from the persisted session record and
// resolves the initial view from the externally-requested target (empty
// means Login). Guards apply to the initial view as well.
func (m *Manager) Hydrate(ctx context.Context, target View) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if user, ok := store.GetRecord[models.User](ctx, m.store, store.SessionKey); ok {
		m.state = models.AuthState{User: &user, IsAuthenticated: true}
	} else {
		m.state = models.AuthState{IsAuthenticated: false}
	}

	if target == "" || !target.Valid() {
		target = ViewLogin
	}
	m.view = m.guard(target)
}

// Login transitions to the logged-in state, persists the session record and
// moves to the Dashboard view.
func (m *Manager) Login(ctx context.Context, user models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := store.PutRecord(ctx, m.store, store.SessionKey, user); err != nil {
		return err
	}
	m.state = models.AuthState{User: &user, IsAuthenticated: true}
	m.view = ViewDashboard
	return nil
}

// Logout clears the persisted session and moves back to the Login view.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.Delete(ctx, store.SessionKey); err != nil {
		return err
	}
	m.state = models.AuthState{IsAuthenticated: false}
	m.view = ViewLogin
	return nil
}

// RegisterSuccess moves from the Register view back to Login. The auth state
// does not change; registering does not log the user in.
func (m *Manager) RegisterSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.view == ViewRegister {
		m.view = m.guard(ViewLogin)
	}
}

// Navigate applies the route guard to the requested view, makes the resolved
// view current and returns it.
func (m *Manager) Navigate(target View) View {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.view = m.guard(target)
	return m.view
}

// State returns a copy of the current auth state.
func (m *Manager) State() models.AuthState {
	m.mu.Lock()
	defer m.mu.Unlock()

	state := m.state
	if state.User != nil {
		user := *state.User
		state.User = &user
	}
	return state
}

// CurrentView returns the view the machine is on.
func (m *Manager) CurrentView() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.view
}

// guard resolves a requested view against the auth state: logged-out users
// are forced to Login for anything beyond Login/Register, and logged-in
// users are forced off Login/Register to the Dashboard. Callers hold m.mu.
func (m *Manager) guard(target View) View {
	authScreens := target == ViewLogin || target == ViewRegister
	if !m.state.IsAuthenticated && !authScreens {
		return ViewLogin
	}
	if m.state.IsAuthenticated && authScreens {
		return ViewDashboard
	}
	return target
}
