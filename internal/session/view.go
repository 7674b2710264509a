// Package session owns the authentication state and the current view,
// enforcing the route guards between them. The state survives restarts
// through the persisted session record.
package session

import "fmt"

// View identifies one of the six screens. The string IDs are the navigation
// targets the host exposes.
type View string

const (
	ViewLogin     View = "login"
	ViewRegister  View = "cadastro"
	ViewDashboard View = "inicio"
	ViewNewEntry  View = "novo-registro"
	ViewReports   View = "relatorios"
	ViewBooking   View = "agendamento"
)

var knownViews = map[View]bool{
	ViewLogin:     true,
	ViewRegister:  true,
	ViewDashboard: true,
	ViewNewEntry:  true,
	ViewReports:   true,
	ViewBooking:   true,
}

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	return knownViews[v]
}

// ParseView converts a navigation target into a View, defaulting to Login
// when empty.
func ParseView(s string) (View, error) {
	if s == "" {
		return ViewLogin, nil
	}
	v := View(s)
	if !v.Valid() {
		return "", fmt.Errorf("unknown view %q", s)
	}
	return v, nil
}
