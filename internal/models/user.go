// Package models contains data structures for the application's domain.
package models

// User represents a registered patient.
//
// The password is stored exactly as entered and compared in plain text at
// login. This mirrors the behavior of the system this service replaces and is
// deliberately not "fixed" here; see DESIGN.md.
type User struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FullName  string `json:"fullName"`
	BirthDate string `json:"birthDate"`
	Password  string `json:"password,omitempty"`
}

// Sanitized returns a copy of the user with the password blanked, suitable
// for API responses.
func (u User) Sanitized() User {
	u.Password = ""
	return u
}
