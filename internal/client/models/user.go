package models

// User is a locally registered account. Salt and Verifier are derived from the
// password and never leave the users repository and auth service.
type User struct {
	ID       string
	Email    string
	Name     string
	Salt     []byte
	Verifier []byte
}
