package models

// User is an account of the local HTTP API, unrelated to the vendor account.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // bcrypt
}
