package domain

import "time"

// User is a registered principal. PasswordHash is a bcrypt digest and is
// excluded from JSON so it never crosses the service boundary by accident.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of u with the password hash cleared.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// AuthResult pairs an authenticated user with a freshly issued bearer token.
type AuthResult struct {
	User  User
	Token string
}
