package authsdk

import "time"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Message string `json:"message" example:"Email already exists"`
}

// RegisterRequest is the body of POST /v1/auth/register.
type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Email    string `json:"email" example:"alice@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`
}

// LoginRequest is the body of POST /v1/auth/login. UsernameOrEmail is
// matched against both the username and the email of stored users.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" example:"alice@example.com"`
	Password        string `json:"password" example:"correct horse battery staple"`
}

// User is the public view of an account. It never carries the password hash.
type User struct {
	ID        string    `json:"id" example:"01J9ZQ3W5T8K2M4N6P8R0S2T4V"`
	Username  string    `json:"username" example:"alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	User User `json:"user"`

	// Token is an HS256 JWT to send as "Authorization: Bearer <token>".
	Token string `json:"token"`
}

// MeResponse is returned by GET /v1/auth/me.
type MeResponse struct {
	User User `json:"user"`
}

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	// Database indicates the database connection status
	Database string `json:"database"`
}
