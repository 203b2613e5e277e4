package dto

// LoginRequest is sent to the backend's /login endpoint
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the bearer token issued by the backend
type LoginResponse struct {
	Token string `json:"token"`
}

type CreateAccountRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type AccountResponse struct {
	ID    UserID `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SessionView describes the current session for the shell's home route
type SessionView struct {
	Authenticated bool   `json:"authenticated"`
	UserID        string `json:"user_id,omitempty"`
	ExpiresAt     int64  `json:"expires_at,omitempty"` // milliseconds since epoch
}
