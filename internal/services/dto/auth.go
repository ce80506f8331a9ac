package dto

// RegisterRequest - public sign-up. Missing fields are reported by the service.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
	Role     string `json:"role" validate:"omitempty,user-type"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// DeleteAccountRequest is submitted without a session, so the password is
// checked again.
type DeleteAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Reason   string `json:"reason"`
}

type ProcessDeleteRequest struct {
	Status string `json:"status" validate:"required,delete-request-status"`
}

// AuthUser is the user block returned with a token.
type AuthUser struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type AuthResponse struct {
	UserID int64     `json:"userId"`
	Token  string    `json:"token"`
	User   *AuthUser `json:"user,omitempty"`
}
