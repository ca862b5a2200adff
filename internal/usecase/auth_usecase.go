// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"
	"encoding/json"

	"healthmate/internal/domain/entity"
)

// LoginInput carries the credentials for a password login.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SignupInput carries the fields for account creation. Only patient and
// doctor accounts may self-register.
type SignupInput struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FullName    string `json:"fullName" validate:"required"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty"`
	Gender      string `json:"gender" validate:"omitempty"`
	Role        string `json:"role" validate:"required"`
}

// LoginOutput is the result of a successful login or OAuth handshake.
// Raw preserves the backend payload exactly as received so the renderer
// sees the same shape the backend documents.
type LoginOutput struct {
	Raw     json.RawMessage `json:"data"`
	Session *entity.Session `json:"-"`
	Role    entity.Role     `json:"role"`
}

// SignupOutput is the created account payload.
type SignupOutput struct {
	Data json.RawMessage `json:"data"`
}

// AuthUsecase defines the session lifecycle operations: everything that
// creates, refreshes, inspects or destroys the stored session record.
type AuthUsecase interface {
	// Login exchanges credentials for a session and stores it.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// Signup creates an account. It does not log the user in.
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)

	// RefreshToken exchanges the stored refresh token for a new session
	// and overwrites the slot.
	RefreshToken(ctx context.Context) (*entity.Session, error)

	// Logout clears the local session record. The backend invalidates
	// tokens on its side independently.
	Logout(ctx context.Context) error

	// GetUserRole fetches the authenticated user's role from the backend.
	GetUserRole(ctx context.Context) (entity.Role, error)

	// GetSession returns the stored session record without touching the
	// network.
	GetSession(ctx context.Context) (*entity.Session, error)

	// SessionInfo inspects the stored access token's claims for display.
	SessionInfo(ctx context.Context) (*entity.SessionInfo, error)
}
