package auth

import (
	"context"

	"github.com/Ragnerd/Kontrib/internal/models"
)

// Registration is what a new account is created from.
type Registration struct {
	Username    string
	FullName    string
	PhoneNumber string
	Role        models.Role
	Credential  string
}

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, OTP, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates a new user account. The credential format depends on
	// the implementation.
	Register(ctx context.Context, reg Registration) (*models.User, error)

	// Authenticate verifies the user's credentials and returns the user if successful.
	Authenticate(ctx context.Context, username, credential string) (*models.User, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
