package auth

import (
	"context"

	"github.com/splitledger/splitledger/internal/models"
)

// Authenticator is the contract for signing users up and in. Keeping it
// behind an interface lets the HTTP layer stay ignorant of the credential
// scheme (passwords today, possibly OAuth later).
type Authenticator interface {
	// Register creates a new account from an email, display name and
	// credential. The credential format is implementation defined.
	Register(ctx context.Context, email, name, credential string) (*models.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the implementation's
	// minimum requirements without touching storage.
	ValidateCredential(credential string) error
}
