package models

// User represents a registered participant.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's email address (unique). Used for login.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	// Never serialized to API responses.
	PasswordHash string `json:"-"`

	// Currency is the user's preferred ISO 4217 currency code (e.g. "USD").
	// New expenses and settlements default to it.
	Currency string `json:"currency"`

	// CreatedAt is the Unix timestamp when the account was created.
	CreatedAt int64 `json:"created_at"`
}

// NewUser creates a user with the given identity and credential hash.
func NewUser(email, name, passwordHash string) *User {
	return &User{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Currency:     "USD",
	}
}
