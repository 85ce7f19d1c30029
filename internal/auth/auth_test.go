package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/splitledger/splitledger/internal/models"
)

// memoryUserStorage is a map-backed UserStorage for tests.
type memoryUserStorage struct {
	byEmail map[string]*models.User
}

func newMemoryUserStorage() *memoryUserStorage {
	return &memoryUserStorage{byEmail: make(map[string]*models.User)}
}

func (m *memoryUserStorage) CreateUser(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserStorage) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	return m.byEmail[email], nil
}

func (m *memoryUserStorage) GetUserByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	authenticator := NewPasswordAuthenticator(newMemoryUserStorage())

	user, err := authenticator.Register(ctx, "alice@example.com", "alice", "a long password")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "a long password" {
		t.Error("password stored in plaintext")
	}

	t.Run("authenticates with the right password", func(t *testing.T) {
		got, err := authenticator.Authenticate(ctx, "alice@example.com", "a long password")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("got user %s, want %s", got.ID, user.ID)
		}
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		if _, err := authenticator.Authenticate(ctx, "nobody@example.com", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("rejects short passwords", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "bob@example.com", "bob", "short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("err = %v, want ErrWeakPassword", err)
		}
	})

	t.Run("rejects duplicate emails", func(t *testing.T) {
		if _, err := authenticator.Register(ctx, "alice@example.com", "alice2", "another password"); !errors.Is(err, ErrEmailExists) {
			t.Errorf("err = %v, want ErrEmailExists", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "user-1", Email: "alice@example.com"}

	t.Run("round trip", func(t *testing.T) {
		manager := NewJWTManager("secret", time.Hour)
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != user.ID || claims.Email != user.Email {
			t.Errorf("claims = %+v, want user %s", claims, user.ID)
		}
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token, err := NewJWTManager("secret-a", time.Hour).Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := NewJWTManager("secret-b", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("rejects expired tokens", func(t *testing.T) {
		manager := NewJWTManager("secret", -time.Minute)
		token, err := manager.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("rejects garbage", func(t *testing.T) {
		if _, err := NewJWTManager("secret", time.Hour).Validate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("err = %v, want ErrInvalidToken", err)
		}
	})
}
