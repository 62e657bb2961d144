package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ragnerd/Kontrib/internal/models"
	"github.com/Ragnerd/Kontrib/internal/storage/sqlite"
)

func newAuthenticator(t *testing.T) *PasswordAuthenticator {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)
}

func TestRegisterAndAuthenticate(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	user, err := a.Register(ctx, Registration{
		Username:   "ngozi",
		FullName:   "Ngozi Eze",
		Role:       models.RoleAdmin,
		Credential: "correct horse",
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in plain text")
	}
	if !user.IsAdmin() {
		t.Errorf("Role = %s, want admin", user.Role)
	}

	got, err := a.Authenticate(ctx, "ngozi", "correct horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("authenticated user %s, want %s", got.ID, user.ID)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "ngozi", "battery staple"},
		{"unknown user", "obi", "correct horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Authenticate(ctx, tt.username, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestRegisterRejections(t *testing.T) {
	a := newAuthenticator(t)
	ctx := context.Background()

	if _, err := a.Register(ctx, Registration{Username: "taken", FullName: "T", Credential: "password1"}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	tests := []struct {
		name    string
		reg     Registration
		wantErr error
	}{
		{"short password", Registration{Username: "u1", FullName: "U", Credential: "short"}, models.ErrValidation},
		{"missing username", Registration{FullName: "U", Credential: "password1"}, models.ErrValidation},
		{"missing name", Registration{Username: "u2", Credential: "password1"}, models.ErrValidation},
		{"bad role", Registration{Username: "u3", FullName: "U", Role: "owner", Credential: "password1"}, models.ErrValidation},
		{"duplicate username", Registration{Username: "taken", FullName: "T2", Credential: "password2"}, models.ErrConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Register(ctx, tt.reg); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestJWTManager(t *testing.T) {
	user := &models.User{ID: "u-1", Username: "tunde", Role: models.RoleMember}

	m := NewJWTManager("test-secret", time.Hour)
	token, err := m.Generate(user)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "tunde" || claims.Role != models.RoleMember {
		t.Errorf("unexpected claims: %+v", claims)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		stale, err := expired.Generate(user)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(stale); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
