package auth_test

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skillsenselab/customer-api/auth"
	"github.com/skillsenselab/customer-api/auth/password"
	"github.com/skillsenselab/customer-api/auth/token"
	apperrors "github.com/skillsenselab/customer-api/errors"
	"github.com/skillsenselab/customer-api/logger"
	"github.com/skillsenselab/customer-api/users"
)

func newTestAuth(t *testing.T) (*auth.Service, *token.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&users.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tokens, err := token.NewService(token.Config{Secret: "test-secret", TTL: time.Hour})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	hasher := password.NewBcryptHasher(password.WithCost(bcrypt.MinCost))
	svc := auth.NewService(users.NewGormStore(db), hasher, tokens, logger.NewDefault("test"))
	return svc, tokens
}

func TestRegister_Succeeds(t *testing.T) {
	svc, tokens := newTestAuth(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, "alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if result.User.Username != "alice" || result.User.Email != "a@x.com" {
		t.Errorf("unexpected user view: %+v", result.User)
	}
	if result.User.ID == "" {
		t.Error("expected a generated user id")
	}

	// The issued token must verify back to the same subject and username.
	id, err := tokens.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if id.Subject != result.User.ID {
		t.Errorf("token subject %q != user id %q", id.Subject, result.User.ID)
	}
	if id.Username != "alice" {
		t.Errorf("token username mismatch: %q", id.Username)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Duplicate username wins even when the email is novel.
	_, err := svc.Register(ctx, "alice", "other@x.com", "x")
	if !apperrors.HasCode(err, apperrors.ErrCodeDuplicateUsername) {
		t.Fatalf("expected DUPLICATE_USERNAME, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, err := svc.Register(ctx, "bob", "a@x.com", "x")
	if !apperrors.HasCode(err, apperrors.ErrCodeDuplicateEmail) {
		t.Fatalf("expected DUPLICATE_EMAIL, got %v", err)
	}
}

func TestRegister_UsernameCheckedBeforeEmail(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Both username and email collide; the username error must win.
	_, err := svc.Register(ctx, "alice", "a@x.com", "x")
	if !apperrors.HasCode(err, apperrors.ErrCodeDuplicateUsername) {
		t.Fatalf("expected DUPLICATE_USERNAME, got %v", err)
	}
}

func TestLogin_Succeeds(t *testing.T) {
	svc, tokens := newTestAuth(t)
	ctx := context.Background()

	reg, err := svc.Register(ctx, "alice", "a@x.com", "secret1")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	result, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.User.ID != reg.User.ID {
		t.Errorf("login user id %q != registered id %q", result.User.ID, reg.User.ID)
	}

	id, err := tokens.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if id.Subject != reg.User.ID || id.Username != "alice" {
		t.Errorf("unexpected identity: %+v", id)
	}
}

func TestLogin_EnumerationResistance(t *testing.T) {
	svc, _ := newTestAuth(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "a@x.com", "secret1"); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Unknown user and wrong password must be indistinguishable.
	_, unknownErr := svc.Login(ctx, "nobody", "secret1")
	_, wrongErr := svc.Login(ctx, "alice", "wrong")

	for name, err := range map[string]error{"unknown user": unknownErr, "wrong password": wrongErr} {
		if !apperrors.HasCode(err, apperrors.ErrCodeInvalidCredentials) {
			t.Errorf("%s: expected INVALID_CREDENTIALS, got %v", name, err)
		}
	}

	unknownApp, _ := apperrors.AsAppError(unknownErr)
	wrongApp, _ := apperrors.AsAppError(wrongErr)
	if unknownApp.Message != wrongApp.Message {
		t.Errorf("messages differ: %q vs %q", unknownApp.Message, wrongApp.Message)
	}
}
