package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestDuplicateUsername_Status(t *testing.T) {
	err := DuplicateUsername()
	if err.Code != ErrCodeDuplicateUsername {
		t.Errorf("expected code %s, got %s", ErrCodeDuplicateUsername, err.Code)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409, got %d", err.HTTPStatus)
	}
	if err.Retryable {
		t.Error("DuplicateUsername should not be retryable")
	}
}

func TestDuplicateEmail_Status(t *testing.T) {
	err := DuplicateEmail()
	if err.Code != ErrCodeDuplicateEmail {
		t.Errorf("expected code %s, got %s", ErrCodeDuplicateEmail, err.Code)
	}
	if err.HTTPStatus != http.StatusConflict {
		t.Errorf("expected 409, got %d", err.HTTPStatus)
	}
}

func TestInvalidCredentials_SameShapeForAllFailures(t *testing.T) {
	// Unknown user and wrong password both produce this error; it must not
	// carry any detail that distinguishes the two.
	err := InvalidCredentials()
	if err.HTTPStatus != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", err.HTTPStatus)
	}
	if len(err.Details) != 0 {
		t.Errorf("expected no details, got %v", err.Details)
	}
	if err.Message != "Invalid credentials" {
		t.Errorf("unexpected message: %q", err.Message)
	}
}

func TestUnauthenticated_DefaultMessage(t *testing.T) {
	err := Unauthenticated("")
	if err.Message != "Authentication required." {
		t.Errorf("expected default message, got %q", err.Message)
	}

	err2 := Unauthenticated("Invalid token")
	if err2.Message != "Invalid token" {
		t.Errorf("expected custom message, got %q", err2.Message)
	}
	if err2.Code != ErrCodeUnauthenticated {
		t.Errorf("expected UNAUTHENTICATED, got %s", err2.Code)
	}
}

func TestNotFound_Details(t *testing.T) {
	err := NotFound("customer", "42")
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected 404, got %d", err.HTTPStatus)
	}
	if err.Details["resource"] != "customer" {
		t.Errorf("expected resource=customer, got %v", err.Details["resource"])
	}
	if err.Details["id"] != "42" {
		t.Errorf("expected id=42, got %v", err.Details["id"])
	}

	noID := NotFound("customer", "")
	if _, ok := noID.Details["id"]; ok {
		t.Error("expected no 'id' detail when id is empty")
	}
}

func TestAppError_UnwrapCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := DatabaseError(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !err.Retryable {
		t.Error("database errors should be retryable")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", InvalidCredentials())
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeInvalidCredentials {
		t.Errorf("expected INVALID_CREDENTIALS, got %s", appErr.Code)
	}

	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
}

func TestHasCode(t *testing.T) {
	if !HasCode(DuplicateEmail(), ErrCodeDuplicateEmail) {
		t.Error("expected HasCode to match")
	}
	if HasCode(DuplicateEmail(), ErrCodeDuplicateUsername) {
		t.Error("expected HasCode to reject a different code")
	}
}

func TestToResponse(t *testing.T) {
	err := NotFound("customer", "7")
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Message == "" {
		t.Error("expected a message")
	}
}
