package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/customer-api/auth/authctx"
	"github.com/skillsenselab/customer-api/auth/token"
	"github.com/skillsenselab/customer-api/server/middleware"
)

func newProtectedRouter(t *testing.T, tokens *token.Service) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", middleware.Auth(tokens), func(c *gin.Context) {
		id, ok := authctx.Get(c.Request.Context())
		if !ok {
			t.Error("expected identity in request context")
		}
		c.JSON(http.StatusOK, gin.H{"subject": id.Subject, "username": id.Username})
	})
	return r
}

func newTokenService(t *testing.T, secret string) *token.Service {
	t.Helper()
	svc, err := token.NewService(token.Config{Secret: secret, TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewService error: %v", err)
	}
	return svc
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := newTokenService(t, "test-secret")
	router := newProtectedRouter(t, tokens)

	tok, err := tokens.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rr.Code, rr.Body.String())
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["subject"] != "user-1" || body["username"] != "alice" {
		t.Errorf("unexpected identity: %v", body)
	}
}

func TestAuth_MissingHeader(t *testing.T) {
	router := newProtectedRouter(t, newTokenService(t, "test-secret"))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/protected", http.NoBody))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	tokens := newTokenService(t, "test-secret")
	router := newProtectedRouter(t, tokens)

	tok, _ := tokens.Issue("user-1", "alice")

	for _, header := range []string{
		"Basic dXNlcjpwYXNz",
		"Bearer",
		tok, // missing scheme
		"bearer " + tok,
	} {
		req := httptest.NewRequest("GET", "/protected", http.NoBody)
		req.Header.Set("Authorization", header)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected 401, got %d", header, rr.Code)
		}
	}
}

func TestAuth_GarbageToken(t *testing.T) {
	router := newProtectedRouter(t, newTokenService(t, "test-secret"))

	req := httptest.NewRequest("GET", "/protected", http.NoBody)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	other := newTokenService(t, "other-secret")
	router := newProtectedRouter(t, newTokenService(t, "test-secret"))

	tok, err := other.Issue("user-1", "alice")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+tok)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestAuth_ErrorBodyShape(t *testing.T) {
	router := newProtectedRouter(t, newTokenService(t, "test-secret"))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/protected", http.NoBody))

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body.Error.Code != "UNAUTHENTICATED" {
		t.Errorf("expected UNAUTHENTICATED, got %q", body.Error.Code)
	}
}
