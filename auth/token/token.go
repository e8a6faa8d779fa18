// Package token issues and verifies the signed bearer tokens that carry an
// authenticated identity between requests.
//
// Tokens are HS256-signed JWTs with the payload {sub, username, iat, exp}.
// Verification is a pure function of the token, the signing secret, and the
// clock; there is no revocation list.
package token

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// timeNow is the clock used when issuing tokens. jwt/v5 removed the
// package-level jwt.TimeFunc hook, so tests freeze the clock through this
// variable instead.
var timeNow = time.Now

// Claims is the token payload.
type Claims struct {
	gojwt.RegisteredClaims
	Username string `json:"username"`
}

// Identity is the verified subject of a token.
type Identity struct {
	Subject  string
	Username string
}

// Service signs and verifies bearer tokens with a process-wide secret.
type Service struct {
	cfg Config
}

// NewService creates a token service. The secret is required; a missing
// secret is a startup error, not a per-request one.
func NewService(cfg Config) (*Service, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Service{cfg: cfg}, nil
}

// Issue creates a signed token for the given subject and username, expiring
// after the configured TTL.
func (s *Service) Issue(subject, username string) (string, error) {
	now := timeNow()
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  gojwt.NewNumericDate(now),
			ExpiresAt: gojwt.NewNumericDate(now.Add(s.cfg.TTL)),
		},
		Username: username,
	}

	tok := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("token: sign: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns the
// identity it carries. A structurally valid token whose sub or username
// claim is empty is rejected: both fields are required, and a token signed
// for a different payload shape must not authenticate.
func (s *Service) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	tok, err := gojwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithExpirationRequired(),
	)
	if err != nil {
		return Identity{}, fmt.Errorf("token: parse: %w", err)
	}
	if !tok.Valid {
		return Identity{}, fmt.Errorf("token: invalid token")
	}
	if claims.Subject == "" {
		return Identity{}, fmt.Errorf("token: missing subject claim")
	}
	if claims.Username == "" {
		return Identity{}, fmt.Errorf("token: missing username claim")
	}
	return Identity{Subject: claims.Subject, Username: claims.Username}, nil
}

func (s *Service) keyFunc(tok *gojwt.Token) (interface{}, error) {
	if tok.Method.Alg() != gojwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("token: unexpected signing method: %s", tok.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
