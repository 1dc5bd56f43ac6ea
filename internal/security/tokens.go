package security

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken is returned when a token is absent, malformed, expired,
	// or fails signature/issuer/audience checks. Callers treat it as
	// "no session", never as a fault.
	ErrInvalidToken = errors.New("invalid token")
)

// Scope tags a session as platform-wide or company-scoped. The two historical
// cookies collapse into one token discriminated by this claim.
type Scope string

const (
	// ScopePlatform is the elevated operator scope allowed to mutate companies.
	ScopePlatform Scope = "platform"
	// ScopeTenant is a company-scoped administrative session.
	ScopeTenant Scope = "tenant"
)

// SessionClaims holds the JWT claims of a session token. Subject carries the
// user ID.
type SessionClaims struct {
	jwt.RegisteredClaims
	CompanyID   string `json:"company_id"`
	CompanySlug string `json:"company_slug"`
	Role        string `json:"role"`
	Scope       Scope  `json:"scope"`
}

// TokenProvider issues and validates session JWTs using RS256 or ES256
// (private/public key). Sessions are not persisted server-side: a token is
// valid until its fixed expiry and cannot be revoked earlier.
type TokenProvider struct {
	privateKey crypto.Signer
	publicKey  crypto.PublicKey
	issuer     string
	audience   string
	sessionTTL time.Duration
}

// NewTokenProvider returns a TokenProvider that signs with the given private
// key (RS256 or ES256). issuer and audience are set on claims and validated
// on every parse. sessionTTL is the fixed session lifetime (no sliding renewal).
func NewTokenProvider(privateKey crypto.Signer, publicKey crypto.PublicKey, issuer, audience string, sessionTTL time.Duration) *TokenProvider {
	return &TokenProvider{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		audience:   audience,
		sessionTTL: sessionTTL,
	}
}

// SessionTTL returns the fixed session lifetime.
func (p *TokenProvider) SessionTTL() time.Duration { return p.sessionTTL }

// IssueSession issues a session JWT for the given user, company, and role.
// Returns the token string and its absolute expiry (issuance time + TTL).
func (p *TokenProvider) IssueSession(userID, companyID, companySlug, role string, scope Scope) (token string, expiresAt time.Time, err error) {
	now := time.Now().UTC()
	expiresAt = now.Add(p.sessionTTL)
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    p.issuer,
			Audience:  jwt.ClaimStrings{p.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		CompanyID:   companyID,
		CompanySlug: companySlug,
		Role:        role,
		Scope:       scope,
	}
	token, err = p.sign(claims)
	return token, expiresAt, err
}

func (p *TokenProvider) sign(claims jwt.Claims) (string, error) {
	var method jwt.SigningMethod
	switch p.privateKey.Public().(type) {
	case *rsa.PublicKey:
		method = jwt.SigningMethodRS256
	case *ecdsa.PublicKey:
		method = jwt.SigningMethodES256
	default:
		return "", ErrInvalidToken
	}
	t := jwt.NewWithClaims(method, claims)
	return t.SignedString(p.privateKey)
}

// ValidateSession parses and validates a session token (signature, exp, iss,
// aud). Returns the claims, or ErrInvalidToken for any malformed, expired, or
// tampered input. Never panics on garbage.
func (p *TokenProvider) ValidateSession(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); ok {
			return p.publicKey, nil
		}
		if _, ok := token.Method.(*jwt.SigningMethodECDSA); ok {
			return p.publicKey, nil
		}
		return nil, ErrInvalidToken
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != p.issuer {
		return nil, ErrInvalidToken
	}
	audOk := false
	for _, a := range claims.Audience {
		if a == p.audience {
			audOk = true
			break
		}
	}
	if !audOk {
		return nil, ErrInvalidToken
	}
	if claims.Scope != ScopePlatform && claims.Scope != ScopeTenant {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
