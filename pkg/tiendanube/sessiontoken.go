package tiendanube

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionTokenClaims are the claims of an embedded admin session token: an
// HS256 JWT signed with the app's client secret, audience = app id.
type SessionTokenClaims struct {
	jwt.RegisteredClaims

	StoreID json.Number `json:"store_id,omitempty"`
}

type VerifiedSession struct {
	StoreID   string
	ExpiresAt time.Time
}

// VerifySessionToken validates signature, expiry and audience and returns the
// store the token was issued for (store_id claim, falling back to sub).
func VerifySessionToken(tokenString, appID, clientSecret string, now time.Time) (*VerifiedSession, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("missing token")
	}
	if clientSecret == "" {
		return nil, fmt.Errorf("missing client secret")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	}
	if appID != "" {
		opts = append(opts, jwt.WithAudience(appID))
	}

	claims := &SessionTokenClaims{}
	tok, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return []byte(clientSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if !tok.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	storeID := strings.TrimSpace(claims.StoreID.String())
	if storeID == "" {
		storeID = strings.TrimSpace(claims.Subject)
	}
	if storeID == "" {
		return nil, fmt.Errorf("missing store in token")
	}

	return &VerifiedSession{
		StoreID:   storeID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
