package util

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"book-wishlist/dto"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token cannot be decoded into claims
var ErrMalformedToken = errors.New("malformed session token")

var unverifiedParser = jwt.NewParser(jwt.WithoutClaimsValidation())

func init() {
	// exp may carry a fractional part; keep it down to the millisecond
	jwt.TimePrecision = time.Millisecond
}

// DecodeToken reads the claims of a session token. The signature is NOT verified:
// the backend is the authority on validity, the client only needs userId and exp.
func DecodeToken(tokenString string) (*dto.TokenClaims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	claims := &dto.TokenClaims{}
	if _, _, err := unverifiedParser.ParseUnverified(tokenString, claims); err != nil {
		// the JOSE header (missing or unknown alg) is irrelevant without
		// signature checks, so fall back to the payload segment alone
		claims, err = decodePayload(tokenString)
		if err != nil {
			return nil, err
		}
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrMalformedToken)
	}

	return claims, nil
}

func decodePayload(tokenString string) (*dto.TokenClaims, error) {
	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedToken, len(parts))
	}

	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("%w: payload is not base64url: %v", ErrMalformedToken, err)
	}

	claims := &dto.TokenClaims{}
	if err := json.Unmarshal(raw, claims); err != nil {
		return nil, fmt.Errorf("%w: payload is not JSON: %v", ErrMalformedToken, err)
	}
	return claims, nil
}

// ExpirationMillis converts the exp claim to milliseconds since epoch
func ExpirationMillis(claims *dto.TokenClaims) int64 {
	return claims.ExpiresAt.UnixMilli()
}
