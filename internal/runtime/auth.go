package runtime

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignJWT issues a signed token with the provided subject and TTL.
func SignJWT(subject string, secret []byte, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// IdentityFromToken extracts the subject from a bearer token after verifying
// its HS256 signature and expiry. The chat endpoint stays open to anonymous
// callers, so a missing or invalid token is not an error here: it simply
// yields no identity and the cart/order handlers answer with a login prompt.
func IdentityFromToken(token string, secret []byte) (string, bool) {
	if token == "" || len(secret) == 0 {
		return "", false
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", false
	}
	return sub, true
}
