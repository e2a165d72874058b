package serverutils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestJwtSecretFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if got := string(JwtSecret()); got != "default_secret" {
		t.Errorf("JwtSecret with env unset = %q, want default_secret", got)
	}

	t.Setenv("JWT_SECRET", "from-env")
	if got := string(JwtSecret()); got != "from-env" {
		t.Errorf("JwtSecret with env set = %q", got)
	}
}

// A token signed with the issuing key must verify against the same accessor
// on every surface, including when the env is unset.
func TestJwtSecretRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	claims := jwt.MapClaims{"user_id": "u-1", "role": "admin"}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(JwtSecret())
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return JwtSecret(), nil
	})
	if err != nil || !token.Valid {
		t.Fatalf("parse: %v valid=%v", err, token != nil && token.Valid)
	}
}
