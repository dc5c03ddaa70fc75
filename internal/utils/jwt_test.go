package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestNewAccessTokenRoundTrip(t *testing.T) {
	const secret = "test-secret"

	at, err := NewAccessToken(secret, 7, "admin", 60)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if at.Exp.Before(time.Now().UTC()) {
		t.Fatalf("token already expired: %v", at.Exp)
	}

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			t.Fatalf("unexpected signing method %v", tok.Method)
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		t.Fatalf("parse token: valid=%v err=%v", tok.Valid, err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not MapClaims")
	}
	if claims["username"] != "admin" || claims["role"] != "ADMIN" {
		t.Fatalf("unexpected claims: %v", claims)
	}
	if sub, ok := claims["sub"].(float64); !ok || uint64(sub) != 7 {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
}

func TestNewAccessTokenWrongSecretRejected(t *testing.T) {
	at, err := NewAccessToken("right-secret", 1, "admin", 60)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte("wrong-secret"), nil
	})
	if err == nil && tok.Valid {
		t.Fatal("token must not validate under a different secret")
	}
}

func TestNewRefreshTokenUniqueAndHashed(t *testing.T) {
	a, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}
	b, err := NewRefreshToken(30)
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}
	if a.Raw == b.Raw {
		t.Fatal("two refresh tokens must not collide")
	}
	if len(a.Raw) != 96 {
		t.Fatalf("expected 96 hex chars, got %d", len(a.Raw))
	}
	if HashRefreshRaw(a.Raw) == a.Raw {
		t.Fatal("hash must differ from raw token")
	}
	if HashRefreshRaw(a.Raw) != HashRefreshRaw(a.Raw) {
		t.Fatal("hash must be deterministic")
	}
}
