package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", "estimator", time.Hour)

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Generate("user-1")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.UserID != "user-1" || claims.Subject != "user-1" {
			t.Errorf("claims = %+v", claims)
		}
	})

	tests := []struct {
		name  string
		token func() string
	}{
		{"garbage", func() string { return "not-a-token" }},
		{"wrong secret", func() string {
			tok, _ := NewJWTManager("other", "estimator", time.Hour).Generate("u")
			return tok
		}},
		{"wrong issuer", func() string {
			tok, _ := NewJWTManager("test-secret", "someone-else", time.Hour).Generate("u")
			return tok
		}},
		{"expired", func() string {
			tok, _ := NewJWTManager("test-secret", "estimator", -time.Minute).Generate("u")
			return tok
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token()); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
