package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGenerator_GenerateToken は発行したトークンのクレームを検証します。
func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	g := NewGenerator("my-secret-key", "tradeiq")
	g.now = func() time.Time { return issued }

	tokenStr, err := g.GenerateToken("dashboard", time.Hour)
	require.NoError(t, err)

	var claims jwt.RegisteredClaims
	_, err = jwt.ParseWithClaims(tokenStr, &claims, func(*jwt.Token) (any, error) {
		return []byte("my-secret-key"), nil
	}, jwt.WithoutClaimsValidation())
	require.NoError(t, err)

	assert.Equal(t, "dashboard", claims.Subject)
	assert.Equal(t, "tradeiq", claims.Issuer)
	assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issued.Add(time.Hour), claims.ExpiresAt.Time.UTC())
}

// TestGenerator_GenerateToken_Errors は不正な入力でエラーとなることを検証します。
func TestGenerator_GenerateToken_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		secret  string
		subject string
		ttl     time.Duration
	}{
		{"empty secret", "", "cli", time.Hour},
		{"empty subject", "s", "", time.Hour},
		{"zero ttl", "s", "cli", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewGenerator(tt.secret, "").GenerateToken(tt.subject, tt.ttl)
			assert.Error(t, err)
		})
	}
}
