package token_test

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/softglass/calculator-backend/application/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-jwt-signing"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestTokenService_IssueVerify(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := token.NewTokenService(testSecret, token.WithClock(fixedClock(issuedAt)))

	tokenString, err := svc.Issue(42, "a@x.com")
	require.NoError(t, err)

	claims, err := svc.Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.Equal(issuedAt.Add(30*24*time.Hour)))
}

func TestTokenService_ClaimShape(t *testing.T) {
	svc := token.NewTokenService(testSecret)
	tokenString, err := svc.Issue(7, "b@x.com")
	require.NoError(t, err)

	parsed := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(tokenString, parsed)
	require.NoError(t, err)

	keys := make([]string, 0, len(parsed))
	for k := range parsed {
		keys = append(keys, k)
	}
	assert.ElementsMatch(t, []string{"user_id", "email", "exp"}, keys)
	assert.Equal(t, float64(7), parsed["user_id"])
}

func TestTokenService_Expiry(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer := token.NewTokenService(testSecret, token.WithClock(fixedClock(issuedAt)))
	tokenString, err := issuer.Issue(1, "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     time.Time
		wantErr bool
	}{
		{name: "just issued", now: issuedAt},
		{name: "one second before expiry", now: issuedAt.Add(token.TTL - time.Second)},
		{name: "at expiry", now: issuedAt.Add(token.TTL), wantErr: true},
		{name: "long after expiry", now: issuedAt.Add(365 * 24 * time.Hour), wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := token.NewTokenService(testSecret, token.WithClock(fixedClock(tt.now)))
			claims, err := verifier.Verify(tokenString)
			if tt.wantErr {
				assert.ErrorIs(t, err, token.ErrInvalidToken)
				assert.Nil(t, claims)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint64(1), claims.UserID)
		})
	}
}

func TestTokenService_RejectsUniformly(t *testing.T) {
	svc := token.NewTokenService(testSecret)
	valid, err := svc.Issue(5, "c@x.com")
	require.NoError(t, err)

	foreign, err := token.NewTokenService("another-secret").Issue(5, "c@x.com")
	require.NoError(t, err)

	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 5, "email": "c@x.com"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	otherAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user_id": 5, "email": "c@x.com", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noneAlg, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 5, "email": "c@x.com", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "c@x.com", "exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	for name, tokenString := range map[string]string{
		"garbage":        "garbage",
		"empty":          "",
		"foreign secret": foreign,
		"tampered":       tampered,
		"missing exp":    noExp,
		"hs512":          otherAlg,
		"alg none":       noneAlg,
		"missing user":   noUser,
	} {
		t.Run(name, func(t *testing.T) {
			claims, err := svc.Verify(tokenString)
			assert.Nil(t, claims)
			assert.Equal(t, token.ErrInvalidToken, err)
		})
	}
}
