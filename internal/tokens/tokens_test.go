package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestSign_RoundTripsClaims(t *testing.T) {
	t.Parallel()

	exp := time.Now().Add(TTL).UTC()
	token, err := Sign(42, "alice", true, exp, testSecret)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ClaimsFromToken(token, testSecret)
	require.NoError(t, err)

	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "42", claims.Subject)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, exp, claims.ExpiresAt.Time, time.Second)
}

func TestClaimsFromToken_Expired(t *testing.T) {
	t.Parallel()

	token, err := Sign(1, "bob", false, time.Now().Add(-time.Minute), testSecret)
	require.NoError(t, err)

	_, err = ClaimsFromToken(token, testSecret)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestClaimsFromToken_WrongSecret(t *testing.T) {
	t.Parallel()

	token, err := Sign(1, "bob", false, time.Now().Add(TTL), testSecret)
	require.NoError(t, err)

	_, err = ClaimsFromToken(token, []byte("other-secret"))
	require.Error(t, err)
}

func TestClaimsFromToken_Tampered(t *testing.T) {
	t.Parallel()

	token, err := Sign(1, "bob", false, time.Now().Add(TTL), testSecret)
	require.NoError(t, err)

	_, err = ClaimsFromToken(token+"x", testSecret)
	require.Error(t, err)
}

func TestClaimsFromToken_RejectsOtherAlg(t *testing.T) {
	t.Parallel()

	claims := AccessClaims{
		UserID:   1,
		Username: "bob",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
	require.NoError(t, err)

	_, err = ClaimsFromToken(token, testSecret)
	require.Error(t, err)
}
