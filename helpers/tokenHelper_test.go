package helpers

import (
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setTestSecrets(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_SECRET", "access-test-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-test-secret")
}

func TestGenerateAndValidateTokens(t *testing.T) {
	setTestSecrets(t)

	token, refreshToken, err := GenerateAllTokens("a@b.com", "alice", "Alice A", "6543branch")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, refreshToken)

	claims, err := ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", claims.Email)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "Alice A", claims.FullName)
	assert.Equal(t, "6543branch", claims.Uid)

	refreshClaims, err := ValidateRefreshToken(refreshToken)
	require.NoError(t, err)
	assert.Equal(t, "6543branch", refreshClaims.Uid)
	// the refresh token carries only the user id
	assert.Empty(t, refreshClaims.Email)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	setTestSecrets(t)

	token, refreshToken, err := GenerateAllTokens("a@b.com", "alice", "Alice A", "uid-1")
	require.NoError(t, err)

	_, err = ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	_, err = ValidateRefreshToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsWrongSecret(t *testing.T) {
	setTestSecrets(t)

	token, _, err := GenerateAllTokens("a@b.com", "alice", "Alice A", "uid-1")
	require.NoError(t, err)

	t.Setenv("ACCESS_TOKEN_SECRET", "a-different-secret")
	_, err = ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsExpired(t *testing.T) {
	setTestSecrets(t)

	claims := &SignedDetails{
		Uid: "uid-1",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("access-test-secret"))
	require.NoError(t, err)

	_, err = ValidateAccessToken(expired)
	assert.Error(t, err)
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	setTestSecrets(t)

	_, err := ValidateAccessToken("not-a-token")
	assert.Error(t, err)
}
