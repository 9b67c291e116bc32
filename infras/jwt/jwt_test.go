package jwt

import (
	"testing"

	"huddle/config"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "huddle-test"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func TestTokenPairRoundTrip(t *testing.T) {
	svc := New(testConfig())

	pair, err := svc.GenerateTokenPair("user-1", "host@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(pair.AccessToken, AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "host@example.com", claims.Email)
	assert.Equal(t, AccessToken, claims.Type)

	refreshClaims, err := svc.ValidateToken(pair.RefreshToken, RefreshToken)
	assert.NoError(t, err)
	assert.Equal(t, RefreshToken, refreshClaims.Type)
}

func TestValidateTokenRejectsWrongType(t *testing.T) {
	svc := New(testConfig())

	pair, err := svc.GenerateTokenPair("user-1", "host@example.com")
	assert.NoError(t, err)

	// An access token must not pass as a refresh token; the secrets differ so
	// the signature check already refuses it.
	_, err = svc.ValidateToken(pair.AccessToken, RefreshToken)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := New(testConfig())

	_, err := svc.ValidateToken("not-a-token", AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokensIssuesAFreshPair(t *testing.T) {
	svc := New(testConfig())

	pair, err := svc.GenerateTokenPair("user-1", "host@example.com")
	assert.NoError(t, err)

	fresh, err := svc.RefreshTokens(pair.RefreshToken)
	assert.NoError(t, err)
	assert.NotEmpty(t, fresh.AccessToken)

	claims, err := svc.ValidateToken(fresh.AccessToken, AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestRefreshTokensRejectsAccessTokens(t *testing.T) {
	svc := New(testConfig())

	pair, err := svc.GenerateTokenPair("user-1", "host@example.com")
	assert.NoError(t, err)

	_, err = svc.RefreshTokens(pair.AccessToken)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := ExtractTokenFromHeader("Bearer abc.def.ghi")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ExtractTokenFromHeader("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ExtractTokenFromHeader("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ExtractTokenFromHeader("Basic abc")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
