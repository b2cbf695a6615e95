package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentorhub/internal/app/models"
	"github.com/yigit/mentorhub/internal/pkg/apperrors"
)

func newTestJWTService() *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "mentorhub",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestJWTService()
	user := &models.User{ID: 42, Email: "jane@example.com", Role: models.RoleMentor}

	tok, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.Token)
	assert.NotEmpty(t, tok.JTI)
	assert.Equal(t, int64(3600), tok.ExpiresIn)

	claims, err := svc.ValidateToken(tok.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "Mentor", claims.Role)
	assert.Equal(t, tok.JTI, claims.ID)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := newTestJWTService()
	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }

	tok, err := svc.GenerateAccessToken(&models.User{ID: 1, Email: "a@b.c", Role: models.RoleMember})
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(tok.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	tok, err := newTestJWTService().GenerateAccessToken(&models.User{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	other := NewJWTService(JWTConfig{SecretKey: "other", AccessTokenExp: time.Hour, TokenIssuer: "mentorhub"})
	_, err = other.ValidateToken(tok.Token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := newTestJWTService().ValidateToken("not.a.jwt")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = newTestJWTService().ValidateToken("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{"bearer", "Bearer abc.def.ghi", "abc.def.ghi", false},
		{"raw jwt", "abc.def.ghi", "abc.def.ghi", false},
		{"empty", "", "", true},
		{"bearer without token", "Bearer ", "", true},
		{"basic auth", "Basic dXNlcjpwYXNz", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)
	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
}
