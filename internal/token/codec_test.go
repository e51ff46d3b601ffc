package token

import (
	"testing"
	"time"

	"github.com/bluegyufordev/matzip-server/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAccessSecret  = "access-secret"
	testRefreshSecret = "refresh-secret"
	testIssuer        = "test-issuer"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := NewCodec(testAccessSecret, testRefreshSecret, testIssuer)
	require.NoError(t, err)
	return c
}

func TestNewCodec_InvalidConfig(t *testing.T) {
	tests := []struct {
		name          string
		accessSecret  string
		refreshSecret string
		issuer        string
		wantErr       error
	}{
		{"empty access secret", "", testRefreshSecret, testIssuer, ErrMissingSecret},
		{"empty refresh secret", testAccessSecret, "", testIssuer, ErrMissingSecret},
		{"equal secrets", "same", "same", testIssuer, ErrInvalidParams},
		{"empty issuer", testAccessSecret, testRefreshSecret, "", ErrInvalidParams},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewCodec(tt.accessSecret, tt.refreshSecret, tt.issuer)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name    string
		class   Class
		payload models.TokenPayload
	}{
		{
			name:    "access token with identity",
			class:   ClassAccess,
			payload: models.TokenPayload{UsersIdx: 42, Provider: models.ProviderLocal, Role: models.RoleUser},
		},
		{
			name:    "refresh token",
			class:   ClassRefresh,
			payload: models.TokenPayload{UsersIdx: 42, Provider: models.ProviderLocal, Role: models.RoleUser},
		},
		{
			name:    "email gate token",
			class:   ClassAccess,
			payload: models.TokenPayload{Email: "user@example.com"},
		},
		{
			name:    "reset password token",
			class:   ClassAccess,
			payload: models.TokenPayload{LoginID: "gildong", Email: "user@example.com"},
		},
		{
			name:    "oauth pending token",
			class:   ClassAccess,
			payload: models.TokenPayload{OAuthIdx: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := c.Issue(tt.class, tt.payload, time.Minute)
			require.NoError(t, err)
			require.NotEmpty(t, raw)

			got, err := c.Verify(tt.class, raw)
			require.NoError(t, err)
			assert.Equal(t, tt.payload, got)
		})
	}
}

func TestIssue_InvalidParams(t *testing.T) {
	c := newTestCodec(t)
	payload := models.TokenPayload{UsersIdx: 1}

	tests := []struct {
		name    string
		class   Class
		payload models.TokenPayload
		ttl     time.Duration
	}{
		{"empty payload", ClassAccess, models.TokenPayload{}, time.Minute},
		{"zero ttl", ClassAccess, payload, 0},
		{"negative ttl", ClassAccess, payload, -time.Minute},
		{"unknown class", Class("session"), payload, time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Issue(tt.class, tt.payload, tt.ttl)
			assert.ErrorIs(t, err, ErrInvalidParams)
		})
	}
}

// TestVerify_CrossClassRejected verifies that a token signed under one class
// never verifies under the other.
func TestVerify_CrossClassRejected(t *testing.T) {
	c := newTestCodec(t)
	payload := models.TokenPayload{UsersIdx: 42, Provider: models.ProviderLocal, Role: models.RoleUser}

	refresh, err := c.Issue(ClassRefresh, payload, time.Hour)
	require.NoError(t, err)

	_, err = c.Verify(ClassAccess, refresh)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	access, err := c.Issue(ClassAccess, payload, time.Hour)
	require.NoError(t, err)

	_, err = c.Verify(ClassRefresh, access)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Expired(t *testing.T) {
	c := newTestCodec(t)

	// Issue refuses non-positive ttls, so craft an already-expired token
	// with the same secret and issuer directly.
	now := time.Now()
	claims := &Claims{
		TokenPayload: models.TokenPayload{UsersIdx: 1},
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testAccessSecret))
	require.NoError(t, err)

	_, err = c.Verify(ClassAccess, raw)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongIssuer(t *testing.T) {
	other, err := NewCodec(testAccessSecret, testRefreshSecret, "other-issuer")
	require.NoError(t, err)

	raw, err := other.Issue(ClassAccess, models.TokenPayload{UsersIdx: 1}, time.Minute)
	require.NoError(t, err)

	c := newTestCodec(t)
	_, err = c.Verify(ClassAccess, raw)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerify_Malformed(t *testing.T) {
	c := newTestCodec(t)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"garbage", "not.a.token"},
		{"single segment", "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Verify(ClassAccess, tt.raw)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

// TestVerify_TamperedPayload verifies that flipping payload bytes breaks the
// signature check rather than yielding altered claims.
func TestVerify_TamperedPayload(t *testing.T) {
	c := newTestCodec(t)

	raw, err := c.Issue(ClassAccess, models.TokenPayload{UsersIdx: 42}, time.Minute)
	require.NoError(t, err)

	tampered := []byte(raw)
	// flip a byte in the middle segment
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	_, err = c.Verify(ClassAccess, string(tampered))
	assert.Error(t, err)
}
