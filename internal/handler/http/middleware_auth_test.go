package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bluegyufordev/matzip-server/internal/token"
	"github.com/bluegyufordev/matzip-server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) models.Response {
	t.Helper()
	var resp models.Response
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func responseCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestRequireToken_MissingCookieMessages(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	router := h.Init()

	tests := []struct {
		name        string
		method      string
		path        string
		wantMessage string
	}{
		{"signout without access token", http.MethodDelete, "/auth/signout", msgLoginRequired},
		{"confirm without email token", http.MethodPost, "/auth/verify-email/confirm", msgNoVerificationRequest},
		{"signup without verified email", http.MethodPost, "/auth/signup", msgEmailVerificationNeeded},
		{"oauth signup without oauth token", http.MethodPost, "/auth/oauth/signup", msgKakaoAuthNeeded},
		{"resetpw without reset token", http.MethodPut, "/auth/resetpw", msgNoResetRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(`{}`))
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, tt.wantMessage, decodeResponse(t, rr).Message)
		})
	}
}

func TestRequireToken_ExpiredToken(t *testing.T) {
	codec := newTestCodec()
	expired, err := codec.Issue(token.ClassAccess, models.TokenPayload{UsersIdx: 1}, time.Nanosecond)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	h := newTestHandler(nil, nil, nil)
	router := h.Init()

	req := httptest.NewRequest(http.MethodDelete, "/auth/signout", nil)
	req.AddCookie(&http.Cookie{Name: cookieAccessToken, Value: expired})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, msgTokenExpired, decodeResponse(t, rr).Message)
}

func TestRequireToken_GarbageToken(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	router := h.Init()

	req := httptest.NewRequest(http.MethodDelete, "/auth/signout", nil)
	req.AddCookie(&http.Cookie{Name: cookieAccessToken, Value: "definitely-not-a-jwt"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, msgTokenInvalid, decodeResponse(t, rr).Message)
}

func TestRequireToken_ForeignSignature(t *testing.T) {
	foreignCodec, err := token.NewCodec("other-access-secret", "other-refresh-secret", testIssuer)
	require.NoError(t, err)
	forged, err := foreignCodec.Issue(token.ClassAccess, models.TokenPayload{UsersIdx: 1}, time.Minute)
	require.NoError(t, err)

	h := newTestHandler(nil, nil, nil)
	router := h.Init()

	req := httptest.NewRequest(http.MethodDelete, "/auth/signout", nil)
	req.AddCookie(&http.Cookie{Name: cookieAccessToken, Value: forged})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, msgTokenInvalid, decodeResponse(t, rr).Message)
}

func TestRequireToken_ValidTokenReachesHandler(t *testing.T) {
	var received models.TokenPayload
	auth := &mockAuthService{
		SignOutFunc: func(ctx context.Context, principal models.TokenPayload) error {
			received = principal
			return nil
		},
	}
	h := newTestHandler(auth, nil, nil)
	router := h.Init()

	signed := issueGateToken(models.TokenPayload{UsersIdx: 42, Provider: models.ProviderLocal, Role: models.RoleUser})
	req := httptest.NewRequest(http.MethodDelete, "/auth/signout", nil)
	req.AddCookie(&http.Cookie{Name: cookieAccessToken, Value: signed})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(42), received.UsersIdx)
	assert.Equal(t, "LOCAL", received.Provider)
}

func TestRequireToken_DoubleGateNeedsBothCookies(t *testing.T) {
	h := newTestHandler(nil, nil, nil)
	router := h.Init()

	// oauthIdx cookie alone is not enough for the oauth signup route
	signed := issueGateToken(models.TokenPayload{OAuthIdx: 3})
	req := httptest.NewRequest(http.MethodPost, "/auth/oauth/signup", strings.NewReader(`{}`))
	req.AddCookie(&http.Cookie{Name: cookieOAuthIdx, Value: signed})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, msgEmailVerificationNeeded, decodeResponse(t, rr).Message)
}

func TestPayloadFromContext_MissingKind(t *testing.T) {
	_, ok := payloadFromContext(context.Background(), kindResetPw)
	assert.False(t, ok)
}
