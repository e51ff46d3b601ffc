package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/go-resty/resty/v2"
)

type kakaoAdapter struct {
	// authClient talks to the authorization server (kauth.kakao.com),
	// apiClient to the API server (kapi.kakao.com).
	authClient *resty.Client
	apiClient  *resty.Client

	clientID    string
	redirectURI string

	logger *logger.Logger
}

// NewKakaoAdapter constructs the HTTP implementation of [KakaoProvider].
//
// A missing client id or redirect URI is not a constructor error: the
// adapter is still built and every operation reports ErrNotConfigured, so a
// deployment without the Kakao integration keeps serving the local flows.
func NewKakaoAdapter(cfg config.OAuth, logger *logger.Logger) KakaoProvider {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	authClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.KakaoAuthBaseURL, "/")).
		SetTimeout(timeout)
	apiClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.KakaoAPIBaseURL, "/")).
		SetTimeout(timeout)

	return &kakaoAdapter{
		authClient:  authClient,
		apiClient:   apiClient,
		clientID:    cfg.KakaoClientID,
		redirectURI: cfg.KakaoRedirectURI,
		logger:      logger,
	}
}

func (k *kakaoAdapter) configured() bool {
	return k.clientID != "" && k.redirectURI != ""
}

// AuthorizeURL implements [KakaoProvider].
func (k *kakaoAdapter) AuthorizeURL() (string, error) {
	if !k.configured() {
		return "", ErrNotConfigured
	}

	params := url.Values{}
	params.Set("client_id", k.clientID)
	params.Set("redirect_uri", k.redirectURI)
	params.Set("response_type", "code")

	return k.authClient.BaseURL + "/oauth/authorize?" + params.Encode(), nil
}

// ExchangeCode implements [KakaoProvider]. It POSTs the authorization code
// to POST /oauth/token and returns the provider token pair.
func (k *kakaoAdapter) ExchangeCode(ctx context.Context, code string) (KakaoTokens, error) {
	if !k.configured() {
		return KakaoTokens{}, ErrNotConfigured
	}

	var result struct {
		AccessToken           string `json:"access_token"`
		RefreshToken          string `json:"refresh_token"`
		RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in"`
	}

	resp, err := k.authClient.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/x-www-form-urlencoded;charset=utf-8").
		SetFormData(map[string]string{
			"grant_type":   "authorization_code",
			"client_id":    k.clientID,
			"redirect_uri": k.redirectURI,
			"code":         code,
		}).
		SetResult(&result).
		Post("/oauth/token")
	if err != nil {
		return KakaoTokens{}, fmt.Errorf("token exchange request: %w", err)
	}
	if err = mapProviderError(resp); err != nil {
		return KakaoTokens{}, fmt.Errorf("token exchange: %w", err)
	}
	if result.AccessToken == "" {
		return KakaoTokens{}, fmt.Errorf("%w: empty access token in response", ErrAuthFailed)
	}

	return KakaoTokens{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		RefreshTokenExpiresIn: result.RefreshTokenExpiresIn,
	}, nil
}

// FetchProfile implements [KakaoProvider]. It GETs /v2/user/me with the
// provider access token and extracts the account id and e-mail.
func (k *kakaoAdapter) FetchProfile(ctx context.Context, accessToken string) (KakaoProfile, error) {
	if !k.configured() {
		return KakaoProfile{}, ErrNotConfigured
	}

	var result struct {
		ID           int64 `json:"id"`
		KakaoAccount struct {
			Email string `json:"email"`
		} `json:"kakao_account"`
	}

	resp, err := k.apiClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken).
		SetResult(&result).
		Get("/v2/user/me")
	if err != nil {
		return KakaoProfile{}, fmt.Errorf("profile request: %w", err)
	}
	if err = mapProviderError(resp); err != nil {
		return KakaoProfile{}, fmt.Errorf("profile fetch: %w", err)
	}
	if result.ID == 0 {
		return KakaoProfile{}, fmt.Errorf("%w: empty account id in profile", ErrAuthFailed)
	}

	return KakaoProfile{
		ID:    strconv.FormatInt(result.ID, 10),
		Email: result.KakaoAccount.Email,
	}, nil
}

// Logout implements [KakaoProvider]. It POSTs /v1/user/logout with the
// provider access token to expire the provider session.
func (k *kakaoAdapter) Logout(ctx context.Context, accessToken string) error {
	if !k.configured() {
		return ErrNotConfigured
	}

	resp, err := k.apiClient.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+accessToken).
		SetHeader("Content-Type", "application/x-www-form-urlencoded;charset=utf-8").
		Post("/v1/user/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapProviderError(resp)
}

func mapProviderError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	return fmt.Errorf("%w: http %d: %s", ErrAuthFailed, resp.StatusCode(), body)
}
