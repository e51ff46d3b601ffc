package http

import (
	"context"
	"time"

	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/service"
	"github.com/bluegyufordev/matzip-server/internal/token"
	"github.com/bluegyufordev/matzip-server/internal/validators"
	"github.com/bluegyufordev/matzip-server/models"
)

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
	testIssuer        = "matzip-test"
)

type mockAuthService struct {
	SignInFunc               func(ctx context.Context, loginID, password string) (service.Session, error)
	SignOutFunc              func(ctx context.Context, principal models.TokenPayload) error
	SignUpFunc               func(ctx context.Context, input service.SignUpInput) error
	FindLoginIDFunc          func(ctx context.Context, email string) (string, error)
	RequestPasswordResetFunc func(ctx context.Context, loginID, email string) (string, error)
	ResetPasswordFunc        func(ctx context.Context, loginID, email, newPassword string) error
}

func (m *mockAuthService) SignIn(ctx context.Context, loginID, password string) (service.Session, error) {
	return m.SignInFunc(ctx, loginID, password)
}

func (m *mockAuthService) SignOut(ctx context.Context, principal models.TokenPayload) error {
	return m.SignOutFunc(ctx, principal)
}

func (m *mockAuthService) SignUp(ctx context.Context, input service.SignUpInput) error {
	return m.SignUpFunc(ctx, input)
}

func (m *mockAuthService) FindLoginID(ctx context.Context, email string) (string, error) {
	return m.FindLoginIDFunc(ctx, email)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, loginID, email string) (string, error) {
	return m.RequestPasswordResetFunc(ctx, loginID, email)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, loginID, email, newPassword string) error {
	return m.ResetPasswordFunc(ctx, loginID, email, newPassword)
}

type mockEmailService struct {
	SendCodeFunc    func(ctx context.Context, email string) (string, error)
	ConfirmCodeFunc func(ctx context.Context, email, code string) (string, error)
}

func (m *mockEmailService) SendCode(ctx context.Context, email string) (string, error) {
	return m.SendCodeFunc(ctx, email)
}

func (m *mockEmailService) ConfirmCode(ctx context.Context, email, code string) (string, error) {
	return m.ConfirmCodeFunc(ctx, email, code)
}

type mockOAuthService struct {
	AuthorizeURLFunc   func(ctx context.Context) (string, error)
	HandleCallbackFunc func(ctx context.Context, code string) (service.CallbackResult, error)
	SignUpFunc         func(ctx context.Context, input service.OAuthSignUpInput) error
}

func (m *mockOAuthService) AuthorizeURL(ctx context.Context) (string, error) {
	return m.AuthorizeURLFunc(ctx)
}

func (m *mockOAuthService) HandleCallback(ctx context.Context, code string) (service.CallbackResult, error) {
	return m.HandleCallbackFunc(ctx, code)
}

func (m *mockOAuthService) SignUp(ctx context.Context, input service.OAuthSignUpInput) error {
	return m.SignUpFunc(ctx, input)
}

func testHandlerConfig() (config.App, config.OAuth) {
	app := config.App{
		AccessTokenSecret:   testAccessSecret,
		RefreshTokenSecret:  testRefreshSecret,
		TokenIssuer:         testIssuer,
		AccessTokenTTL:      15 * time.Minute,
		RefreshTokenTTL:     720 * time.Hour,
		VerificationCodeTTL: 10 * time.Minute,
	}
	oauth := config.OAuth{
		SignupRedirectURL: "https://app.matzip.dev/signup",
		HomeRedirectURL:   "https://app.matzip.dev/",
	}
	return app, oauth
}

func newTestCodec() *token.Codec {
	codec, err := token.NewCodec(testAccessSecret, testRefreshSecret, testIssuer)
	if err != nil {
		panic(err)
	}
	return codec
}

// newTestHandler wires a Handler around the given mock services. Any nil
// service is left nil; tests that never reach it don't care.
func newTestHandler(auth *mockAuthService, email *mockEmailService, oauth *mockOAuthService) *Handler {
	appCfg, oauthCfg := testHandlerConfig()

	services := &service.Services{}
	if auth != nil {
		services.AuthService = auth
	}
	if email != nil {
		services.EmailVerificationService = email
	}
	if oauth != nil {
		services.OAuthService = oauth
	}

	return NewHandler(services, newTestCodec(), validators.NewAuthRequestValidator(), appCfg, oauthCfg, logger.Nop())
}

// issueGateToken mints a valid access-class token for cookie gates in tests.
func issueGateToken(payload models.TokenPayload) string {
	signed, err := newTestCodec().Issue(token.ClassAccess, payload, time.Minute)
	if err != nil {
		panic(err)
	}
	return signed
}
