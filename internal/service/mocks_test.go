package service

import (
	"context"
	"time"

	"github.com/bluegyufordev/matzip-server/internal/adapter"
	"github.com/bluegyufordev/matzip-server/internal/config"
	"github.com/bluegyufordev/matzip-server/internal/crypto"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/internal/store"
	"github.com/bluegyufordev/matzip-server/internal/token"
	"github.com/bluegyufordev/matzip-server/models"
)

// Hand-rolled func-field mocks: each test assigns only the calls it expects.

type mockUserRepository struct {
	CreateUserFunc         func(ctx context.Context, user models.User) (models.User, error)
	FindUserByIdxFunc      func(ctx context.Context, idx int64) (models.User, error)
	FindUserByLoginIDFunc  func(ctx context.Context, loginID string) (models.User, error)
	FindUserByEmailFunc    func(ctx context.Context, email string) (models.User, error)
	FindLoginIDFunc        func(ctx context.Context, email string) (string, error)
	FindDuplicateFieldFunc func(ctx context.Context, loginID, nickname, email string) (string, error)
	UpdatePasswordFunc     func(ctx context.Context, idx int64, passwordHash string) error
}

func (m *mockUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	return m.CreateUserFunc(ctx, user)
}

func (m *mockUserRepository) FindUserByIdx(ctx context.Context, idx int64) (models.User, error) {
	return m.FindUserByIdxFunc(ctx, idx)
}

func (m *mockUserRepository) FindUserByLoginID(ctx context.Context, loginID string) (models.User, error) {
	return m.FindUserByLoginIDFunc(ctx, loginID)
}

func (m *mockUserRepository) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	return m.FindUserByEmailFunc(ctx, email)
}

func (m *mockUserRepository) FindLoginID(ctx context.Context, email string) (string, error) {
	return m.FindLoginIDFunc(ctx, email)
}

func (m *mockUserRepository) FindDuplicateField(ctx context.Context, loginID, nickname, email string) (string, error) {
	return m.FindDuplicateFieldFunc(ctx, loginID, nickname, email)
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, idx int64, passwordHash string) error {
	return m.UpdatePasswordFunc(ctx, idx, passwordHash)
}

type mockRefreshTokenRepository struct {
	RotateFunc           func(ctx context.Context, usersIdx int64, expiresAt time.Time, mint func() (string, error)) (string, bool, error)
	SoftDeleteByUserFunc func(ctx context.Context, usersIdx int64) error
}

func (m *mockRefreshTokenRepository) Rotate(ctx context.Context, usersIdx int64, expiresAt time.Time, mint func() (string, error)) (string, bool, error) {
	return m.RotateFunc(ctx, usersIdx, expiresAt, mint)
}

func (m *mockRefreshTokenRepository) SoftDeleteByUser(ctx context.Context, usersIdx int64) error {
	return m.SoftDeleteByUserFunc(ctx, usersIdx)
}

type mockOAuthRepository struct {
	UpsertFunc     func(ctx context.Context, link models.OAuthLink) (models.OAuthLink, error)
	FindByIdxFunc  func(ctx context.Context, idx int64) (models.OAuthLink, error)
	FindByUserFunc func(ctx context.Context, usersIdx int64) (models.OAuthLink, error)
	ClaimFunc      func(ctx context.Context, idx, usersIdx int64) error
}

func (m *mockOAuthRepository) Upsert(ctx context.Context, link models.OAuthLink) (models.OAuthLink, error) {
	return m.UpsertFunc(ctx, link)
}

func (m *mockOAuthRepository) FindByIdx(ctx context.Context, idx int64) (models.OAuthLink, error) {
	return m.FindByIdxFunc(ctx, idx)
}

func (m *mockOAuthRepository) FindByUser(ctx context.Context, usersIdx int64) (models.OAuthLink, error) {
	return m.FindByUserFunc(ctx, usersIdx)
}

func (m *mockOAuthRepository) Claim(ctx context.Context, idx, usersIdx int64) error {
	return m.ClaimFunc(ctx, idx, usersIdx)
}

type mockCodeRepository struct {
	InsertCodeFunc        func(ctx context.Context, email, code string) error
	FindLatestCodeFunc    func(ctx context.Context, email string) (models.VerificationCode, error)
	DeleteCodesBeforeFunc func(ctx context.Context, cutoff time.Time) (int64, error)
}

func (m *mockCodeRepository) InsertCode(ctx context.Context, email, code string) error {
	return m.InsertCodeFunc(ctx, email, code)
}

func (m *mockCodeRepository) FindLatestCode(ctx context.Context, email string) (models.VerificationCode, error) {
	return m.FindLatestCodeFunc(ctx, email)
}

func (m *mockCodeRepository) DeleteCodesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return m.DeleteCodesBeforeFunc(ctx, cutoff)
}

type mockMailSender struct {
	SendVerificationCodeFunc func(to, code string) error
}

func (m *mockMailSender) SendVerificationCode(to, code string) error {
	return m.SendVerificationCodeFunc(to, code)
}

type mockKakaoProvider struct {
	AuthorizeURLFunc func() (string, error)
	ExchangeCodeFunc func(ctx context.Context, code string) (adapter.KakaoTokens, error)
	FetchProfileFunc func(ctx context.Context, accessToken string) (adapter.KakaoProfile, error)
	LogoutFunc       func(ctx context.Context, accessToken string) error
}

func (m *mockKakaoProvider) AuthorizeURL() (string, error) {
	return m.AuthorizeURLFunc()
}

func (m *mockKakaoProvider) ExchangeCode(ctx context.Context, code string) (adapter.KakaoTokens, error) {
	return m.ExchangeCodeFunc(ctx, code)
}

func (m *mockKakaoProvider) FetchProfile(ctx context.Context, accessToken string) (adapter.KakaoProfile, error) {
	return m.FetchProfileFunc(ctx, accessToken)
}

func (m *mockKakaoProvider) Logout(ctx context.Context, accessToken string) error {
	return m.LogoutFunc(ctx, accessToken)
}

const (
	testAccessSecret  = "test-access-secret"
	testRefreshSecret = "test-refresh-secret"
	testIssuer        = "matzip-server-test"
)

func testAppConfig() config.App {
	return config.App{
		AccessTokenSecret:   testAccessSecret,
		RefreshTokenSecret:  testRefreshSecret,
		TokenIssuer:         testIssuer,
		AccessTokenTTL:      15 * time.Minute,
		RefreshTokenTTL:     720 * time.Hour,
		EncryptionKey:       "test-encryption-key",
		VerificationCodeTTL: 10 * time.Minute,
	}
}

func newTestCodec() *token.Codec {
	codec, err := token.NewCodec(testAccessSecret, testRefreshSecret, testIssuer)
	if err != nil {
		panic(err)
	}
	return codec
}

func newTestCipher() *crypto.Cipher {
	cipher, err := crypto.NewCipher("test-encryption-key")
	if err != nil {
		panic(err)
	}
	return cipher
}

func newTestRepositories(users *mockUserRepository, tokens *mockRefreshTokenRepository, links *mockOAuthRepository, codes *mockCodeRepository) *store.Repositories {
	return &store.Repositories{
		Users:         users,
		RefreshTokens: tokens,
		OAuthLinks:    links,
		Codes:         codes,
	}
}

func testLogger() *logger.Logger {
	return logger.Nop()
}
