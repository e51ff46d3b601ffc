package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bluegyufordev/matzip-server/internal/logger"
	"github.com/bluegyufordev/matzip-server/models"
)

var oauthColumns = []string{"idx", "users_idx", "provider", "provider_user_id", "access_token", "refresh_token", "refresh_token_expires_at", "is_deleted", "created_at"}

func newTestOAuthRepo(t *testing.T) (*oauthRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &oauthRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestUpsert_NewLink(t *testing.T) {
	repo, mock, db := newTestOAuthRepo(t)
	defer db.Close()

	now := time.Now()
	link := models.OAuthLink{
		Provider:       models.ProviderKakao,
		ProviderUserID: "123456789",
		AccessToken:    "enc-access",
		RefreshToken:   "enc-refresh",
	}

	rows := sqlmock.NewRows(oauthColumns).
		AddRow(3, nil, models.ProviderKakao, "123456789", "enc-access", "enc-refresh", nil, false, now)

	mock.ExpectQuery("INSERT INTO users.oauth").
		WithArgs(link.Provider, link.ProviderUserID, link.AccessToken, link.RefreshToken, link.RefreshTokenExpiresAt).
		WillReturnRows(rows)

	saved, err := repo.Upsert(context.Background(), link)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Idx != 3 {
		t.Errorf("expected Idx=3, got %d", saved.Idx)
	}
	if saved.IsClaimed() {
		t.Error("expected fresh link to be unclaimed")
	}
}

func TestUpsert_ExistingLinkKeepsOwner(t *testing.T) {
	repo, mock, db := newTestOAuthRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(oauthColumns).
		AddRow(3, int64(7), models.ProviderKakao, "123456789", "new-access", "new-refresh", now.Add(24*time.Hour), false, now)

	mock.ExpectQuery("INSERT INTO users.oauth").
		WillReturnRows(rows)

	saved, err := repo.Upsert(context.Background(), models.OAuthLink{
		Provider:       models.ProviderKakao,
		ProviderUserID: "123456789",
		AccessToken:    "new-access",
		RefreshToken:   "new-refresh",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !saved.IsClaimed() || saved.UsersIdx.Int64 != 7 {
		t.Errorf("expected claimed link with users_idx=7, got %+v", saved.UsersIdx)
	}
	if saved.AccessToken != "new-access" {
		t.Errorf("expected refreshed access token, got %q", saved.AccessToken)
	}
}

func TestUpsert_DBError(t *testing.T) {
	repo, mock, db := newTestOAuthRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users.oauth").
		WillReturnError(errors.New("db failure"))

	_, err := repo.Upsert(context.Background(), models.OAuthLink{Provider: models.ProviderKakao})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestFindByIdx_Success(t *testing.T) {
	repo, mock, db := newTestOAuthRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(oauthColumns).
		AddRow(3, nil, models.ProviderKakao, "123456789", "enc-access", "enc-refresh", nil, false, now)

	mock.ExpectQuery("SELECT idx, users_idx, provider").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	found, err := repo.FindByIdx(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.ProviderUserID != "123456789" {
		t.Errorf("expected provider user id 123456789, got %s", found.ProviderUserID)
	}
}

func TestFindByIdx_NotFound(t *testing.T) {
	repo, mock, db := newTestOAuthRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT idx, users_idx, provider").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByIdx(context.Background(), 99)
	if !errors.Is(err, ErrOAuthLinkNotFound) {
		t.Fatalf("expected ErrOAuthLinkNotFound, got %v", err)
	}
}

func TestFindByUser_NotFoundForLocalAccount(t *testing.T) {
	repo, mock, db := newTestOAuthRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT idx, users_idx, provider").
		WithArgs(int64(7)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUser(context.Background(), 7)
	if !errors.Is(err, ErrOAuthLinkNotFound) {
		t.Fatalf("expected ErrOAuthLinkNotFound, got %v", err)
	}
}

func TestClaim_Success(t *testing.T) {
	repo, mock, db := newTestOAuthRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users.oauth").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Claim(context.Background(), 3, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClaim_AlreadyClaimed(t *testing.T) {
	repo, mock, db := newTestOAuthRepo(t)
	defer db.Close()

	mock.ExpectExec("UPDATE users.oauth").
		WithArgs(int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Claim(context.Background(), 3, 7)
	if !errors.Is(err, ErrOAuthLinkNotFound) {
		t.Fatalf("expected ErrOAuthLinkNotFound, got %v", err)
	}
}
