package directory

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MrEthical07/authgate"
)

func newMockPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		db.Close()
	})
	return NewPostgres(db), mock
}

func TestPostgresCreateUser(t *testing.T) {
	dir, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO authgate_users`)).
		WithArgs(sqlmock.AnyArg(), "a@example.com", "hash-a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	user, err := dir.CreateUser(context.Background(), "a@example.com", "hash-a")
	if err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
	if user.ID == "" || user.Email != "a@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestPostgresCreateUserDuplicate(t *testing.T) {
	dir, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO authgate_users`)).
		WithArgs(sqlmock.AnyArg(), "dup@example.com", "h").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "authgate_users_email_key"})

	_, err := dir.CreateUser(context.Background(), "dup@example.com", "h")
	if !errors.Is(err, authgate.ErrAccountExists) {
		t.Fatalf("expected ErrAccountExists, got %v", err)
	}
}

func TestPostgresGetUserByEmail(t *testing.T) {
	dir, mock := newMockPostgres(t)

	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "coalesce"}).
		AddRow("id-1", "a@example.com", "hash-a", "")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, COALESCE(reset_token, '') FROM authgate_users WHERE email = $1`)).
		WithArgs("a@example.com").
		WillReturnRows(rows)

	user, err := dir.GetUserByEmail(context.Background(), "a@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user.ID != "id-1" || user.ResetToken != "" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestPostgresGetUserByEmailMiss(t *testing.T) {
	dir, mock := newMockPostgres(t)

	mock.ExpectQuery(`SELECT id, email, password_hash`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "coalesce"}))

	_, err := dir.GetUserByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, authgate.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostgresGetUserByResetTokenEmpty(t *testing.T) {
	dir, _ := newMockPostgres(t)

	// No query expectation: the empty token is rejected before hitting SQL.
	_, err := dir.GetUserByResetToken(context.Background(), "")
	if !errors.Is(err, authgate.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostgresSetResetToken(t *testing.T) {
	dir, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE authgate_users SET reset_token = NULLIF($2, '') WHERE id = $1`)).
		WithArgs("id-1", "tok").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := dir.SetResetToken(context.Background(), "id-1", "tok"); err != nil {
		t.Fatalf("SetResetToken failed: %v", err)
	}
}

func TestPostgresSetResetTokenUnknownUser(t *testing.T) {
	dir, mock := newMockPostgres(t)

	mock.ExpectExec(`UPDATE authgate_users SET reset_token`).
		WithArgs("nope", "tok").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := dir.SetResetToken(context.Background(), "nope", "tok")
	if !errors.Is(err, authgate.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostgresUpdatePasswordClearsToken(t *testing.T) {
	dir, mock := newMockPostgres(t)

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE authgate_users SET password_hash = $2, reset_token = NULL WHERE id = $1`)).
		WithArgs("id-1", "new-hash").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := dir.UpdatePassword(context.Background(), "id-1", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
}
