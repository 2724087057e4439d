package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/MrEthical07/authgate"
	"github.com/MrEthical07/authgate/directory/migrations"
)

// pgUniqueViolation is the Postgres error code raised when the users email
// unique index rejects an insert.
const pgUniqueViolation = "23505"

// Postgres is a UserDirectory over a Postgres users table. Email uniqueness
// is enforced by the database's unique index, so concurrent duplicate
// registrations fail with [authgate.ErrAccountExists] on exactly one side
// regardless of process count.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing database handle. The caller owns the handle's
// lifecycle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Open connects to Postgres via the pgx stdlib driver and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("directory: open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("directory: ping postgres: %w", err)
	}
	return &Postgres{db: db}, nil
}

// Close releases the underlying handle. Only call this when the handle was
// created by [Open].
func (p *Postgres) Close() error {
	return p.db.Close()
}

// Migrate applies the embedded schema migrations.
func (p *Postgres) Migrate(ctx context.Context) error {
	provider, err := goose.NewProvider(goose.DialectPostgres, p.db, migrations.FS)
	if err != nil {
		return fmt.Errorf("directory: migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("directory: migrate: %w", err)
	}
	return nil
}

const insertUserQuery = `
INSERT INTO authgate_users (id, email, password_hash)
VALUES ($1, $2, $3)`

// CreateUser inserts a new account, relying on the email unique index for
// duplicate detection.
func (p *Postgres) CreateUser(ctx context.Context, email, passwordHash string) (*authgate.User, error) {
	id := uuid.NewString()

	if _, err := p.db.ExecContext(ctx, insertUserQuery, id, email, passwordHash); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, authgate.ErrAccountExists
		}
		return nil, fmt.Errorf("directory: create user: %w", err)
	}

	return &authgate.User{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
	}, nil
}

const selectUserColumns = `SELECT id, email, password_hash, COALESCE(reset_token, '') FROM authgate_users`

// GetUserByEmail looks up an account by email.
func (p *Postgres) GetUserByEmail(ctx context.Context, email string) (*authgate.User, error) {
	return p.queryOne(ctx, selectUserColumns+` WHERE email = $1`, email)
}

// GetUserByID looks up an account by id.
func (p *Postgres) GetUserByID(ctx context.Context, userID string) (*authgate.User, error) {
	return p.queryOne(ctx, selectUserColumns+` WHERE id = $1`, userID)
}

// GetUserByResetToken finds the account holding token. Tokens are stored as
// NULL when no reset is pending, so an empty token never matches a row.
func (p *Postgres) GetUserByResetToken(ctx context.Context, token string) (*authgate.User, error) {
	if token == "" {
		return nil, authgate.ErrUserNotFound
	}
	return p.queryOne(ctx, selectUserColumns+` WHERE reset_token = $1`, token)
}

// SetResetToken stores token on the user, replacing any prior token.
func (p *Postgres) SetResetToken(ctx context.Context, userID, token string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE authgate_users SET reset_token = NULLIF($2, '') WHERE id = $1`, userID, token)
	if err != nil {
		return fmt.Errorf("directory: set reset token: %w", err)
	}
	return requireRow(res)
}

// UpdatePassword stores newHash and clears the reset token in one statement,
// so redeeming a token can never leave it valid for a second use.
func (p *Postgres) UpdatePassword(ctx context.Context, userID, newHash string) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE authgate_users SET password_hash = $2, reset_token = NULL WHERE id = $1`, userID, newHash)
	if err != nil {
		return fmt.Errorf("directory: update password: %w", err)
	}
	return requireRow(res)
}

func (p *Postgres) queryOne(ctx context.Context, query string, arg any) (*authgate.User, error) {
	var user authgate.User
	err := p.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Email, &user.PasswordHash, &user.ResetToken,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, authgate.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("directory: query user: %w", err)
	}
	return &user, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("directory: rows affected: %w", err)
	}
	if n == 0 {
		return authgate.ErrUserNotFound
	}
	return nil
}
