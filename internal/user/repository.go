package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/credkit/internal/platform/db"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound    = errors.New("user repository: user not found")
	ErrQueryFailed = errors.New("user repository: query failed")
	ErrDuplicate   = errors.New("user repository: username already exists")
)

const pgUniqueViolation = "23505"

// Repository persists users. Queries run on the transaction stored in the
// context, if any.
type Repository struct {
	db *sql.DB
}

func NewRepository(conn *sql.DB) *Repository {
	return &Repository{db: conn}
}

const userColumns = "id, username, password_hash, is_active, created_at, updated_at"

func scanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.IsActive, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

const QueryFindByUsername = "SELECT " + userColumns + " FROM users WHERE username = $1 LIMIT 1"

func (r *Repository) FindByUsername(ctx context.Context, username string) (*User, error) {
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, QueryFindByUsername, username)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with username %s: %v", ErrQueryFailed, username, err)
	}
	return u, nil
}

const QueryFindByID = "SELECT " + userColumns + " FROM users WHERE id = $1"

func (r *Repository) FindByID(ctx context.Context, id int64) (*User, error) {
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, QueryFindByID, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: find user with id %d: %v", ErrQueryFailed, id, err)
	}
	return u, nil
}

const QueryExistsByUsername = "SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)"

func (r *Repository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	var exists bool
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, QueryExistsByUsername, username)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("%w: check username %s: %v", ErrQueryFailed, username, err)
	}
	return exists, nil
}

type CreateParams struct {
	Username     string
	PasswordHash string
}

const QueryCreate = `
INSERT INTO users (username, password_hash)
VALUES ($1, $2)
RETURNING ` + userColumns

func (r *Repository) Create(ctx context.Context, params CreateParams) (*User, error) {
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, QueryCreate, params.Username, params.PasswordHash)
	u, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, fmt.Errorf("%w: %s", ErrDuplicate, params.Username)
		}
		return nil, fmt.Errorf("%w: create user with username %s: %v", ErrQueryFailed, params.Username, err)
	}
	return u, nil
}

const QueryUpdate = `
UPDATE users
SET username = $2, password_hash = $3, is_active = $4, updated_at = NOW()
WHERE id = $1
RETURNING ` + userColumns

// Save inserts u when it has no id yet and updates the stored row otherwise.
func (r *Repository) Save(ctx context.Context, u *User) (*User, error) {
	if u.ID == 0 {
		return r.Create(ctx, CreateParams{Username: u.Username, PasswordHash: u.PasswordHash})
	}

	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, QueryUpdate, u.ID, u.Username, u.PasswordHash, u.IsActive)
	saved, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: save user with id %d: %v", ErrQueryFailed, u.ID, err)
	}
	return saved, nil
}

const (
	QueryList       = "SELECT " + userColumns + " FROM users ORDER BY created_at DESC, id DESC"
	QueryListActive = "SELECT " + userColumns + " FROM users WHERE is_active ORDER BY created_at DESC, id DESC"
)

func (r *Repository) List(ctx context.Context) ([]User, error) {
	return r.list(ctx, QueryList)
}

func (r *Repository) ListActive(ctx context.Context) ([]User, error) {
	return r.list(ctx, QueryListActive)
}

func (r *Repository) list(ctx context.Context, query string) ([]User, error) {
	rows, err := db.ExecutorFromContext(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: list users: %v", ErrQueryFailed, err)
	}
	defer rows.Close()

	//nolint:prealloc //Cannot identify the length of the rows without running another query.
	var users []User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("user repository: scan row: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("user repository: iterate over user rows: %w", err)
	}

	return users, nil
}

const QuerySetActive = `
UPDATE users
SET is_active = $2, updated_at = NOW()
WHERE id = $1
RETURNING ` + userColumns

func (r *Repository) SetActive(ctx context.Context, id int64, active bool) (*User, error) {
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, QuerySetActive, id, active)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: set active=%t for user with id %d: %v", ErrQueryFailed, active, id, err)
	}
	return u, nil
}

const QueryDelete = "DELETE FROM users WHERE id = $1 RETURNING " + userColumns

// Delete removes the user and returns the deleted row.
func (r *Repository) Delete(ctx context.Context, id int64) (*User, error) {
	row := db.ExecutorFromContext(ctx, r.db).QueryRowContext(ctx, QueryDelete, id)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: delete user with id %d: %v", ErrQueryFailed, id, err)
	}
	return u, nil
}
