package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/staffql/internal/staffql/domain"
	"github.com/aussiebroadwan/staffql/internal/staffql/store"
	"github.com/aussiebroadwan/staffql/pkg/idx"
	pkgerrors "github.com/pkg/errors"
)

const userColumns = `id, email, password_hash, user_name, position, experience, created_at, updated_at`

type usersRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	now := time.Now().UTC()
	u.ID = idx.New()
	u.CreatedAt, u.UpdatedAt = now, now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.UserName, u.Position, u.Experience, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, store.ErrAlreadyExists
		}
		return domain.User{}, pkgerrors.Wrap(err, "sqlite: insert user")
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	if !idx.Valid(id) {
		return domain.User{}, store.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *usersRepo) getOne(ctx context.Context, query string, arg string) (domain.User, error) {
	ctx, cancel := store.WithTimeout(ctx, r.timeout)
	defer cancel()

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.UserName, &u.Position, &u.Experience, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err = mapNotFound(err); err == store.ErrNotFound {
			return domain.User{}, err
		}
		return domain.User{}, pkgerrors.Wrap(err, "sqlite: select user")
	}
	return u, nil
}
