package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/freshbite/shop/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func (r *UsersRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, fullname, email, phonenumber, password_hash, address, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		u.ID, u.FullName, u.Email, u.PhoneNumber, u.PasswordHash, u.Address, u.CreatedAt, u.UpdatedAt,
	)

	if err != nil {
		return user.User{}, err
	}

	return u, nil
}

// GetByEmail resolves the oldest account on the address; emails are not
// unique here, so the ordering keeps lookups deterministic.
func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, fullname, email, phonenumber, password_hash, address, created_at, updated_at
         FROM users
         WHERE email = $1
         ORDER BY created_at ASC
         LIMIT 1`,
		email,
	).Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.PhoneNumber,
		&u.PasswordHash,
		&u.Address,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	var u user.User

	err := r.pool.QueryRow(
		ctx,
		`SELECT id, fullname, email, phonenumber, password_hash, address, created_at, updated_at
         FROM users
         WHERE id = $1`,
		id,
	).Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.PhoneNumber,
		&u.PasswordHash,
		&u.Address,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}
	return u, nil
}

// UpdatePartial applies only the fields the patch actually carries, built as
// a dynamic SET list with positional args.
func (r *UsersRepo) UpdatePartial(ctx context.Context, id string, req user.UpdateUserRequest) (user.User, error) {
	var sets []string
	var args []interface{}

	// $1 is reserved for the id
	args = append(args, id)
	argsPosition := 2

	set := func(column string, value string) {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, argsPosition))
		args = append(args, value)
		argsPosition++
	}

	if req.FullName != nil && *req.FullName != "" {
		set("fullname", *req.FullName)
	}

	if req.Email != nil && *req.Email != "" {
		set("email", *req.Email)
	}

	if req.PhoneNumber != nil && *req.PhoneNumber != "" {
		set("phonenumber", *req.PhoneNumber)
	}

	if req.Address != nil && *req.Address != "" {
		set("address", *req.Address)
	}

	if len(sets) == 0 {
		// the handler rejects empty patches before getting here
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + `
		WHERE id = $1
		RETURNING id, fullname, email, phonenumber, password_hash, address, created_at, updated_at`

	var u user.User

	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.PhoneNumber,
		&u.PasswordHash,
		&u.Address,
		&u.CreatedAt,
		&u.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrNotFound
		}

		return user.User{}, err
	}

	return u, nil
}
