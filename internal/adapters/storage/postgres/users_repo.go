package postgres

import (
	"context"
	"database/sql"
	"errors"

	"clinic-appointments/internal/domain/users"
)

type usersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) users.Repository {
	return &usersRepo{db: db}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) error {
	const q = `
		INSERT INTO users (uid, display_name, email, role, address, phone, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.ExecContext(ctx, q,
		u.UID, u.DisplayName, u.Email, string(u.Role), u.Address, u.Phone, u.CreatedAt)
	return err
}

func (r *usersRepo) Update(ctx context.Context, u users.User) error {
	const q = `
		UPDATE users
		SET display_name = $2, email = $3, role = $4, address = $5, phone = $6
		WHERE uid = $1`

	res, err := r.db.ExecContext(ctx, q,
		u.UID, u.DisplayName, u.Email, string(u.Role), u.Address, u.Phone)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return users.ErrNotFound
	}
	return nil
}

func (r *usersRepo) GetByUID(ctx context.Context, uid string) (users.User, error) {
	const q = `
		SELECT uid, display_name, email, role, address, phone, created_at
		FROM users
		WHERE uid = $1`

	var u users.User
	var role string
	err := r.db.QueryRowContext(ctx, q, uid).Scan(
		&u.UID, &u.DisplayName, &u.Email, &role, &u.Address, &u.Phone, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	u.Role = users.Role(role)
	return u, nil
}

func (r *usersRepo) List(ctx context.Context) ([]users.User, error) {
	const q = `
		SELECT uid, display_name, email, role, address, phone, created_at
		FROM users
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		var u users.User
		var role string
		if err := rows.Scan(&u.UID, &u.DisplayName, &u.Email, &role, &u.Address, &u.Phone, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = users.Role(role)
		out = append(out, u)
	}
	return out, rows.Err()
}
