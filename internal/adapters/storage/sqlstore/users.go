package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"vet-clinic/internal/domain/access"
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/users"
)

const selectUsers = `SELECT id, username, password_hash, email, phone, full_name, role FROM users`

type userRepo struct {
	s *DB
}

func (s *DB) Users() users.Repository {
	return &userRepo{s: s}
}

func scanUser(sc scanner) (users.User, error) {
	var u users.User
	var role string
	err := sc.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Phone, &u.FullName, &role)
	u.Role = access.Role(role)
	return u, err
}

func (r *userRepo) List(ctx context.Context) ([]users.User, error) {
	rows, err := r.s.db.QueryContext(ctx, selectUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]users.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.one(ctx, selectUsers+" WHERE id = ?", id)
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (users.User, error) {
	return r.one(ctx, selectUsers+" WHERE lower(username) = lower(?)", strings.TrimSpace(username))
}

func (r *userRepo) one(ctx context.Context, q string, arg string) (users.User, error) {
	u, err := scanUser(r.s.db.QueryRowContext(ctx, r.s.rebind(q), arg))
	if errors.Is(err, sql.ErrNoRows) {
		return users.User{}, records.ErrNotFound
	}
	return u, err
}

func (r *userRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.s.db.ExecContext(ctx, r.s.rebind(`
		INSERT INTO users (id, username, password_hash, email, phone, full_name, role)
		VALUES (?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Username, u.PasswordHash, u.Email, u.Phone, u.FullName, string(u.Role),
	)
	return r.s.conflict(err)
}

// Update no toca username.
func (r *userRepo) Update(ctx context.Context, u users.User) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`
		UPDATE users
		SET password_hash = ?, email = ?, phone = ?, full_name = ?, role = ?
		WHERE id = ?`),
		u.PasswordHash, u.Email, u.Phone, u.FullName, string(u.Role), u.ID,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}
