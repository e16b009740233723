package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"vet-clinic/internal/domain/records"
)

type scanner interface {
	Scan(dest ...any) error
}

// table describe el mapeo de una entidad a una tabla con id TEXT.
type table[T any] struct {
	name    string
	columns []string
	id      func(T) string
	values  func(T) []any
	scan    func(scanner) (T, error)
}

type tableRepo[T any] struct {
	s *DB
	t table[T]
}

func conflictError(column string) error {
	return &records.ConflictError{Field: column}
}

func (r *tableRepo[T]) selectSQL() string {
	return "SELECT id, " + strings.Join(r.t.columns, ", ") + " FROM " + r.t.name
}

func (r *tableRepo[T]) List(ctx context.Context) ([]T, error) {
	rows, err := r.s.db.QueryContext(ctx, r.selectSQL())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		v, err := r.t.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *tableRepo[T]) GetByID(ctx context.Context, id string) (T, error) {
	row := r.s.db.QueryRowContext(ctx, r.s.rebind(r.selectSQL()+" WHERE id = ?"), strings.TrimSpace(id))
	v, err := r.t.scan(row)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, records.ErrNotFound
	}
	return v, err
}

func (r *tableRepo[T]) Create(ctx context.Context, v T) error {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(r.t.columns)+1), ", ")
	q := "INSERT INTO " + r.t.name + " (id, " + strings.Join(r.t.columns, ", ") + ") VALUES (" + marks + ")"

	args := append([]any{r.t.id(v)}, r.t.values(v)...)
	_, err := r.s.db.ExecContext(ctx, r.s.rebind(q), args...)
	return r.s.conflict(err)
}

func (r *tableRepo[T]) Update(ctx context.Context, v T) error {
	sets := make([]string, 0, len(r.t.columns))
	for _, c := range r.t.columns {
		sets = append(sets, c+" = ?")
	}
	q := "UPDATE " + r.t.name + " SET " + strings.Join(sets, ", ") + " WHERE id = ?"

	args := append(r.t.values(v), r.t.id(v))
	res, err := r.s.db.ExecContext(ctx, r.s.rebind(q), args...)
	if err != nil {
		return r.s.conflict(err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}

func (r *tableRepo[T]) Delete(ctx context.Context, id string) error {
	res, err := r.s.db.ExecContext(ctx, r.s.rebind("DELETE FROM "+r.t.name+" WHERE id = ?"), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return records.ErrNotFound
	}
	return nil
}
