package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
)

// Dialect aísla lo que cambia entre motores.
type Dialect struct {
	Name string
	// Placeholder devuelve el marcador del argumento n (desde 1).
	Placeholder func(n int) string
	// UniqueViolation devuelve la columna si err viola un índice único.
	UniqueViolation func(err error) (column string, ok bool)
}

// DollarPlaceholder es el estilo de Postgres ($1, $2...).
func DollarPlaceholder(n int) string { return "$" + strconv.Itoa(n) }

// QuestionPlaceholder es el estilo de SQLite.
func QuestionPlaceholder(int) string { return "?" }

type DB struct {
	db      *sql.DB
	dialect Dialect
}

func New(db *sql.DB, d Dialect) *DB {
	if d.Placeholder == nil {
		d.Placeholder = QuestionPlaceholder
	}
	return &DB{db: db, dialect: d}
}

func (s *DB) SQL() *sql.DB { return s.db }

func (s *DB) Close() error { return s.db.Close() }

func (s *DB) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// rebind reemplaza cada ? por el marcador del dialecto.
func (s *DB) rebind(query string) string {
	if s.dialect.Placeholder(1) == "?" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(s.dialect.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// conflict traduce una violación de índice único a *records.ConflictError.
func (s *DB) conflict(err error) error {
	if err == nil || s.dialect.UniqueViolation == nil {
		return err
	}
	if col, ok := s.dialect.UniqueViolation(err); ok {
		return conflictError(col)
	}
	return err
}

// ColumnFromConstraint saca la columna de un nombre table_column_key.
func ColumnFromConstraint(table, constraint string) string {
	c := strings.TrimSuffix(constraint, "_key")
	if table != "" {
		c = strings.TrimPrefix(c, table+"_")
	}
	return c
}

// Migrate crea las tablas si no existen. Es idempotente.
func (s *DB) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
