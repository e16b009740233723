package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"vet-clinic/internal/adapters/storage/sqlstore"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// uniqueViolation es SQLSTATE unique_violation.
const uniqueViolation = "23505"

// Open abre un pool a Postgres usando pgx (database/sql), verifica la conexión
// y aplica el esquema.
func Open(ctx context.Context, dsn string) (*sqlstore.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	store := sqlstore.New(db, Dialect())
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func Dialect() sqlstore.Dialect {
	return sqlstore.Dialect{
		Name:            "postgres",
		Placeholder:     sqlstore.DollarPlaceholder,
		UniqueViolation: UniqueColumn,
	}
}

// UniqueColumn mapea un error 23505 a la columna de la restricción.
func UniqueColumn(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return "", false
	}
	if pgErr.ColumnName != "" {
		return pgErr.ColumnName, true
	}
	return sqlstore.ColumnFromConstraint(pgErr.TableName, pgErr.ConstraintName), true
}
