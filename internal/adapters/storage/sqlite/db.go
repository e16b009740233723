package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"vet-clinic/internal/adapters/storage/sqlstore"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const uniqueMarker = "UNIQUE constraint failed: "

// Open abre (o crea) el archivo, activa las claves foráneas y aplica el esquema.
func Open(ctx context.Context, path string) (*sqlstore.DB, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// un solo escritor; evita SQLITE_BUSY entre conexiones del pool
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
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
		Name:            "sqlite",
		Placeholder:     sqlstore.QuestionPlaceholder,
		UniqueViolation: UniqueColumn,
	}
}

// UniqueColumn lee la columna de "UNIQUE constraint failed: table.column".
func UniqueColumn(err error) (string, bool) {
	var se *sqlite.Error
	if !errors.As(err, &se) {
		return "", false
	}
	if se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE && se.Code() != sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY {
		return "", false
	}
	return columnFromMessage(se.Error())
}

func columnFromMessage(msg string) (string, bool) {
	i := strings.Index(msg, uniqueMarker)
	if i < 0 {
		return "", false
	}
	rest := msg[i+len(uniqueMarker):]
	if j := strings.IndexAny(rest, " ,("); j >= 0 {
		rest = rest[:j]
	}
	if dot := strings.LastIndex(rest, "."); dot >= 0 {
		rest = rest[dot+1:]
	}
	return rest, rest != ""
}
