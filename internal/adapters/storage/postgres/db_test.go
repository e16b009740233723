package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"vet-clinic/internal/domain/clients"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestUniqueColumn(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{
		Code:           "23505",
		TableName:      "clients",
		ConstraintName: "clients_rut_key",
	})
	col, ok := UniqueColumn(err)
	if !ok || col != "rut" {
		t.Fatalf("expected rut, got %q ok=%v", col, ok)
	}

	if _, ok := UniqueColumn(&pgconn.PgError{Code: "23503"}); ok {
		t.Fatalf("fk violation is not a unique violation")
	}
	if _, ok := UniqueColumn(errors.New("boom")); ok {
		t.Fatalf("plain error is not a unique violation")
	}
}

// Requiere una base real: POSTGRES_TEST_DSN=postgres://...
func TestOpen_Integration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_DSN not set")
	}

	ctx := context.Background()
	store, err := Open(ctx, dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	repo := store.Clients()
	c := clients.Client{ID: "pg-test-client", FirstName: "Ana", LastName: "Rojas",
		Phone: "912345678", Email: "pg-test@example.com", RUT: "11.111.111-1", Address: "Av. Siempre Viva 742"}
	_ = repo.Delete(ctx, c.ID)
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("create: %v", err)
	}
	defer repo.Delete(ctx, c.ID)

	if _, err := repo.GetByID(ctx, c.ID); err != nil {
		t.Fatalf("get: %v", err)
	}
}
