package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"vet-clinic/internal/platform/flash"
	"vet-clinic/internal/ports/auth"
	"vet-clinic/internal/ports/session"
)

func TestStore_SaveLoadDestroy(t *testing.T) {
	ctx := context.Background()
	st := NewStore()

	data := session.Data{
		Identity: auth.Identity{Authenticated: true, Username: "ana", Role: "administrator"},
		Flashes:  []flash.Notice{flash.Success("hola")},
	}
	if err := st.Save(ctx, "s1", data, time.Hour); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	got, err := st.Load(ctx, "s1")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Identity.Username != "ana" || len(got.Flashes) != 1 {
		t.Fatalf("unexpected data: %#v", got)
	}

	// la copia devuelta no debe compartir el slice interno
	got.Flashes[0].Message = "mutated"
	again, _ := st.Load(ctx, "s1")
	if again.Flashes[0].Message != "hola" {
		t.Fatalf("store leaked internal slice")
	}

	_ = st.Destroy(ctx, "s1")
	if _, err := st.Load(ctx, "s1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after destroy, got %v", err)
	}
}

func TestStore_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 12, 22, 10, 0, 0, 0, time.UTC)
	st := newStore(func() time.Time { return now })

	_ = st.Save(ctx, "s1", session.Data{Identity: auth.Identity{Authenticated: true}}, time.Minute)

	now = now.Add(2 * time.Minute)
	if _, err := st.Load(ctx, "s1"); !errors.Is(err, session.ErrNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}
