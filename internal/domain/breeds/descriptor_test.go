package breeds_test

import (
	"context"
	"net/url"
	"testing"

	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/breeds"
	"vet-clinic/internal/domain/records"
)

func valid() breeds.Breed {
	return breeds.Breed{
		Name:           "Beagle",
		Lifespan:       13,
		FunFact:        "great nose",
		Recommendation: "daily walks",
	}
}

func TestValidate_LifespanBounds(t *testing.T) {
	ctx := context.Background()
	svc := breeds.NewService(memory.NewStore().Breeds(), nil)

	for _, n := range []int{-1, 31} {
		b := valid()
		b.Lifespan = n
		fields, ok := records.AsValidation(svc.Validate(ctx, b, ""))
		if !ok || fields["lifespan"] != "lifespan must be between 0 and 30 years" {
			t.Fatalf("lifespan %d: expected bound error, got %#v", n, fields)
		}
	}
	for _, n := range []int{0, 30} {
		b := valid()
		b.Lifespan = n
		if err := svc.Validate(ctx, b, ""); err != nil {
			t.Fatalf("lifespan %d should be accepted: %v", n, err)
		}
	}
}

func TestCreate_DefaultsAndUniqueName(t *testing.T) {
	ctx := context.Background()
	svc := breeds.NewService(memory.NewStore().Breeds(), nil)

	created, err := svc.Create(ctx, valid())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Animal != breeds.AnimalDog {
		t.Fatalf("animal should default to dog, got %q", created.Animal)
	}

	dup := valid()
	dup.Name = " beagle "
	fields, ok := records.AsValidation(func() error { _, err := svc.Create(ctx, dup); return err }())
	if !ok || fields["name"] == "" {
		t.Fatalf("expected name conflict, got %#v", fields)
	}

	b := valid()
	b.Name = "Sin gracia"
	b.FunFact = ""
	b.Animal = "fish"
	fields, _ = records.AsValidation(svc.Validate(ctx, b, ""))
	if fields["fun_fact"] == "" || fields["animal"] == "" {
		t.Fatalf("expected fun_fact and animal errors, got %#v", fields)
	}
}

func TestDecode_Lifespan(t *testing.T) {
	_, errs := breeds.Decode(url.Values{"name": {"Beagle"}, "lifespan": {"trece"}})
	if errs["lifespan"] != "lifespan must be a whole number" {
		t.Fatalf("unexpected errors %#v", errs)
	}

	b, errs := breeds.Decode(url.Values{"name": {"Beagle"}, "lifespan": {" 12 "}})
	if !errs.Empty() || b.Lifespan != 12 {
		t.Fatalf("unexpected decode %#v %#v", b, errs)
	}
}
