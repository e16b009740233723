package veterinarians_test

import (
	"context"
	"testing"

	"vet-clinic/internal/adapters/storage/memory"
	"vet-clinic/internal/domain/records"
	"vet-clinic/internal/domain/veterinarians"
)

func valid() veterinarians.Veterinarian {
	return veterinarians.Veterinarian{
		FullName:  "Dr Soto",
		Specialty: "Dogs",
		Email:     "soto@example.com",
		Phone:     "+56912345678",
		Address:   "Providencia 100",
	}
}

func TestValidate_FieldRules(t *testing.T) {
	ctx := context.Background()
	svc := veterinarians.NewService(memory.NewStore().Veterinarians(), nil)

	cases := []struct {
		name  string
		field string
		set   func(v *veterinarians.Veterinarian)
	}{
		{"16 digits", "phone", func(v *veterinarians.Veterinarian) { v.Phone = "1234567890123456" }},
		{"16 digits with plus", "phone", func(v *veterinarians.Veterinarian) { v.Phone = "+1234567890123456" }},
		{"8 digits", "phone", func(v *veterinarians.Veterinarian) { v.Phone = "12345678" }},
		{"letters in phone", "phone", func(v *veterinarians.Veterinarian) { v.Phone = "+5691234abcd" }},
		{"email", "email", func(v *veterinarians.Veterinarian) { v.Email = "soto" }},
		{"short name", "full_name", func(v *veterinarians.Veterinarian) { v.FullName = "S" }},
		{"specialty", "specialty", func(v *veterinarians.Veterinarian) { v.Specialty = "birds" }},
		{"address", "address", func(v *veterinarians.Veterinarian) { v.Address = "abc" }},
	}
	for _, tc := range cases {
		v := valid()
		tc.set(&v)

		_, err := svc.Create(ctx, v)
		fields, ok := records.AsValidation(err)
		if !ok || fields[tc.field] == "" {
			t.Fatalf("%s: expected error on %s, got %v", tc.name, tc.field, err)
		}
	}

	if n := mustCount(t, svc); n != 0 {
		t.Fatalf("rejected records must not persist, got %d", n)
	}

	for _, phone := range []string{"912345678", "+123456789012345", "123456789012345"} {
		v := valid()
		v.Phone = phone
		if err := svc.Validate(ctx, v, ""); err != nil {
			t.Fatalf("phone %q should be accepted: %v", phone, err)
		}
	}
}

func TestCreate_UniqueNameEmailPhone(t *testing.T) {
	ctx := context.Background()
	svc := veterinarians.NewService(memory.NewStore().Veterinarians(), nil)

	created, err := svc.Create(ctx, valid())
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.Specialty != veterinarians.Specialty("dogs") {
		t.Fatalf("specialty should be normalized, got %q", created.Specialty)
	}

	dup := valid()
	dup.FullName = "DR SOTO"
	dup.Email = "SOTO@example.com"
	_, err = svc.Create(ctx, dup)
	fields, ok := records.AsValidation(err)
	if !ok || fields["full_name"] == "" || fields["email"] == "" || fields["phone"] == "" {
		t.Fatalf("expected name, email and phone conflicts, got %#v", fields)
	}

	if _, err := svc.Update(ctx, created.ID, valid()); err != nil {
		t.Fatalf("editing the same record should not conflict: %v", err)
	}
}

func mustCount(t *testing.T, svc *veterinarians.Service) int {
	t.Helper()
	items, err := svc.All(context.Background())
	if err != nil {
		t.Fatalf("All error: %v", err)
	}
	return len(items)
}
