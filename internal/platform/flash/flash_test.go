package flash

import "testing"

func TestNormalize(t *testing.T) {
	n, ok := Normalize(Notice{Kind: " SUCCESS ", Message: "  saved  "})
	if !ok || n.Kind != KindSuccess || n.Message != "saved" {
		t.Fatalf("unexpected normalize result: %#v ok=%v", n, ok)
	}
	if _, ok := Normalize(Notice{Kind: KindError, Message: "  "}); ok {
		t.Fatalf("empty message should be rejected")
	}
	if _, ok := Normalize(Notice{Kind: "loud", Message: "x"}); ok {
		t.Fatalf("unknown kind should be rejected")
	}
}
