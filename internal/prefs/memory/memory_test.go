package memory

import (
	"context"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.GetString(ctx, "ns", "missing"); err != nil || ok {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}

	if err := s.SetString(ctx, "ns", "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if v, ok, _ := s.GetString(ctx, "ns", "k"); !ok || v != "v1" {
		t.Fatalf("get = %q, %v", v, ok)
	}

	// Same key in another namespace stays independent.
	if ok, _ := s.Contains(ctx, "other", "k"); ok {
		t.Fatal("namespaces should be isolated")
	}

	if err := s.SetString(ctx, "ns", "k", "v2"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v, _, _ := s.GetString(ctx, "ns", "k"); v != "v2" {
		t.Fatalf("overwrite lost: %q", v)
	}

	if err := s.Delete(ctx, "ns", "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if ok, _ := s.Contains(ctx, "ns", "k"); ok {
		t.Fatal("key should be gone after delete")
	}
}
