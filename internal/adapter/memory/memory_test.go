package memory

import (
	"context"
	"testing"
)

func TestKVRoundTrip(t *testing.T) {
	db := New()
	ctx := context.Background()

	// Missing key
	v, found, err := db.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if found || v != nil {
		t.Errorf("expected not found, got %q", v)
	}

	if err := db.Set(ctx, "k", []byte("hello")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, found, err = db.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !found || string(v) != "hello" {
		t.Errorf("expected hello, got %q (found=%v)", v, found)
	}

	// Overwrite
	_ = db.Set(ctx, "k", []byte("bye"))
	v, _, _ = db.Get(ctx, "k")
	if string(v) != "bye" {
		t.Errorf("expected bye, got %q", v)
	}
}

func TestKVCopiesValues(t *testing.T) {
	db := New()
	ctx := context.Background()

	in := []byte("abc")
	_ = db.Set(ctx, "k", in)
	in[0] = 'z'

	out, _, _ := db.Get(ctx, "k")
	if string(out) != "abc" {
		t.Fatalf("stored value aliased caller slice: %q", out)
	}
	out[1] = 'z'
	again, _, _ := db.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("returned value aliased stored slice: %q", again)
	}
}

func TestKVRemoveAll(t *testing.T) {
	db := New()
	ctx := context.Background()

	_ = db.Set(ctx, "a", []byte("1"))
	_ = db.Set(ctx, "b", []byte("2"))
	if db.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", db.Len())
	}
	if err := db.RemoveAll(ctx); err != nil {
		t.Fatalf("RemoveAll: %v", err)
	}
	if db.Len() != 0 {
		t.Errorf("expected 0 keys, got %d", db.Len())
	}
	if _, found, _ := db.Get(ctx, "a"); found {
		t.Error("expected a to be removed")
	}
}
