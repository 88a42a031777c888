package identity

import (
	"context"
	"errors"
	"testing"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier(map[string]string{"tok-1": "ayse"})

	owner, err := v.Verify(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner != "ayse" {
		t.Fatalf("expected owner ayse, got %q", owner)
	}

	if _, err := v.Verify(context.Background(), "nope"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for empty token, got %v", err)
	}
}

func TestGrantAndRevoke(t *testing.T) {
	v := NewStaticVerifier(nil)
	v.Grant("tok-2", "mehmet")

	if owner, err := v.Verify(context.Background(), "tok-2"); err != nil || owner != "mehmet" {
		t.Fatalf("expected mehmet, got %q err=%v", owner, err)
	}

	v.Revoke("tok-2")
	if _, err := v.Verify(context.Background(), "tok-2"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized after revoke, got %v", err)
	}
}

func TestAnonymousDefaultsOwner(t *testing.T) {
	owner, err := Anonymous{}.Verify(context.Background(), "anything")
	if err != nil || owner != "default" {
		t.Fatalf("expected default owner, got %q err=%v", owner, err)
	}
	owner, _ = Anonymous{Owner: "tek"}.Verify(context.Background(), "")
	if owner != "tek" {
		t.Fatalf("expected tek, got %q", owner)
	}
}
