package auth

import (
	"errors"
	"testing"
)

func TestAuthorize_CorrectKey(t *testing.T) {
	g := NewGate("secret-key")
	if err := g.Authorize("secret-key"); err != nil {
		t.Fatalf("correct key should be admitted: %v", err)
	}
}

func TestAuthorize_WrongKey(t *testing.T) {
	g := NewGate("secret-key")
	if err := g.Authorize("wrong-key"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestAuthorize_AbsentKey(t *testing.T) {
	g := NewGate("secret-key")
	if err := g.Authorize(""); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("absent key should be rejected, got %v", err)
	}
}

func TestAuthorize_EmptySecretRejectsEverything(t *testing.T) {
	g := NewGate("")
	if err := g.Authorize(""); !errors.Is(err, ErrInvalidKey) {
		t.Fatal("empty secret must not admit empty key")
	}
	if err := g.Authorize("anything"); !errors.Is(err, ErrInvalidKey) {
		t.Fatal("empty secret must not admit any key")
	}
}
