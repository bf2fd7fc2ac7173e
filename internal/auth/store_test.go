package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/smarttodo/smarttodo/internal/model"
)

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "nested", "credentials.json"))

	cred, err := store.Load()
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if cred != nil {
		t.Fatalf("expected nil credential, got %#v", cred)
	}

	want := model.Credential{ID: "u1", Name: "Asha", Email: "asha@example.com", Token: "tok"}
	if err := store.Save(want); err != nil {
		t.Fatalf("save: %v", err)
	}

	cred, err = store.Load()
	if err != nil || cred == nil {
		t.Fatalf("load: cred=%v err=%v", cred, err)
	}
	if cred.ID != "u1" || cred.Email != "asha@example.com" {
		t.Fatalf("unexpected credential: %#v", cred)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	cred, err = store.Load()
	if err != nil || cred != nil {
		t.Fatalf("expected cleared store, cred=%v err=%v", cred, err)
	}
}

func TestTokenExpiry(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "u1",
		"exp": now.Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	exp, ok := TokenExpiry(signed)
	if !ok {
		t.Fatal("expected expiry claim")
	}
	if !exp.Equal(now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %v", exp)
	}
	if TokenExpired(signed, now) {
		t.Fatal("token should not be expired yet")
	}
	if !TokenExpired(signed, now.Add(2*time.Hour)) {
		t.Fatal("token should be expired")
	}

	// Guest sessions carry an opaque token.
	if TokenExpired("mock_token", now) {
		t.Fatal("opaque tokens never expire locally")
	}
}
