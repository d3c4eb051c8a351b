package authstore

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/rauncher/rauncher/internal/auth"
)

func sampleToken() *auth.Token {
	return &auth.Token{
		AccessToken:  "access-abc",
		RefreshToken: "refresh-def",
		ExpiresAt:    time.Date(2026, 9, 1, 12, 30, 45, 123456789, time.UTC),
		AccountID:    "acct-123",
	}
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "rauncher", "auth.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return store
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore(""); err == nil {
		t.Error("NewFileStore(\"\") = nil error, want error")
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	want := sampleToken()
	if err := store.Save(t.Context(), want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got == nil {
		t.Fatal("Load returned nil token after Save")
	}

	if got.AccessToken != want.AccessToken {
		t.Errorf("AccessToken = %q, want %q", got.AccessToken, want.AccessToken)
	}
	if got.RefreshToken != want.RefreshToken {
		t.Errorf("RefreshToken = %q, want %q", got.RefreshToken, want.RefreshToken)
	}
	if got.AccountID != want.AccountID {
		t.Errorf("AccountID = %q, want %q", got.AccountID, want.AccountID)
	}
	// Timestamp round-trips at full precision, including sub-second digits
	if !got.ExpiresAt.Equal(want.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, want.ExpiresAt)
	}
}

func TestFileStoreLoadAbsent(t *testing.T) {
	store := newTestFileStore(t)

	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("Load on empty store: %v", err)
	}
	if got != nil {
		t.Errorf("Load on empty store = %+v, want nil", got)
	}
}

func TestFileStoreLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "auth.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	// A present-but-invalid file is a hard failure, not "no credential":
	// silently discarding it would hide data loss.
	if _, err := store.Load(t.Context()); err == nil {
		t.Error("Load on corrupt file = nil error, want error")
	}
}

func TestFileStoreDeleteIdempotent(t *testing.T) {
	store := newTestFileStore(t)

	// Delete on an empty store succeeds
	if err := store.Delete(t.Context()); err != nil {
		t.Fatalf("Delete on empty store: %v", err)
	}

	if err := store.Save(t.Context(), sampleToken()); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(t.Context()); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("Load after Delete: %v", err)
	}
	if got != nil {
		t.Errorf("Load after Delete = %+v, want nil", got)
	}

	if err := store.Delete(t.Context()); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFileStoreSaveReplacesPrevious(t *testing.T) {
	store := newTestFileStore(t)

	first := sampleToken()
	if err := store.Save(t.Context(), first); err != nil {
		t.Fatalf("Save: %v", err)
	}

	second := sampleToken()
	second.AccessToken = "access-replaced"
	if err := store.Save(t.Context(), second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, err := store.Load(t.Context())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.AccessToken != "access-replaced" {
		t.Errorf("AccessToken = %q, want %q", got.AccessToken, "access-replaced")
	}
}

func TestFileStorePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permission bits not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "auth.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if err := store.Save(t.Context(), sampleToken()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("credential file permissions = %04o, want 0600", perm)
	}
}
