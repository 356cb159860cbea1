package artifact

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

type stringBlob struct {
	s string
}

func (b *stringBlob) Save(w io.Writer) error {
	_, err := io.WriteString(w, b.s)
	return err
}

func (b *stringBlob) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	b.s = string(data)
	return nil
}

type failingBlob struct{}

func (failingBlob) Save(io.Writer) error { return fmt.Errorf("serialization broke") }

func testStore() *Store {
	return NewStore(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	store := testStore()
	path := filepath.Join(t.TempDir(), "nested", "blob.txt")

	if err := store.Save(path, &stringBlob{s: "hello"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got stringBlob
	if err := store.Load(path, &got); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.s != "hello" {
		t.Errorf("got %q", got.s)
	}
}

func TestStoreSaveFailureLeavesNothing(t *testing.T) {
	store := testStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.txt")

	if err := store.Save(path, failingBlob{}); err == nil {
		t.Fatal("expected error")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("failed save should leave no files, found %d", len(entries))
	}
}

func TestStoreLoadMissingFile(t *testing.T) {
	store := testStore()
	var got stringBlob
	if err := store.Load(filepath.Join(t.TempDir(), "nope"), &got); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestStoreWriteJSON(t *testing.T) {
	store := testStore()
	path := filepath.Join(t.TempDir(), "report.json")

	if err := store.WriteJSON(path, map[string]any{"ok": true}); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(data) == 0 {
		t.Error("report file is empty")
	}
}
