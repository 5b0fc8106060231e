package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/aliskhannn/wordroots-bot/internal/storage"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()

	path := filepath.Join(t.TempDir(), "data", "test.db")
	kv, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Fatalf("close sqlite: %v", err)
		}
	})
	return kv
}

func TestKVPutGet(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	if _, err := kv.Get(ctx, "progress:1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := kv.Put(ctx, "progress:1", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, "progress:1", []byte(`{"version":1,"level":2}`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	got, err := kv.Get(ctx, "progress:1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `{"version":1,"level":2}` {
		t.Fatalf("expected overwritten value, got %s", got)
	}
}

func TestKVListAndDelete(t *testing.T) {
	kv := openTestKV(t)
	ctx := context.Background()

	for _, key := range []string{"progress:2", "progress:1", "other:1"} {
		if err := kv.Put(ctx, key, []byte("x")); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}

	keys, err := kv.List(ctx, storage.ProgressPrefix)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "progress:1" || keys[1] != "progress:2" {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := kv.Delete(ctx, "progress:1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, "progress:1"); err != nil {
		t.Fatalf("delete missing key: %v", err)
	}

	keys, err = kv.List(ctx, storage.ProgressPrefix)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 1 || keys[0] != "progress:2" {
		t.Fatalf("unexpected keys after delete %v", keys)
	}
}

func TestKVPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "wordroots.db")

	kv, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := kv.Put(ctx, "progress:9", []byte("saved")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	kv, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv.Close()

	got, err := kv.Get(ctx, "progress:9")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "saved" {
		t.Fatalf("expected saved, got %s", got)
	}
}
