package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aliskhannn/wordroots-bot/internal/domain/entities"
)

func TestMemoryBackend(t *testing.T) {
	ctx := context.Background()
	b := NewMemoryBackend()

	if _, err := b.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	value := []byte("one")
	if err := b.Put(ctx, ProgressKey(2), value); err != nil {
		t.Fatalf("put: %v", err)
	}
	value[0] = 'X'

	got, err := b.Get(ctx, ProgressKey(2))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "one" {
		t.Fatalf("expected stored copy %q, got %q", "one", got)
	}

	if err := b.Put(ctx, ProgressKey(1), []byte("two")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := b.Put(ctx, "other:1", []byte("x")); err != nil {
		t.Fatalf("put: %v", err)
	}

	keys, err := b.List(ctx, ProgressPrefix)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 || keys[0] != "progress:1" || keys[1] != "progress:2" {
		t.Fatalf("unexpected keys %v", keys)
	}

	if err := b.Delete(ctx, ProgressKey(1)); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := b.Get(ctx, ProgressKey(1)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestParseProgressKey(t *testing.T) {
	id, ok := ParseProgressKey(ProgressKey(12345))
	if !ok || id != 12345 {
		t.Fatalf("expected 12345, got %d %v", id, ok)
	}

	for _, key := range []string{"progress:", "progress:abc", "user:1"} {
		if _, ok := ParseProgressKey(key); ok {
			t.Fatalf("expected %q to be rejected", key)
		}
	}
}

func TestQuizStorage(t *testing.T) {
	s := NewQuizStorage()

	session := entities.NewQuizSession("abc", 7, entities.ModeLearn, nil)
	s.Store(session)

	if _, ok := s.GetByID(7, "stale"); ok {
		t.Fatalf("expected stale session id to be rejected")
	}
	got, ok := s.GetByID(7, "abc")
	if !ok || got.ID != "abc" {
		t.Fatalf("expected session abc, got %+v %v", got, ok)
	}

	s.Delete(7)
	if _, ok := s.Get(7); ok {
		t.Fatalf("expected session to be deleted")
	}
}

func TestReminderStorage(t *testing.T) {
	s := NewReminderStorage()
	now := time.Now()

	if _, had := s.UpsertAndGetPrev(1, 1, 10, now); had {
		t.Fatalf("expected no previous reminder")
	}

	prev, had := s.UpsertAndGetPrev(1, 1, 11, now.Add(time.Hour))
	if !had || prev.MessageID != 10 {
		t.Fatalf("expected previous message 10, got %+v %v", prev, had)
	}

	if msg, ok := s.Get(1); !ok || msg.MessageID != 11 {
		t.Fatalf("expected latest message 11, got %+v %v", msg, ok)
	}

	s.Delete(1)
	if _, ok := s.Get(1); ok {
		t.Fatalf("expected reminder to be deleted")
	}
}
