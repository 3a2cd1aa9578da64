package storage

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/trilhadev/course-viewer-backend/internal/apperr"
)

func newTestUserStore(t *testing.T) (*UserStore, string) {
	t.Helper()
	dir := t.TempDir()
	return NewUserStore(dir, zap.NewNop().Sugar()), dir
}

func TestUserStore_SeedsOnFirstAccess(t *testing.T) {
	store, _ := newTestUserStore(t)

	users, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 seeded users, got %d", len(users))
	}
	for _, u := range users {
		if len(u.WatchedLessons) != 0 {
			t.Fatalf("seeded users start with nothing watched: %+v", u)
		}
	}
}

func TestUserStore_FindByEmailIgnoresCase(t *testing.T) {
	store, _ := newTestUserStore(t)

	user, err := store.FindByEmail("ANA@Example.COM")
	if err != nil {
		t.Fatalf("FindByEmail failed: %v", err)
	}
	if user.ID != "1" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := store.FindByEmail("nobody@example.com"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserStore_MarkWatchedIsIdempotent(t *testing.T) {
	store, _ := newTestUserStore(t)

	for i := 0; i < 2; i++ {
		if err := store.MarkWatched("1", "c1", "a1"); err != nil {
			t.Fatalf("MarkWatched #%d failed: %v", i+1, err)
		}
	}

	watched, err := store.ListWatched("1")
	if err != nil {
		t.Fatalf("ListWatched failed: %v", err)
	}
	if len(watched) != 1 {
		t.Fatalf("marking twice must not duplicate, got %d entries", len(watched))
	}
}

func TestUserStore_MarkUnwatched(t *testing.T) {
	store, _ := newTestUserStore(t)

	if err := store.MarkWatched("1", "c1", "a1"); err != nil {
		t.Fatalf("MarkWatched failed: %v", err)
	}
	if err := store.MarkUnwatched("1", "c1", "a1"); err != nil {
		t.Fatalf("MarkUnwatched failed: %v", err)
	}

	ok, err := store.IsWatched("1", "c1", "a1")
	if err != nil {
		t.Fatalf("IsWatched failed: %v", err)
	}
	if ok {
		t.Fatalf("lesson should be unwatched")
	}

	// unmarking something never watched is a no-op
	if err := store.MarkUnwatched("1", "c9", "a9"); err != nil {
		t.Fatalf("MarkUnwatched on absent pair should be a no-op, got %v", err)
	}
}

func TestUserStore_UnknownUser(t *testing.T) {
	store, _ := newTestUserStore(t)

	if err := store.MarkWatched("999", "c1", "a1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
	if err := store.MarkUnwatched("999", "c1", "a1"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
	if _, err := store.ListWatched("999"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestUserStore_WatchedSurvivesReload(t *testing.T) {
	store, dir := newTestUserStore(t)

	if err := store.MarkWatched("1", "c1", "a1"); err != nil {
		t.Fatalf("MarkWatched failed: %v", err)
	}

	// a fresh store over the same directory sees the same state
	reloaded := NewUserStore(dir, zap.NewNop().Sugar())
	ok, err := reloaded.IsWatched("1", "c1", "a1")
	if err != nil {
		t.Fatalf("IsWatched failed: %v", err)
	}
	if !ok {
		t.Fatalf("watched state must survive a reload from disk")
	}
}
