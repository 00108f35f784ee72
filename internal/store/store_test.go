package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "library.sqlite"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testScript(id, content string) Script {
	return Script{
		ID:          id,
		Filename:    id + ".fountain",
		Title:       "Script " + id,
		Pages:       12,
		Elements:    80,
		Scenes:      9,
		Words:       1500,
		ContentHash: HashContent([]byte(content)),
		ReportMD:    "# Script " + id,
	}
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	saved, err := s.Save(ctx, testScript("a1", "INT. ROOM - DAY"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set on save")
	}

	got, err := s.Get(ctx, "a1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Script a1" || got.Pages != 12 || got.ReportMD != "# Script a1" {
		t.Errorf("unexpected script: %+v", got)
	}
}

func TestGet_NotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSave_DeduplicatesByContentHash(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Save(ctx, testScript("a1", "same content"))
	if err != nil {
		t.Fatalf("save first: %v", err)
	}
	second, err := s.Save(ctx, testScript("a2", "same content"))
	if err != nil {
		t.Fatalf("save duplicate: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected duplicate save to return existing ID %q, got %q", first.ID, second.ID)
	}

	scripts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scripts) != 1 {
		t.Errorf("expected 1 script after duplicate save, got %d", len(scripts))
	}
}

func TestSave_ConcurrentDuplicatesConverge(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	const savers = 8
	ids := make(chan string, savers)
	errs := make(chan error, savers)

	var wg sync.WaitGroup
	for i := range savers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			saved, err := s.Save(ctx, testScript(fmt.Sprintf("a%d", i), "same content"))
			if err != nil {
				errs <- err
				return
			}
			ids <- saved.ID
		}(i)
	}
	wg.Wait()
	close(ids)
	close(errs)

	for err := range errs {
		t.Errorf("concurrent save failed: %v", err)
	}
	first := ""
	for id := range ids {
		if first == "" {
			first = id
		} else if id != first {
			t.Errorf("concurrent saves returned different IDs: %q and %q", first, id)
		}
	}

	scripts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scripts) != 1 {
		t.Errorf("expected 1 script after concurrent duplicate saves, got %d", len(scripts))
	}
}

func TestList_NewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := testScript("a1", "one")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	if _, err := s.Save(ctx, older); err != nil {
		t.Fatalf("save older: %v", err)
	}
	if _, err := s.Save(ctx, testScript("a2", "two")); err != nil {
		t.Fatalf("save newer: %v", err)
	}

	scripts, err := s.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(scripts) != 2 {
		t.Fatalf("expected 2 scripts, got %d", len(scripts))
	}
	if scripts[0].ID != "a2" || scripts[1].ID != "a1" {
		t.Errorf("expected newest first, got %q then %q", scripts[0].ID, scripts[1].ID)
	}
	if scripts[0].ReportMD != "" {
		t.Error("expected List to omit report bodies")
	}
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.Save(ctx, testScript("a1", "one")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Delete(ctx, "a1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "a1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Delete(ctx, "a1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if empty.Scripts != 0 || empty.TotalPages != 0 {
		t.Errorf("expected zero stats, got %+v", empty)
	}

	if _, err := s.Save(ctx, testScript("a1", "one")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := s.Save(ctx, testScript("a2", "two")); err != nil {
		t.Fatalf("save: %v", err)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Scripts != 2 || st.TotalPages != 24 || st.TotalWords != 3000 {
		t.Errorf("unexpected stats: %+v", st)
	}
}
