package syncer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"taskkeep/internal/board"
	"taskkeep/internal/cache"
	"taskkeep/internal/service"
	"taskkeep/internal/taskerr"
	"taskkeep/internal/testutil"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func openTestStore(t *testing.T) *cache.Store {
	t.Helper()
	s, err := cache.Open(filepath.Join(t.TempDir(), "taskkeep.db"))
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRefreshPopulatesBoardAndCache(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddList("work", "Work")
	fake.AddTask(testutil.DefaultListID, service.Task{ID: "t1", Title: "Home thing"})
	fake.AddTask("work", service.Task{ID: "t2", Title: "Work thing"})
	fake.AddTask("work", service.Task{ID: "t3", Title: "Subtask", Parent: "t2"})

	store := openTestStore(t)
	b := board.New()
	c := New(fake, store, b, testLogger())

	stats, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if stats.Lists != 2 || stats.Tasks != 3 {
		t.Errorf("stats = %+v, want 2 lists, 3 tasks", stats)
	}

	if got := len(b.Tasks()); got != 3 {
		t.Errorf("board has %d tasks, want 3", got)
	}
	if listID, ok := b.ListFor("t2"); !ok || listID != "work" {
		t.Errorf("ListFor(t2) = %q, %v; want work, true", listID, ok)
	}

	ctx := context.Background()
	cachedTasks, err := store.GetAllTasks(ctx)
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(cachedTasks) != 3 {
		t.Errorf("cache has %d tasks, want 3", len(cachedTasks))
	}
	m, err := store.GetMembership(ctx)
	if err != nil {
		t.Fatalf("GetMembership: %v", err)
	}
	if m["t1"] != testutil.DefaultListID || m["t3"] != "work" {
		t.Errorf("membership = %v", m)
	}
}

func TestRefreshFailureLeavesSnapshotUntouched(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddList("work", "Work")
	fake.AddTask(testutil.DefaultListID, service.Task{ID: "t1", Title: "Old"})

	store := openTestStore(t)
	b := board.New()
	c := New(fake, store, b, testLogger())

	// Seed a good snapshot first.
	if _, err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("seed Refresh: %v", err)
	}

	// Second refresh fails fetching one list.
	fake.AddTask("work", service.Task{ID: "t2", Title: "New"})
	fake.ListTasksErr["work"] = errors.New("boom")

	_, err := c.Refresh(context.Background())
	if err == nil {
		t.Fatal("Refresh succeeded, want error")
	}
	var syncErr *taskerr.SyncError
	if !errors.As(err, &syncErr) {
		t.Errorf("err = %T %v, want *taskerr.SyncError", err, err)
	}

	// Board and cache still hold the previous snapshot.
	if got := len(b.Tasks()); got != 1 {
		t.Errorf("board has %d tasks after failed refresh, want 1", got)
	}
	cached, err := store.GetAllTasks(context.Background())
	if err != nil {
		t.Fatalf("GetAllTasks: %v", err)
	}
	if len(cached) != 1 || cached[0].ID != "t1" {
		t.Errorf("cache = %+v after failed refresh, want the old snapshot", cached)
	}
}

func TestRefreshListListsFailure(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.ListListsErr = &taskerr.RemoteError{Status: 503, Message: "unavailable"}

	c := New(fake, nil, board.New(), testLogger())

	_, err := c.Refresh(context.Background())
	var syncErr *taskerr.SyncError
	if !errors.As(err, &syncErr) {
		t.Fatalf("err = %T %v, want *taskerr.SyncError", err, err)
	}
	var remoteErr *taskerr.RemoteError
	if !errors.As(err, &remoteErr) || remoteErr.Status != 503 {
		t.Errorf("cause = %v, want wrapped RemoteError 503", err)
	}
}

func TestRefreshRejectsConcurrentSync(t *testing.T) {
	fake := testutil.NewFakeService()
	c := New(fake, nil, board.New(), testLogger())

	c.inFlight.Store(true)
	_, err := c.Refresh(context.Background())
	if !errors.Is(err, taskerr.ErrSyncInFlight) {
		t.Errorf("err = %v, want ErrSyncInFlight", err)
	}

	c.inFlight.Store(false)
	if _, err := c.Refresh(context.Background()); err != nil {
		t.Errorf("Refresh after release: %v", err)
	}
}

func TestRefreshWithoutStore(t *testing.T) {
	fake := testutil.NewFakeService()
	fake.AddTask(testutil.DefaultListID, service.Task{ID: "t1", Title: "Network only"})

	b := board.New()
	c := New(fake, nil, b, testLogger())

	stats, err := c.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if stats.Tasks != 1 || len(b.Tasks()) != 1 {
		t.Errorf("stats = %+v, board tasks = %d", stats, len(b.Tasks()))
	}
}

func TestLoadReadsCachedSnapshot(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	if err := store.PutTasks(ctx, []service.Task{{ID: "t1", Title: "Cached"}}); err != nil {
		t.Fatalf("PutTasks: %v", err)
	}
	if err := store.PutTaskLists(ctx, []service.TaskList{{ID: "l1", Title: "List"}}); err != nil {
		t.Fatalf("PutTaskLists: %v", err)
	}
	if err := store.PutMembership(ctx, map[string]string{"t1": "l1"}); err != nil {
		t.Fatalf("PutMembership: %v", err)
	}

	b := board.New()
	c := New(testutil.NewFakeService(), store, b, testLogger())
	if err := c.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := len(b.Tasks()); got != 1 {
		t.Errorf("board has %d tasks, want 1", got)
	}
	if listID, ok := b.ListFor("t1"); !ok || listID != "l1" {
		t.Errorf("ListFor(t1) = %q, %v", listID, ok)
	}
}

func TestLoadWithoutStoreIsNoop(t *testing.T) {
	c := New(testutil.NewFakeService(), nil, board.New(), testLogger())
	if err := c.Load(context.Background()); err != nil {
		t.Errorf("Load: %v", err)
	}
}
