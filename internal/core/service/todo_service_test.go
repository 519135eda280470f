package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

const (
	ownerID    = "owner-1"
	strangerID = "stranger-2"
)

func newTodoService() (*TodoService, *stubTodoRepo, *stubTodoCache) {
	repo := newStubTodoRepo()
	cache := newStubTodoCache()
	return NewTodoService(repo, cache, zerolog.Nop()), repo, cache
}

func TestTodoService_ListMine_EmptyPopulatesCache(t *testing.T) {
	svc, _, cache := newTodoService()

	todos, err := svc.ListMine(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if todos == nil || len(todos) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", todos)
	}
	if _, ok := cache.entries[ownerID]; !ok {
		t.Fatalf("cache not populated for empty list")
	}
}

func TestTodoService_CreateThenColdRead(t *testing.T) {
	svc, _, cache := newTodoService()

	created, err := svc.Create(context.Background(), ownerID, "buy milk")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected server-assigned id")
	}
	if created.IsCompleted {
		t.Fatalf("new todo must default to not completed")
	}

	// Cache was absent during the write, so it must stay absent.
	if _, ok := cache.entries[ownerID]; ok {
		t.Fatalf("cache populated from a partial view")
	}

	todos, err := svc.ListMine(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != created.ID {
		t.Fatalf("created todo missing from cold read: %#v", todos)
	}
}

func TestTodoService_CacheHitSkipsStore(t *testing.T) {
	svc, repo, _ := newTodoService()

	if _, err := svc.Create(context.Background(), ownerID, "one"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ListMine(context.Background(), ownerID); err != nil {
		t.Fatalf("warm-up read failed: %v", err)
	}

	before := repo.listCalls
	if _, err := svc.ListMine(context.Background(), ownerID); err != nil {
		t.Fatalf("cached read failed: %v", err)
	}
	if repo.listCalls != before {
		t.Fatalf("cache hit still hit the store (%d -> %d)", before, repo.listCalls)
	}
}

func TestTodoService_Create_RepairsPresentEntry(t *testing.T) {
	svc, _, cache := newTodoService()

	if _, err := svc.Create(context.Background(), ownerID, "first"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ListMine(context.Background(), ownerID); err != nil {
		t.Fatalf("warm-up read failed: %v", err)
	}

	created, err := svc.Create(context.Background(), ownerID, "second")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	entry := cache.entries[ownerID]
	if len(entry) != 2 || entry[0].ID != created.ID {
		t.Fatalf("new todo not prepended to cache entry: %#v", entry)
	}
}

func TestTodoService_Update_CacheServesNewTitle(t *testing.T) {
	svc, repo, _ := newTodoService()

	created, err := svc.Create(context.Background(), ownerID, "old title")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ListMine(context.Background(), ownerID); err != nil {
		t.Fatalf("warm-up read failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), ownerID, created.ID, "new title"); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	before := repo.listCalls
	todos, err := svc.ListMine(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if repo.listCalls != before {
		t.Fatalf("read after update hit the store")
	}
	if todos[0].Title != "new title" {
		t.Fatalf("cache serves stale title: %q", todos[0].Title)
	}
}

func TestTodoService_MutationsByStrangerFail(t *testing.T) {
	svc, repo, _ := newTodoService()

	created, err := svc.Create(context.Background(), ownerID, "mine")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Update(context.Background(), strangerID, created.ID, "stolen"); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("update: expected ErrNotAuthorized, got %v", err)
	}
	if _, err := svc.ToggleCompleted(context.Background(), strangerID, created.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("toggle: expected ErrNotAuthorized, got %v", err)
	}
	if err := svc.Delete(context.Background(), strangerID, created.ID); !errors.Is(err, domain.ErrNotAuthorized) {
		t.Fatalf("delete: expected ErrNotAuthorized, got %v", err)
	}

	row, err := repo.FindByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("row lookup failed: %v", err)
	}
	if row.Title != "mine" || row.IsCompleted || row.UserID != ownerID {
		t.Fatalf("row changed by unauthorized mutation: %#v", row)
	}
}

func TestTodoService_MutateMissingTodo(t *testing.T) {
	svc, _, _ := newTodoService()

	if _, err := svc.Update(context.Background(), ownerID, "missing", "x"); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), ownerID, "missing"); !errors.Is(err, domain.ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", err)
	}
}

func TestTodoService_ToggleTwiceRestoresFlag(t *testing.T) {
	svc, _, _ := newTodoService()

	created, err := svc.Create(context.Background(), ownerID, "flip me")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	first, err := svc.ToggleCompleted(context.Background(), ownerID, created.ID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !first {
		t.Fatalf("expected first toggle to complete the todo")
	}

	second, err := svc.ToggleCompleted(context.Background(), ownerID, created.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if second != created.IsCompleted {
		t.Fatalf("double toggle did not restore original flag")
	}
}

func TestTodoService_DeleteFailureEvictsCache(t *testing.T) {
	svc, repo, cache := newTodoService()

	created, err := svc.Create(context.Background(), ownerID, "doomed")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.ListMine(context.Background(), ownerID); err != nil {
		t.Fatalf("warm-up read failed: %v", err)
	}

	repo.deleteErr = errors.New("store down")
	if err := svc.Delete(context.Background(), ownerID, created.ID); err == nil {
		t.Fatalf("expected delete to fail")
	}

	if _, ok := cache.entries[ownerID]; ok {
		t.Fatalf("cache entry survived a failed write")
	}
}

func TestTodoService_Delete_RemovesFromCache(t *testing.T) {
	svc, _, cache := newTodoService()

	keep, _ := svc.Create(context.Background(), ownerID, "keep")
	drop, _ := svc.Create(context.Background(), ownerID, "drop")
	if _, err := svc.ListMine(context.Background(), ownerID); err != nil {
		t.Fatalf("warm-up read failed: %v", err)
	}

	if err := svc.Delete(context.Background(), ownerID, drop.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	entry := cache.entries[ownerID]
	if len(entry) != 1 || entry[0].ID != keep.ID {
		t.Fatalf("cache entry not filtered: %#v", entry)
	}
}

func TestTodoService_CacheReadErrorFallsBack(t *testing.T) {
	svc, repo, cache := newTodoService()
	cache.getErr = errors.New("redis down")

	if _, err := svc.Create(context.Background(), ownerID, "resilient"); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	todos, err := svc.ListMine(context.Background(), ownerID)
	if err != nil {
		t.Fatalf("ListMine should fall back to the store: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("unexpected list: %#v", todos)
	}
	if repo.listCalls == 0 {
		t.Fatalf("store was not consulted")
	}
}
