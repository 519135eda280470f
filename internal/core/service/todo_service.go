package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cognitodo/todo-system/internal/api/metrics"
	"github.com/cognitodo/todo-system/internal/core/domain"
	"github.com/cognitodo/todo-system/internal/core/ports"
)

// TodoService implements ownership-checked CRUD with a cache-aside layer.
// Writes hit the store first; on success a present cache entry is repaired
// in memory, on failure any entry is evicted before the error is returned so
// the cache never outlives a write whose outcome is unknown.
type TodoService struct {
	repo  ports.TodoRepository
	cache ports.TodoCache
	log   zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, cache ports.TodoCache, log zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, cache: cache, log: log}
}

// ListMine serves the caller's list from cache when present, otherwise reads
// the store and populates the cache. Cache errors degrade to a store read.
func (s *TodoService) ListMine(ctx context.Context, userID string) ([]domain.Todo, error) {
	if cached, ok, err := s.cache.Get(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cache read failed, falling back to store")
	} else if ok {
		metrics.TodoCacheTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}

	metrics.TodoCacheTotal.WithLabelValues("miss").Inc()

	todos, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	if todos == nil {
		todos = []domain.Todo{}
	}

	s.storeInCache(ctx, userID, todos)
	return todos, nil
}

func (s *TodoService) Create(ctx context.Context, userID, title string) (*domain.Todo, error) {
	now := time.Now().UTC()
	todo := &domain.Todo{
		ID:        uuid.NewString(),
		Title:     title,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, todo)
	if err != nil {
		s.evict(ctx, userID)
		return nil, fmt.Errorf("create todo: %w", err)
	}

	metrics.TodosCreatedTotal.Inc()
	s.repairCache(ctx, userID, "create", func(cached []domain.Todo) []domain.Todo {
		return append([]domain.Todo{*created}, cached...)
	})

	s.log.Info().Str("todo_id", created.ID).Str("user_id", userID).Msg("todo created")
	return created, nil
}

func (s *TodoService) Update(ctx context.Context, userID, todoID, title string) (*domain.Todo, error) {
	if _, err := s.getOwned(ctx, userID, todoID); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateTitle(ctx, todoID, title)
	if err != nil {
		s.evict(ctx, userID)
		return nil, fmt.Errorf("update todo: %w", err)
	}

	s.repairCache(ctx, userID, "update", func(cached []domain.Todo) []domain.Todo {
		return replaceByID(cached, *updated)
	})
	return updated, nil
}

// ToggleCompleted flips the completion flag and returns the new value.
// Toggling twice restores the original flag.
func (s *TodoService) ToggleCompleted(ctx context.Context, userID, todoID string) (bool, error) {
	todo, err := s.getOwned(ctx, userID, todoID)
	if err != nil {
		return false, err
	}

	updated, err := s.repo.SetCompleted(ctx, todoID, !todo.IsCompleted)
	if err != nil {
		s.evict(ctx, userID)
		return false, fmt.Errorf("toggle todo: %w", err)
	}

	s.repairCache(ctx, userID, "toggle", func(cached []domain.Todo) []domain.Todo {
		return replaceByID(cached, *updated)
	})
	return updated.IsCompleted, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, todoID string) error {
	if _, err := s.getOwned(ctx, userID, todoID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, todoID); err != nil {
		s.evict(ctx, userID)
		return fmt.Errorf("delete todo: %w", err)
	}

	s.repairCache(ctx, userID, "delete", func(cached []domain.Todo) []domain.Todo {
		kept := make([]domain.Todo, 0, len(cached))
		for _, t := range cached {
			if t.ID != todoID {
				kept = append(kept, t)
			}
		}
		return kept
	})
	return nil
}

// getOwned loads the row and verifies ownership. Ownership never changes
// after creation, so the check-then-act gap carries no race in practice.
func (s *TodoService) getOwned(ctx context.Context, userID, todoID string) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, domain.ErrNotAuthorized
	}
	return todo, nil
}

// repairCache applies transform to a present entry and re-stores it with a
// refreshed TTL. An absent entry stays absent: a single write is not enough
// to reconstruct the full list.
func (s *TodoService) repairCache(ctx context.Context, userID, op string, transform func([]domain.Todo) []domain.Todo) {
	cached, ok, err := s.cache.Get(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cache read failed during repair, evicting")
		s.evict(ctx, userID)
		return
	}
	if !ok {
		return
	}

	s.storeInCache(ctx, userID, transform(cached))
	metrics.TodoCacheRepairsTotal.WithLabelValues(op).Inc()
}

func (s *TodoService) storeInCache(ctx context.Context, userID string, todos []domain.Todo) {
	if err := s.cache.Set(ctx, userID, todos); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cache write failed")
	}
}

func (s *TodoService) evict(ctx context.Context, userID string) {
	if err := s.cache.Evict(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("cache eviction failed")
	}
}

func replaceByID(todos []domain.Todo, updated domain.Todo) []domain.Todo {
	out := make([]domain.Todo, len(todos))
	for i, t := range todos {
		if t.ID == updated.ID {
			out[i] = updated
		} else {
			out[i] = t
		}
	}
	return out
}
