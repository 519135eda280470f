// Package todos manages the client-side todo list with optimistic mutations:
// the local list changes immediately with a synthesized result, the server
// request runs afterwards, and the authoritative row is spliced in on
// success or the previous state restored on failure.
package todos

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/cognitodo/todo-system/internal/client/store"
	"github.com/cognitodo/todo-system/internal/core/domain"
)

// resourceKey is the logical name of the todo list in the client store.
const resourceKey = "todos"

// API is the server surface the list needs. Implemented by api.Client.
type API interface {
	ListTodos(ctx context.Context) ([]domain.Todo, error)
	CreateTodo(ctx context.Context, title string) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, id, title string) (*domain.Todo, error)
	ToggleTodo(ctx context.Context, id string) (bool, error)
	DeleteTodo(ctx context.Context, id string) error
}

// List is the optimistic view over the user's todos. Writes apply locally
// before the server answers; overlapping writes resolve last-wins, which
// matches what the server ends up holding.
type List struct {
	mu         sync.Mutex
	api        API
	store      *store.Store[[]domain.Todo]
	cancelRead context.CancelFunc
	readGen    uint64
}

// NewList creates a List reading and writing the given store.
func NewList(api API, st *store.Store[[]domain.Todo]) *List {
	return &List{api: api, store: st}
}

// Current returns the locally known list, whether one is loaded, and whether
// it is stale.
func (l *List) Current() ([]domain.Todo, bool, bool) {
	return l.store.Get(resourceKey)
}

// Subscribe delivers every list change until cancel is called.
func (l *List) Subscribe() (<-chan []domain.Todo, func()) {
	return l.store.Subscribe(resourceKey)
}

// Refresh fetches the authoritative list. A write issued while the fetch is
// in flight cancels it; the optimistic state wins until the next Refresh.
func (l *List) Refresh(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// The generation ties the stored cancel func to this call; a later
	// Refresh replaces both, and this one must not touch its successor's.
	l.mu.Lock()
	l.readGen++
	gen := l.readGen
	l.cancelRead = cancel
	l.mu.Unlock()

	todos, err := l.api.ListTodos(ctx)

	l.mu.Lock()
	if l.readGen == gen {
		l.cancelRead = nil
	}
	l.mu.Unlock()

	if err != nil {
		return err
	}
	l.store.Set(resourceKey, todos)
	return nil
}

// Create prepends a placeholder row immediately, then swaps in the server's
// row once it exists. On failure the pre-mutation list is restored and the
// server error surfaced.
func (l *List) Create(ctx context.Context, title string) (*domain.Todo, error) {
	placeholder := domain.Todo{ID: uuid.NewString(), Title: title}
	snapshot := l.beginWrite(func(current []domain.Todo) []domain.Todo {
		return append([]domain.Todo{placeholder}, current...)
	})

	created, err := l.api.CreateTodo(ctx, title)
	if err != nil {
		l.store.Set(resourceKey, snapshot)
		return nil, err
	}

	l.resolveWrite(func(current []domain.Todo) []domain.Todo {
		return replaceByID(current, placeholder.ID, *created)
	})
	return created, nil
}

// UpdateTitle rewrites the title locally, then splices the server row in.
func (l *List) UpdateTitle(ctx context.Context, id, title string) (*domain.Todo, error) {
	snapshot := l.beginWrite(func(current []domain.Todo) []domain.Todo {
		return mapByID(current, id, func(t domain.Todo) domain.Todo {
			t.Title = title
			return t
		})
	})

	updated, err := l.api.UpdateTodo(ctx, id, title)
	if err != nil {
		l.store.Set(resourceKey, snapshot)
		return nil, err
	}

	l.resolveWrite(func(current []domain.Todo) []domain.Todo {
		return replaceByID(current, id, *updated)
	})
	return updated, nil
}

// Toggle flips the completion flag locally, then reconciles with the
// server's answer.
func (l *List) Toggle(ctx context.Context, id string) error {
	snapshot := l.beginWrite(func(current []domain.Todo) []domain.Todo {
		return mapByID(current, id, func(t domain.Todo) domain.Todo {
			t.IsCompleted = !t.IsCompleted
			return t
		})
	})

	completed, err := l.api.ToggleTodo(ctx, id)
	if err != nil {
		l.store.Set(resourceKey, snapshot)
		return err
	}

	l.resolveWrite(func(current []domain.Todo) []domain.Todo {
		return mapByID(current, id, func(t domain.Todo) domain.Todo {
			t.IsCompleted = completed
			return t
		})
	})
	return nil
}

// Delete removes the row locally, then confirms with the server.
func (l *List) Delete(ctx context.Context, id string) error {
	snapshot := l.beginWrite(func(current []domain.Todo) []domain.Todo {
		filtered := make([]domain.Todo, 0, len(current))
		for _, t := range current {
			if t.ID != id {
				filtered = append(filtered, t)
			}
		}
		return filtered
	})

	if err := l.api.DeleteTodo(ctx, id); err != nil {
		l.store.Set(resourceKey, snapshot)
		return err
	}
	return nil
}

// beginWrite cancels any in-flight read, applies the optimistic transform
// and returns the pre-mutation snapshot for rollback.
func (l *List) beginWrite(transform func([]domain.Todo) []domain.Todo) []domain.Todo {
	l.mu.Lock()
	if l.cancelRead != nil {
		l.cancelRead()
		l.cancelRead = nil
	}
	l.mu.Unlock()

	snapshot, _, _ := l.store.Get(resourceKey)
	l.store.Set(resourceKey, transform(cloneList(snapshot)))
	return snapshot
}

// resolveWrite applies the authoritative result over whatever the list holds
// now, so overlapping writes settle on the last resolution.
func (l *List) resolveWrite(transform func([]domain.Todo) []domain.Todo) {
	current, _, _ := l.store.Get(resourceKey)
	l.store.Set(resourceKey, transform(cloneList(current)))
}

func cloneList(todos []domain.Todo) []domain.Todo {
	return append([]domain.Todo(nil), todos...)
}

func replaceByID(todos []domain.Todo, id string, replacement domain.Todo) []domain.Todo {
	for i, t := range todos {
		if t.ID == id {
			todos[i] = replacement
		}
	}
	return todos
}

func mapByID(todos []domain.Todo, id string, fn func(domain.Todo) domain.Todo) []domain.Todo {
	for i, t := range todos {
		if t.ID == id {
			todos[i] = fn(t)
		}
	}
	return todos
}
