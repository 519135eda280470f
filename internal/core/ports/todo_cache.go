package ports

import (
	"context"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

// TodoCache is the per-user read cache for todo lists. An entry, when
// present, must reflect the latest persisted state the service has seen;
// the TTL applied by Set bounds staleness if repair logic ever has a gap.
type TodoCache interface {
	// Get returns the cached list and whether an entry was present.
	Get(ctx context.Context, userID string) ([]domain.Todo, bool, error)
	// Set stores the full list under the user's key with a fresh TTL.
	Set(ctx context.Context, userID string, todos []domain.Todo) error
	// Evict removes the user's entry. Evicting an absent entry is a no-op.
	Evict(ctx context.Context, userID string) error
}
