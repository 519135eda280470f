package service

import (
	"context"
	"time"

	"github.com/cognitodo/todo-system/internal/core/domain"
	"github.com/cognitodo/todo-system/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub user repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users     map[string]*domain.User // by id
	createErr error
	deleteErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateName(_ context.Context, id, name string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Name = name
	u.UpdatedAt = time.Now().UTC()
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateEmail(_ context.Context, id, email string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Email = email
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// WithTx mirrors the real repository's all-or-nothing behaviour: fn runs
// against a copy of the state, which replaces the original only on success.
func (r *stubUserRepo) WithTx(ctx context.Context, fn func(ctx context.Context, repo ports.UserRepository) error) error {
	staged := newStubUserRepo()
	for id, u := range r.users {
		staged.users[id] = cloneUser(u)
	}
	staged.createErr = r.createErr
	staged.deleteErr = r.deleteErr

	if err := fn(ctx, staged); err != nil {
		return err
	}
	r.users = staged.users
	return nil
}

// ---------------------------------------------------------------------------
// Stub identity provider
// ---------------------------------------------------------------------------

type stubIdentity struct {
	passwords map[string]string // username -> password
	signUps   int
	deletes   int
	emails    map[string]string // username -> email attribute

	signUpErr      error
	updateEmailErr error
	changePwErr    error
	deleteErr      error
	expiresIn      time.Duration
}

func newStubIdentity() *stubIdentity {
	return &stubIdentity{
		passwords: make(map[string]string),
		emails:    make(map[string]string),
		expiresIn: time.Hour,
	}
}

func (i *stubIdentity) SignUp(_ context.Context, username, password, email string) error {
	if i.signUpErr != nil {
		return i.signUpErr
	}
	i.signUps++
	i.passwords[username] = password
	i.emails[username] = email
	return nil
}

func (i *stubIdentity) Authenticate(_ context.Context, username, password string) (*domain.Session, error) {
	stored, ok := i.passwords[username]
	if !ok || stored != password {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Session{
		Token:        "id-token-" + username,
		AccessToken:  "access-token-" + username,
		RefreshToken: "refresh-token-" + username,
		ExpiresIn:    i.expiresIn,
	}, nil
}

func (i *stubIdentity) RefreshSession(_ context.Context, username, refreshToken string) (*domain.Session, error) {
	if refreshToken != "refresh-token-"+username {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Session{Token: "id-token-2-" + username, ExpiresIn: i.expiresIn}, nil
}

func (i *stubIdentity) UpdateEmail(_ context.Context, accessToken, email string) error {
	if i.updateEmailErr != nil {
		return i.updateEmailErr
	}
	return nil
}

func (i *stubIdentity) ChangePassword(_ context.Context, accessToken, currentPassword, newPassword string) error {
	if i.changePwErr != nil {
		return i.changePwErr
	}
	for username, pw := range i.passwords {
		if pw == currentPassword && accessToken == "access-token-"+username {
			i.passwords[username] = newPassword
			return nil
		}
	}
	return domain.ErrInvalidCredentials
}

func (i *stubIdentity) DeleteUser(_ context.Context, accessToken string) error {
	if i.deleteErr != nil {
		return i.deleteErr
	}
	i.deletes++
	return nil
}

// ---------------------------------------------------------------------------
// In-memory stub todo repository
// ---------------------------------------------------------------------------

type stubTodoRepo struct {
	todos     map[string]*domain.Todo
	listCalls int
	createErr error
	updateErr error
	deleteErr error
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[string]*domain.Todo)}
}

func cloneTodo(t *domain.Todo) *domain.Todo {
	clone := *t
	return &clone
}

func (r *stubTodoRepo) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.todos[todo.ID] = cloneTodo(todo)
	return cloneTodo(todo), nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id string) (*domain.Todo, error) {
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return cloneTodo(t), nil
}

func (r *stubTodoRepo) ListByOwner(_ context.Context, userID string) ([]domain.Todo, error) {
	r.listCalls++
	var out []domain.Todo
	for _, t := range r.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	// newest first, matching the real query's created_at DESC ordering
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (r *stubTodoRepo) UpdateTitle(_ context.Context, id, title string) (*domain.Todo, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	t.Title = title
	t.UpdatedAt = time.Now().UTC()
	return cloneTodo(t), nil
}

func (r *stubTodoRepo) SetCompleted(_ context.Context, id string, completed bool) (*domain.Todo, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	t.IsCompleted = completed
	t.UpdatedAt = time.Now().UTC()
	return cloneTodo(t), nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

// ---------------------------------------------------------------------------
// Stub todo cache
// ---------------------------------------------------------------------------

type stubTodoCache struct {
	entries map[string][]domain.Todo
	sets    int
	evicts  int
	getErr  error
}

func newStubTodoCache() *stubTodoCache {
	return &stubTodoCache{entries: make(map[string][]domain.Todo)}
}

func (c *stubTodoCache) Get(_ context.Context, userID string) ([]domain.Todo, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	todos, ok := c.entries[userID]
	if !ok {
		return nil, false, nil
	}
	out := make([]domain.Todo, len(todos))
	copy(out, todos)
	return out, true, nil
}

func (c *stubTodoCache) Set(_ context.Context, userID string, todos []domain.Todo) error {
	c.sets++
	stored := make([]domain.Todo, len(todos))
	copy(stored, todos)
	c.entries[userID] = stored
	return nil
}

func (c *stubTodoCache) Evict(_ context.Context, userID string) error {
	c.evicts++
	delete(c.entries, userID)
	return nil
}
