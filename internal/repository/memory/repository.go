package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/repository"
)

var _ repository.TodoStore = (*Repository)(nil)

// Repository keeps todos in a map. Used when no DATABASE_URL is configured
// and in tests.
type Repository struct {
	mu     sync.RWMutex
	todos  map[int64]domain.Todo
	lastID int64
}

func NewRepository() *Repository {
	return &Repository{todos: make(map[int64]domain.Todo)}
}

func (r *Repository) Create(ctx context.Context, t *domain.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// ids are never reused, even after delete
	r.lastID++
	t.ID = r.lastID
	r.todos[t.ID] = *t
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	return &t, nil
}

func (r *Repository) List(ctx context.Context, f domain.TodoFilter) ([]*domain.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]int64, 0, len(r.todos))
	for id := range r.todos {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	res := make([]*domain.Todo, 0, len(ids))
	for _, id := range ids {
		t := r.todos[id]
		if f.Matches(&t) {
			res = append(res, &t)
		}
	}
	return res, nil
}

func (r *Repository) Update(ctx context.Context, id int64, p domain.TodoPatch, now time.Time) (*domain.Todo, error) {
	return r.mutate(id, now, p.Apply)
}

func (r *Repository) Toggle(ctx context.Context, id int64, now time.Time) (*domain.Todo, error) {
	return r.mutate(id, now, func(t *domain.Todo) { t.Completed = !t.Completed })
}

func (r *Repository) mutate(id int64, now time.Time, fn func(*domain.Todo)) (*domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.todos[id]
	if !ok {
		return nil, domain.ErrTodoNotFound
	}
	fn(&t)
	if now.After(t.UpdatedAt) {
		t.UpdatedAt = now
	}
	r.todos[id] = t
	return &t, nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *Repository) Stats(ctx context.Context) (domain.TodoStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var s domain.TodoStats
	for _, t := range r.todos {
		s.Total++
		if t.Completed {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s, nil
}

func (r *Repository) DeleteCompleted(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, t := range r.todos {
		if t.Completed {
			delete(r.todos, id)
			n++
		}
	}
	return n, nil
}
