package repository

import (
	"context"
	"time"

	"todo_webapp/internal/domain"
)

// TodoStore is the persistence contract for todo rows. Implementations
// return domain.ErrTodoNotFound for unknown ids.
type TodoStore interface {
	Create(ctx context.Context, t *domain.Todo) error
	GetByID(ctx context.Context, id int64) (*domain.Todo, error)
	List(ctx context.Context, f domain.TodoFilter) ([]*domain.Todo, error)
	Update(ctx context.Context, id int64, p domain.TodoPatch, now time.Time) (*domain.Todo, error)
	Toggle(ctx context.Context, id int64, now time.Time) (*domain.Todo, error)
	Delete(ctx context.Context, id int64) error
	Stats(ctx context.Context) (domain.TodoStats, error)
	DeleteCompleted(ctx context.Context) (int64, error)
}
