package service

import (
	"context"
	"time"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/repository"
)

// Notifier receives change events after successful mutations.
type Notifier interface {
	Publish(ev domain.TodoEvent)
}

type nopNotifier struct{}

func (nopNotifier) Publish(domain.TodoEvent) {}

// TodoService validates input and delegates persistence to a TodoStore.
type TodoService struct {
	store    repository.TodoStore
	notifier Notifier
	now      func() time.Time
}

// NewTodoService creates a todo service. notifier may be nil.
func NewTodoService(store repository.TodoStore, notifier Notifier) *TodoService {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &TodoService{
		store:    store,
		notifier: notifier,
		now:      domain.Now,
	}
}

// Create stores a new active todo with a trimmed, non-empty title.
func (s *TodoService) Create(ctx context.Context, title, description string) (*domain.Todo, error) {
	title, err := domain.NormalizeTitle(title)
	if err != nil {
		return nil, err
	}

	now := s.now()
	t := &domain.Todo{
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Create(ctx, t); err != nil {
		return nil, err
	}

	logger.WithContext(ctx).Debug("todo created", "todo_id", t.ID)
	s.publish(domain.EventTodoCreated, t)
	return t, nil
}

func (s *TodoService) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	return s.store.GetByID(ctx, id)
}

func (s *TodoService) List(ctx context.Context, f domain.TodoFilter) ([]*domain.Todo, error) {
	return s.store.List(ctx, f)
}

// Update applies only the fields present in p. A present title must not be
// blank.
func (s *TodoService) Update(ctx context.Context, id int64, p domain.TodoPatch) (*domain.Todo, error) {
	if p.Title != nil {
		title, err := domain.NormalizeTitle(*p.Title)
		if err != nil {
			return nil, err
		}
		p.Title = &title
	}

	t, err := s.store.Update(ctx, id, p, s.now())
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventTodoUpdated, t)
	return t, nil
}

func (s *TodoService) Toggle(ctx context.Context, id int64) (*domain.Todo, error) {
	t, err := s.store.Toggle(ctx, id, s.now())
	if err != nil {
		return nil, err
	}

	s.publish(domain.EventTodoToggled, t)
	return t, nil
}

func (s *TodoService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.notifier.Publish(domain.TodoEvent{
		Type:   domain.EventTodoDeleted,
		TodoID: id,
		At:     domain.FormatTimestamp(s.now()),
	})
	return nil
}

func (s *TodoService) Stats(ctx context.Context) (domain.TodoStats, error) {
	return s.store.Stats(ctx)
}

// ClearCompleted hard-deletes every completed todo.
func (s *TodoService) ClearCompleted(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteCompleted(ctx)
	if err != nil {
		return 0, err
	}

	if n > 0 {
		s.notifier.Publish(domain.TodoEvent{
			Type:    domain.EventTodoCleared,
			Deleted: n,
			At:      domain.FormatTimestamp(s.now()),
		})
	}
	return n, nil
}

func (s *TodoService) publish(typ domain.EventType, t *domain.Todo) {
	resp := t.ToResponse()
	s.notifier.Publish(domain.TodoEvent{
		Type:   typ,
		TodoID: t.ID,
		Todo:   &resp,
		At:     resp.UpdatedAt,
	})
}
