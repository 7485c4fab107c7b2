package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todo_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const todoColumns = `id, title, description, completed, created_at, updated_at`

var _ TodoStore = (*TodoRepository)(nil)

type TodoRepository struct {
	db *pgxpool.Pool
}

func NewTodoRepository(db *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*domain.Todo, error) {
	var t domain.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, err
	}
	return &t, nil
}

// Create inserts t and fills in its id.
func (r *TodoRepository) Create(ctx context.Context, t *domain.Todo) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO todos (title, description, completed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		t.Title, t.Description, t.Completed, t.CreatedAt, t.UpdatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

func (r *TodoRepository) GetByID(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRow(ctx, `SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	return scanTodo(row)
}

// List returns todos in insertion order. A nil completed argument disables
// the status filter; an empty query disables the search.
func (r *TodoRepository) List(ctx context.Context, f domain.TodoFilter) ([]*domain.Todo, error) {
	var completed *bool
	switch f.Status {
	case domain.StatusActive:
		v := false
		completed = &v
	case domain.StatusCompleted:
		v := true
		completed = &v
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+todoColumns+`
		 FROM todos
		 WHERE ($1::boolean IS NULL OR completed = $1)
		   AND ($2::text = ''
		        OR strpos(lower(title), lower($2)) > 0
		        OR strpos(lower(description), lower($2)) > 0)
		 ORDER BY id`,
		completed, f.Query,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	res := make([]*domain.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return res, nil
}

// Update applies the present fields of p in a single statement.
func (r *TodoRepository) Update(ctx context.Context, id int64, p domain.TodoPatch, now time.Time) (*domain.Todo, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE todos SET
			title       = COALESCE($2, title),
			description = COALESCE($3, description),
			completed   = COALESCE($4, completed),
			updated_at  = GREATEST(updated_at, $5)
		 WHERE id = $1
		 RETURNING `+todoColumns,
		id, p.Title, p.Description, p.Completed, now,
	)
	return scanTodo(row)
}

func (r *TodoRepository) Toggle(ctx context.Context, id int64, now time.Time) (*domain.Todo, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE todos SET completed = NOT completed, updated_at = GREATEST(updated_at, $2)
		 WHERE id = $1
		 RETURNING `+todoColumns,
		id, now,
	)
	return scanTodo(row)
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Stats(ctx context.Context) (domain.TodoStats, error) {
	var s domain.TodoStats
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE NOT completed),
		        COUNT(*) FILTER (WHERE completed)
		 FROM todos`,
	).Scan(&s.Total, &s.Active, &s.Completed)
	if err != nil {
		return domain.TodoStats{}, fmt.Errorf("todo stats: %w", err)
	}
	return s, nil
}

// DeleteCompleted removes every completed todo and reports how many went.
func (r *TodoRepository) DeleteCompleted(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM todos WHERE completed`)
	if err != nil {
		return 0, fmt.Errorf("delete completed todos: %w", err)
	}
	return tag.RowsAffected(), nil
}
