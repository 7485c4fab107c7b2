package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTodoNotFound  = errors.New("todo not found")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidBody   = errors.New("invalid request body")
)

// TimestampLayout is how timestamps leave the service: ISO-8601 with fixed
// microsecond precision, so the strings also sort chronologically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z07:00"

type Todo struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Completed   bool      `db:"completed"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// TodoResponse is the wire shape of a Todo.
type TodoResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (t *Todo) ToResponse() TodoResponse {
	return TodoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   FormatTimestamp(t.CreatedAt),
		UpdatedAt:   FormatTimestamp(t.UpdatedAt),
	}
}

func (t *Todo) String() string {
	return "<Todo " + strconv.FormatInt(t.ID, 10) + ": " + t.Title + ">"
}

// TodoPatch carries a partial update. Nil fields are left untouched.
type TodoPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

func (p TodoPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

// Apply copies present fields onto t.
func (p TodoPatch) Apply(t *Todo) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
}

type TodoStatus string

const (
	StatusAll       TodoStatus = "all"
	StatusActive    TodoStatus = "active"
	StatusCompleted TodoStatus = "completed"
)

// ParseStatus maps a query value to a status; unknown values mean all.
func ParseStatus(s string) TodoStatus {
	switch TodoStatus(s) {
	case StatusActive:
		return StatusActive
	case StatusCompleted:
		return StatusCompleted
	default:
		return StatusAll
	}
}

type TodoFilter struct {
	Status TodoStatus
	Query  string
}

// Matches reports whether t passes both the status and the search filter.
func (f TodoFilter) Matches(t *Todo) bool {
	switch f.Status {
	case StatusActive:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}
	if f.Query == "" {
		return true
	}
	q := strings.ToLower(f.Query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q)
}

type TodoStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

// NormalizeTitle trims the title and rejects blank ones.
func NormalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrTitleRequired
	}
	return title, nil
}

// Now returns the current time at storage precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
