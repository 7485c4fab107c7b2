package domain

// EventType - kind of change published after a successful mutation
type EventType string

const (
	EventTodoCreated EventType = "todo.created"
	EventTodoUpdated EventType = "todo.updated"
	EventTodoToggled EventType = "todo.toggled"
	EventTodoDeleted EventType = "todo.deleted"
	EventTodoCleared EventType = "todo.cleared"
)

type TodoEvent struct {
	Type    EventType     `json:"type"`
	TodoID  int64         `json:"todo_id,omitempty"`
	Todo    *TodoResponse `json:"todo,omitempty"`
	Deleted int64         `json:"deleted,omitempty"`
	At      string        `json:"at"`
}
