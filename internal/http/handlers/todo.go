package handlers

import (
	"net/http"

	"todo_webapp/internal/domain"

	"github.com/gin-gonic/gin"
)

// ListTodos returns todos filtered by ?status= and searched by ?q=.
func (h *Handler) ListTodos(c *gin.Context) {
	f := domain.TodoFilter{
		Status: domain.ParseStatus(c.Query("status")),
		Query:  c.Query("q"),
	}

	todos, err := h.Todos.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, "list", err)
		return
	}

	out := make([]domain.TodoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, t.ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"todos": out})
}

// CreateTodo expects {title, description?}. A missing or undecodable body is
// treated as an empty payload.
func (h *Handler) CreateTodo(c *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
		return
	}

	todo, err := h.Todos.Create(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		writeError(c, "create", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"todo": todo.ToResponse()})
}

func (h *Handler) GetTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.Todos.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, "get", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo.ToResponse()})
}

// UpdateTodo applies any of title/description/completed.
func (h *Handler) UpdateTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	var patch domain.TodoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		// an unknown id wins over a bad body
		if _, getErr := h.Todos.Get(ctx, id); getErr != nil {
			writeError(c, "update", getErr)
			return
		}
		writeError(c, "update", domain.ErrInvalidBody)
		return
	}

	todo, err := h.Todos.Update(ctx, id, patch)
	if err != nil {
		writeError(c, "update", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo.ToResponse()})
}

func (h *Handler) DeleteTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	if err := h.Todos.Delete(c.Request.Context(), id); err != nil {
		writeError(c, "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgTodoDeleted})
}

func (h *Handler) ToggleTodo(c *gin.Context) {
	id, ok := todoID(c)
	if !ok {
		return
	}

	todo, err := h.Todos.Toggle(c.Request.Context(), id)
	if err != nil {
		writeError(c, "toggle", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"todo": todo.ToResponse()})
}

// TodoStats returns total/active/completed counts.
func (h *Handler) TodoStats(c *gin.Context) {
	stats, err := h.Todos.Stats(c.Request.Context())
	if err != nil {
		writeError(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ClearCompleted deletes every completed todo.
func (h *Handler) ClearCompleted(c *gin.Context) {
	n, err := h.Todos.ClearCompleted(c.Request.Context())
	if err != nil {
		writeError(c, "clear_completed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgTodosCleared, "deleted": n})
}
