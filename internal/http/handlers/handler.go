package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"todo_webapp/internal/domain"
	"todo_webapp/internal/logger"
	"todo_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// Response messages are part of the API contract.
const (
	msgTitleRequired = "Title is required"
	msgTodoNotFound  = "Todo not found"
	msgInvalidBody   = "Invalid request body"
	msgTodoDeleted   = "Todo deleted"
	msgTodosCleared  = "Completed todos cleared"
	msgInternalError = "db error"
)

type Handler struct {
	Todos *service.TodoService
}

func NewHandler(todos *service.TodoService) *Handler {
	return &Handler{Todos: todos}
}

// todoID parses the :id path parameter. Anything that is not an integer
// cannot name a todo.
func todoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": msgTodoNotFound})
		return 0, false
	}
	return id, true
}

// writeError maps service errors to status codes and JSON bodies.
func writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msgTodoNotFound})
	case errors.Is(err, domain.ErrTitleRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTitleRequired})
	case errors.Is(err, domain.ErrInvalidBody):
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidBody})
	default:
		logger.WithContext(c.Request.Context()).Error("todo store failure", "op", op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgInternalError})
	}
}
