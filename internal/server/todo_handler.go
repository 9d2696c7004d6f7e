package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/internal/validate"
)

// TodoHandler serves the todo endpoints.
type TodoHandler struct {
	store store.Store
}

// NewTodoHandler creates a TodoHandler backed by the given store.
func NewTodoHandler(st store.Store) *TodoHandler {
	return &TodoHandler{store: st}
}

// CreateTodoRequest is the body for POST /todos.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// ToggleTodoRequest is the body for PATCH /todos/:id. Completed is a
// pointer so a missing field is rejected rather than read as false.
type ToggleTodoRequest struct {
	Completed *bool `json:"completed"`
}

// Create validates the title and inserts a new todo.
// Validation failures come back as a per-field message map, not an error.
func (h *TodoHandler) Create(c *gin.Context) {
	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if errs := validate.TodoTitle(req.Title); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
		return
	}

	todo, err := h.store.CreateTodo(c.Request.Context(), req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, todo)
}

// Fetch returns one page of todos. Query params: cursor, limit
// (default 10), search, completed (1/true restricts to completed rows).
func (h *TodoHandler) Fetch(c *gin.Context) {
	filter := store.FetchFilter{Limit: store.DefaultLimit}

	if raw := c.Query("cursor"); raw != "" {
		cursor, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cursor"})
			return
		}
		filter.Cursor = &cursor
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		filter.Limit = limit
	}
	filter.Search = c.Query("search")
	if raw := c.Query("completed"); raw != "" {
		filter.CompletedOnly = raw == "1" || raw == "true"
	}

	page, err := h.store.FetchTodos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

// Toggle sets the completed flag of a todo to an exact value. A missing
// id updates zero rows; that is reported, not treated as an error.
func (h *TodoHandler) Toggle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	var req ToggleTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Completed == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "completed field is required"})
		return
	}

	updated, err := h.store.SetCompleted(c.Request.Context(), id, *req.Completed)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

// Delete removes a todo. A missing id deletes zero rows; that is
// reported, not treated as an error.
func (h *TodoHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	deleted, err := h.store.DeleteTodo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// Stats reports total and completed row counts under the current search
// filter.
func (h *TodoHandler) Stats(c *gin.Context) {
	filter := store.FetchFilter{Search: c.Query("search")}

	total, err := h.store.CountTodos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filter.CompletedOnly = true
	completed, err := h.store.CountTodos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"total": total, "completed": completed})
}
