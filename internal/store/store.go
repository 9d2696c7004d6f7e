package store

import (
	"context"

	"github.com/nhle/todoapp/internal/model"
)

// Default and boundary values for FetchFilter.Limit.
const (
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 50
)

// FetchFilter controls filtering and keyset pagination for todo queries.
// All supplied filters combine with AND.
type FetchFilter struct {
	// Cursor, when set, restricts results to rows with id < *Cursor.
	// It is the NextCursor returned by a previous fetch.
	Cursor *int64

	// Limit is the page size. Values outside [MinLimit, MaxLimit] are
	// clamped; zero means DefaultLimit is requested by the caller.
	Limit int

	// Search, when non-empty, keeps rows whose title starts with it,
	// case-insensitively.
	Search string

	// CompletedOnly, when true, keeps only completed rows. False applies
	// no restriction.
	CompletedOnly bool
}

// TodoPage is one page of fetch results. NextCursor is the id of the
// last row in Todos, or nil when the page is empty; passing it back with
// the same filter yields the following page.
type TodoPage struct {
	Todos      []model.Todo `json:"todos"`
	HasMore    bool         `json:"hasMore"`
	NextCursor *int64       `json:"nextCursor,omitempty"`
}

// Store defines the persistence interface for todos.
type Store interface {
	// CreateTodo inserts a new incomplete todo and returns it with its
	// generated id and creation timestamp.
	CreateTodo(ctx context.Context, title string) (model.Todo, error)

	// SetCompleted sets the completed flag to exactly the given value and
	// returns the number of rows affected. Zero means the id did not
	// exist; that is not an error.
	SetCompleted(ctx context.Context, id int64, completed bool) (int64, error)

	// DeleteTodo removes a todo and returns the number of rows affected.
	// Zero means the id did not exist; that is not an error.
	DeleteTodo(ctx context.Context, id int64) (int64, error)

	// FetchTodos returns one page of todos in strictly descending id
	// order under the given filter.
	FetchTodos(ctx context.Context, filter FetchFilter) (TodoPage, error)

	// CountTodos returns how many rows match the filter's search and
	// completed restrictions. Cursor and limit are ignored.
	CountTodos(ctx context.Context, filter FetchFilter) (int, error)
}
