package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/todoapp/internal/model"
)

// CreateTodo inserts a new todo and returns it with its generated id.
// Titles are validated at the boundary; the guard here only keeps a
// blank row out of the table if a caller skips that step.
func (s *SQLiteStore) CreateTodo(ctx context.Context, title string) (model.Todo, error) {
	if title == "" {
		return model.Todo{}, fmt.Errorf("todo title must not be empty")
	}

	todo := model.Todo{
		Title:     title,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO todos (title, completed, created_at)
		VALUES (?, ?, ?)`,
		todo.Title, boolToInt(todo.Completed), todo.CreatedAt,
	)
	if err != nil {
		return model.Todo{}, fmt.Errorf("creating todo: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return model.Todo{}, fmt.Errorf("reading new todo id: %w", err)
	}
	todo.ID = id

	return todo, nil
}

// SetCompleted sets the completed flag to exactly the target value.
// A missing id affects zero rows and is not an error.
func (s *SQLiteStore) SetCompleted(ctx context.Context, id int64, completed bool) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"UPDATE todos SET completed = ? WHERE id = ?",
		boolToInt(completed), id,
	)
	if err != nil {
		return 0, fmt.Errorf("updating todo %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows for todo %d: %w", id, err)
	}
	return rows, nil
}

// DeleteTodo removes a todo by id. A missing id affects zero rows and
// is not an error.
func (s *SQLiteStore) DeleteTodo(ctx context.Context, id int64) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return 0, fmt.Errorf("deleting todo %d: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading affected rows for todo %d: %w", id, err)
	}
	return rows, nil
}

// FetchTodos returns one page of todos, newest first. It over-fetches a
// single row past the clamped limit to decide HasMore, then truncates.
func (s *SQLiteStore) FetchTodos(ctx context.Context, filter FetchFilter) (TodoPage, error) {
	limit := clampLimit(filter.Limit)

	query, args := buildTodoQuery("SELECT id, title, completed, created_at", filter, true)
	query += fmt.Sprintf(" LIMIT %d", limit+1)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return TodoPage{}, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	todos := make([]model.Todo, 0, limit+1)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return TodoPage{}, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return TodoPage{}, err
	}

	page := TodoPage{HasMore: len(todos) > limit}
	if page.HasMore {
		todos = todos[:limit]
	}
	page.Todos = todos
	if len(todos) > 0 {
		last := todos[len(todos)-1].ID
		page.NextCursor = &last
	}

	return page, nil
}

// CountTodos returns the number of rows matching the filter's search
// and completed restrictions, ignoring cursor and limit.
func (s *SQLiteStore) CountTodos(ctx context.Context, filter FetchFilter) (int, error) {
	query, args := buildTodoQuery("SELECT COUNT(*)", filter, false)

	var count int
	if err := s.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("counting todos: %w", err)
	}
	return count, nil
}

// clampLimit forces a requested page size into [MinLimit, MaxLimit].
func clampLimit(limit int) int {
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// buildTodoQuery constructs the SQL query and args for a FetchFilter.
// withCursor controls whether the keyset condition and ordering are
// included; counts leave them out.
func buildTodoQuery(selectClause string, filter FetchFilter, withCursor bool) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if withCursor && filter.Cursor != nil {
		conditions = append(conditions, "id < ?")
		args = append(args, *filter.Cursor)
	}
	if filter.Search != "" {
		// Case-insensitive prefix match. LIKE metacharacters in the
		// search term are escaped so they match literally.
		conditions = append(conditions, `title LIKE ? ESCAPE '\'`)
		args = append(args, escapeLike(filter.Search)+"%")
	}
	if filter.CompletedOnly {
		conditions = append(conditions, "completed = 1")
	}

	query := selectClause + " FROM todos"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if withCursor {
		query += " ORDER BY id DESC"
	}

	return query, args
}

// escapeLike escapes LIKE metacharacters with a backslash.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// scanTodo scans a todo row from sqlx.Rows.
func scanTodo(rows interface{ Scan(dest ...interface{}) error }) (model.Todo, error) {
	var (
		todo         model.Todo
		completedInt int
	)

	err := rows.Scan(&todo.ID, &todo.Title, &completedInt, &todo.CreatedAt)
	if err != nil {
		return model.Todo{}, fmt.Errorf("scanning todo row: %w", err)
	}

	todo.Completed = completedInt != 0
	return todo, nil
}

// boolToInt converts a boolean to 0 or 1 for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
