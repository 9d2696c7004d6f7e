package store_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todoapp/internal/store"
	"github.com/nhle/todoapp/tests/testutil"
)

func TestCreateTodo(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first, err := s.CreateTodo(ctx, "Write the report")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Write the report", first.Title)
	assert.False(t, first.Completed)
	assert.False(t, first.CreatedAt.IsZero())

	second, err := s.CreateTodo(ctx, "Send the report")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestCreateTodo_EmptyTitle(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTodo(ctx, "")
	require.Error(t, err)

	count, err := s.CountTodos(ctx, store.FetchFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCreateTodo_PreservesTitleExactly(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	// Leading/trailing whitespace and unicode survive round trips
	// untouched.
	titles := []string{"  padded  ", "café ☕", "a"}
	for _, title := range titles {
		todo, err := s.CreateTodo(ctx, title)
		require.NoError(t, err)
		assert.Equal(t, title, todo.Title)
	}
}

func TestFetchTodos_PaginationScenario(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C", "D", "E"} {
		_, err := s.CreateTodo(ctx, title)
		require.NoError(t, err)
	}

	page, err := s.FetchTodos(ctx, store.FetchFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 4}, ids(page))
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, int64(4), *page.NextCursor)

	page, err = s.FetchTodos(ctx, store.FetchFilter{Cursor: page.NextCursor, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2}, ids(page))
	assert.True(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, int64(2), *page.NextCursor)

	page, err = s.FetchTodos(ctx, store.FetchFilter{Cursor: page.NextCursor, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, ids(page))
	assert.False(t, page.HasMore)
	require.NotNil(t, page.NextCursor)
	assert.Equal(t, int64(1), *page.NextCursor)
}

func TestFetchTodos_EmptyPage(t *testing.T) {
	s := testutil.NewTestStore(t)

	page, err := s.FetchTodos(context.Background(), store.FetchFilter{Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Todos)
	assert.False(t, page.HasMore)
	assert.Nil(t, page.NextCursor)
}

func TestFetchTodos_ClampsLimit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 55; i++ {
		_, err := s.CreateTodo(ctx, fmt.Sprintf("todo %d", i))
		require.NoError(t, err)
	}

	tests := []struct {
		name      string
		limit     int
		wantCount int
	}{
		{"zero clamps to one", 0, 1},
		{"negative clamps to one", -7, 1},
		{"oversized clamps to fifty", 1000, 50},
		{"in range passes through", 25, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := s.FetchTodos(ctx, store.FetchFilter{Limit: tt.limit})
			require.NoError(t, err)
			assert.Len(t, page.Todos, tt.wantCount)
			assert.True(t, page.HasMore)
		})
	}
}

func TestFetchTodos_SearchPrefix(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"Learn Node.js", "I Learn Node.js", "learning Go", "Ship it"} {
		_, err := s.CreateTodo(ctx, title)
		require.NoError(t, err)
	}

	page, err := s.FetchTodos(ctx, store.FetchFilter{Limit: 10, Search: "learn"})
	require.NoError(t, err)

	titles := make([]string, 0, len(page.Todos))
	for _, todo := range page.Todos {
		titles = append(titles, todo.Title)
	}

	// Prefix match, case-insensitive: "I Learn Node.js" contains but
	// does not start with the term, so it stays out.
	assert.Equal(t, []string{"learning Go", "Learn Node.js"}, titles)
}

func TestFetchTodos_SearchEscapesWildcards(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"100% done", "100 percent done", "a_b", "axb"} {
		_, err := s.CreateTodo(ctx, title)
		require.NoError(t, err)
	}

	page, err := s.FetchTodos(ctx, store.FetchFilter{Limit: 10, Search: "100%"})
	require.NoError(t, err)
	require.Len(t, page.Todos, 1)
	assert.Equal(t, "100% done", page.Todos[0].Title)

	page, err = s.FetchTodos(ctx, store.FetchFilter{Limit: 10, Search: "a_"})
	require.NoError(t, err)
	require.Len(t, page.Todos, 1)
	assert.Equal(t, "a_b", page.Todos[0].Title)
}

func TestFetchTodos_CompletedOnly(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"open one", "done one", "open two"} {
		_, err := s.CreateTodo(ctx, title)
		require.NoError(t, err)
	}
	_, err := s.SetCompleted(ctx, 2, true)
	require.NoError(t, err)

	page, err := s.FetchTodos(ctx, store.FetchFilter{Limit: 10, CompletedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids(page))

	// CompletedOnly false applies no restriction.
	page, err = s.FetchTodos(ctx, store.FetchFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Todos, 3)
}

func TestFetchTodos_FiltersCompose(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		todo, err := s.CreateTodo(ctx, fmt.Sprintf("Learn topic %d", i))
		require.NoError(t, err)
		if i%2 == 0 {
			_, err = s.SetCompleted(ctx, todo.ID, true)
			require.NoError(t, err)
		}
	}
	_, err := s.CreateTodo(ctx, "Unrelated")
	require.NoError(t, err)

	cursor := int64(8)
	page, err := s.FetchTodos(ctx, store.FetchFilter{
		Cursor:        &cursor,
		Limit:         10,
		Search:        "learn",
		CompletedOnly: true,
	})
	require.NoError(t, err)

	// Completed "Learn" rows are ids 1, 3, 5, 7, 9; the cursor keeps
	// only those strictly below 8.
	assert.Equal(t, []int64{7, 5, 3, 1}, ids(page))
	assert.False(t, page.HasMore)
}

func TestFetchTodos_CursorWalk(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i := 0; i < 23; i++ {
		_, err := s.CreateTodo(ctx, fmt.Sprintf("todo %d", i))
		require.NoError(t, err)
	}

	var seen []int64
	filter := store.FetchFilter{Limit: 7}
	for {
		page, err := s.FetchTodos(ctx, filter)
		require.NoError(t, err)
		seen = append(seen, ids(page)...)
		if !page.HasMore {
			break
		}
		filter.Cursor = page.NextCursor
	}

	require.Len(t, seen, 23)
	for i := 1; i < len(seen); i++ {
		assert.Less(t, seen[i], seen[i-1], "ids must stay strictly descending across pages")
	}
}

func TestSetCompleted(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	todo, err := s.CreateTodo(ctx, "flip me")
	require.NoError(t, err)

	// Sets the exact value, not a flip: repeating the same value is a
	// plain one-row update.
	for _, target := range []bool{true, true, false} {
		affected, err := s.SetCompleted(ctx, todo.ID, target)
		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	}

	page, err := s.FetchTodos(ctx, store.FetchFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, page.Todos, 1)
	assert.False(t, page.Todos[0].Completed)
}

func TestSetCompleted_MissingID(t *testing.T) {
	s := testutil.NewTestStore(t)

	affected, err := s.SetCompleted(context.Background(), 999, true)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestDeleteTodo(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	todo, err := s.CreateTodo(ctx, "remove me")
	require.NoError(t, err)

	affected, err := s.DeleteTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	// Deleting again is a no-op, not an error.
	affected, err = s.DeleteTodo(ctx, todo.ID)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestDeleteTodo_IDsNeverReused(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	first, err := s.CreateTodo(ctx, "short lived")
	require.NoError(t, err)

	_, err = s.DeleteTodo(ctx, first.ID)
	require.NoError(t, err)

	second, err := s.CreateTodo(ctx, "successor")
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}

func TestCountTodos(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	for i, title := range []string{"Learn Go", "Learn SQL", "Walk the dog"} {
		todo, err := s.CreateTodo(ctx, title)
		require.NoError(t, err)
		if i == 0 {
			_, err = s.SetCompleted(ctx, todo.ID, true)
			require.NoError(t, err)
		}
	}

	total, err := s.CountTodos(ctx, store.FetchFilter{})
	require.NoError(t, err)
	assert.Equal(t, 3, total)

	completed, err := s.CountTodos(ctx, store.FetchFilter{CompletedOnly: true})
	require.NoError(t, err)
	assert.Equal(t, 1, completed)

	searched, err := s.CountTodos(ctx, store.FetchFilter{Search: "learn"})
	require.NoError(t, err)
	assert.Equal(t, 2, searched)
}

func TestSeed(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx))

	page, err := s.FetchTodos(ctx, store.FetchFilter{Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Todos, 5)
	assert.Equal(t, "Learn Node.js", page.Todos[0].Title)
	for _, todo := range page.Todos {
		assert.False(t, todo.Completed)
	}
}

// ids extracts the id sequence from a page.
func ids(page store.TodoPage) []int64 {
	out := make([]int64, 0, len(page.Todos))
	for _, todo := range page.Todos {
		out = append(out, todo.ID)
	}
	return out
}
