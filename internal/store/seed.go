package store

import (
	"context"
	"fmt"
)

// seedTitles are the sample rows inserted by Seed, oldest first.
var seedTitles = []string{
	"Learn Next.js",
	"Learn Drizzle",
	"Learn TypeScript",
	"Learn React",
	"Learn Node.js",
}

// Seed inserts a handful of sample todos for local development.
func (s *SQLiteStore) Seed(ctx context.Context) error {
	for _, title := range seedTitles {
		if _, err := s.CreateTodo(ctx, title); err != nil {
			return fmt.Errorf("seeding todo %q: %w", title, err)
		}
	}
	return nil
}
