package model

import "time"

// MaxTitleLength is the longest title the store accepts, in Unicode
// code points.
const MaxTitleLength = 100

// Todo is a single task item. IDs are assigned by the store and are
// strictly increasing; deleted IDs are never reused.
type Todo struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"title" db:"title"`
	Completed bool      `json:"completed" db:"completed"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
