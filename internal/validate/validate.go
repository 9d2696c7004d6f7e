package validate

import (
	"unicode/utf8"

	"github.com/nhle/todoapp/internal/model"
)

// Validation messages for the title field.
const (
	MsgTitleRequired = "Title is required"
	MsgTitleTooLong  = "Title is too long"
)

// FieldErrors maps a field name to the messages it failed with.
type FieldErrors map[string][]string

// TodoTitle checks a candidate title and returns any field errors.
// The input is judged as-is: no trimming, no normalization. Length is
// counted in Unicode code points. A nil return means the title is valid
// and should be stored unchanged.
func TodoTitle(title string) FieldErrors {
	var msgs []string
	if title == "" {
		msgs = append(msgs, MsgTitleRequired)
	} else if utf8.RuneCountInString(title) > model.MaxTitleLength {
		msgs = append(msgs, MsgTitleTooLong)
	}
	if len(msgs) == 0 {
		return nil
	}
	return FieldErrors{"title": msgs}
}
