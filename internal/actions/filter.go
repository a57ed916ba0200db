package actions

import (
	"errors"
	"fmt"
	"strings"
)

// StatusFilter selects actions by completion.
type StatusFilter string

// Status filters.
const (
	FilterAll  StatusFilter = "ALL"
	FilterTodo StatusFilter = "TODO"
	FilterDone StatusFilter = "DONE"
)

// ErrInvalidFilter is returned by [ParseStatusFilter] for unknown names.
var ErrInvalidFilter = errors.New("invalid status filter (valid: all, todo, done)")

// ParseStatusFilter maps "all", "todo" or "done" (any case) to a filter.
func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToUpper(strings.TrimSpace(s))); f {
	case FilterAll, FilterTodo, FilterDone:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, s)
	}
}

// Filter keeps the actions matching both the status filter and the search
// term. The term is matched case-insensitively against title, source name
// and description joined together; an empty term matches everything.
// An unrecognized filter behaves like [FilterAll].
func Filter(list []Action, status StatusFilter, search string) []Action {
	needle := strings.ToLower(search)

	out := make([]Action, 0, len(list))

	for _, a := range list {
		if status == FilterTodo && a.IsDone() {
			continue
		}

		if status == FilterDone && !a.IsDone() {
			continue
		}

		if needle != "" {
			haystack := strings.ToLower(a.Title + a.SourceName + a.Description)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}

		out = append(out, a)
	}

	return out
}
