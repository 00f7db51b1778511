package task

import (
	"sort"
	"time"
)

// SortKey selects the ordering of a list view.
type SortKey string

const (
	SortNone      SortKey = ""
	SortCreatedAt SortKey = "createdAt"
	SortPriority  SortKey = "priority"
	SortDueDate   SortKey = "dueDate"
)

// View is a filter and ordering applied to a task list. The zero value keeps
// the list unfiltered and in storage order.
type View struct {
	Status Status
	Sort   SortKey
}

// ParseView validates raw query values. An empty status or "all" means no
// status filter.
func ParseView(status, sortBy string) (View, error) {
	var v View

	switch status {
	case "", "all":
	default:
		v.Status = Status(status)
		if !v.Status.Valid() {
			return View{}, ErrInvalidStatus
		}
	}

	switch SortKey(sortBy) {
	case SortNone, SortCreatedAt, SortPriority, SortDueDate:
		v.Sort = SortKey(sortBy)
	default:
		return View{}, ErrInvalidSort
	}

	return v, nil
}

// ApplyView returns a new slice holding the tasks selected and ordered by v.
// Sorting is stable, so ties keep storage order.
func ApplyView(tasks []Task, v View) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if v.Status != "" && t.Status != v.Status {
			continue
		}
		out = append(out, t)
	}

	switch v.Sort {
	case SortPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.rank() > out[j].Priority.rank()
		})
	case SortDueDate:
		sort.SliceStable(out, func(i, j int) bool {
			di, iok := parseDueDate(out[i].DueDate)
			dj, jok := parseDueDate(out[j].DueDate)
			switch {
			case !iok:
				return false
			case !jok:
				return true
			}
			return di.Before(dj)
		})
	case SortCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}

	return out
}

var dueDateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.DateOnly,
}

// parseDueDate accepts the date and date/time shapes a browser form produces.
// Missing or unparseable dates report false and sort last.
func parseDueDate(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, *s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Stats counts tasks per status.
type Stats struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Done       int `json:"done"`
}

// Summarize computes Stats over tasks.
func Summarize(tasks []Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			s.Todo++
		case StatusInProgress:
			s.InProgress++
		case StatusDone:
			s.Done++
		}
	}
	return s
}
