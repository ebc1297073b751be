// Package task holds the task record, the in-memory store and the filter
// engine used to derive the visible list.
package task

// MaxID is the largest id a task may carry. It keeps ids exact when the list
// is read by tools that store numbers as float64.
const MaxID int64 = 1<<53 - 1

// Task is a single to-do item. Field names are part of the persisted layout.
type Task struct {
	ID        int64  `json:"id" validate:"gt=0,lte=9007199254740991"`
	Text      string `json:"text" validate:"notblank"`
	Completed bool   `json:"completed"`
}

type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// Filters lists the filter modes in display order.
func Filters() []Filter {
	return []Filter{FilterAll, FilterActive, FilterCompleted}
}

// Next returns the filter that follows f in display order, wrapping around.
func (f Filter) Next() Filter {
	all := Filters()
	for i, cur := range all {
		if cur == f {
			return all[(i+1)%len(all)]
		}
	}
	return FilterAll
}

func (f Filter) Match(t Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed
	case FilterCompleted:
		return t.Completed
	default:
		return true
	}
}

// Visible returns the tasks selected by f in store order. The result never
// aliases the input slice.
func Visible(tasks []Task, f Filter) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// ItemsLeft counts the tasks that are not completed.
func ItemsLeft(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}
