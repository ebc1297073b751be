package task

import (
	"errors"
	"strings"
)

var (
	ErrEmptyText = errors.New("task: text is empty")
	ErrNotFound  = errors.New("task: not found")
)

// Store is the ordered, authoritative list of tasks. It is not safe for
// concurrent use; the UI drives it from a single goroutine.
type Store struct {
	tasks []Task
	clock *Clock
}

// NewStore takes ownership of a copy of tasks. The clock is advanced past the
// largest loaded id so new ids never collide with persisted ones.
func NewStore(tasks []Task, clock *Clock) *Store {
	if clock == nil {
		clock = NewClock(nil)
	}
	s := &Store{tasks: append([]Task(nil), tasks...), clock: clock}
	for _, t := range s.tasks {
		clock.Observe(t.ID)
	}
	return s
}

// Tasks returns a copy of the list in insertion order.
func (s *Store) Tasks() []Task {
	return append([]Task(nil), s.tasks...)
}

func (s *Store) Len() int {
	return len(s.tasks)
}

func (s *Store) Get(id int64) (Task, bool) {
	if i := s.index(id); i >= 0 {
		return s.tasks[i], true
	}
	return Task{}, false
}

// Add appends a new active task with the trimmed text.
func (s *Store) Add(raw string) (Task, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Task{}, ErrEmptyText
	}
	t := Task{ID: s.clock.Next(), Text: text}
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s *Store) Delete(id int64) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *Store) SetCompleted(id int64, completed bool) error {
	i := s.index(id)
	if i < 0 {
		return ErrNotFound
	}
	s.tasks[i].Completed = completed
	return nil
}

// ClearCompleted drops every completed task and reports how many went.
func (s *Store) ClearCompleted() int {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	return removed
}

func (s *Store) index(id int64) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}
