package ui

import (
	"errors"

	"go.uber.org/zap"

	"today/internal/task"
	"today/internal/view"
)

// Saver persists the full task list.
type Saver interface {
	Save(tasks []task.Task) error
}

// Controller owns the task store and the current filter. Every mutation is
// written through the Saver before it returns.
type Controller struct {
	store  *task.Store
	saver  Saver
	filter task.Filter
	log    *zap.Logger
}

func NewController(store *task.Store, saver Saver, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		store:  store,
		saver:  saver,
		filter: task.FilterAll,
		log:    log,
	}
}

func (c *Controller) Filter() task.Filter {
	return c.filter
}

func (c *Controller) Tasks() []task.Task {
	return c.store.Tasks()
}

// Visible returns the tasks shown under the current filter.
func (c *Controller) Visible() []task.Task {
	return task.Visible(c.store.Tasks(), c.filter)
}

// Page builds the render input for the current state.
func (c *Controller) Page(cursor int) view.Page {
	return view.Build(c.store.Tasks(), c.filter, cursor)
}

// AddTask reports whether a task was added. Blank input is ignored.
func (c *Controller) AddTask(raw string) (bool, error) {
	t, err := c.store.Add(raw)
	if errors.Is(err, task.ErrEmptyText) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	c.log.Debug("task added", zap.Int64("id", t.ID))
	return true, c.persist("add")
}

// DeleteTask removes the task with id. Unknown ids are ignored.
func (c *Controller) DeleteTask(id int64) error {
	if err := c.store.Delete(id); err != nil && !errors.Is(err, task.ErrNotFound) {
		return err
	}
	return c.persist("delete")
}

// ToggleComplete sets the completion flag of the task with id. Unknown ids
// are ignored and nothing is written.
func (c *Controller) ToggleComplete(id int64, completed bool) error {
	err := c.store.SetCompleted(id, completed)
	if errors.Is(err, task.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return c.persist("toggle")
}

func (c *Controller) ClearCompleted() error {
	removed := c.store.ClearCompleted()
	c.log.Debug("cleared completed", zap.Int("removed", removed))
	return c.persist("clear_completed")
}

// SetFilter switches the filter and reports whether it changed.
func (c *Controller) SetFilter(f task.Filter) bool {
	if f == c.filter {
		return false
	}
	c.filter = f
	return true
}

func (c *Controller) persist(op string) error {
	if err := c.saver.Save(c.store.Tasks()); err != nil {
		c.log.Error("save failed", zap.String("op", op), zap.Error(err))
		return err
	}
	return nil
}
