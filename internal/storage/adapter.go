package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"go.uber.org/zap"

	"today/internal/task"
)

// ErrCorrupt means the stored value could not be decoded as a task list.
var ErrCorrupt = errors.New("storage: persisted tasks are corrupt")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return v
}

// Adapter loads and saves the whole task list as JSON under one slot key.
type Adapter struct {
	slot Slot
	key  string
	log  *zap.Logger
}

func NewAdapter(slot Slot, log *zap.Logger) *Adapter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{slot: slot, key: DefaultKey, log: log}
}

// Load returns the persisted tasks. An absent slot yields an empty list and no
// error. An undecodable value yields an empty list and an error wrapping
// ErrCorrupt, so the caller can keep going with a fresh list.
func (a *Adapter) Load() ([]task.Task, error) {
	raw, err := a.slot.Get(a.key)
	if errors.Is(err, ErrNoValue) {
		return []task.Task{}, nil
	}
	if err != nil {
		return []task.Task{}, fmt.Errorf("storage: read %q: %w", a.key, err)
	}

	var tasks []task.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		a.log.Warn("discarding unreadable task list", zap.String("key", a.key), zap.Error(err))
		return []task.Task{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	if err := validate.Var(tasks, "dive"); err != nil {
		a.log.Warn("discarding task list with invalid records", zap.String("key", a.key), zap.Error(err))
		return []task.Task{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	a.log.Debug("loaded tasks", zap.Int("count", len(tasks)))
	return tasks, nil
}

// Save overwrites the slot with the full list.
func (a *Adapter) Save(tasks []task.Task) error {
	if tasks == nil {
		tasks = []task.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("storage: encode tasks: %w", err)
	}
	if err := a.slot.Put(a.key, data); err != nil {
		return fmt.Errorf("storage: write %q: %w", a.key, err)
	}
	return nil
}
