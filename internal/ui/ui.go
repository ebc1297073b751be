package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"today/internal/config"
	"today/internal/task"
	"today/internal/view"
)

type mode int

const (
	modeList mode = iota
	modeAdd
)

type Model struct {
	ctrl       *Controller
	cfg        config.Config
	keys       KeyMap
	help       help.Model
	log        *zap.Logger
	now        func() time.Time
	cursor     int
	mode       mode
	input      textinput.Model
	status     string
	confirmDel bool
	pendingDel *task.Task
}

// NewModel builds the UI model. now drives the date header; nil means
// time.Now.
func NewModel(ctrl *Controller, cfg config.Config, log *zap.Logger, now func() time.Time) Model {
	if log == nil {
		log = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}

	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.CharLimit = 256
	ti.Width = 40

	return Model{
		ctrl:   ctrl,
		cfg:    cfg,
		keys:   newKeyMap(cfg.Keys),
		help:   help.New(),
		log:    log,
		now:    now,
		cursor: 0,
		mode:   modeList,
		input:  ti,
		status: fmt.Sprintf("Press '%s' to add a task.", label(cfg.Keys.Add)),
	}
}

func Run(ctrl *Controller, cfg config.Config, log *zap.Logger) error {
	program := tea.NewProgram(NewModel(ctrl, cfg, log, nil), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeAdd {
		return m.updateAddMode(msg)
	}
	return m.updateListMode(msg)
}

func (m Model) updateAddMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Confirm), key.Matches(msg, m.keys.Submit):
		return m.submit()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// submit funnels both the confirm key and the explicit submit key into
// Controller.AddTask. Blank input leaves everything as it was.
func (m Model) submit() (tea.Model, tea.Cmd) {
	added, err := m.ctrl.AddTask(m.input.Value())
	if !added && err == nil {
		return m, nil
	}
	// The task stays in the list even if the save failed.
	m.input.SetValue("")
	m.input.Blur()
	m.mode = modeList
	m.status = "Added task"
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
	}
	visible := m.ctrl.Visible()
	m.cursor = clampCursor(len(visible)-1, len(visible))
	return m, nil
}

func (m Model) updateListMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.ctrl.Visible()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.cursor = clampCursor(m.cursor+1, len(visible))
	case key.Matches(msg, m.keys.Up):
		m.cursor = clampCursor(m.cursor-1, len(visible))
	case key.Matches(msg, m.keys.Add):
		m.mode = modeAdd
		m.status = "Type a task and press Enter"
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Toggle):
		if len(visible) == 0 {
			return m, nil
		}
		t := visible[clampCursor(m.cursor, len(visible))]
		if err := m.ctrl.ToggleComplete(t.ID, !t.Completed); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Toggled task"
		m.cursor = clampCursor(m.cursor, len(m.ctrl.Visible()))
	case key.Matches(msg, m.keys.Delete):
		if len(visible) == 0 {
			return m, nil
		}
		t := visible[clampCursor(m.cursor, len(visible))]
		if m.cfg.ConfirmDelete {
			m.confirmDel = true
			m.pendingDel = &t
			m.status = fmt.Sprintf("Delete \"%s\"? y/n", t.Text)
			return m, nil
		}
		return m.deleteTask(t.ID), nil
	case key.Matches(msg, m.keys.ClearCompleted):
		if err := m.ctrl.ClearCompleted(); err != nil {
			m.status = fmt.Sprintf("save failed: %v", err)
			return m, nil
		}
		m.status = "Cleared completed tasks"
		m.cursor = clampCursor(m.cursor, len(m.ctrl.Visible()))
	case key.Matches(msg, m.keys.FilterAll):
		return m.setFilter(task.FilterAll), nil
	case key.Matches(msg, m.keys.FilterActive):
		return m.setFilter(task.FilterActive), nil
	case key.Matches(msg, m.keys.FilterCompleted):
		return m.setFilter(task.FilterCompleted), nil
	case key.Matches(msg, m.keys.NextFilter):
		return m.setFilter(m.ctrl.Filter().Next()), nil
	}
	return m, nil
}

func (m Model) setFilter(f task.Filter) Model {
	if !m.ctrl.SetFilter(f) {
		return m
	}
	m.cursor = 0
	m.status = fmt.Sprintf("Showing %s tasks", f)
	m.log.Debug("filter changed", zap.String("filter", string(f)))
	return m
}

func (m Model) updateDeleteConfirm(answer string) (tea.Model, tea.Cmd) {
	switch answer {
	case "ctrl+c":
		return m, tea.Quit
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		id := m.pendingDel.ID
		m.confirmDel = false
		m.pendingDel = nil
		return m.deleteTask(id), nil
	default:
		return m, nil
	}
}

func (m Model) deleteTask(id int64) Model {
	if err := m.ctrl.DeleteTask(id); err != nil {
		m.status = fmt.Sprintf("delete failed: %v", err)
		return m
	}
	m.status = "Deleted task"
	m.cursor = clampCursor(m.cursor, len(m.ctrl.Visible()))
	return m
}

func (m Model) View() string {
	var b strings.Builder

	page := m.ctrl.Page(m.cursor)
	page.Date = m.now().Format(m.cfg.DateLayout)
	b.WriteString(view.Render(page))
	b.WriteString("\n\n")

	if m.mode == modeAdd {
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	}

	b.WriteString(m.status)
	b.WriteString("\n")
	if m.mode == modeAdd {
		b.WriteString(m.help.View(inputKeys{m.keys}))
	} else {
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
