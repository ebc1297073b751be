// Package view projects the task list onto a printable page. Nothing here
// touches the terminal, so pages can be built and rendered in tests.
package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"today/internal/task"
)

const EmptyStateText = "Nothing to do yet. Add a task to get started."

type Row struct {
	ID        int64
	Text      string
	Completed bool
	Selected  bool
}

type Page struct {
	Date      string
	Filter    task.Filter
	Rows      []Row
	ItemsLeft int
	// ShowEmpty is set only when the whole list is empty, never because the
	// current filter happens to hide everything.
	ShowEmpty bool
}

// Build derives the page for the full task list under filter. cursor indexes
// the visible rows; out-of-range values select nothing.
func Build(tasks []task.Task, filter task.Filter, cursor int) Page {
	visible := task.Visible(tasks, filter)
	p := Page{
		Filter:    filter,
		Rows:      make([]Row, 0, len(visible)),
		ItemsLeft: task.ItemsLeft(tasks),
		ShowEmpty: len(tasks) == 0,
	}
	for i, t := range visible {
		p.Rows = append(p.Rows, Row{
			ID:        t.ID,
			Text:      t.Text,
			Completed: t.Completed,
			Selected:  i == cursor,
		})
	}
	return p
}

func ItemsLeftText(n int) string {
	return fmt.Sprintf("%d items left", n)
}

var (
	dateStyle      = lipgloss.NewStyle().Bold(true)
	doneStyle      = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	selectedStyle  = lipgloss.NewStyle().Bold(true)
	emptyStyle     = lipgloss.NewStyle().Italic(true).Faint(true)
	activeFilter   = lipgloss.NewStyle().Bold(true).Underline(true)
	inactiveFilter = lipgloss.NewStyle().Faint(true)
)

func Render(p Page) string {
	var b strings.Builder

	if p.Date != "" {
		b.WriteString(dateStyle.Render(p.Date))
		b.WriteString("\n\n")
	}

	if p.ShowEmpty {
		b.WriteString(emptyStyle.Render(EmptyStateText))
		b.WriteString("\n")
	}
	for _, r := range p.Rows {
		b.WriteString(renderRow(r))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(ItemsLeftText(p.ItemsLeft))
	b.WriteString("   ")
	b.WriteString(renderFilters(p.Filter))
	return b.String()
}

func renderRow(r Row) string {
	cursor := " "
	if r.Selected {
		cursor = ">"
	}
	checkbox := "[ ]"
	text := r.Text
	if r.Completed {
		checkbox = "[x]"
		text = doneStyle.Render(text)
	}
	line := fmt.Sprintf("%s %s %s", cursor, checkbox, text)
	if r.Selected {
		return selectedStyle.Render(line)
	}
	return line
}

func renderFilters(current task.Filter) string {
	parts := make([]string, 0, len(task.Filters()))
	for _, f := range task.Filters() {
		label := filterLabel(f)
		if f == current {
			parts = append(parts, activeFilter.Render("["+label+"]"))
			continue
		}
		parts = append(parts, inactiveFilter.Render(label))
	}
	return strings.Join(parts, " ")
}

func filterLabel(f task.Filter) string {
	switch f {
	case task.FilterActive:
		return "Active"
	case task.FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
