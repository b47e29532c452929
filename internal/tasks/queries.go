package tasks

import (
	"slices"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
)

// All returns a copy of the whole collection in insertion order
func (m *Manager) All() []model.Task {
	return m.filter(func(*model.Task) bool { return true })
}

// Get returns a single task by ID
func (m *Manager) Get(id string) (model.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}
	return m.tasks[i], true
}

// ByCategory returns tasks in the given category
func (m *Manager) ByCategory(c model.Category) []model.Task {
	return m.filter(func(t *model.Task) bool { return t.Category == c })
}

// ByProject returns tasks tagged with the given project
func (m *Manager) ByProject(p model.Project) []model.Task {
	return m.filter(func(t *model.Task) bool { return t.Project == p })
}

// ByLabel returns tasks with the given label
func (m *Manager) ByLabel(l model.Label) []model.Task {
	return m.filter(func(t *model.Task) bool { return t.Label == l })
}

// ByPriority returns tasks with the given priority
func (m *Manager) ByPriority(p model.Priority) []model.Task {
	return m.filter(func(t *model.Task) bool { return t.Priority == p })
}

// ByDate returns tasks scheduled for or due on day
func (m *Manager) ByDate(day calendar.Date) []model.Task {
	return m.filter(func(t *model.Task) bool { return t.IsDueOn(day) })
}

// Overdue returns open tasks whose due date has passed
func (m *Manager) Overdue() []model.Task {
	return m.filter(func(t *model.Task) bool { return t.IsOverdue && !t.Completed })
}

// Recurring returns tasks with a recurrence
func (m *Manager) Recurring() []model.Task {
	return m.filter(func(t *model.Task) bool { return t.Recurring != model.RecurrenceNone })
}

// DatesWithTasks returns every distinct scheduled or due date, ascending
func (m *Manager) DatesWithTasks() []calendar.Date {
	m.mu.Lock()
	defer m.mu.Unlock()

	var dates []calendar.Date
	for _, t := range m.tasks {
		for _, d := range []calendar.Date{t.Date, t.DueDate} {
			if d.IsZero() || slices.ContainsFunc(dates, d.Equal) {
				continue
			}
			dates = append(dates, d)
		}
	}
	slices.SortFunc(dates, compareDates)
	return dates
}

// Day groups the tasks of one calendar day
type Day struct {
	Date  calendar.Date
	Tasks []model.Task
}

// Upcoming returns one entry per day for days days starting at from,
// including days without tasks
func (m *Manager) Upcoming(from calendar.Date, days int) []Day {
	out := make([]Day, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDays(i)
		out = append(out, Day{Date: d, Tasks: m.ByDate(d)})
	}
	return out
}

func (m *Manager) filter(keep func(*model.Task) bool) []model.Task {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []model.Task
	for i := range m.tasks {
		if keep(&m.tasks[i]) {
			out = append(out, m.tasks[i])
		}
	}
	return out
}

func compareDates(a, b calendar.Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// Filter selects tasks. Zero fields match everything.
type Filter struct {
	Category  model.Category
	Project   model.Project
	Label     model.Label
	Priority  model.Priority
	Date      calendar.Date
	Overdue   bool
	Recurring bool
}

// Match reports whether t passes every set field of f
func (f Filter) Match(t *model.Task) bool {
	switch {
	case f.Category != "" && t.Category != f.Category:
		return false
	case f.Project != "" && t.Project != f.Project:
		return false
	case f.Label != "" && t.Label != f.Label:
		return false
	case f.Priority != "" && t.Priority != f.Priority:
		return false
	case !f.Date.IsZero() && !t.IsDueOn(f.Date):
		return false
	case f.Overdue && (!t.IsOverdue || t.Completed):
		return false
	case f.Recurring && t.Recurring == model.RecurrenceNone:
		return false
	}
	return true
}

// Find returns the tasks matching f in collection order
func (m *Manager) Find(f Filter) []model.Task {
	return m.filter(f.Match)
}

// Validate rejects unknown enum values
func (f Filter) Validate() error {
	p := model.Patch{Project: &f.Project, Label: &f.Label, Priority: &f.Priority}
	if f.Category != "" {
		p.Category = &f.Category
	}
	return p.Validate()
}
