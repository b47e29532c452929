package model

import (
	"time"

	"github.com/dori/zendo/internal/calendar"
)

// Patch is a partial update of a task. A nil field is left untouched, a
// pointer to the zero value clears the field. ID and CreatedAt are immutable
// and therefore absent.
type Patch struct {
	Text        *string        `json:"text,omitempty"`
	Why         *string        `json:"why,omitempty"`
	Completed   *bool          `json:"completed,omitempty"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
	Mood        *Mood          `json:"mood,omitempty"`
	Category    *Category      `json:"category,omitempty"`
	Date        *calendar.Date `json:"date,omitempty"`
	DueDate     *calendar.Date `json:"dueDate,omitempty"`
	Priority    *Priority      `json:"priority,omitempty"`
	Project     *Project       `json:"project,omitempty"`
	Label       *Label         `json:"label,omitempty"`
	Recurring   *Recurrence    `json:"recurring,omitempty"`
	IsOverdue   *bool          `json:"isOverdue,omitempty"`
}

// Apply shallow-merges the set fields onto t. It does not re-establish the
// lifecycle invariants; callers own that.
func (p Patch) Apply(t *Task) {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Why != nil {
		t.Why = *p.Why
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.CompletedAt != nil {
		t.CompletedAt = *p.CompletedAt
	}
	if p.Mood != nil {
		t.Mood = *p.Mood
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Date != nil {
		t.Date = *p.Date
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Project != nil {
		t.Project = *p.Project
	}
	if p.Label != nil {
		t.Label = *p.Label
	}
	if p.Recurring != nil {
		t.Recurring = *p.Recurring
	}
	if p.IsOverdue != nil {
		t.IsOverdue = *p.IsOverdue
	}
}

// Validate checks every set enum field
func (p Patch) Validate() error {
	switch {
	case p.Mood != nil && !p.Mood.Valid():
		return invalidValue("mood", string(*p.Mood))
	case p.Category != nil && !p.Category.Valid():
		return invalidValue("category", string(*p.Category))
	case p.Priority != nil && !p.Priority.Valid():
		return invalidValue("priority", string(*p.Priority))
	case p.Project != nil && !p.Project.Valid():
		return invalidValue("project", string(*p.Project))
	case p.Label != nil && !p.Label.Valid():
		return invalidValue("label", string(*p.Label))
	case p.Recurring != nil && !p.Recurring.Valid():
		return invalidValue("recurring", string(*p.Recurring))
	}
	return nil
}
