package model

import (
	"time"

	"github.com/dori/zendo/internal/calendar"
)

// Category is the bucket that decides which view surfaces a task
type Category string

const (
	CategoryToday   Category = "today"
	CategoryRituals Category = "rituals"
	CategorySomeday Category = "someday"
)

// Categories lists every category in display order
var Categories = []Category{CategoryToday, CategoryRituals, CategorySomeday}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryToday, CategoryRituals, CategorySomeday:
		return true
	}
	return false
}

// Priority represents task priority level. The empty value means none.
type Priority string

const (
	PriorityNone   Priority = ""
	PriorityMust   Priority = "must"
	PriorityShould Priority = "should"
	PriorityNice   Priority = "nice"
)

// Valid reports whether p is a known priority or empty
func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityMust, PriorityShould, PriorityNice:
		return true
	}
	return false
}

// Weight returns a numeric weight for sorting by priority
func (p Priority) Weight() int {
	switch p {
	case PriorityMust:
		return 3
	case PriorityShould:
		return 2
	case PriorityNice:
		return 1
	default:
		return 0
	}
}

// Next cycles none -> must -> should -> nice -> none
func (p Priority) Next() Priority {
	switch p {
	case PriorityNone:
		return PriorityMust
	case PriorityMust:
		return PriorityShould
	case PriorityShould:
		return PriorityNice
	default:
		return PriorityNone
	}
}

// Mood is the feeling recorded alongside a completion
type Mood string

const (
	MoodNone        Mood = ""
	MoodGreat       Mood = "great"
	MoodGood        Mood = "good"
	MoodNeutral     Mood = "neutral"
	MoodDifficult   Mood = "difficult"
	MoodChallenging Mood = "challenging"
	MoodEnergizing  Mood = "energizing"
	MoodDraining    Mood = "draining"
	MoodCreative    Mood = "creative"
)

// Moods lists every mood in display order
var Moods = []Mood{
	MoodGreat, MoodGood, MoodNeutral, MoodDifficult,
	MoodChallenging, MoodEnergizing, MoodDraining, MoodCreative,
}

// Valid reports whether m is a known mood or empty
func (m Mood) Valid() bool {
	if m == MoodNone {
		return true
	}
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// Task represents a single intention
type Task struct {
	ID          string        `json:"id"`
	Text        string        `json:"text"`
	Why         string        `json:"why,omitempty"`
	Completed   bool          `json:"completed"`
	CreatedAt   time.Time     `json:"createdAt"`
	CompletedAt time.Time     `json:"completedAt,omitzero"`
	Mood        Mood          `json:"mood,omitempty"`
	Category    Category      `json:"category"`
	Date        calendar.Date `json:"date,omitzero"`    // Scheduled for
	DueDate     calendar.Date `json:"dueDate,omitzero"` // Deadline
	Priority    Priority      `json:"priority,omitempty"`
	Project     Project       `json:"project,omitempty"`
	Label       Label         `json:"label,omitempty"`
	Recurring   Recurrence    `json:"recurring,omitempty"`

	// Derived from DueDate and the current date, never authoritative
	IsOverdue bool `json:"isOverdue"`
}

// OverdueOn reports whether the task counts as overdue on the given day
func (t *Task) OverdueOn(today calendar.Date) bool {
	if t.Completed || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.Before(today)
}

// IsDueOn returns true if the task is scheduled for or due on day
func (t *Task) IsDueOn(day calendar.Date) bool {
	return (!t.Date.IsZero() && t.Date.Equal(day)) ||
		(!t.DueDate.IsZero() && t.DueDate.Equal(day))
}

// CompletionDay returns the calendar day of the completion in loc, or the
// zero date for an open task
func (t *Task) CompletionDay(loc *time.Location) calendar.Date {
	if !t.Completed {
		return calendar.Date{}
	}
	return calendar.FromTime(t.CompletedAt.In(loc))
}
