package tasks

import (
	"slices"

	"github.com/dori/zendo/internal/calendar"
)

const (
	maxLeaves  = 5
	maxFlowers = 3
)

// ConsistencyStreak counts consecutive calendar days with at least one
// completion, walking back from the most recent completion day. It is 0 when
// nothing was ever completed. Days are taken in the clock's zone, the same
// one that decides today.
func (m *Manager) ConsistencyStreak() int {
	loc := m.clock.Now().Location()

	m.mu.Lock()
	days := make([]calendar.Date, 0, len(m.tasks))
	for _, t := range m.tasks {
		if t.Completed && !t.CompletedAt.IsZero() {
			days = append(days, t.CompletionDay(loc))
		}
	}
	m.mu.Unlock()

	return streak(days)
}

func streak(days []calendar.Date) int {
	if len(days) == 0 {
		return 0
	}
	slices.SortFunc(days, compareDates)

	count := 1
	anchor := days[len(days)-1]
	for i := len(days) - 2; i >= 0; i-- {
		switch anchor.DaysSince(days[i]) {
		case 0:
			// same day as the anchor
		case 1:
			count++
			anchor = days[i]
		default:
			return count
		}
	}
	return count
}

// Growth is the plant indicator: leaves grow with the number of tasks,
// flowers with the streak
type Growth struct {
	Leaves  int `json:"leaves"`
	Flowers int `json:"flowers"`
	Streak  int `json:"streak"`
}

// Growth derives the plant indicator from the collection
func (m *Manager) Growth() Growth {
	total := len(m.All())
	s := m.ConsistencyStreak()
	return Growth{
		Leaves:  min(maxLeaves, total/2),
		Flowers: min(maxFlowers, s/2),
		Streak:  s,
	}
}

// Stats summarizes the collection
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Overdue   int `json:"overdue"`
	Recurring int `json:"recurring"`
}

// Stats counts tasks by state
func (m *Manager) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	var s Stats
	for _, t := range m.tasks {
		s.Total++
		if t.Completed {
			s.Completed++
		}
		if t.IsOverdue && !t.Completed {
			s.Overdue++
		}
		if t.Recurring != "" {
			s.Recurring++
		}
	}
	return s
}
