package tasks

import (
	"testing"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
)

func TestFind(t *testing.T) {
	m, _, _ := newTestManager(t, "2024-01-03")
	m.Add("Report !must @work", model.CategoryToday, AddOptions{DueDate: calendar.MustParse("2024-01-01")})
	m.Add("Groceries #errands", model.CategoryToday, AddOptions{Date: calendar.MustParse("2024-01-05")})
	m.Add("Stretch daily", model.CategoryRituals, AddOptions{})
	m.Add("Guitar @personal", model.CategorySomeday, AddOptions{})

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"empty matches all", Filter{}, []string{"Report", "Groceries", "Stretch", "Guitar"}},
		{"category", Filter{Category: model.CategoryToday}, []string{"Report", "Groceries"}},
		{"project", Filter{Project: model.ProjectPersonal}, []string{"Guitar"}},
		{"label", Filter{Label: model.LabelErrands}, []string{"Groceries"}},
		{"priority", Filter{Priority: model.PriorityMust}, []string{"Report"}},
		{"date", Filter{Date: calendar.MustParse("2024-01-05")}, []string{"Groceries"}},
		{"overdue", Filter{Overdue: true}, []string{"Report"}},
		{"recurring", Filter{Recurring: true}, []string{"Stretch"}},
		{"combined", Filter{Category: model.CategoryToday, Overdue: true}, []string{"Report"}},
		{"no match", Filter{Category: model.CategoryRituals, Project: model.ProjectWork}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Find(tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %d tasks: %+v", tt.want, len(got), got)
			}
			for i, task := range got {
				if task.Text != tt.want[i] {
					t.Errorf("Position %d: expected %q, got %q", i, tt.want[i], task.Text)
				}
			}
		})
	}
}

func TestFilterValidate(t *testing.T) {
	if err := (Filter{Category: model.CategoryToday, Priority: model.PriorityNice}).Validate(); err != nil {
		t.Errorf("Expected valid filter, got %v", err)
	}

	bad := []Filter{
		{Category: "later"},
		{Project: "chores"},
		{Label: "urgent"},
		{Priority: "high"},
	}
	for _, f := range bad {
		if err := f.Validate(); err == nil {
			t.Errorf("Expected %+v to be rejected", f)
		}
	}
}
