package parser

import (
	"strings"
	"testing"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
)

// 2024-01-03 is a Wednesday
var wednesday = calendar.MustParse("2024-01-03")

func TestParsePlainText(t *testing.T) {
	tests := []string{
		"Buy milk",
		"  Call mom  ",
		"Read   two   chapters",
		"",
	}

	for _, in := range tests {
		got := ParseAt(in, wednesday)
		want := Result{Text: strings.TrimSpace(in)}
		if got != want {
			t.Errorf("ParseAt(%q) = %+v, want %+v", in, got, want)
		}
	}
}

func TestParsePriority(t *testing.T) {
	tests := []struct {
		in       string
		priority model.Priority
		text     string
	}{
		{"Finish report !important", model.PriorityMust, "Finish report"},
		{"!must Pay rent", model.PriorityMust, "Pay rent"},
		{"Water plants !should", model.PriorityShould, "Water plants"},
		{"Bake bread !nice", model.PriorityNice, "Bake bread"},
		{"Call !nice bank !must", model.PriorityMust, "Call !nice bank"},
		{"Shout !IMPORTANT", model.PriorityNone, "Shout !IMPORTANT"},
	}

	for _, tt := range tests {
		got := ParseAt(tt.in, wednesday)
		if got.Priority != tt.priority {
			t.Errorf("ParseAt(%q).Priority = %q, want %q", tt.in, got.Priority, tt.priority)
		}
		if got.Text != tt.text {
			t.Errorf("ParseAt(%q).Text = %q, want %q", tt.in, got.Text, tt.text)
		}
	}
}

func TestParseProjectAndLabel(t *testing.T) {
	got := ParseAt("Plan sprint @WORK #Deep-Work", wednesday)

	if got.Project != model.ProjectWork {
		t.Errorf("Expected project work, got %q", got.Project)
	}
	if got.Label != model.LabelDeepWork {
		t.Errorf("Expected label deep-work, got %q", got.Label)
	}
	if got.Text != "Plan sprint" {
		t.Errorf("Expected text 'Plan sprint', got %q", got.Text)
	}

	got = ParseAt("Groceries @side-hustle #quick-win #errands", wednesday)
	if got.Project != model.ProjectSideHustle {
		t.Errorf("Expected project side-hustle, got %q", got.Project)
	}
	// Only the first label is taken, the second stays in the text
	if got.Label != model.LabelQuickWin {
		t.Errorf("Expected label quick-win, got %q", got.Label)
	}
	if got.Text != "Groceries #errands" {
		t.Errorf("Expected remaining label in text, got %q", got.Text)
	}
}

func TestParseSkipsUnicodeFoldedTokens(t *testing.T) {
	// ſ (long s) case-folds to s, but lowercases to itself
	tests := []struct {
		in   string
		want Result
	}{
		{"Call mom @perſonal", Result{Text: "Call mom @perſonal"}},
		{"Call mom @perſonal @work", Result{Text: "Call mom @perſonal", Project: model.ProjectWork}},
		{"Run #errandſ #focus", Result{Text: "Run #errandſ", Label: model.LabelFocus}},
		{"Rest by ſunday", Result{Text: "Rest by ſunday"}},
		{"Rest next ſaturday tomorrow", Result{Text: "Rest next ſaturday", Date: wednesday.AddDays(1)}},
	}

	for _, tt := range tests {
		got := ParseAt(tt.in, wednesday)
		if got != tt.want {
			t.Errorf("ParseAt(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if !got.Project.Valid() || !got.Label.Valid() {
			t.Errorf("ParseAt(%q) produced an unknown value: %+v", tt.in, got)
		}
	}
}

func TestParseCombined(t *testing.T) {
	got := ParseAt("Submit report by Friday !important @work #deep-work", wednesday)

	want := Result{
		Text:     "Submit report",
		DueDate:  calendar.MustParse("2024-01-05"),
		Priority: model.PriorityMust,
		Project:  model.ProjectWork,
		Label:    model.LabelDeepWork,
	}
	if got != want {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestParseDueAndScheduledTogether(t *testing.T) {
	got := ParseAt("Draft slides tomorrow by monday", wednesday)

	if got.DueDate.String() != "2024-01-08" {
		t.Errorf("Expected due date 2024-01-08, got %s", got.DueDate)
	}
	if got.Date.String() != "2024-01-04" {
		t.Errorf("Expected scheduled date 2024-01-04, got %s", got.Date)
	}
	if got.Text != "Draft slides" {
		t.Errorf("Expected text 'Draft slides', got %q", got.Text)
	}
}

func TestParseByTodayIsConsumedBeforeScheduledScan(t *testing.T) {
	got := ParseAt("Send invoice by today", wednesday)

	if !got.DueDate.Equal(wednesday) {
		t.Errorf("Expected due today, got %s", got.DueDate)
	}
	if !got.Date.IsZero() {
		t.Errorf("Scheduled date should not be set from an already consumed token, got %s", got.Date)
	}
}

func TestParseNextWeekday(t *testing.T) {
	got := ParseAt("Dentist next Wednesday", wednesday)
	if got.Date.String() != "2024-01-10" {
		t.Errorf("Expected 2024-01-10, got %s", got.Date)
	}
	if got.Text != "Dentist" {
		t.Errorf("Expected text 'Dentist', got %q", got.Text)
	}
}

func TestParseSameWeekdayNeverReturnsToday(t *testing.T) {
	friday := calendar.MustParse("2024-01-05")
	week := calendar.MustParse("2024-01-12")

	if got := ResolveRelative("friday", friday); !got.Equal(week) {
		t.Errorf("ResolveRelative(friday) on a Friday = %s, want %s", got, week)
	}
	if got := ParseAt("do X by friday", friday); !got.DueDate.Equal(week) {
		t.Errorf("Due date = %s, want %s", got.DueDate, week)
	}
	if got := ParseAt("do X next friday", friday); !got.Date.Equal(week) {
		t.Errorf("Date = %s, want %s", got.Date, week)
	}
}

func TestParseRecurrence(t *testing.T) {
	tests := []struct {
		in   string
		want model.Recurrence
		text string
	}{
		{"Meditate every day", model.RecurrenceDaily, "Meditate"},
		{"Journal daily", model.RecurrenceDaily, "Journal"},
		{"Review week Weekly", model.RecurrenceWeekly, "Review week"},
		{"Call parents every week", model.RecurrenceWeekly, "Call parents"},
		{"Pay rent every month", model.RecurrenceMonthly, "Pay rent"},
		{"Budget monthly @personal", model.RecurrenceMonthly, "Budget"},
	}

	for _, tt := range tests {
		got := ParseAt(tt.in, wednesday)
		if got.Recurring != tt.want {
			t.Errorf("ParseAt(%q).Recurring = %q, want %q", tt.in, got.Recurring, tt.want)
		}
		if got.Text != tt.text {
			t.Errorf("ParseAt(%q).Text = %q, want %q", tt.in, got.Text, tt.text)
		}
	}
}

func TestResolveRelative(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"today", "2024-01-03"},
		{"Tomorrow", "2024-01-04"},
		{"thursday", "2024-01-04"},
		{"tuesday", "2024-01-09"},
		{"wednesday", "2024-01-10"},
		{"next  sunday", "2024-01-07"},
		{"someday", "2024-01-03"},
		{"", "2024-01-03"},
	}

	for _, tt := range tests {
		if got := ResolveRelative(tt.token, wednesday).String(); got != tt.want {
			t.Errorf("ResolveRelative(%q) = %s, want %s", tt.token, got, tt.want)
		}
	}
}

func TestResolveRelativeAcrossYearEnd(t *testing.T) {
	nye := calendar.MustParse("2024-12-31") // Tuesday
	if got := ResolveRelative("monday", nye).String(); got != "2025-01-06" {
		t.Errorf("Expected 2025-01-06, got %s", got)
	}
	if got := ResolveRelative("tomorrow", nye).String(); got != "2025-01-01" {
		t.Errorf("Expected 2025-01-01, got %s", got)
	}
}
