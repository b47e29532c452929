package ui

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/notify"
	"github.com/dori/zendo/internal/tasks"
	"github.com/dori/zendo/internal/ui/theme"
	"github.com/dori/zendo/internal/ui/views"
)

type memRepo struct{ tasks []model.Task }

func (r *memRepo) LoadTasks(context.Context) ([]model.Task, error) { return r.tasks, nil }

func (r *memRepo) SaveTasks(_ context.Context, list []model.Task) error {
	r.tasks = append([]model.Task(nil), list...)
	return nil
}

type memStore struct {
	settings map[string]string
}

func (s *memStore) GetSetting(_ context.Context, key string) (string, bool, error) {
	v, ok := s.settings[key]
	return v, ok, nil
}

func (s *memStore) SetSetting(_ context.Context, key, value string) error {
	s.settings[key] = value
	return nil
}

func (s *memStore) GetNotes(context.Context) ([]model.Note, error) { return nil, nil }

func (s *memStore) CreateNote(context.Context, string) (*model.Note, error) {
	return &model.Note{}, nil
}

func (s *memStore) UpdateNote(context.Context, string, string) (*model.Note, error) {
	return nil, nil
}

func (s *memStore) DeleteNote(context.Context, string) (bool, error) { return false, nil }

type recorder struct{ calls []string }

func (r *recorder) run(name string, args ...string) error {
	r.calls = append(r.calls, name+" "+strings.Join(args, " "))
	return nil
}

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func day(date string) time.Time {
	return calendar.MustParse(date).Time(time.Local).Add(9 * time.Hour)
}

type env struct {
	model *RootModel
	mgr   *tasks.Manager
	clock *testClock
	store *memStore
	rec   *recorder
}

func newEnv(t *testing.T, today string) *env {
	t.Helper()
	t.Cleanup(func() { theme.Apply(theme.DefaultPreferences()) })

	clock := &testClock{now: day(today)}
	n := 0
	mgr := tasks.NewManager(&memRepo{},
		tasks.WithClock(clock),
		tasks.WithIDGenerator(func() string { n++; return fmt.Sprintf("id-%d", n) }),
	)
	mgr.Load(context.Background())

	store := &memStore{settings: map[string]string{}}
	rec := &recorder{}
	m := NewModel(Deps{
		Tasks:    mgr,
		Notes:    store,
		Settings: store,
		Notifier: notify.NewNotifier(true).WithRunner(rec.run),
		Prefs:    theme.DefaultPreferences(),
	})
	return &env{model: &m, mgr: mgr, clock: clock, store: store, rec: rec}
}

func (e *env) update(msg tea.Msg) tea.Cmd {
	next, cmd := e.model.Update(msg)
	m := next.(RootModel)
	e.model = &m
	return cmd
}

func TestUntilMidnight(t *testing.T) {
	now := time.Date(2024, 1, 3, 23, 59, 0, 0, time.Local)
	if got := untilMidnight(now); got != 61*time.Second {
		t.Errorf("Expected 61s, got %v", got)
	}

	now = time.Date(2024, 1, 31, 0, 0, 0, 0, time.Local)
	if got := untilMidnight(now); got < 23*time.Hour || got > 25*time.Hour+time.Second {
		t.Errorf("Expected about a day, got %v", got)
	}
}

func TestViewSwitching(t *testing.T) {
	e := newEnv(t, "2024-01-03")

	e.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("2")})
	if e.model.currentView != ViewUpcoming {
		t.Errorf("Expected upcoming, got %v", e.model.currentView)
	}
	e.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("3")})
	if e.model.currentView != ViewNotes {
		t.Errorf("Expected notes, got %v", e.model.currentView)
	}
	e.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1")})
	if e.model.currentView != ViewTasks {
		t.Errorf("Expected tasks, got %v", e.model.currentView)
	}
}

func TestQuitOnlyOutsideInput(t *testing.T) {
	e := newEnv(t, "2024-01-03")

	e.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if cmd := e.update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}); cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("Expected q to be typed while adding")
		}
	}

	cmd := e.update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Error("Expected ctrl+c to quit")
	}
}

func TestThemeChangePersists(t *testing.T) {
	e := newEnv(t, "2024-01-03")

	cmd := e.update(tea.KeyMsg{Type: tea.KeyCtrlT})
	e.update(cmd())
	if e.store.settings["theme"] != "light" {
		t.Errorf("Expected light mode stored, got %v", e.store.settings)
	}
	if theme.Current.Theme.Prefs.Mode != theme.ModeLight {
		t.Error("Expected light theme applied")
	}

	cmd = e.update(tea.KeyMsg{Type: tea.KeyCtrlY})
	e.update(cmd())
	if e.store.settings["color-scheme"] != "ocean" {
		t.Errorf("Expected ocean stored, got %v", e.store.settings)
	}
	if e.model.statusMsg != "Theme: ocean light" {
		t.Errorf("Unexpected status %q", e.model.statusMsg)
	}
}

func TestMidnightRefreshesOverdue(t *testing.T) {
	e := newEnv(t, "2024-01-02")
	e.mgr.Add("Pay rent", model.CategoryToday, tasks.AddOptions{DueDate: calendar.MustParse("2024-01-02")})
	if len(e.mgr.Overdue()) != 0 {
		t.Fatal("Expected nothing overdue on the due date")
	}

	e.clock.now = day("2024-01-03")
	e.update(midnightMsg{})

	if len(e.mgr.Overdue()) != 1 {
		t.Fatal("Expected the task to become overdue after midnight")
	}

	cmd := e.model.notifyOverdue()
	if cmd == nil {
		t.Fatal("Expected an overdue notification")
	}
	cmd()
	if len(e.rec.calls) != 1 || !strings.Contains(e.rec.calls[0], "1 task is overdue") {
		t.Errorf("Unexpected notifications %v", e.rec.calls)
	}
}

func TestStreakNotification(t *testing.T) {
	e := newEnv(t, "2024-01-02")
	first, _ := e.mgr.Add("Read", model.CategoryRituals, tasks.AddOptions{})
	res, _ := e.mgr.Complete(first.ID, model.MoodNone)
	if cmd := e.update(views.CompletedMsg{Completion: res}); cmd != nil {
		// only the view refresh, no celebration for a one day streak
		e.update(cmd())
	}
	if len(e.rec.calls) != 0 {
		t.Fatalf("Expected no streak notification yet, got %v", e.rec.calls)
	}

	e.clock.now = day("2024-01-03")
	second, _ := e.mgr.Add("Read again", model.CategoryRituals, tasks.AddOptions{})
	res, _ = e.mgr.Complete(second.ID, model.MoodNone)

	streakCmd := e.model.checkStreak()
	if streakCmd == nil {
		t.Fatal("Expected a streak notification")
	}
	streakCmd()
	if len(e.rec.calls) != 1 || !strings.Contains(e.rec.calls[0], "2") {
		t.Errorf("Unexpected notifications %v", e.rec.calls)
	}
	if e.model.checkStreak() != nil {
		t.Error("Expected no repeat notification for the same streak")
	}
	if !strings.HasPrefix(completionStatus(res), "Done: Read again") {
		t.Errorf("Unexpected status %q", completionStatus(res))
	}
}

func TestViewRendersHeader(t *testing.T) {
	e := newEnv(t, "2024-01-03")
	if e.model.View() != "Loading..." {
		t.Error("Expected loading before the first resize")
	}

	e.update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := e.model.View()
	for _, want := range []string{"zendo", "[Tasks]", "0 day streak", "calm dark", "Today (0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderPlant(t *testing.T) {
	th := theme.Build(theme.DefaultPreferences())
	if got := renderPlant(tasks.Growth{}, th); !strings.Contains(got, "·") {
		t.Errorf("Expected a seed for an empty plant, got %q", got)
	}
	got := renderPlant(tasks.Growth{Leaves: 3, Flowers: 2}, th)
	if strings.Count(got, "♣") != 3 || strings.Count(got, "✿") != 2 {
		t.Errorf("Expected 3 leaves and 2 flowers, got %q", got)
	}
}

func TestCompletionStatusShowsSuccessor(t *testing.T) {
	next := model.Task{Date: calendar.MustParse("2024-01-10")}
	got := completionStatus(tasks.Completion{Task: model.Task{ID: "x", Text: "Run"}, Successor: &next})
	if got != "Done: Run (next on 2024-01-10)" {
		t.Errorf("Unexpected status %q", got)
	}
	if completionStatus(tasks.Completion{}) != "" {
		t.Error("Expected empty status for an unknown task")
	}
}

func TestParseView(t *testing.T) {
	tests := map[string]View{"": ViewTasks, "Upcoming": ViewUpcoming, "notes": ViewNotes, "mind-dump": ViewNotes}
	for name, want := range tests {
		got, err := ParseView(name)
		if err != nil || got != want {
			t.Errorf("ParseView(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := ParseView("kanban"); err == nil {
		t.Error("Expected an unknown view to be rejected")
	}
}
