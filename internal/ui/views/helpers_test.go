package views

import (
	"context"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/tasks"
)

type memRepo struct {
	tasks []model.Task
}

func (r *memRepo) LoadTasks(context.Context) ([]model.Task, error) {
	return append([]model.Task(nil), r.tasks...), nil
}

func (r *memRepo) SaveTasks(_ context.Context, list []model.Task) error {
	r.tasks = append([]model.Task(nil), list...)
	return nil
}

func newManager(t *testing.T, today string) *tasks.Manager {
	t.Helper()
	now := calendar.MustParse(today).Time(time.Local).Add(9 * time.Hour)
	n := 0
	m := tasks.NewManager(&memRepo{},
		tasks.WithClock(calendar.ClockFunc(func() time.Time { return now })),
		tasks.WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
	m.Load(context.Background())
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlS = tea.KeyMsg{Type: tea.KeyCtrlS}
)

// press feeds keys to a model one at a time and returns the last command
func press(t *testing.T, m tea.Model, keys ...tea.KeyMsg) (tea.Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		m, cmd = m.Update(k)
	}
	return m, cmd
}

// typeText feeds each rune of s as its own key press
func typeText(t *testing.T, m tea.Model, s string) tea.Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

// run executes cmd and feeds its message back into m
func run(t *testing.T, m tea.Model, cmd tea.Cmd) (tea.Model, tea.Msg) {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a command")
	}
	msg := cmd()
	m, _ = m.Update(msg)
	return m, msg
}
