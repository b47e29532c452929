package views

import (
	"strings"
	"testing"

	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/tasks"
)

func TestTasksViewAdd(t *testing.T) {
	mgr := newManager(t, "2024-01-03")
	var v = NewTasksView(mgr).SetSize(80, 20)

	m, _ := press(t, v, keyRunes("a"))
	if !m.(TasksView).IsInputMode() {
		t.Fatal("Expected add mode after a")
	}

	m = typeText(t, m, "Water plants !must")
	m, cmd := press(t, m, keyEnter)
	if m.(TasksView).IsInputMode() {
		t.Error("Expected normal mode after enter")
	}

	m, msg := run(t, m, cmd)
	changed, ok := msg.(TasksChangedMsg)
	if !ok || !strings.HasPrefix(changed.Status, "Added: Water plants") {
		t.Errorf("Unexpected message %#v", msg)
	}

	all := mgr.ByCategory(model.CategoryToday)
	if len(all) != 1 || all[0].Priority != model.PriorityMust {
		t.Fatalf("Expected one must task, got %+v", all)
	}
	if !strings.Contains(m.View(), "Water plants") {
		t.Errorf("Expected the task to render, got:\n%s", m.View())
	}
}

func TestTasksViewEscCancelsAdd(t *testing.T) {
	mgr := newManager(t, "2024-01-03")
	m, _ := press(t, NewTasksView(mgr), keyRunes("a"))
	m = typeText(t, m, "never mind")
	m, cmd := press(t, m, keyEsc)

	if cmd != nil || m.(TasksView).IsInputMode() || len(mgr.All()) != 0 {
		t.Error("Expected esc to discard the input")
	}
}

func TestTasksViewCompleteWithMood(t *testing.T) {
	mgr := newManager(t, "2024-01-03")
	mgr.Add("Stretch", model.CategoryToday, tasks.AddOptions{})
	v := NewTasksView(mgr)

	m, cmd := press(t, v, keyTab)
	if cmd != nil || !m.(TasksView).IsInputMode() {
		t.Fatal("Expected the mood picker to open")
	}
	if !strings.Contains(m.View(), "How did it feel?") {
		t.Errorf("Expected the mood picker to render")
	}

	// none -> great -> good
	m, cmd = press(t, m, keyRunes("j"), keyRunes("j"), keyEnter)
	_, msg := run(t, m, cmd)

	done, ok := msg.(CompletedMsg)
	if !ok {
		t.Fatalf("Expected CompletedMsg, got %#v", msg)
	}
	if !done.Completion.Task.Completed || done.Completion.Task.Mood != model.MoodGood {
		t.Errorf("Unexpected completion %+v", done.Completion.Task)
	}
}

func TestTasksViewTabUncompletes(t *testing.T) {
	mgr := newManager(t, "2024-01-03")
	task, _ := mgr.Add("Stretch", model.CategoryToday, tasks.AddOptions{})
	mgr.Complete(task.ID, model.MoodNone)

	m, cmd := press(t, NewTasksView(mgr), keyTab)
	run(t, m, cmd)

	got, _ := mgr.Get(task.ID)
	if got.Completed {
		t.Error("Expected tab on a done task to reopen it")
	}
}

func TestTasksViewDeleteNeedsConfirmation(t *testing.T) {
	mgr := newManager(t, "2024-01-03")
	mgr.Add("Keep me", model.CategoryToday, tasks.AddOptions{})

	m, cmd := press(t, NewTasksView(mgr), keyRunes("d"), keyRunes("n"))
	if cmd != nil || len(mgr.All()) != 1 {
		t.Fatal("Expected n to keep the task")
	}

	m, cmd = press(t, m, keyRunes("d"), keyRunes("y"))
	run(t, m, cmd)
	if len(mgr.All()) != 0 {
		t.Error("Expected y to delete the task")
	}
}

func TestTasksViewPriorityCycle(t *testing.T) {
	mgr := newManager(t, "2024-01-03")
	task, _ := mgr.Add("Call mom", model.CategoryToday, tasks.AddOptions{})

	var m = press1(t, NewTasksView(mgr), "p")
	got, _ := mgr.Get(task.ID)
	if got.Priority != model.PriorityMust {
		t.Errorf("Expected must, got %q", got.Priority)
	}

	press1(t, m, "p")
	got, _ = mgr.Get(task.ID)
	if got.Priority != model.PriorityShould {
		t.Errorf("Expected should, got %q", got.Priority)
	}
}

func TestTasksViewCategoryTabs(t *testing.T) {
	mgr := newManager(t, "2024-01-03")
	mgr.Add("Meditate", model.CategoryRituals, tasks.AddOptions{})
	mgr.Add("Learn piano", model.CategorySomeday, tasks.AddOptions{})

	v := NewTasksView(mgr)
	if v.Category() != model.CategoryToday {
		t.Fatalf("Expected today first, got %s", v.Category())
	}

	m, _ := press(t, v, keyRunes("l"))
	tv := m.(TasksView)
	if tv.Category() != model.CategoryRituals || !strings.Contains(tv.View(), "Meditate") {
		t.Errorf("Expected rituals tab, got %s", tv.Category())
	}

	m, _ = press(t, tv, keyRunes("h"), keyRunes("h"))
	if got := m.(TasksView).Category(); got != model.CategorySomeday {
		t.Errorf("Expected wrap-around to someday, got %s", got)
	}

	// New tasks land in the visible category
	m, _ = press(t, m, keyRunes("a"))
	m = typeText(t, m, "Write a novel")
	_, cmd := press(t, m, keyEnter)
	cmd()
	if len(mgr.ByCategory(model.CategorySomeday)) != 2 {
		t.Error("Expected the new task in someday")
	}
}

func TestTasksViewMoveToToday(t *testing.T) {
	mgr := newManager(t, "2024-01-03")
	task, _ := mgr.Add("Fix bike", model.CategorySomeday, tasks.AddOptions{})

	m, _ := press(t, NewTasksView(mgr), keyRunes("l"), keyRunes("l"))
	press1(t, m.(TasksView), "t")

	got, _ := mgr.Get(task.ID)
	if got.Category != model.CategoryToday {
		t.Errorf("Expected today, got %s", got.Category)
	}
}

// press1 presses a single key and runs the resulting command
func press1(t *testing.T, m TasksView, k string) TasksView {
	t.Helper()
	next, cmd := press(t, m, keyRunes(k))
	next, _ = run(t, next, cmd)
	return next.(TasksView)
}
