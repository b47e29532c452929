package views

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/tasks"
	"github.com/dori/zendo/internal/ui/theme"
)

// UpcomingDays is how far ahead the upcoming view looks
const UpcomingDays = 7

// row is either a section heading or a task
type row struct {
	heading string
	task    *model.Task
}

// UpcomingView shows overdue tasks followed by the next days, grouped by date
type UpcomingView struct {
	mgr *tasks.Manager

	rows    []row
	overdue []string
	cursor  int // index into rows, always on a task row when any exist
	offset  int

	width  int
	height int
}

// NewUpcomingView creates a new upcoming view
func NewUpcomingView(mgr *tasks.Manager) UpcomingView {
	v := UpcomingView{mgr: mgr}
	v.reload()
	return v
}

// Init reloads the view
func (v UpcomingView) Init() tea.Cmd {
	return func() tea.Msg { return TasksChangedMsg{} }
}

// IsInputMode always returns false, the view takes no text input
func (v UpcomingView) IsInputMode() bool {
	return false
}

// SetSize updates the view dimensions
func (v UpcomingView) SetSize(width, height int) UpcomingView {
	v.width = width
	v.height = height
	return v
}

func (v *UpcomingView) reload() {
	today := v.mgr.Today()

	v.rows = nil
	v.overdue = nil

	if overdue := v.mgr.Overdue(); len(overdue) > 0 {
		v.rows = append(v.rows, row{heading: "Overdue"})
		for i := range overdue {
			v.rows = append(v.rows, row{task: &overdue[i]})
			v.overdue = append(v.overdue, overdue[i].ID)
		}
	}

	for _, day := range v.mgr.Upcoming(today, UpcomingDays) {
		v.rows = append(v.rows, row{heading: dayHeading(day.Date, today)})
		for i := range day.Tasks {
			v.rows = append(v.rows, row{task: &day.Tasks[i]})
		}
	}

	v.cursor = v.nearestTask(min(v.cursor, len(v.rows)-1), 1)
	v.ensureCursorVisible()
}

func dayHeading(d, today calendar.Date) string {
	switch d.DaysSince(today) {
	case 0:
		return "Today"
	case 1:
		return "Tomorrow"
	}
	return d.Time(time.UTC).Format("Mon Jan 2")
}

// nearestTask finds a task row starting at i, searching in dir first
func (v UpcomingView) nearestTask(i, dir int) int {
	for j := i; j >= 0 && j < len(v.rows); j += dir {
		if v.rows[j].task != nil {
			return j
		}
	}
	for j := i; j >= 0 && j < len(v.rows); j -= dir {
		if v.rows[j].task != nil {
			return j
		}
	}
	return 0
}

func (v *UpcomingView) move(dir int) {
	for j := v.cursor + dir; j >= 0 && j < len(v.rows); j += dir {
		if v.rows[j].task != nil {
			v.cursor = j
			return
		}
	}
}

func (v *UpcomingView) ensureCursorVisible() {
	visible := max(1, v.height-2)
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
	v.offset = max(0, min(v.offset, len(v.rows)-visible))
}

func (v UpcomingView) current() (model.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.rows) || v.rows[v.cursor].task == nil {
		return model.Task{}, false
	}
	return *v.rows[v.cursor].task, true
}

// Update handles messages for the upcoming view
func (v UpcomingView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksChangedMsg, CompletedMsg:
		v.reload()

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			v.move(1)
		case "k", "up":
			v.move(-1)
		case "g":
			v.cursor = v.nearestTask(0, 1)
		case "G":
			v.cursor = v.nearestTask(len(v.rows)-1, -1)

		case "t":
			if t, ok := v.current(); ok {
				return v, v.moveToToday([]string{t.ID})
			}
		case "T":
			if len(v.overdue) > 0 {
				return v, v.moveToToday(v.overdue)
			}

		case "tab", " ":
			t, ok := v.current()
			if !ok {
				break
			}
			mgr := v.mgr
			if t.Completed {
				return v, func() tea.Msg {
					mgr.Uncomplete(t.ID)
					return TasksChangedMsg{Status: "Marked as not done"}
				}
			}
			return v, func() tea.Msg {
				res, _ := mgr.Complete(t.ID, model.MoodNone)
				return CompletedMsg{Completion: res}
			}
		}
		v.ensureCursorVisible()
	}

	return v, nil
}

func (v UpcomingView) moveToToday(ids []string) tea.Cmd {
	mgr := v.mgr
	return func() tea.Msg {
		n := mgr.MoveTasksToToday(ids)
		return TasksChangedMsg{Status: fmt.Sprintf("Moved %d task(s) to today", n)}
	}
}

// View renders the upcoming view
func (v UpcomingView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	heading := lipgloss.NewStyle().Foreground(t.Secondary).Bold(true)
	overdueHeading := lipgloss.NewStyle().Foreground(t.Error).Bold(true)

	var b strings.Builder
	end := min(len(v.rows), v.offset+max(1, v.height-2))
	for i := v.offset; i < end; i++ {
		r := v.rows[i]
		if r.task == nil {
			style := heading
			if r.heading == "Overdue" {
				style = overdueHeading
			}
			if i > v.offset {
				b.WriteString("\n")
			}
			b.WriteString(style.Render(r.heading))
			b.WriteString("\n")
			if i+1 >= len(v.rows) || v.rows[i+1].task == nil {
				b.WriteString(styles.Label.Render("  nothing planned"))
				b.WriteString("\n")
			}
			continue
		}
		b.WriteString(renderTask(*r.task, i == v.cursor, v.width))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
