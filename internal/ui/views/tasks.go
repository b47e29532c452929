package views

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/tasks"
	"github.com/dori/zendo/internal/ui/theme"
)

// TasksMode represents the current input mode of the tasks view
type TasksMode int

const (
	TasksModeNormal TasksMode = iota
	TasksModeAdd
	TasksModeEdit
	TasksModeWhy
	TasksModeMood
	TasksModeConfirmDelete
)

// TasksView lists the tasks of one category at a time
type TasksView struct {
	mgr *tasks.Manager

	category int // index into model.Categories
	tasks    []model.Task
	cursor   int
	offset   int

	mode       TasksMode
	input      textinput.Model
	moodCursor int
	targetID   string

	width  int
	height int
}

// NewTasksView creates a new tasks view
func NewTasksView(mgr *tasks.Manager) TasksView {
	ti := textinput.New()
	ti.Placeholder = "New task..."
	ti.CharLimit = 256

	v := TasksView{mgr: mgr, input: ti}
	v.reload()
	return v
}

// Init reloads the category from the manager
func (v TasksView) Init() tea.Cmd {
	return func() tea.Msg { return TasksChangedMsg{} }
}

// Category returns the category being shown
func (v TasksView) Category() model.Category {
	return model.Categories[v.category]
}

// IsInputMode returns true when the view is capturing keys
func (v TasksView) IsInputMode() bool {
	return v.mode != TasksModeNormal
}

// SetSize updates the view dimensions
func (v TasksView) SetSize(width, height int) TasksView {
	v.width = width
	v.height = height
	v.input.Width = width - 6
	return v
}

// reload re-reads the current category. Open tasks come first.
func (v *TasksView) reload() {
	list := v.mgr.ByCategory(v.Category())
	slices.SortStableFunc(list, func(a, b model.Task) int {
		switch {
		case a.Completed == b.Completed:
			return 0
		case a.Completed:
			return 1
		default:
			return -1
		}
	})
	v.tasks = list
	if v.cursor >= len(v.tasks) {
		v.cursor = max(0, len(v.tasks)-1)
	}
	v.ensureCursorVisible()
}

func (v TasksView) visibleTaskCount() int {
	// tabs, blank line, input and why line
	return max(1, v.height-6)
}

func (v *TasksView) ensureCursorVisible() {
	visible := v.visibleTaskCount()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visible {
		v.offset = v.cursor - visible + 1
	}
	v.offset = max(0, min(v.offset, len(v.tasks)-visible))
}

func (v TasksView) current() (model.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return model.Task{}, false
	}
	return v.tasks[v.cursor], true
}

// Update handles messages for the tasks view
func (v TasksView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TasksChangedMsg, CompletedMsg:
		v.reload()
		return v, nil

	case tea.KeyMsg:
		switch v.mode {
		case TasksModeAdd, TasksModeEdit, TasksModeWhy:
			return v.handleInputMode(msg)
		case TasksModeMood:
			return v.handleMoodPicker(msg)
		case TasksModeConfirmDelete:
			return v.handleDeleteConfirm(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	if v.mode == TasksModeAdd || v.mode == TasksModeEdit || v.mode == TasksModeWhy {
		var cmd tea.Cmd
		v.input, cmd = v.input.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v TasksView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "g":
		v.cursor = 0
	case "G":
		v.cursor = max(0, len(v.tasks)-1)

	case "l", "right", "]":
		v.category = (v.category + 1) % len(model.Categories)
		v.cursor, v.offset = 0, 0
		v.reload()
	case "h", "left", "[":
		v.category = (v.category + len(model.Categories) - 1) % len(model.Categories)
		v.cursor, v.offset = 0, 0
		v.reload()

	case "a":
		return v.startInput(TasksModeAdd, "", "", "New task...")

	case "e", "enter":
		if t, ok := v.current(); ok {
			return v.startInput(TasksModeEdit, t.ID, t.Text, "Task text")
		}
	case "w":
		if t, ok := v.current(); ok {
			return v.startInput(TasksModeWhy, t.ID, t.Why, "Why does this matter?")
		}

	case "tab", " ":
		t, ok := v.current()
		if !ok {
			break
		}
		if t.Completed {
			return v, v.uncomplete(t.ID)
		}
		v.mode = TasksModeMood
		v.moodCursor = 0
		v.targetID = t.ID

	case "p":
		if t, ok := v.current(); ok {
			next := t.Priority.Next()
			return v, v.update(t.ID, model.Patch{Priority: &next}, "Priority: "+priorityName(next))
		}

	case "t":
		if t, ok := v.current(); ok {
			return v, v.moveToToday(t.ID)
		}

	case "d", "x":
		if t, ok := v.current(); ok {
			v.mode = TasksModeConfirmDelete
			v.targetID = t.ID
		}
	}

	v.ensureCursorVisible()
	return v, nil
}

func (v TasksView) startInput(mode TasksMode, id, value, placeholder string) (tea.Model, tea.Cmd) {
	v.mode = mode
	v.targetID = id
	v.input.SetValue(value)
	v.input.Placeholder = placeholder
	v.input.CursorEnd()
	v.input.Focus()
	return v, textinput.Blink
}

func (v TasksView) handleInputMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		value := strings.TrimSpace(v.input.Value())
		mode := v.mode
		v.mode = TasksModeNormal
		v.input.Blur()
		v.input.Reset()

		switch mode {
		case TasksModeAdd:
			if value == "" {
				return v, nil
			}
			return v, v.add(value)
		case TasksModeEdit:
			if value == "" {
				return v, nil
			}
			return v, v.update(v.targetID, model.Patch{Text: &value}, "Task updated")
		case TasksModeWhy:
			return v, v.update(v.targetID, model.Patch{Why: &value}, "Why updated")
		}
		return v, nil

	case "esc":
		v.mode = TasksModeNormal
		v.input.Blur()
		v.input.Reset()
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// moodChoices is "no mood" followed by every mood
func moodChoices() []model.Mood {
	return append([]model.Mood{model.MoodNone}, model.Moods...)
}

func (v TasksView) handleMoodPicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := moodChoices()
	switch msg.String() {
	case "j", "down":
		v.moodCursor = (v.moodCursor + 1) % len(choices)
	case "k", "up":
		v.moodCursor = (v.moodCursor + len(choices) - 1) % len(choices)
	case "enter", "tab", " ":
		v.mode = TasksModeNormal
		return v, v.complete(v.targetID, choices[v.moodCursor])
	case "esc", "q":
		v.mode = TasksModeNormal
	}
	return v, nil
}

func (v TasksView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = TasksModeNormal
		return v, v.delete(v.targetID)
	case "n", "N", "esc":
		v.mode = TasksModeNormal
		v.targetID = ""
	}
	return v, nil
}

// Commands

func (v TasksView) add(text string) tea.Cmd {
	mgr, category := v.mgr, v.Category()
	return func() tea.Msg {
		t, ok := mgr.Add(text, category, tasks.AddOptions{})
		if !ok {
			return TasksChangedMsg{}
		}
		return TasksChangedMsg{Status: "Added: " + t.Text}
	}
}

func (v TasksView) update(id string, p model.Patch, status string) tea.Cmd {
	mgr := v.mgr
	return func() tea.Msg {
		if _, ok := mgr.Update(id, p); !ok {
			return ErrorMsg{Err: fmt.Errorf("task %s no longer exists", id)}
		}
		return TasksChangedMsg{Status: status}
	}
}

func (v TasksView) complete(id string, mood model.Mood) tea.Cmd {
	mgr := v.mgr
	return func() tea.Msg {
		res, ok := mgr.Complete(id, mood)
		if !ok {
			return TasksChangedMsg{}
		}
		return CompletedMsg{Completion: res}
	}
}

func (v TasksView) uncomplete(id string) tea.Cmd {
	mgr := v.mgr
	return func() tea.Msg {
		mgr.Uncomplete(id)
		return TasksChangedMsg{Status: "Marked as not done"}
	}
}

func (v TasksView) moveToToday(id string) tea.Cmd {
	mgr := v.mgr
	return func() tea.Msg {
		if mgr.MoveTasksToToday([]string{id}) == 0 {
			return TasksChangedMsg{}
		}
		return TasksChangedMsg{Status: "Moved to today"}
	}
}

func (v TasksView) delete(id string) tea.Cmd {
	mgr := v.mgr
	return func() tea.Msg {
		if !mgr.Delete(id) {
			return TasksChangedMsg{}
		}
		return TasksChangedMsg{Status: "Task deleted"}
	}
}

// View renders the tasks view
func (v TasksView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder

	// Category tabs
	var tabs []string
	for i, c := range model.Categories {
		label := fmt.Sprintf("%s (%d)", categoryTitle(c), v.openCount(c))
		if i == v.category {
			tabs = append(tabs, styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, styles.Tab.Render(label))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	switch v.mode {
	case TasksModeAdd, TasksModeEdit, TasksModeWhy:
		b.WriteString(styles.Input.Render(v.input.View()))
		b.WriteString("\n\n")
	case TasksModeMood:
		b.WriteString(v.renderMoodPicker())
		return b.String()
	case TasksModeConfirmDelete:
		if task, ok := v.current(); ok {
			warn := lipgloss.NewStyle().Foreground(t.Error).Bold(true)
			b.WriteString(warn.Render(fmt.Sprintf("Delete %q? (y/n)", task.Text)))
			b.WriteString("\n\n")
		}
	}

	if len(v.tasks) == 0 {
		b.WriteString(styles.Label.Render("  Nothing here. Press a to add a task."))
		return b.String()
	}

	end := min(len(v.tasks), v.offset+v.visibleTaskCount())
	for i := v.offset; i < end; i++ {
		task := v.tasks[i]
		b.WriteString(renderTask(task, i == v.cursor, v.width))
		b.WriteString("\n")
		if i == v.cursor && task.Why != "" {
			b.WriteString(styles.Why.Render("why: " + task.Why))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (v TasksView) openCount(c model.Category) int {
	n := 0
	for _, t := range v.mgr.ByCategory(c) {
		if !t.Completed {
			n++
		}
	}
	return n
}

func (v TasksView) renderMoodPicker() string {
	styles := theme.Current.Styles

	var lines []string
	lines = append(lines, styles.Title.Render("How did it feel?"))
	for i, m := range moodChoices() {
		name := "no mood"
		if m != model.MoodNone {
			name = string(m)
		}
		if i == v.moodCursor {
			lines = append(lines, styles.TaskSelected.Render("> "+name))
		} else {
			lines = append(lines, styles.TaskNormal.Render("  "+name))
		}
	}
	return styles.Panel.Render(strings.Join(lines, "\n"))
}

// renderTask renders one task line
func renderTask(task model.Task, isCursor bool, width int) string {
	t := theme.Current.Theme
	styles := theme.Current.Styles

	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	var priorityChar string
	switch task.Priority {
	case model.PriorityMust:
		priorityChar = "‼"
	case model.PriorityShould:
		priorityChar = "!"
	case model.PriorityNice:
		priorityChar = "·"
	default:
		priorityChar = " "
	}
	priority := lipgloss.NewStyle().Foreground(t.PriorityColor(string(task.Priority))).Render(priorityChar)

	textStyle := styles.TaskNormal
	switch {
	case task.Completed:
		textStyle = styles.TaskDone
	case task.IsOverdue:
		textStyle = styles.TaskOverdue
	}

	var meta []string
	if task.Project != model.ProjectNone {
		meta = append(meta, lipgloss.NewStyle().Foreground(t.Secondary).Render(task.Project.DisplayName()))
	}
	if task.Label != model.LabelNone {
		meta = append(meta, styles.Tag.Render(task.Label.DisplayName()))
	}
	if !task.Date.IsZero() {
		meta = append(meta, styles.Label.Render("on "+task.Date.String()))
	}
	if !task.DueDate.IsZero() {
		due := styles.DueDate
		if task.IsOverdue {
			due = lipgloss.NewStyle().Foreground(t.Error).Bold(true)
		}
		meta = append(meta, due.Render("due "+task.DueDate.String()))
	}
	if task.Recurring != model.RecurrenceNone {
		meta = append(meta, lipgloss.NewStyle().Foreground(t.Info).Render("↻ "+string(task.Recurring)))
	}
	if task.Completed && task.Mood != model.MoodNone {
		meta = append(meta, styles.Subtitle.Render(string(task.Mood)))
	}

	line := checkbox + " " + priority + textStyle.Render(task.Text)
	if len(meta) > 0 {
		line += " " + strings.Join(meta, " ")
	}

	if isCursor {
		return lipgloss.NewStyle().Background(t.Highlight).Width(max(0, width-2)).Render(line)
	}
	return line
}

func priorityName(p model.Priority) string {
	if p == model.PriorityNone {
		return "none"
	}
	return string(p)
}

var titleCaser = cases.Title(language.English)

func categoryTitle(c model.Category) string {
	return titleCaser.String(string(c))
}
