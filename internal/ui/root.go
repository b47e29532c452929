// Package ui is the bubbletea terminal interface over the task manager.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-pkgz/lgr"

	"github.com/dori/zendo/internal/app"
	"github.com/dori/zendo/internal/notify"
	"github.com/dori/zendo/internal/tasks"
	"github.com/dori/zendo/internal/ui/theme"
	"github.com/dori/zendo/internal/ui/views"
)

// Deps are the collaborators of the root model
type Deps struct {
	Tasks    *tasks.Manager
	Notes    views.NoteStore
	Settings theme.SettingsStore
	Notifier *notify.Notifier
	Log      lgr.L
	Prefs    theme.Preferences
	Start    View
}

// RootModel is the main application model that manages views
type RootModel struct {
	deps   Deps
	keys   KeyMap
	help   help.Model
	width  int
	height int

	currentView  View
	tasksView    views.TasksView
	upcomingView views.UpcomingView
	notesView    views.NotesView
	helpVisible  bool

	prefs      theme.Preferences
	lastStreak int

	// Status message
	statusMsg string
	errorMsg  string
}

// NewRootModel creates a root model over an open application. Stored theme
// preferences win over the configured ones.
func NewRootModel(a *app.App, start View) RootModel {
	fallback := theme.ParsePreferences(a.Config.UI.Theme, a.Config.UI.ColorScheme)
	prefs, err := theme.LoadPreferences(context.Background(), a.DB, fallback)
	if err != nil {
		a.Log.Logf("[WARN] failed to load theme preferences: %v", err)
	}

	return NewModel(Deps{
		Tasks:    a.Tasks,
		Notes:    a.DB,
		Settings: a.DB,
		Notifier: a.Notifier,
		Log:      a.Log,
		Prefs:    prefs,
		Start:    start,
	})
}

// NewModel creates a root model from its collaborators
func NewModel(deps Deps) RootModel {
	if deps.Log == nil {
		deps.Log = lgr.NoOp
	}
	theme.Apply(deps.Prefs)

	return RootModel{
		deps:         deps,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		currentView:  deps.Start,
		tasksView:    views.NewTasksView(deps.Tasks),
		upcomingView: views.NewUpcomingView(deps.Tasks),
		notesView:    views.NewNotesView(deps.Notes),
		prefs:        deps.Prefs,
		lastStreak:   deps.Tasks.ConsistencyStreak(),
	}
}

// Init initializes the model
func (m RootModel) Init() tea.Cmd {
	return tea.Batch(
		m.tasksView.Init(),
		m.notesView.Init(),
		m.notifyOverdue(),
		waitForMidnight(time.Now()),
	)
}

// untilMidnight returns the time left until the next local midnight
func untilMidnight(now time.Time) time.Duration {
	y, mo, d := now.Date()
	next := time.Date(y, mo, d+1, 0, 0, 0, 0, now.Location())
	return next.Sub(now) + time.Second
}

func waitForMidnight(now time.Time) tea.Cmd {
	return tea.Tick(untilMidnight(now), func(time.Time) tea.Msg {
		return midnightMsg{}
	})
}

// notifyOverdue sends a desktop notification listing overdue tasks
func (m RootModel) notifyOverdue() tea.Cmd {
	overdue := m.deps.Tasks.Overdue()
	if len(overdue) == 0 || m.deps.Notifier == nil {
		return nil
	}
	n := m.deps.Notifier
	return func() tea.Msg {
		return notifiedMsg{err: n.SendOverdue(overdue)}
	}
}

// Update handles messages
func (m RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

		// Reserve space for header (2 lines) and footer (3 lines)
		contentHeight := m.height - 5
		m.tasksView = m.tasksView.SetSize(m.width, contentHeight)
		m.upcomingView = m.upcomingView.SetSize(m.width, contentHeight)
		m.notesView = m.notesView.SetSize(m.width, contentHeight)
		return m, nil

	case tea.KeyMsg:
		// Clear status/error on any keypress
		m.statusMsg = ""
		m.errorMsg = ""

		isInputMode := m.isInputMode()

		// Global keybindings
		switch {
		case key.Matches(msg, m.keys.Quit):
			// ctrl+c always quits, but 'q' only quits when not in input mode
			if msg.String() == "ctrl+c" || !isInputMode {
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.ThemeMode):
			cmd := m.changeTheme(m.prefs.ToggleMode())
			return m, cmd
		case key.Matches(msg, m.keys.ThemeScheme):
			cmd := m.changeTheme(m.prefs.NextScheme())
			return m, cmd
		}

		if isInputMode {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Help):
			m.helpVisible = !m.helpVisible
			m.help.ShowAll = m.helpVisible
			return m, nil
		case m.helpVisible && key.Matches(msg, m.keys.Back):
			m.helpVisible = false
			m.help.ShowAll = false
			return m, nil

		case key.Matches(msg, m.keys.TasksView):
			m.currentView = ViewTasks
			return m, m.tasksView.Init()
		case key.Matches(msg, m.keys.UpcomingView):
			m.currentView = ViewUpcoming
			return m, m.upcomingView.Init()
		case key.Matches(msg, m.keys.NotesView):
			m.currentView = ViewNotes
			return m, m.notesView.Init()
		}

	case midnightMsg:
		m.deps.Log.Logf("[DEBUG] date changed, refreshing overdue flags")
		m.deps.Tasks.RefreshOverdue()
		cmds = append(cmds,
			m.broadcast(views.TasksChangedMsg{}),
			m.notifyOverdue(),
			waitForMidnight(time.Now()),
		)
		return m, tea.Batch(cmds...)

	case views.TasksChangedMsg:
		if msg.Status != "" {
			m.statusMsg = msg.Status
		}
		cmd := m.broadcast(msg)
		return m, cmd

	case views.CompletedMsg:
		m.statusMsg = completionStatus(msg.Completion)
		cmds = append(cmds, m.broadcast(msg), m.checkStreak())
		return m, tea.Batch(cmds...)

	case views.StatusMsg:
		m.statusMsg = msg.Message
		return m, nil

	case views.ErrorMsg:
		m.deps.Log.Logf("[WARN] %v", msg.Err)
		m.errorMsg = msg.Err.Error()
		return m, nil

	case themeSavedMsg:
		if msg.err != nil {
			m.deps.Log.Logf("[WARN] failed to save theme preferences: %v", msg.err)
			m.errorMsg = "Theme not saved: " + msg.err.Error()
			return m, nil
		}
		m.statusMsg = "Theme: " + msg.name
		return m, nil

	case notifiedMsg:
		if msg.err != nil {
			m.deps.Log.Logf("[WARN] failed to send notification: %v", msg.err)
		}
		return m, nil
	}

	// Delegate to current view
	switch m.currentView {
	case ViewTasks:
		newView, cmd := m.tasksView.Update(msg)
		m.tasksView = newView.(views.TasksView)
		cmds = append(cmds, cmd)
	case ViewUpcoming:
		newView, cmd := m.upcomingView.Update(msg)
		m.upcomingView = newView.(views.UpcomingView)
		cmds = append(cmds, cmd)
	case ViewNotes:
		newView, cmd := m.notesView.Update(msg)
		m.notesView = newView.(views.NotesView)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// broadcast hands a collection change to both task views so neither goes stale
func (m *RootModel) broadcast(msg tea.Msg) tea.Cmd {
	tv, c1 := m.tasksView.Update(msg)
	m.tasksView = tv.(views.TasksView)
	uv, c2 := m.upcomingView.Update(msg)
	m.upcomingView = uv.(views.UpcomingView)
	return tea.Batch(c1, c2)
}

func (m RootModel) isInputMode() bool {
	switch m.currentView {
	case ViewTasks:
		return m.tasksView.IsInputMode()
	case ViewNotes:
		return m.notesView.IsInputMode()
	case ViewUpcoming:
		return m.upcomingView.IsInputMode()
	}
	return false
}

// checkStreak celebrates a streak that just grew past one day
func (m *RootModel) checkStreak() tea.Cmd {
	s := m.deps.Tasks.ConsistencyStreak()
	grew := s > m.lastStreak && s > 1
	m.lastStreak = s
	if !grew || m.deps.Notifier == nil {
		return nil
	}
	n := m.deps.Notifier
	return func() tea.Msg {
		return notifiedMsg{err: n.SendStreak(s)}
	}
}

func completionStatus(c tasks.Completion) string {
	if c.Task.ID == "" {
		return ""
	}
	status := "Done: " + c.Task.Text
	if c.Successor != nil {
		next := c.Successor.Date
		if next.IsZero() {
			next = c.Successor.DueDate
		}
		if !next.IsZero() {
			status += fmt.Sprintf(" (next on %s)", next)
		}
	}
	return status
}

// changeTheme applies prefs at once and persists them in the background
func (m *RootModel) changeTheme(prefs theme.Preferences) tea.Cmd {
	m.prefs = prefs
	t := theme.Apply(prefs)
	if m.deps.Settings == nil {
		m.statusMsg = "Theme: " + t.Name
		return nil
	}
	store := m.deps.Settings
	return func() tea.Msg {
		err := theme.SavePreferences(context.Background(), store, prefs)
		return themeSavedMsg{name: t.Name, err: err}
	}
}

// View renders the UI
func (m RootModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var sections []string
	sections = append(sections, m.renderHeader(), "")

	contentHeight := m.height - 5
	var content string
	if m.helpVisible {
		content = m.renderHelp()
	} else {
		switch m.currentView {
		case ViewTasks:
			content = m.tasksView.View()
		case ViewUpcoming:
			content = m.upcomingView.View()
		case ViewNotes:
			content = m.notesView.View()
		}
	}

	// Ensure content fills available space
	contentLines := strings.Count(content, "\n") + 1
	if contentLines < contentHeight {
		content += strings.Repeat("\n", contentHeight-contentLines)
	}
	sections = append(sections, content, m.renderFooter())

	return strings.Join(sections, "\n")
}

// renderHeader renders the header bar: title, view, plant, streak and theme
func (m RootModel) renderHeader() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	title := styles.Header.Render("zendo")

	subtle := lipgloss.NewStyle().
		Foreground(t.Subtle).
		Padding(0, 1)
	viewIndicator := subtle.Render(fmt.Sprintf("[%s]", m.currentView.String()))

	g := m.deps.Tasks.Growth()
	streak := subtle.Render(fmt.Sprintf("%d day streak", g.Streak))
	themeIndicator := subtle.Render(t.Name)

	leftSide := lipgloss.JoinHorizontal(lipgloss.Center, title, viewIndicator)
	rightSide := lipgloss.JoinHorizontal(lipgloss.Center, renderPlant(g, t), streak, themeIndicator)

	gap := max(0, m.width-lipgloss.Width(leftSide)-lipgloss.Width(rightSide))
	return leftSide + strings.Repeat(" ", gap) + rightSide
}

// renderPlant draws leaves for the size of the collection and flowers for the streak
func renderPlant(g tasks.Growth, t theme.Theme) string {
	if g.Leaves == 0 && g.Flowers == 0 {
		return lipgloss.NewStyle().Foreground(t.Subtle).Render("·")
	}
	leaves := lipgloss.NewStyle().Foreground(t.Leaf).Render(strings.Repeat("♣", g.Leaves))
	flowers := lipgloss.NewStyle().Foreground(t.Flower).Render(strings.Repeat("✿", g.Flowers))
	return leaves + flowers
}

// renderFooter renders the footer/status bar
func (m RootModel) renderFooter() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	key := func(k, desc string) string {
		return styles.HelpKey.Render(k) + styles.HelpDesc.Render(" "+desc)
	}
	sep := styles.HelpSeparator.Render(" │ ")

	var statusLine string
	if m.errorMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Error).Render(m.errorMsg)
	} else if m.statusMsg != "" {
		statusLine = lipgloss.NewStyle().Foreground(t.Info).Render(m.statusMsg)
	}

	var line1, line2 string
	switch {
	case m.helpVisible:
		line1 = key("?/esc", "close help")
	case m.currentView == ViewNotes && m.notesView.IsInputMode():
		line1 = key("ctrl+s", "save") + sep + key("esc", "cancel")
	case m.isInputMode():
		line1 = key("enter", "confirm") + sep + key("esc", "cancel")
	case m.currentView == ViewTasks:
		line1 = key("a", "add") + sep +
			key("tab", "done") + sep +
			key("e", "edit") + sep +
			key("w", "why") + sep +
			key("p", "priority") + sep +
			key("t", "today") + sep +
			key("d", "del")
		line2 = key("h/l", "category") + sep +
			key("1-3", "views") + sep +
			key("C-t/C-y", "theme") + sep +
			key("?", "help")
	case m.currentView == ViewUpcoming:
		line1 = key("tab", "done") + sep +
			key("t", "move to today") + sep +
			key("T", "all overdue to today")
		line2 = key("1-3", "views") + sep +
			key("C-t/C-y", "theme") + sep +
			key("?", "help")
	case m.currentView == ViewNotes:
		line1 = key("a", "new note") + sep +
			key("e", "edit") + sep +
			key("d", "del")
		line2 = key("1-3", "views") + sep +
			key("C-t/C-y", "theme") + sep +
			key("?", "help")
	}

	var lines []string
	lines = append(lines, statusLine)
	if line1 != "" {
		lines = append(lines, line1)
	}
	if line2 != "" {
		lines = append(lines, line2)
	}
	return strings.Join(lines, "\n")
}

// renderHelp renders the help overlay
func (m RootModel) renderHelp() string {
	styles := theme.Current.Styles

	var b strings.Builder
	b.WriteString(styles.Title.Render("zendo help"))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtitle.Render("Quick add: tomorrow, next friday, by friday, !must, @work, #errands, every week"))
	return b.String()
}
