// Package tasks owns the live task collection: creation through the quick-add
// parser, completion with recurring successors, overdue derivation and the
// consistency streak.
package tasks

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/google/uuid"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/parser"
)

// Repository is the persistence collaborator for the task collection
type Repository interface {
	LoadTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
}

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the wall clock
func WithClock(c calendar.Clock) Option {
	return func(m *Manager) { m.clock = c }
}

// WithIDGenerator overrides how new task ids are made
func WithIDGenerator(fn func() string) Option {
	return func(m *Manager) { m.newID = fn }
}

// WithLogger sets the logger used for persistence failures
func WithLogger(l lgr.L) Option {
	return func(m *Manager) { m.log = l }
}

// Manager is the sole owner and mutator of the task collection
type Manager struct {
	mu    sync.Mutex
	repo  Repository
	clock calendar.Clock
	newID func() string
	log   lgr.L
	tasks []model.Task

	// set while the stored collection could not be read; saving the
	// in-memory one would overwrite it
	loadFailed bool
}

// NewManager creates an empty manager. Call Load to read persisted tasks.
func NewManager(repo Repository, opts ...Option) *Manager {
	m := &Manager{
		repo:  repo,
		clock: calendar.SystemClock,
		newID: uuid.NewString,
		log:   lgr.NoOp,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddOptions are the caller-supplied defaults for a new task. Anything the
// parser finds in the text overrides them.
type AddOptions struct {
	Why       string
	Priority  model.Priority
	Project   model.Project
	Label     model.Label
	Date      calendar.Date
	DueDate   calendar.Date
	Recurring model.Recurrence
}

// Completion is the outcome of Complete
type Completion struct {
	Task      model.Task  `json:"task"`
	Successor *model.Task `json:"successor,omitempty"` // set for recurring tasks
}

// Load replaces the collection with the persisted one. Read failures and
// malformed data leave an empty collection, and nothing is saved until a
// later Load succeeds.
func (m *Manager) Load(ctx context.Context) {
	loaded, err := m.repo.LoadTasks(ctx)
	if err != nil {
		m.log.Logf("[ERROR] failed to load tasks, starting empty without saving: %v", err)
		loaded = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tasks = loaded
	m.loadFailed = err != nil
	m.deriveOverdue()
	m.log.Logf("[DEBUG] loaded %d tasks", len(m.tasks))
}

// RefreshOverdue re-derives overdue flags, e.g. after midnight
func (m *Manager) RefreshOverdue() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deriveOverdue() {
		m.persist()
	}
}

// Add parses text and appends a new task. Blank text is ignored.
func (m *Manager) Add(text string, category model.Category, opts AddOptions) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}

	if category == "" {
		category = model.CategoryToday
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	today := m.today()
	parsed := parser.ParseAt(text, today)

	task := model.Task{
		ID:        m.newID(),
		Text:      parsed.Text,
		Why:       strings.TrimSpace(opts.Why),
		CreatedAt: m.clock.Now(),
		Category:  category,
		Date:      first(parsed.Date, opts.Date),
		DueDate:   first(parsed.DueDate, opts.DueDate),
		Priority:  first(parsed.Priority, opts.Priority),
		Project:   first(parsed.Project, opts.Project),
		Label:     first(parsed.Label, opts.Label),
		Recurring: first(parsed.Recurring, opts.Recurring),
	}
	if task.Text == "" {
		// Every word was a token; keep something to show
		task.Text = text
	}
	task.IsOverdue = task.OverdueOn(today)

	m.tasks = append(m.tasks, task)
	m.persist()
	return task, true
}

// Complete marks a task done with an optional mood. A recurring task gets a
// successor with its dates advanced by one interval, inserted in the same
// mutation.
func (m *Manager) Complete(id string, mood model.Mood) (Completion, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return Completion{}, false
	}

	t := &m.tasks[i]
	t.Completed = true
	t.CompletedAt = m.clock.Now()
	t.Mood = mood
	t.IsOverdue = false

	res := Completion{Task: *t}
	if t.Recurring != model.RecurrenceNone {
		next := m.successor(*t)
		m.tasks = append(m.tasks, next)
		res.Successor = &next
	}

	m.persist()
	return res, true
}

// Uncomplete reopens a task. A successor spawned earlier is left alone.
func (m *Manager) Uncomplete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false
	}

	t := &m.tasks[i]
	t.Completed = false
	t.CompletedAt = time.Time{}
	t.Mood = model.MoodNone
	t.IsOverdue = t.OverdueOn(m.today())

	m.persist()
	return true
}

// Delete removes a task
func (m *Manager) Delete(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return false
	}

	m.tasks = slices.Delete(m.tasks, i, i+1)
	m.persist()
	return true
}

// Update shallow-merges p onto the task and re-establishes the completion
// invariants: reopening clears the completion time and mood, completing
// without a time stamps now, and the overdue flag is derived again.
func (m *Manager) Update(id string, p model.Patch) (model.Task, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return model.Task{}, false
	}

	t := &m.tasks[i]
	p.Apply(t)

	if t.Completed {
		if t.CompletedAt.IsZero() {
			t.CompletedAt = m.clock.Now()
		}
	} else {
		t.CompletedAt = time.Time{}
		t.Mood = model.MoodNone
	}
	t.IsOverdue = t.OverdueOn(m.today())

	m.persist()
	return *t, true
}

// MoveTasksToToday schedules the given tasks for today in the today
// category. It returns how many tasks were moved.
func (m *Manager) MoveTasksToToday(ids []string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	today := m.today()
	moved := 0
	for _, id := range ids {
		i := m.indexOf(id)
		if i < 0 {
			continue
		}
		t := &m.tasks[i]
		t.Date = today
		t.Category = model.CategoryToday
		t.IsOverdue = false
		moved++
	}

	if moved > 0 {
		m.persist()
	}
	return moved
}

// Today returns the manager's notion of the current date
func (m *Manager) Today() calendar.Date {
	return m.today()
}

func (m *Manager) today() calendar.Date {
	return calendar.Today(m.clock)
}

func (m *Manager) successor(t model.Task) model.Task {
	next := t
	next.ID = m.newID()
	next.Date = t.Recurring.Advance(t.Date)
	next.DueDate = t.Recurring.Advance(t.DueDate)
	next.Completed = false
	next.CompletedAt = time.Time{}
	next.Mood = model.MoodNone
	next.IsOverdue = false
	return next
}

// deriveOverdue recomputes every overdue flag and reports whether any changed
func (m *Manager) deriveOverdue() bool {
	today := m.today()
	changed := false
	for i := range m.tasks {
		overdue := m.tasks[i].OverdueOn(today)
		if m.tasks[i].IsOverdue != overdue {
			m.tasks[i].IsOverdue = overdue
			changed = true
		}
	}
	return changed
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.tasks, func(t model.Task) bool { return t.ID == id })
}

// persist saves a snapshot. Failures are logged, never returned.
func (m *Manager) persist() {
	if m.loadFailed {
		m.log.Logf("[WARN] not saving %d tasks, the stored collection failed to load", len(m.tasks))
		return
	}
	if err := m.repo.SaveTasks(context.Background(), slices.Clone(m.tasks)); err != nil {
		m.log.Logf("[WARN] failed to save tasks: %v", err)
	}
}

func first[T comparable](parsed, fallback T) T {
	var zero T
	if parsed != zero {
		return parsed
	}
	return fallback
}
