package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/ui/theme"
)

// NoteStore persists mind dump notes
type NoteStore interface {
	GetNotes(ctx context.Context) ([]model.Note, error)
	CreateNote(ctx context.Context, content string) (*model.Note, error)
	UpdateNote(ctx context.Context, id, content string) (*model.Note, error)
	DeleteNote(ctx context.Context, id string) (bool, error)
}

// NotesMode represents the current input mode of the notes view
type NotesMode int

const (
	NotesModeNormal NotesMode = iota
	NotesModeAdd
	NotesModeEdit
	NotesModeConfirmDelete
)

// NotesView is the mind dump: freeform notes, newest first
type NotesView struct {
	store NoteStore

	notes    []model.Note
	cursor   int
	mode     NotesMode
	editor   textarea.Model
	targetID string

	width  int
	height int
}

// NewNotesView creates a new notes view
func NewNotesView(store NoteStore) NotesView {
	ta := textarea.New()
	ta.Placeholder = "Dump whatever is on your mind..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 4000
	ta.SetHeight(5)

	return NotesView{store: store, editor: ta}
}

// Init loads the notes
func (v NotesView) Init() tea.Cmd {
	return v.loadNotes
}

// IsInputMode returns true when the view is capturing keys
func (v NotesView) IsInputMode() bool {
	return v.mode != NotesModeNormal
}

// SetSize updates the view dimensions
func (v NotesView) SetSize(width, height int) NotesView {
	v.width = width
	v.height = height
	v.editor.SetWidth(max(10, width-6))
	return v
}

func (v NotesView) loadNotes() tea.Msg {
	notes, err := v.store.GetNotes(context.Background())
	return notesLoadedMsg{notes: notes, err: err}
}

func (v NotesView) current() (model.Note, bool) {
	if v.cursor < 0 || v.cursor >= len(v.notes) {
		return model.Note{}, false
	}
	return v.notes[v.cursor], true
}

// Update handles messages for the notes view
func (v NotesView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case notesLoadedMsg:
		if msg.err != nil {
			return v, errorCmd(fmt.Errorf("failed to load notes: %w", msg.err))
		}
		v.notes = msg.notes
		if v.cursor >= len(v.notes) {
			v.cursor = max(0, len(v.notes)-1)
		}
		return v, nil

	case noteSavedMsg:
		if msg.err != nil {
			return v, errorCmd(msg.err)
		}
		status := msg.status
		return v, tea.Batch(v.loadNotes, func() tea.Msg { return StatusMsg{Message: status} })

	case tea.KeyMsg:
		switch v.mode {
		case NotesModeAdd, NotesModeEdit:
			return v.handleEditorMode(msg)
		case NotesModeConfirmDelete:
			return v.handleDeleteConfirm(msg)
		default:
			return v.handleNormalMode(msg)
		}
	}

	if v.mode == NotesModeAdd || v.mode == NotesModeEdit {
		var cmd tea.Cmd
		v.editor, cmd = v.editor.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v NotesView) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if v.cursor < len(v.notes)-1 {
			v.cursor++
		}
	case "k", "up":
		if v.cursor > 0 {
			v.cursor--
		}
	case "a":
		v.mode = NotesModeAdd
		v.targetID = ""
		v.editor.Reset()
		return v, v.editor.Focus()
	case "e", "enter":
		if n, ok := v.current(); ok {
			v.mode = NotesModeEdit
			v.targetID = n.ID
			v.editor.SetValue(n.Content)
			return v, v.editor.Focus()
		}
	case "d", "x":
		if n, ok := v.current(); ok {
			v.mode = NotesModeConfirmDelete
			v.targetID = n.ID
		}
	case "r":
		return v, v.loadNotes
	}
	return v, nil
}

func (v NotesView) handleEditorMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		content := v.editor.Value()
		mode, id := v.mode, v.targetID
		v.mode = NotesModeNormal
		v.editor.Blur()
		v.editor.Reset()
		if strings.TrimSpace(content) == "" {
			return v, nil
		}
		if mode == NotesModeAdd {
			return v, v.create(content)
		}
		return v, v.update(id, content)

	case "esc":
		v.mode = NotesModeNormal
		v.editor.Blur()
		v.editor.Reset()
		return v, nil
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v NotesView) handleDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.mode = NotesModeNormal
		return v, v.delete(v.targetID)
	case "n", "N", "esc":
		v.mode = NotesModeNormal
		v.targetID = ""
	}
	return v, nil
}

func (v NotesView) create(content string) tea.Cmd {
	store := v.store
	return func() tea.Msg {
		if _, err := store.CreateNote(context.Background(), content); err != nil {
			return noteSavedMsg{err: fmt.Errorf("failed to save note: %w", err)}
		}
		return noteSavedMsg{status: "Note saved"}
	}
}

func (v NotesView) update(id, content string) tea.Cmd {
	store := v.store
	return func() tea.Msg {
		n, err := store.UpdateNote(context.Background(), id, content)
		if err != nil {
			return noteSavedMsg{err: fmt.Errorf("failed to update note: %w", err)}
		}
		if n == nil {
			return noteSavedMsg{err: fmt.Errorf("note %s no longer exists", id)}
		}
		return noteSavedMsg{status: "Note updated"}
	}
}

func (v NotesView) delete(id string) tea.Cmd {
	store := v.store
	return func() tea.Msg {
		if _, err := store.DeleteNote(context.Background(), id); err != nil {
			return noteSavedMsg{err: fmt.Errorf("failed to delete note: %w", err)}
		}
		return noteSavedMsg{status: "Note deleted"}
	}
}

// View renders the notes view
func (v NotesView) View() string {
	styles := theme.Current.Styles
	t := theme.Current.Theme

	var b strings.Builder
	b.WriteString(styles.Title.Render("Mind dump"))
	b.WriteString("\n")

	switch v.mode {
	case NotesModeAdd, NotesModeEdit:
		b.WriteString(styles.Input.Render(v.editor.View()))
		b.WriteString("\n")
		b.WriteString(styles.Label.Render("ctrl+s save, esc cancel"))
		b.WriteString("\n\n")
	case NotesModeConfirmDelete:
		warn := lipgloss.NewStyle().Foreground(t.Error).Bold(true)
		b.WriteString(warn.Render("Delete this note? (y/n)"))
		b.WriteString("\n\n")
	}

	if len(v.notes) == 0 {
		b.WriteString(styles.Label.Render("  Empty. Press a to write something down."))
		return b.String()
	}

	stamp := lipgloss.NewStyle().Foreground(t.Subtle)
	preview := max(10, v.width-22)
	for i, n := range v.notes {
		line := stamp.Render(n.CreatedAt.Local().Format("Jan 02 15:04")) + "  " + n.Preview(preview)
		if i == v.cursor {
			b.WriteString(styles.TaskSelected.Render(line))
		} else {
			b.WriteString(styles.TaskNormal.Render(line))
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
