package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/tasks"
)

// Messages shared by the views and the root model

// TasksChangedMsg reports a mutation of the task collection
type TasksChangedMsg struct {
	Status string
}

// CompletedMsg reports a completion, including any recurring successor
type CompletedMsg struct {
	Completion tasks.Completion
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

type notesLoadedMsg struct {
	notes []model.Note
	err   error
}

type noteSavedMsg struct {
	status string
	err    error
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}
