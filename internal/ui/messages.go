package ui

import (
	"fmt"
	"strings"
)

// View represents the current active view
type View int

const (
	ViewTasks View = iota
	ViewUpcoming
	ViewNotes
)

// String returns the display name for a view
func (v View) String() string {
	switch v {
	case ViewTasks:
		return "Tasks"
	case ViewUpcoming:
		return "Upcoming"
	case ViewNotes:
		return "Mind dump"
	default:
		return "Unknown"
	}
}

// ParseView maps a view name from the command line to a View
func ParseView(name string) (View, error) {
	switch strings.ToLower(name) {
	case "", "tasks", "today":
		return ViewTasks, nil
	case "upcoming":
		return ViewUpcoming, nil
	case "notes", "mind-dump":
		return ViewNotes, nil
	}
	return ViewTasks, fmt.Errorf("unknown view %q, expected tasks, upcoming or notes", name)
}

// midnightMsg fires when the local date changes
type midnightMsg struct{}

// themeSavedMsg reports the outcome of persisting theme preferences
type themeSavedMsg struct {
	name string
	err  error
}

// notifiedMsg reports a desktop notification failure, if any
type notifiedMsg struct {
	err error
}
