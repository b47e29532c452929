// Package notify sends desktop notifications through notify-send.
package notify

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/dori/zendo/internal/model"
)

// Urgency levels for notifications
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

// Notification represents a desktop notification
type Notification struct {
	Title   string
	Body    string
	Urgency Urgency
	Timeout time.Duration
	Icon    string // Optional icon name
}

// Runner executes the notification command
type Runner func(name string, args ...string) error

func execRunner(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

// Notifier handles sending desktop notifications
type Notifier struct {
	enabled bool
	run     Runner
}

// NewNotifier creates a new notifier
func NewNotifier(enabled bool) *Notifier {
	return &Notifier{
		enabled: enabled,
		run:     execRunner,
	}
}

// WithRunner replaces the command runner
func (n *Notifier) WithRunner(r Runner) *Notifier {
	n.run = r
	return n
}

// Send sends a desktop notification using notify-send
func (n *Notifier) Send(notification Notification) error {
	if !n.enabled {
		return nil
	}

	var args []string

	switch notification.Urgency {
	case UrgencyLow:
		args = append(args, "-u", "low")
	case UrgencyCritical:
		args = append(args, "-u", "critical")
	default:
		args = append(args, "-u", "normal")
	}

	if notification.Timeout > 0 {
		args = append(args, "-t", strconv.Itoa(int(notification.Timeout.Milliseconds())))
	}
	if notification.Icon != "" {
		args = append(args, "-i", notification.Icon)
	}

	args = append(args, "-a", "zendo", notification.Title)
	if notification.Body != "" {
		args = append(args, notification.Body)
	}

	return n.run("notify-send", args...)
}

// SendOverdue reminds about overdue tasks. Nothing is sent for an empty list.
func (n *Notifier) SendOverdue(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	title := "1 task is overdue"
	if len(tasks) > 1 {
		title = fmt.Sprintf("%d tasks are overdue", len(tasks))
	}

	const maxLines = 5
	var lines []string
	for i, t := range tasks {
		if i == maxLines {
			lines = append(lines, fmt.Sprintf("and %d more", len(tasks)-maxLines))
			break
		}
		lines = append(lines, fmt.Sprintf("• %s (due %s)", t.Text, t.DueDate))
	}

	return n.Send(Notification{
		Title:   title,
		Body:    strings.Join(lines, "\n"),
		Urgency: UrgencyCritical,
		Timeout: 15 * time.Second,
		Icon:    "emblem-important-symbolic",
	})
}

// SendStreak celebrates a consistency streak
func (n *Notifier) SendStreak(days int) error {
	return n.Send(Notification{
		Title:   fmt.Sprintf("%d day streak", days),
		Body:    "Your plant is growing. Keep it up!",
		Urgency: UrgencyLow,
		Timeout: 5 * time.Second,
		Icon:    "emblem-favorite-symbolic",
	})
}
