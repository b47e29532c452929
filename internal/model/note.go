package model

import (
	"time"
)

// Note is a freeform mind dump entry
type Note struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Preview returns the first line of the note, cut to width runes
func (n *Note) Preview(width int) string {
	line := n.Content
	for i, r := range line {
		if r == '\n' {
			line = line[:i]
			break
		}
	}
	runes := []rune(line)
	if width > 1 && len(runes) > width {
		return string(runes[:width-1]) + "…"
	}
	return line
}
