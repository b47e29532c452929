package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dori/zendo/internal/model"
	"github.com/dori/zendo/internal/tasks"
)

var (
	titleCaser = cases.Title(language.English)

	idColor      = color.New(color.FgHiBlack)
	doneColor    = color.New(color.FgGreen)
	overdueColor = color.New(color.FgRed, color.Bold)
	headerColor  = color.New(color.FgCyan, color.Bold)
	metaColor    = color.New(color.FgYellow)
	mustColor    = color.New(color.FgRed)
	leafColor    = color.New(color.FgGreen)
	flowerColor  = color.New(color.FgMagenta)
)

const shortIDLen = 8

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// printTask writes one task per line: id, checkbox, text and metadata
func printTask(w io.Writer, t model.Task) {
	check := "[ ]"
	if t.Completed {
		check = doneColor.Sprint("[x]")
	}

	text := t.Text
	if t.IsOverdue {
		text = overdueColor.Sprint(text)
	}

	var meta []string
	switch t.Priority {
	case model.PriorityMust:
		meta = append(meta, mustColor.Sprint("!must"))
	case model.PriorityShould, model.PriorityNice:
		meta = append(meta, "!"+string(t.Priority))
	}
	if t.Project != model.ProjectNone {
		meta = append(meta, t.Project.DisplayName())
	}
	if t.Label != model.LabelNone {
		meta = append(meta, t.Label.DisplayName())
	}
	if !t.Date.IsZero() {
		meta = append(meta, "on "+t.Date.String())
	}
	if !t.DueDate.IsZero() {
		due := "due " + t.DueDate.String()
		if t.IsOverdue {
			due = overdueColor.Sprint(due + " (overdue)")
		}
		meta = append(meta, due)
	}
	if t.Recurring != model.RecurrenceNone {
		meta = append(meta, "↻ "+string(t.Recurring))
	}
	if t.Completed && t.Mood != model.MoodNone {
		meta = append(meta, "feeling "+string(t.Mood))
	}

	line := fmt.Sprintf("%s %s %s", idColor.Sprint(shortID(t.ID)), check, text)
	if len(meta) > 0 {
		line += "  " + metaColor.Sprint(strings.Join(meta, "  "))
	}
	fmt.Fprintln(w, line)

	if t.Why != "" {
		fmt.Fprintf(w, "%s     why: %s\n", strings.Repeat(" ", shortIDLen), t.Why)
	}
}

// printGrouped lists tasks under a heading per category
func printGrouped(w io.Writer, list []model.Task) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No tasks.")
		return
	}
	first := true
	for _, c := range model.Categories {
		var group []model.Task
		for _, t := range list {
			if t.Category == c {
				group = append(group, t)
			}
		}
		if len(group) == 0 {
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		headerColor.Fprintf(w, "%s (%d)\n", titleCaser.String(string(c)), len(group))
		for _, t := range group {
			printTask(w, t)
		}
	}
}

// plant draws the growth indicator as text
func plant(g tasks.Growth) string {
	if g.Leaves == 0 && g.Flowers == 0 {
		return "·"
	}
	return leafColor.Sprint(strings.Repeat("♣", g.Leaves)) + flowerColor.Sprint(strings.Repeat("✿", g.Flowers))
}
