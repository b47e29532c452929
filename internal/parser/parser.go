// Package parser turns quick-add task text into structured task fields.
//
// Syntax:
//
//	!important !must !should !nice   priority
//	@work @personal @side-hustle     project
//	#deep-work #errands ...          label
//	by friday, by tomorrow           due date
//	today, tomorrow, next monday     scheduled date
//	daily, every week, monthly       recurrence
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/dori/zendo/internal/calendar"
	"github.com/dori/zendo/internal/model"
)

// Result holds the fields extracted from a quick-add string
type Result struct {
	Text      string           `json:"text"`
	Date      calendar.Date    `json:"date,omitzero"`
	DueDate   calendar.Date    `json:"dueDate,omitzero"`
	Priority  model.Priority   `json:"priority,omitempty"`
	Project   model.Project    `json:"project,omitempty"`
	Label     model.Label      `json:"label,omitempty"`
	Recurring model.Recurrence `json:"recurring,omitempty"`
}

var (
	projectPattern = regexp.MustCompile(`(?i)@(work|personal|side-hustle)`)
	labelPattern   = regexp.MustCompile(`(?i)#(deep-work|errands|quick-win|focus)`)
	duePattern     = regexp.MustCompile(`(?i)by\s(today|tomorrow|monday|tuesday|wednesday|thursday|friday|saturday|sunday)`)
	datePattern    = regexp.MustCompile(`(?i)(today|tomorrow|next\s+(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday))`)
	recurPattern   = regexp.MustCompile(`(?i)(every day|daily|weekly|monthly|every week|every month)`)
)

// priorityMarkers are checked in order; the first marker present wins
var priorityMarkers = []struct {
	marker   string
	priority model.Priority
}{
	{"!important", model.PriorityMust},
	{"!must", model.PriorityMust},
	{"!should", model.PriorityShould},
	{"!nice", model.PriorityNice},
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Parse parses text relative to the local date of the system clock
func Parse(text string) Result {
	return ParseAt(text, calendar.Today(calendar.SystemClock))
}

// ParseAt parses text with relative dates resolved against today.
// Each step scans what the previous steps left behind, so the order matters.
func ParseAt(text string, today calendar.Date) Result {
	res := Result{}
	work := text

	for _, pm := range priorityMarkers {
		if idx := strings.Index(work, pm.marker); idx >= 0 {
			res.Priority = pm.priority
			work = cut(work, idx, idx+len(pm.marker))
			break
		}
	}

	if v, loc := extract(projectPattern, work, func(v string) bool { return model.Project(v).Valid() }); loc != nil {
		res.Project = model.Project(v)
		work = cut(work, loc[0], loc[1])
	}

	if v, loc := extract(labelPattern, work, func(v string) bool { return model.Label(v).Valid() }); loc != nil {
		res.Label = model.Label(v)
		work = cut(work, loc[0], loc[1])
	}

	if v, loc := extract(duePattern, work, isRelative); loc != nil {
		res.DueDate = ResolveRelative(v, today)
		work = cut(work, loc[0], loc[1])
	}

	if v, loc := extract(datePattern, work, isRelative); loc != nil {
		res.Date = ResolveRelative(v, today)
		work = cut(work, loc[0], loc[1])
	}

	if v, loc := extract(recurPattern, work, func(v string) bool { _, ok := recurrences[v]; return ok }); loc != nil {
		res.Recurring = recurrences[v]
		work = cut(work, loc[0], loc[1])
	}

	res.Text = strings.TrimSpace(work)
	return res
}

// ResolveRelative converts today, tomorrow, a weekday name or
// "next <weekday>" into a date. Weekdays always land strictly after today.
// Anything else falls back to today.
func ResolveRelative(token string, today calendar.Date) calendar.Date {
	token = strings.ToLower(strings.TrimSpace(token))

	switch token {
	case "today":
		return today
	case "tomorrow":
		return today.AddDays(1)
	}

	if rest, ok := strings.CutPrefix(token, "next"); ok {
		token = strings.TrimSpace(rest)
	}
	if day, ok := weekdays[token]; ok {
		return calendar.NextWeekday(today, day)
	}

	return today
}

// recurrences maps the lowercased recurrence phrases
var recurrences = map[string]model.Recurrence{
	"every day":   model.RecurrenceDaily,
	"daily":       model.RecurrenceDaily,
	"every week":  model.RecurrenceWeekly,
	"weekly":      model.RecurrenceWeekly,
	"every month": model.RecurrenceMonthly,
	"monthly":     model.RecurrenceMonthly,
}

// extract returns the lowercased first capture of the leftmost match that
// valid accepts, with the match bounds. (?i) folds Unicode, so "@perſonal"
// matches the pattern but lowercases to nothing known and is skipped.
func extract(re *regexp.Regexp, s string, valid func(string) bool) (string, []int) {
	for _, loc := range re.FindAllStringSubmatchIndex(s, -1) {
		v := strings.ToLower(s[loc[2]:loc[3]])
		if valid(v) {
			return v, loc
		}
	}
	return "", nil
}

// isRelative reports whether token is a date word ResolveRelative knows
func isRelative(token string) bool {
	switch token {
	case "today", "tomorrow":
		return true
	}
	if rest, ok := strings.CutPrefix(token, "next"); ok {
		token = strings.TrimSpace(rest)
	}
	_, ok := weekdays[token]
	return ok
}

// cut removes s[start:end] and joins the remaining halves with one space
func cut(s string, start, end int) string {
	left := strings.TrimRight(s[:start], " \t")
	right := strings.TrimLeft(s[end:], " \t")
	if left == "" || right == "" {
		return left + right
	}
	return left + " " + right
}
