package model

// Label is a context tag like #deep-work or #errands
type Label string

const (
	LabelNone     Label = ""
	LabelDeepWork Label = "deep-work"
	LabelErrands  Label = "errands"
	LabelQuickWin Label = "quick-win"
	LabelFocus    Label = "focus"
)

// Labels lists the known labels
var Labels = []Label{LabelDeepWork, LabelErrands, LabelQuickWin, LabelFocus}

// Valid reports whether l is a known label or empty
func (l Label) Valid() bool {
	switch l {
	case LabelNone, LabelDeepWork, LabelErrands, LabelQuickWin, LabelFocus:
		return true
	}
	return false
}

// DisplayName returns the label with its # prefix
func (l Label) DisplayName() string {
	if l == LabelNone {
		return ""
	}
	return "#" + string(l)
}
