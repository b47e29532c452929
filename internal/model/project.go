package model

// Project is the area of life a task belongs to. The empty value means none.
type Project string

const (
	ProjectNone       Project = ""
	ProjectWork       Project = "work"
	ProjectPersonal   Project = "personal"
	ProjectSideHustle Project = "side-hustle"
)

// Projects lists the known projects
var Projects = []Project{ProjectWork, ProjectPersonal, ProjectSideHustle}

// Valid reports whether p is a known project or empty
func (p Project) Valid() bool {
	switch p {
	case ProjectNone, ProjectWork, ProjectPersonal, ProjectSideHustle:
		return true
	}
	return false
}

// DisplayName returns the project with its @ prefix
func (p Project) DisplayName() string {
	if p == ProjectNone {
		return ""
	}
	return "@" + string(p)
}
