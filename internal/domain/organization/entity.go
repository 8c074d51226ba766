package organization

import (
	"time"

	"github.com/google/uuid"
)

const DefaultInternshipType = "paid"

// Project carries its own required skills, so a project and its
// requirements can never drift apart by position.
type Project struct {
	ID             uuid.UUID
	Position       int
	Title          string
	Location       string
	InternshipType string
	RequiredSkills []string
}

type Organization struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Projects     []Project
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Summary struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type ProjectSpec struct {
	Title          string
	Location       string
	InternshipType string
	RequiredSkills []string
}

// ZipProjects pairs projects with a parallel requirement list. Entry i of
// requirements wins over the spec's own RequiredSkills; a project with
// neither gets no required skills.
func ZipProjects(specs []ProjectSpec, requirements [][]string) []Project {
	out := make([]Project, 0, len(specs))
	for i, sp := range specs {
		req := sp.RequiredSkills
		if i < len(requirements) {
			req = requirements[i]
		}
		out = append(out, NewProject(i, sp, req))
	}
	return out
}

func NewProject(position int, sp ProjectSpec, required []string) Project {
	typ := sp.InternshipType
	if typ == "" {
		typ = DefaultInternshipType
	}
	skills := make([]string, 0, len(required))
	skills = append(skills, required...)
	return Project{
		ID:             uuid.New(),
		Position:       position,
		Title:          sp.Title,
		Location:       sp.Location,
		InternshipType: typ,
		RequiredSkills: skills,
	}
}

// Requirements returns the requirement list in project order, the legacy
// parallel shape. A project without skills contributes an empty list.
func (o Organization) Requirements() [][]string {
	out := make([][]string, 0, len(o.Projects))
	for _, p := range o.Projects {
		req := p.RequiredSkills
		if req == nil {
			req = []string{}
		}
		out = append(out, req)
	}
	return out
}
