package allocation

import (
	"strings"

	"github.com/google/uuid"
)

const DefaultInternshipType = "paid"

type Student struct {
	ID             uuid.UUID
	Skills         []string
	Location       string
	InternshipType string
}

type Project struct {
	Title          string
	Location       string
	InternshipType string
	Requirements   []string
}

type Organization struct {
	ID       uuid.UUID
	Projects []Project
}

type Assignment struct {
	StudentID      uuid.UUID
	OrganizationID uuid.UUID
	Project        string
	Score          int
}

// Allocate assigns every student the first highest-scoring project found
// while walking organizations and their projects in input order. Students
// are processed in input order and receive at most one assignment; a
// student is omitted only when no project exists at all.
func Allocate(students []Student, orgs []Organization) []Assignment {
	out := make([]Assignment, 0, len(students))

	for _, s := range students {
		skills := skillSet(s.Skills)

		bestScore := -1
		var best Assignment

		for _, o := range orgs {
			for _, p := range o.Projects {
				score := scoreWithSet(skills, s, p)
				// strict: the first maximum wins ties
				if score > bestScore {
					bestScore = score
					best = Assignment{
						StudentID:      s.ID,
						OrganizationID: o.ID,
						Project:        p.Title,
						Score:          score,
					}
				}
			}
		}

		if bestScore >= 0 {
			out = append(out, best)
		}
	}

	return out
}

// Score returns 2*skill overlap + location match + internship type match.
func Score(s Student, p Project) int {
	return scoreWithSet(skillSet(s.Skills), s, p)
}

type Breakdown struct {
	SkillMatch          int
	LocationMatch       int
	InternshipTypeMatch int
	Total               int
}

func Explain(s Student, p Project) Breakdown {
	skills := skillSet(s.Skills)
	b := Breakdown{
		SkillMatch:          skillOverlap(skills, p.Requirements),
		LocationMatch:       locationMatch(s.Location, p.Location),
		InternshipTypeMatch: internshipTypeMatch(s.InternshipType, p.InternshipType),
	}
	b.Total = b.SkillMatch*2 + b.LocationMatch + b.InternshipTypeMatch
	return b
}

func scoreWithSet(skills map[string]struct{}, s Student, p Project) int {
	return skillOverlap(skills, p.Requirements)*2 +
		locationMatch(s.Location, p.Location) +
		internshipTypeMatch(s.InternshipType, p.InternshipType)
}

func skillSet(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, sk := range skills {
		set[sk] = struct{}{}
	}
	return set
}

func skillOverlap(skills map[string]struct{}, required []string) int {
	if len(skills) == 0 || len(required) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(required))
	n := 0
	for _, r := range required {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		if _, ok := skills[r]; ok {
			n++
		}
	}
	return n
}

// an empty preference is a substring of every location and always matches
func locationMatch(preference, location string) int {
	if strings.Contains(strings.ToLower(location), strings.ToLower(preference)) {
		return 1
	}
	return 0
}

func internshipTypeMatch(preference, projectType string) int {
	if projectType == "" {
		projectType = DefaultInternshipType
	}
	if preference == projectType {
		return 1
	}
	return 0
}
