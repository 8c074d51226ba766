package handler

import "intern-match/internal/domain/organization"

type projectRequest struct {
	Title          string   `json:"title"`
	Location       string   `json:"location"`
	InternshipType string   `json:"internship_type"`
	RequiredSkills []string `json:"required_skills"`
}

// projectsPayload accepts both the composite shape (required_skills on each
// project) and the older shape with a parallel requirements list.
type projectsPayload struct {
	Projects     []projectRequest `json:"projects"`
	Requirements [][]string       `json:"requirements"`
}

func (p projectsPayload) specs() ([]organization.ProjectSpec, [][]string) {
	specs := make([]organization.ProjectSpec, 0, len(p.Projects))
	for _, pr := range p.Projects {
		specs = append(specs, organization.ProjectSpec{
			Title:          pr.Title,
			Location:       pr.Location,
			InternshipType: pr.InternshipType,
			RequiredSkills: pr.RequiredSkills,
		})
	}
	return specs, p.Requirements
}
