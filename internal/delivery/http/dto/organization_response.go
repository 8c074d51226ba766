package dto

import (
	"time"

	"intern-match/internal/domain/organization"

	"github.com/google/uuid"
)

type ProjectResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Location       string    `json:"location"`
	InternshipType string    `json:"internship_type"`
	RequiredSkills []string  `json:"required_skills"`
}

// OrganizationResponse also exposes requirements as a list parallel to
// projects for older clients.
type OrganizationResponse struct {
	ID           uuid.UUID         `json:"id"`
	Name         string            `json:"name"`
	Email        string            `json:"email"`
	Projects     []ProjectResponse `json:"projects"`
	Requirements [][]string        `json:"requirements"`
	CreatedAt    time.Time         `json:"created_at"`
}

func NewOrganizationResponse(o organization.Organization) OrganizationResponse {
	projects := make([]ProjectResponse, 0, len(o.Projects))
	for _, p := range o.Projects {
		projects = append(projects, ProjectResponse{
			ID:             p.ID,
			Title:          p.Title,
			Location:       p.Location,
			InternshipType: p.InternshipType,
			RequiredSkills: orEmpty(p.RequiredSkills),
		})
	}
	return OrganizationResponse{
		ID:           o.ID,
		Name:         o.Name,
		Email:        o.Email,
		Projects:     projects,
		Requirements: o.Requirements(),
		CreatedAt:    o.CreatedAt,
	}
}
