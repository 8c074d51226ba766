package dto

import (
	"time"

	"intern-match/internal/domain/student"

	"github.com/google/uuid"
)

type StudentResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Skills             []string  `json:"skills"`
	Interests          []string  `json:"interests"`
	LocationPreference string    `json:"location_preference"`
	InternshipType     string    `json:"internship_type"`
	CreatedAt          time.Time `json:"created_at"`
}

func NewStudentResponse(s student.Student) StudentResponse {
	return StudentResponse{
		ID:                 s.ID,
		Name:               s.Name,
		Email:              s.Email,
		Skills:             orEmpty(s.Skills),
		Interests:          orEmpty(s.Interests),
		LocationPreference: s.LocationPreference,
		InternshipType:     s.InternshipType,
		CreatedAt:          s.CreatedAt,
	}
}

type SummaryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
