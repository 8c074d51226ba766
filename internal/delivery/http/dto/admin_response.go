package dto

import (
	"intern-match/internal/domain/organization"
	"intern-match/internal/domain/student"
)

type AdminDataResponse struct {
	Students      []SummaryResponse `json:"students"`
	Organizations []SummaryResponse `json:"organizations"`
}

func NewAdminDataResponse(students []student.Summary, orgs []organization.Summary) AdminDataResponse {
	res := AdminDataResponse{
		Students:      make([]SummaryResponse, 0, len(students)),
		Organizations: make([]SummaryResponse, 0, len(orgs)),
	}
	for _, s := range students {
		res.Students = append(res.Students, SummaryResponse{ID: s.ID, Name: s.Name, Email: s.Email})
	}
	for _, o := range orgs {
		res.Organizations = append(res.Organizations, SummaryResponse{ID: o.ID, Name: o.Name, Email: o.Email})
	}
	return res
}
