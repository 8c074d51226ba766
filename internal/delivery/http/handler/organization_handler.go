package handler

import (
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/delivery/http/middleware"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type OrganizationHandler struct {
	uc usecase.OrganizationUsecase
}

func NewOrganizationHandler(uc usecase.OrganizationUsecase) *OrganizationHandler {
	return &OrganizationHandler{uc: uc}
}

// RegisterRoutes mounts the public read and the project update behind auth.
func (h *OrganizationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/:id", h.GetOrganization)
	if auth != nil {
		r.Post("/:id/projects", auth, h.UpdateProjects)
	} else {
		r.Post("/:id/projects", h.UpdateProjects)
	}
}

func (h *OrganizationHandler) GetOrganization(c fiber.Ctx) error {
	id, err := pathID(c, "Organization not found")
	if err != nil {
		return err
	}

	o, err := h.uc.GetOrganization(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewOrganizationResponse(o))
}

func (h *OrganizationHandler) UpdateProjects(c fiber.Ctx) error {
	id, err := pathID(c, "Organization not found")
	if err != nil {
		return err
	}

	var req projectsPayload
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	subject, role, _ := middleware.Subject(c)
	specs, reqs := req.specs()
	o, err := h.uc.UpdateProjects(c.Context(), usecase.Principal{ID: subject, Role: role}, id, usecase.UpdateProjectsInput{
		Projects:     specs,
		Requirements: reqs,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Projects updated successfully", dto.NewOrganizationResponse(o))
}
