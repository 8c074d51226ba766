package handler

import (
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type AdminHandler struct {
	admin       usecase.AdminUsecase
	allocations usecase.AllocationUsecase
}

func NewAdminHandler(admin usecase.AdminUsecase, allocations usecase.AllocationUsecase) *AdminHandler {
	return &AdminHandler{admin: admin, allocations: allocations}
}

func (h *AdminHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/data", h.ListData)
	r.Post("/allocate", h.Allocate)
}

func (h *AdminHandler) ListData(c fiber.Ctx) error {
	data, err := h.admin.ListData(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewAdminDataResponse(data.Students, data.Organizations))
}

func (h *AdminHandler) Allocate(c fiber.Ctx) error {
	run, err := h.allocations.Run(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "Allocation done", dto.NewAllocationRunResponse(run))
}
