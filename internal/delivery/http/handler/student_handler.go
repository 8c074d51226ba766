package handler

import (
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type StudentHandler struct {
	students    usecase.StudentUsecase
	allocations usecase.AllocationUsecase
}

func NewStudentHandler(students usecase.StudentUsecase, allocations usecase.AllocationUsecase) *StudentHandler {
	return &StudentHandler{students: students, allocations: allocations}
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:id", h.GetStudent)
	r.Get("/:id/allocation", h.GetAllocation)
}

func (h *StudentHandler) GetStudent(c fiber.Ctx) error {
	id, err := pathID(c, "Student not found")
	if err != nil {
		return err
	}

	st, err := h.students.GetStudent(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStudentResponse(st))
}

func (h *StudentHandler) GetAllocation(c fiber.Ctx) error {
	id, err := pathID(c, "No allocation found for this student")
	if err != nil {
		return err
	}

	a, err := h.allocations.GetStudentAllocation(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewStudentAllocationResponse(a))
}
