package handler

import (
	"intern-match/internal/delivery/http/dto"
	"intern-match/internal/delivery/http/middleware"
	"intern-match/internal/pkg/response"
	"intern-match/internal/usecase"
	ucauth "intern-match/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc usecase.AuthUsecase
}

type registerStudentRequest struct {
	Name               string   `json:"name"`
	Email              string   `json:"email"`
	Password           string   `json:"password"`
	Skills             []string `json:"skills"`
	Interests          []string `json:"interests"`
	LocationPreference string   `json:"location_preference"`
	InternshipType     string   `json:"internship_type"`
}

type registerOrganizationRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	projectsPayload
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

func (h *AuthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/students/register", h.RegisterStudent)
	r.Post("/organizations/register", h.RegisterOrganization)
	r.Post("/students/login", h.LoginStudent)
	r.Post("/organizations/login", h.LoginOrganization)
	r.Post("/refresh", h.Refresh)
}

func (h *AuthHandler) RegisterStudent(c fiber.Ctx) error {
	var req registerStudentRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	st, tok, err := h.uc.RegisterStudent(c.Context(), ucauth.RegisterStudentInput{
		Name:               req.Name,
		Email:              req.Email,
		Password:           req.Password,
		Skills:             req.Skills,
		Interests:          req.Interests,
		LocationPreference: req.LocationPreference,
		InternshipType:     req.InternshipType,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Student registered successfully", map[string]any{
		"student":       dto.NewStudentResponse(st),
		"access_token":  tok.AccessToken,
		"refresh_token": tok.RefreshToken,
	})
}

func (h *AuthHandler) RegisterOrganization(c fiber.Ctx) error {
	var req registerOrganizationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	specs, reqs := req.specs()
	o, tok, err := h.uc.RegisterOrganization(c.Context(), ucauth.RegisterOrganizationInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Projects:     specs,
		Requirements: reqs,
	})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "Organization registered successfully", map[string]any{
		"organization":  dto.NewOrganizationResponse(o),
		"access_token":  tok.AccessToken,
		"refresh_token": tok.RefreshToken,
	})
}

func (h *AuthHandler) LoginStudent(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	st, tok, err := h.uc.LoginStudent(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"student":       dto.NewStudentResponse(st),
		"access_token":  tok.AccessToken,
		"refresh_token": tok.RefreshToken,
	})
}

func (h *AuthHandler) LoginOrganization(c fiber.Ctx) error {
	var req loginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	o, tok, err := h.uc.LoginOrganization(c.Context(), ucauth.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"organization":  dto.NewOrganizationResponse(o),
		"access_token":  tok.AccessToken,
		"refresh_token": tok.RefreshToken,
	})
}

// Refresh takes the refresh token from the Authorization header, falling
// back to a JSON body.
func (h *AuthHandler) Refresh(c fiber.Ctx) error {
	tok, ok := middleware.BearerToken(c.Get("Authorization"))
	if !ok && len(c.Body()) > 0 {
		var req refreshRequest
		if err := c.Bind().Body(&req); err == nil {
			tok = req.RefreshToken
		}
	}

	pair, err := h.uc.Refresh(c.Context(), tok)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}
