package v1

import (
	"intern-match/internal/delivery/http/handler"
	"intern-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers is everything the v1 surface mounts. Nil entries are skipped.
type Handlers struct {
	Health       *handler.HealthHandler
	Auth         *handler.AuthHandler
	Student      *handler.StudentHandler
	Organization *handler.OrganizationHandler
	Admin        *handler.AdminHandler
	WS           *ws.Handler

	RequireOrganization fiber.Handler
	RequireAdmin        fiber.Handler
}

func Register(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.Health != nil {
		h.Health.RegisterRoutes(r)
	}
	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	if h.Student != nil {
		h.Student.RegisterRoutes(r.Group("/students"))
	}
	if h.Organization != nil {
		h.Organization.RegisterRoutes(r.Group("/organizations"), h.RequireOrganization)
	}
	if h.Admin != nil {
		admin := r.Group("/admin")
		if h.RequireAdmin != nil {
			admin.Use(h.RequireAdmin)
		}
		h.Admin.RegisterRoutes(admin)
	}
	if h.WS != nil {
		h.WS.RegisterRoutes(r)
	}
}
