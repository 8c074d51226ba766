package middleware

import (
	"crypto/subtle"
	"log"

	"github.com/gofiber/fiber/v3"
)

const HeaderAdminKey = "X-Admin-Key"

type AdminKeyMiddleware struct {
	key        string
	production bool
}

// NewAdminKeyMiddleware guards admin routes with a shared key. An empty key
// leaves the routes open outside production and closes them in production.
func NewAdminKeyMiddleware(key string, production bool, logger *log.Logger) *AdminKeyMiddleware {
	if key == "" && logger != nil {
		if production {
			logger.Printf("Admin routes disabled | reason=ADMIN_API_KEY not set")
		} else {
			logger.Printf("Admin routes unprotected | reason=ADMIN_API_KEY not set")
		}
	}
	return &AdminKeyMiddleware{key: key, production: production}
}

func (m *AdminKeyMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if m.key == "" {
			if m.production {
				return NewAppError(fiber.StatusForbidden, "Admin access disabled", nil, nil)
			}
			return c.Next()
		}

		got := c.Get(HeaderAdminKey)
		if got == "" {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(m.key)) != 1 {
			return NewAppError(fiber.StatusForbidden, "Forbidden", nil, nil)
		}
		return c.Next()
	}
}
