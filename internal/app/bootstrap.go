package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"intern-match/internal/config"
	"intern-match/internal/delivery/http/handler"
	"intern-match/internal/delivery/http/middleware"
	"intern-match/internal/delivery/http/routes"
	v1 "intern-match/internal/delivery/http/routes/v1"
	"intern-match/internal/pkg/jwt"
	"intern-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects every backing service, applies migrations and starts
// the websocket hub. The returned cleanup releases them in reverse.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	if err := c.Migrate(ctx); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}

	go c.Hub.Run()

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(c.Logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.JWT)
	adminMw := middleware.NewAdminKeyMiddleware(c.Config.Admin.APIKey, c.Config.App.IsProduction(), c.Logger)

	var cachePinger handler.Pinger
	if c.Cache != nil {
		cachePinger = c.Cache
	}

	routes.NewRegistry(v1.Handlers{
		Health:              handler.NewHealthHandler(c.DB, cachePinger),
		Auth:                handler.NewAuthHandler(c.AuthUC),
		Student:             handler.NewStudentHandler(c.StudentUC, c.AllocationUC),
		Organization:        handler.NewOrganizationHandler(c.OrganizationUC),
		Admin:               handler.NewAdminHandler(c.AdminUC, c.AllocationUC),
		WS:                  ws.NewHandler(c.Hub, c.Logger),
		RequireOrganization: authMw.Middleware(jwt.RoleOrganization),
		RequireAdmin:        adminMw.Middleware(),
	}).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
