package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"intern-match/internal/config"
	"intern-match/internal/database"
	"intern-match/internal/database/migration"
	dbpostgres "intern-match/internal/database/postgres"
	"intern-match/internal/infrastructure/cache"
	"intern-match/internal/pkg/jwt"
	"intern-match/internal/repository"
	"intern-match/internal/usecase"
	"intern-match/internal/ws"
	"intern-match/migrations"
)

// Container owns the process-wide resources and the usecases built on them.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   *jwt.HMACService

	Students      *repository.PostgresStudentRepository
	Organizations *repository.PostgresOrganizationRepository
	Allocations   *repository.PostgresAllocationRepository

	AuthUC         *usecase.Auth
	StudentUC      *usecase.Student
	OrganizationUC *usecase.Organization
	AdminUC        *usecase.Admin
	AllocationUC   *usecase.Allocation
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	logger := log.Default()
	return newContainer(cfg, logger, db, cache.NewRedis(cfg.Redis, logger)), nil
}

func newContainer(cfg config.Config, logger *log.Logger, db database.DB, rc *cache.Redis) *Container {
	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  rc,
		Hub:    ws.NewHub(logger),
		JWT: jwt.NewHMACService(
			cfg.JWT.AccessSecret,
			cfg.JWT.RefreshSecret,
			cfg.JWT.AccessExpiresIn,
			cfg.JWT.RefreshExpiresIn,
		),
		Students:      repository.NewPostgresStudentRepository(db),
		Organizations: repository.NewPostgresOrganizationRepository(db),
		Allocations:   repository.NewPostgresAllocationRepository(db),
	}

	c.AuthUC = usecase.NewAuthUsecase(c.Students, c.Organizations, c.JWT)
	c.StudentUC = usecase.NewStudentUsecase(c.Students)
	c.OrganizationUC = usecase.NewOrganizationUsecase(c.Organizations)
	c.AdminUC = usecase.NewAdminUsecase(c.Students, c.Organizations)

	opts := usecase.AllocationOptions{
		Notifier: c.Hub,
		LockTTL:  cfg.Allocation.LockTTL,
		Logger:   logger,
	}
	if rc != nil {
		opts.Cache = rc
	}
	c.AllocationUC = usecase.NewAllocationUsecase(c.Students, c.Organizations, c.Allocations, opts)
	return c
}

// Migrate applies pending migrations, from MIGRATIONS_DIR when set and from
// the embedded set otherwise.
func (c *Container) Migrate(ctx context.Context) error {
	if c == nil || c.DB == nil {
		return database.ErrNilDB
	}
	sqlDB := c.DB.SQLDB()
	if sqlDB == nil {
		return fmt.Errorf("migrate: %w", database.ErrNilDB)
	}

	r := migration.Runner{FS: migrations.Files}
	if dir := strings.TrimSpace(c.Config.App.MigrationsDir); dir != "" {
		r = migration.Runner{Dir: dir}
	}
	return r.Run(ctx, sqlDB)
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Hub != nil {
		c.Hub.Stop()
	}
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Printf("cache close error: %v", err)
		}
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
