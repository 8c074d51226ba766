package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intern-match/internal/app"
	"intern-match/internal/config"

	"github.com/gofiber/fiber/v3"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code once deferred cleanup has finished.
func run() int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}

	bootstrap, cleanup, err := app.Bootstrap(cfg)
	if err != nil {
		log.Printf("failed to bootstrap app: %v", err)
		return 1
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.Printf("cleanup error: %v", err)
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		log.Printf("invalid HTTP port: %v", err)
		return 1
	}

	log.Printf("server starting | app=%s env=%s addr=%s", cfg.App.AppName, cfg.App.Environment, addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(bootstrap.Fiber, addr, sigCh); err != nil {
		log.Printf("server error: %v", err)
		return 1
	}
	return 0
}

// serve blocks until the listener fails or a signal arrives. Only a
// listener failure is returned.
func serve(f *fiber.App, addr string, sigCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- f.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true})
	}()

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := f.ShutdownWithContext(ctx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
		return nil
	}
}
