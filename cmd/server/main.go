package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hoardspace/bms-backend/internal/app"
	"github.com/hoardspace/bms-backend/internal/config"
	"github.com/hoardspace/bms-backend/internal/db"
	"github.com/hoardspace/bms-backend/internal/pkg/response"
)

func main() {
	// For receiving Ctrl+C / SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	} else {
		// Include error details in responses outside production
		response.DevMode = true
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()

	container, err := app.NewContainer(app.Config{
		IsProduction:            cfg.IsProduction,
		ProdOrigins:             cfg.ProdOrigins,
		DBPool:                  pool,
		JWTSecret:               cfg.JWTSecret,
		JWTTTL:                  cfg.JWTAccessTokenTTL,
		BcryptCost:              cfg.BcryptCost,
		UploadDir:               cfg.UploadDir,
		ReleaseOnReject:         cfg.ReleaseOnReject,
		StrictStatusTransitions: cfg.StrictStatusTransitions,
	})
	if err != nil {
		log.Fatalf("failed to init application: %v", err)
	}

	// Use http.Server for graceful shutdown
	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: container.Router,
	}

	go func() {
		log.Printf("server running on %s", cfg.HTTPAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced to shutdown: %v", err)
	}

	log.Println("server exited gracefully")
}
