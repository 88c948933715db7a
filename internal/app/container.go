package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/hoardspace/bms-backend/internal/api"
	"github.com/hoardspace/bms-backend/internal/auth"
	"github.com/hoardspace/bms-backend/internal/booking"
	"github.com/hoardspace/bms-backend/internal/file"
	"github.com/hoardspace/bms-backend/internal/hoarding"
	"github.com/hoardspace/bms-backend/internal/pkg/storage"
	"github.com/hoardspace/bms-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	UploadDir    string

	ReleaseOnReject         bool
	StrictStatusTransitions bool
	DisableRateLimits       bool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// File Module
	localStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("init upload storage failed: %w", err)
	}
	fileRepo := file.NewPgxRepository(cfg.DBPool)
	fileService := file.NewService(fileRepo, localStorage)

	// Booking repository first: it doubles as the availability checker
	// for the hoarding module.
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)

	// Hoarding Module
	hoardingRepo := hoarding.NewPgxRepository(cfg.DBPool)
	hoardingService := hoarding.NewService(hoardingRepo, bookingRepo)

	// Booking Module
	bookingService := booking.NewService(bookingRepo, hoardingService, booking.Policy{
		ReleaseOnReject:         cfg.ReleaseOnReject,
		StrictStatusTransitions: cfg.StrictStatusTransitions,
	})

	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		DisableRateLimits: cfg.DisableRateLimits,
		UserService:       userService,
		HoardingService:   hoardingService,
		BookingService:    bookingService,
		FileService:       fileService,
		JWTManager:        jwtManager,
	})

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}, nil
}
