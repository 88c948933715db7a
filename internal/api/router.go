package api

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hoardspace/bms-backend/internal/auth"
	"github.com/hoardspace/bms-backend/internal/booking"
	bookingHttp "github.com/hoardspace/bms-backend/internal/booking/http"
	"github.com/hoardspace/bms-backend/internal/file"
	fileHttp "github.com/hoardspace/bms-backend/internal/file/http"
	"github.com/hoardspace/bms-backend/internal/hoarding"
	hoardingHttp "github.com/hoardspace/bms-backend/internal/hoarding/http"
	"github.com/hoardspace/bms-backend/internal/user"
	userHttp "github.com/hoardspace/bms-backend/internal/user/http"
)

// Config holds the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string // comma-separated allowed origins for production

	// DisableRateLimits turns the per-IP limiters off (test harness).
	DisableRateLimits bool

	UserService     user.Service
	HoardingService hoarding.Service
	BookingService  booking.Service
	FileService     file.Service
	JWTManager      *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, rate limits, auth) and
// registers the routes of every module under /api.
func NewRouter(cfg Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// CORS
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction {
		corsConfig.AllowOrigins = splitOrigins(cfg.ProdOrigins)
	} else {
		corsConfig.AllowOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	adminMiddleware := RequireAdmin()

	apiLimiter := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	authLimiter := apiLimiter
	if !cfg.DisableRateLimits {
		apiLimiter = APIRateLimiter()
		authLimiter = AuthRateLimiter()
	}

	userHandler := userHttp.NewHandler(cfg.UserService, cfg.JWTManager)
	hoardingHandler := hoardingHttp.NewHandler(cfg.HoardingService, cfg.FileService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	fileHandler := fileHttp.NewHandler(cfg.FileService)

	api := r.Group("/api")
	api.Use(apiLimiter)
	{
		userHttp.RegisterRoutes(api, userHandler, authMiddleware, adminMiddleware, authLimiter)
		hoardingHttp.RegisterRoutes(api, hoardingHandler, authMiddleware, adminMiddleware)
		bookingHttp.RegisterRoutes(api, bookingHandler, authMiddleware, adminMiddleware)
		fileHttp.RegisterRoutes(api, fileHandler)
	}

	return r
}

func splitOrigins(origins string) []string {
	var out []string
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
