package router

import (
	"time"

	"github.com/eventease-dev/eventease/db"
	"github.com/eventease-dev/eventease/internal/admission"
	"github.com/eventease-dev/eventease/internal/handlers"
	"github.com/eventease-dev/eventease/internal/lifecycle"
	"github.com/eventease-dev/eventease/internal/middleware"
	"github.com/eventease-dev/eventease/internal/store"
	"github.com/eventease-dev/eventease/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	handlers.InitAdmission(admission.NewController(store.NewGormStore(db.DB), lifecycle.PolicyFromEnv()))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.CreateUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", handlers.LogoutUser)
			auth.GET("/me", middleware.RequireAuth(), handlers.Me)
		}

		api.GET("/public-events", handlers.PublicEvents)

		events := api.Group("/events")
		{
			events.POST("", middleware.RequireAuth(), handlers.CreateEvent)
			events.GET("", middleware.RequireAuth(), handlers.ListEvents)
			events.GET("/:id", middleware.OptionalAuth(), handlers.GetEvent)
			events.PUT("/:id", middleware.RequireAuth(), handlers.UpdateEvent)
			events.DELETE("/:id", middleware.RequireAuth(), handlers.DeleteEvent)

			// RSVP is public; registrants do not hold accounts.
			events.POST("/:id/rsvp", handlers.CreateRSVP)

			events.GET("/:id/attendees/export", middleware.RequireAuth(), handlers.ExportAttendees)
		}

		api.GET("/dashboard/stats", middleware.RequireAuth(), handlers.GetDashboardStats)
	}

	return r
}
