package http

import (
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/delivery/http/handler"
	"github.com/Villegascvrr/homi-connect-30-sub001/internal/delivery/http/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Router struct {
	profileHandler *handler.ProfileHandler
	swipeHandler   *handler.SwipeHandler
	feedHandler    *handler.FeedHandler
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
	logger         *zap.Logger
}

func NewRouter(
	profileHandler *handler.ProfileHandler,
	swipeHandler *handler.SwipeHandler,
	feedHandler *handler.FeedHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
	logger *zap.Logger,
) *Router {
	return &Router{
		profileHandler: profileHandler,
		swipeHandler:   swipeHandler,
		feedHandler:    feedHandler,
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
		logger:         logger,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.logger))
	router.Use(cors.Default())

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	// API v1
	v1 := router.Group("/api/v1")
	{
		// Profile creation is driven by the platform's onboarding flow,
		// before a profile-scoped token exists.
		v1.POST("/profiles", r.profileHandler.CreateProfile)

		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.profileHandler.UpdateMyProfile)
				profile.POST("/me/activate", r.profileHandler.SetMyActive(true))
				profile.POST("/me/deactivate", r.profileHandler.SetMyActive(false))
				profile.GET("/:profile_id", r.profileHandler.GetProfileByID)
			}

			protected.POST("/swipes", r.swipeHandler.RecordSwipe)
			protected.GET("/feed", r.feedHandler.GetCandidates)
			protected.GET("/matches", r.matchHandler.ListMatches)
		}
	}

	return router
}
