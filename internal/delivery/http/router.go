package http

import (
	"fmt"
	nethttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/swappi-app/swappi-backend/internal/delivery/http/handler"
	"github.com/swappi-app/swappi-backend/internal/delivery/http/middleware"
	"github.com/swappi-app/swappi-backend/internal/repository/blob"
)

type Router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	feedHandler    *handler.FeedHandler
	matchHandler   *handler.MatchHandler
	authMiddleware *middleware.AuthMiddleware
	gatherer       prometheus.Gatherer
	log            *zap.Logger
	mediaDir       string
	maxUploadSize  int64
}

// RouterOptions holds the non-handler settings of the router.
type RouterOptions struct {
	Gatherer prometheus.Gatherer
	Logger   *zap.Logger
	// MediaDir is served under /media when the local blob store is used.
	MediaDir      string
	MaxUploadSize int64
}

func NewRouter(
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	feedHandler *handler.FeedHandler,
	matchHandler *handler.MatchHandler,
	authMiddleware *middleware.AuthMiddleware,
	opts RouterOptions,
) *Router {
	return &Router{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		feedHandler:    feedHandler,
		matchHandler:   matchHandler,
		authMiddleware: authMiddleware,
		gatherer:       opts.Gatherer,
		log:            opts.Logger,
		mediaDir:       opts.MediaDir,
		maxUploadSize:  opts.MaxUploadSize,
	}
}

// RegisterValidators adds the custom binding rules used by request structs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		return fmt.Errorf("failed to register notblank: %w", err)
	}
	return nil
}

func (r *Router) Setup() (*gin.Engine, error) {
	if err := RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(r.log))
	if r.maxUploadSize > 0 {
		router.MaxMultipartMemory = r.maxUploadSize
	}

	healthHandler := func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	if r.gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})))
	}
	if r.mediaDir != "" {
		router.Static(blob.MediaRoute, r.mediaDir)
	}

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", r.authHandler.SignUp)
			auth.POST("/signin", r.authHandler.SignIn)
			auth.POST("/logout", r.authMiddleware.RequireAuth(), r.authHandler.Logout)
			auth.GET("/session", r.authMiddleware.RequireAuth(), r.authHandler.Session)
		}

		protected := v1.Group("")
		protected.Use(r.authMiddleware.RequireAuth())
		{
			profile := protected.Group("/profile")
			{
				profile.GET("/me", r.profileHandler.GetMyProfile)
				profile.PUT("/me", r.limitBody(), r.profileHandler.SaveMyProfile)
				profile.GET("/:id", r.profileHandler.GetProfile)
			}

			saved := protected.Group("/saved")
			{
				saved.GET("", r.profileHandler.ListSaved)
				saved.POST("/:profile_id/toggle", r.profileHandler.ToggleSaved)
			}

			protected.GET("/explore", r.feedHandler.Explore)

			matches := protected.Group("/matches")
			{
				matches.GET("", r.matchHandler.ListMatches)
				matches.GET("/:candidate_id", r.matchHandler.GetMatch)
				matches.POST("/:candidate_id", r.matchHandler.RecordMatch)
			}
		}
	}

	return router, nil
}

func (r *Router) limitBody() gin.HandlerFunc {
	return func(c *gin.Context) {
		if r.maxUploadSize > 0 {
			c.Request.Body = nethttp.MaxBytesReader(c.Writer, c.Request.Body, r.maxUploadSize)
		}
		c.Next()
	}
}
