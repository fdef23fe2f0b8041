package router

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"

	"github.com/smartsubstation/auth-server/internal/api/http/handler"
	"github.com/smartsubstation/auth-server/internal/api/http/middleware"
	"github.com/smartsubstation/auth-server/internal/logger"
	"github.com/smartsubstation/auth-server/internal/model"
	"github.com/smartsubstation/auth-server/internal/service"
)

// Router assembles the HTTP routes and middleware chain.
type Router struct {
	authService    *service.Auth
	profileService *service.Profile
	codec          model.TokenCodec
	sessions       model.SessionStore
	corsOrigins    []string
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	authService *service.Auth,
	profileService *service.Profile,
	codec model.TokenCodec,
	sessions model.SessionStore,
	corsOrigins []string,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService:    authService,
		profileService: profileService,
		codec:          codec,
		sessions:       sessions,
		corsOrigins:    corsOrigins,
		logger:         logger,
	}
}

// Register builds the gin engine with all middleware and routes.
func (r *Router) Register() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.corsOrigins))
	engine.Use(requestid.New())
	engine.Use(middleware.Logging(r.logger))

	authenticate := middleware.NewAuthenticate(r.codec, r.sessions, r.logger)
	engine.Use(authenticate.Handle())

	engine.GET("/healthz", handler.Health)

	authHandler := handler.NewAuth(r.authService, r.logger)
	auth := engine.Group("/api/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.POST("/refresh", authHandler.Refresh)
	}

	profileHandler := handler.NewProfile(r.profileService, r.logger)
	users := engine.Group("/api/users", middleware.RequireAuth())
	{
		users.GET("/me", profileHandler.Me)
		users.PUT("/me/avatar", profileHandler.SetAvatar)
	}

	return engine
}
