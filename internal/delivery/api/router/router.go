// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	PostHandler    *handler.PostHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	postHandler    *handler.PostHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		postHandler:    params.PostHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.Signup)
		authGroup.POST("/signin", r.authHandler.Signin)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/profile", r.authHandler.Profile, r.authMiddleware.Authenticate)

		// Google sign-in
		authGroup.GET("/google", r.authHandler.GoogleLogin)
		authGroup.GET("/google/callback", r.authHandler.GoogleCallback)
	}

	// Post routes, all behind the session gate
	postsGroup := e.Group("/posts")
	postsGroup.Use(r.authMiddleware.Authenticate)
	{
		postsGroup.GET("/all", r.postHandler.ListPosts)
		postsGroup.POST("/create", r.postHandler.CreatePost)
		postsGroup.GET("/:id", r.postHandler.GetPost)
		postsGroup.PUT("/:id", r.postHandler.UpdatePost)
		postsGroup.DELETE("/:id", r.postHandler.DeletePost)
	}
}
