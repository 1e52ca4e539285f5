package controllers

import (
	"Scribbler/middlewares"
)

func (s *Server) initializeRoutes() {

	v1 := s.Router.Group("/api/v1")
	{
		// Users routes
		v1.POST("/login", middlewares.LoginRateLimitMiddleware(), s.Login)
		v1.POST("/users", s.CreateUser)
		v1.GET("/users", s.GetUsers)
		v1.GET("/users/:id", s.GetUser)
		v1.GET("/users/:id/username", s.GetUsername)
		v1.GET("/users/:id/followers", s.GetFollowers)
		v1.GET("/users/:id/following", s.GetFollowing)

		// Feed route
		v1.GET("/feed", middlewares.TokenAuthMiddleware(s.DB), s.GetFeed)

		// Post routes
		v1.POST("/posts", middlewares.TokenAuthMiddleware(s.DB), s.CreatePost)
		v1.PATCH("/posts/:id", middlewares.TokenAuthMiddleware(s.DB), s.UpdatePost)
		v1.GET("/users/:id/posts", s.GetUserPosts)

		// Toggle routes
		v1.POST("/likes/toggle", middlewares.TokenAuthMiddleware(s.DB), s.ToggleLike)
		v1.POST("/follows/toggle", middlewares.TokenAuthMiddleware(s.DB), s.ToggleFollow)
	}
}
