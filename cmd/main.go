package main

import (
	api "Scribbler"
)

// @title Scribbler API
// @version 1.0
// @description API for scribbles, likes, follows, and feeds
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Provide a valid JWT as: Bearer <token>
func main() {
	api.Run()
}
