package main

import "tasktracker/internal/app"

// @title           TaskTracker API
// @version         1.0
// @description     Task tracking backend with role-scoped access control.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app.Run()
}
