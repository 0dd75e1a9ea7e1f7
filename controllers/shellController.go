package controllers

import (
	"HospitalAdmin/handlers"
	"HospitalAdmin/middlewares"
	"HospitalAdmin/services"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupShellRoutes registers the dashboard, the shell frame, the
// notification inbox and the placeholder modules on the protected router.
func SetupShellRoutes(router gin.IRouter, shell *handlers.ShellHandler, dashboard *handlers.DashboardHandler) {
	router.GET("/", dashboard.Metrics)
	router.GET("/dashboard", dashboard.Metrics)
	router.GET("/shell", shell.Shell)
	router.GET("/notifications", shell.Notifications)

	for _, m := range services.Modules() {
		if !m.Implemented {
			router.GET(m.Path, shell.Module(m.Key))
		}
	}
}

// SetupPublicRoutes registers what anonymous users may reach.
func SetupPublicRoutes(router *gin.Engine, shell *handlers.ShellHandler, auth *handlers.AuthHandler) {
	router.GET(middlewares.AuthPath, middlewares.RedirectIfAuthenticated("/"), shell.Auth)
	router.POST(middlewares.AuthPath+"/session", auth.SignIn)
	router.DELETE(middlewares.AuthPath+"/session", auth.SignOut)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.NoRoute(shell.NotFound)
}
