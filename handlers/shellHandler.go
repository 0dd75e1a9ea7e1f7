package handlers

import (
	"HospitalAdmin/middlewares"
	"HospitalAdmin/notify"
	"HospitalAdmin/services"
	"HospitalAdmin/session"
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Drainer hands over and forgets the queued notifications of a recipient.
type Drainer interface {
	Drain(ctx context.Context, recipient string) ([]notify.Notification, error)
}

// ShellHandler serves the frame every protected screen renders in, the
// notification inbox and the auth screen.
type ShellHandler struct {
	inbox Drainer
}

func NewShellHandler(inbox Drainer) *ShellHandler {
	return &ShellHandler{inbox: inbox}
}

// Shell returns the sidebar entries and the signed-in user for the header.
func (h *ShellHandler) Shell(c *gin.Context) {
	s, _ := session.FromContext(c.Request.Context())
	middlewares.RespondJSON(c, gin.H{
		"user":    s,
		"modules": services.Modules(),
	}, http.StatusOK)
}

// Notifications drains the caller's pending notifications, oldest first.
func (h *ShellHandler) Notifications(c *gin.Context) {
	ctx := c.Request.Context()
	items, err := h.inbox.Drain(ctx, session.Recipient(ctx))
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch notifications", err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"notifications": items}, http.StatusOK)
}

// Auth is the sign-in screen. Signing in happens at the external provider.
func (h *ShellHandler) Auth(c *gin.Context) {
	middlewares.RespondJSON(c, gin.H{"screen": "auth", "authenticated": false}, http.StatusOK)
}

// Module answers placeholder screens that have no data yet.
func (h *ShellHandler) Module(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		module, err := services.LookupModule(key)
		if err != nil {
			middlewares.HttpError(c, "Module not available", err)
			return
		}
		middlewares.RespondJSON(c, module, http.StatusOK)
	}
}

// NotFound answers every unknown route.
func (h *ShellHandler) NotFound(c *gin.Context) {
	middlewares.AbortWithError(c, http.StatusNotFound, "NOT_FOUND", "Page not found", gin.H{"path": c.Request.URL.Path})
}
