package handlers

import (
	"HospitalAdmin/middlewares"
	"HospitalAdmin/session"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// AuthHandler stores the token issued by the auth provider in the session
// cookie and clears it on sign-out. It never checks credentials itself.
type AuthHandler struct {
	manager *session.Manager
	secure  bool
}

func NewAuthHandler(manager *session.Manager, secure bool) *AuthHandler {
	return &AuthHandler{manager: manager, secure: secure}
}

type signInRequest struct {
	Token string `json:"token" binding:"required"`
}

// SignIn accepts a provider token and sets it as the session cookie.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middlewares.AbortWithError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			"Please correct the highlighted fields", gin.H{"token": "Token is required"})
		return
	}
	s, err := h.manager.Parse(req.Token)
	if err != nil {
		middlewares.AbortWithError(c, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid or expired session", nil)
		return
	}
	maxAge := int(time.Until(s.Expiry).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, req.Token, maxAge, "/", "", h.secure, true)
	middlewares.RespondJSON(c, gin.H{"user": s, "redirect": "/"}, http.StatusOK)
}

// SignOut clears the session cookie.
func (h *AuthHandler) SignOut(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, "", -1, "/", "", h.secure, true)
	middlewares.RespondJSON(c, gin.H{"redirect": middlewares.AuthPath}, http.StatusOK)
}
