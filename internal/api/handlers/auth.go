package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trilhadev/course-viewer-backend/internal/models"
	"github.com/trilhadev/course-viewer-backend/internal/services"
	"github.com/trilhadev/course-viewer-backend/pkg/session"
)

// LoginRequest is what we expect on login
type LoginRequest struct {
	Email string `json:"email" binding:"required"`
}

// SessionUser is the public shape of the logged-in user
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// AuthHandler processes login/logout and the "who am I" check
type AuthHandler struct {
	Service *services.UserService
	Cookies *session.Codec
}

// NewAuthHandler creates handler with injected dependencies
func NewAuthHandler(service *services.UserService, cookies *session.Codec) *AuthHandler {
	return &AuthHandler{Service: service, Cookies: cookies}
}

// Login handles POST /api/auth/login - resolves an email to a user and
// issues the session cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "email is required")
		return
	}

	user, err := h.Service.Authenticate(req.Email)
	if err != nil {
		FailWith(c, err)
		return
	}

	tok := session.Token{UserID: user.ID, Email: user.Email, Name: user.Name}
	if err := h.Cookies.Issue(c.Writer, tok); err != nil {
		RespondError(c, http.StatusInternalServerError, "could not issue session")
		return
	}

	RespondOK(c, "logged in", sessionUserOf(user))
}

// Logout handles POST /api/auth/logout - just clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Cookies.Clear(c.Writer)
	RespondOK(c, "logged out", nil)
}

// Me handles GET /api/auth/me - decodes the cookie without hitting the
// user store. The cookie is the session.
func (h *AuthHandler) Me(c *gin.Context) {
	tok, err := h.Cookies.Decode(c.Request)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}

	RespondOK(c, "authenticated", SessionUser{ID: tok.UserID, Email: tok.Email, Name: tok.Name})
}

func sessionUserOf(u *models.User) SessionUser {
	return SessionUser{ID: u.ID, Email: u.Email, Name: u.Name}
}
