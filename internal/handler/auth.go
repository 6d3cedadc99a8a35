package handlers

import (
	"net/http"
	"strings"

	"LinguaVoice/internal/models"
	"LinguaVoice/internal/store"
	"LinguaVoice/pkg/logger"
	"LinguaVoice/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *Handlers) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "All fields are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := strings.TrimSpace(req.Name)

	if email == "" || req.Password == "" || name == "" {
		response.Fail(c, http.StatusBadRequest, "All fields are required")
		return
	}
	if len(req.Password) < 6 {
		response.Fail(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		response.Fail(c, http.StatusBadRequest, "Please enter a valid email address")
		return
	}

	userID, err := h.store.CreateUser(email, models.HashPassword(req.Password), name)
	if err == store.ErrDuplicateEmail {
		response.Fail(c, http.StatusBadRequest, "Email already registered")
		return
	}
	if err != nil {
		logger.Error("registration failed", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "Registration failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account created successfully!",
		"user": gin.H{
			"id":    userID,
			"email": email,
			"name":  name,
			"role":  models.RoleUser,
		},
	})
}

type authRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handlers) handleAuth(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		response.Fail(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.store.Authenticate(email, models.HashPassword(req.Password))
	if err != nil {
		logger.Error("authentication failed", zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "Authentication failed")
		return
	}
	if user == nil {
		response.Fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	})
}
