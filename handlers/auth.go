// File: handlers/auth.go
package handlers

import (
	"errors"
	"net/http"

	"pristine/middleware"
	"pristine/models"
	"pristine/services/user"
	"pristine/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler covers registration, login and the session accessor.
type AuthHandler struct {
	Svc    user.UserService
	Logger *zap.Logger
}

func NewAuthHandler(svc user.UserService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Register creates a customer account and returns a signed-in session.
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
		Phone    string `json:"phone"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), input.Name, input.Email, input.Password, input.Phone)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
}

// Login verifies credentials and issues a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	u, token, err := h.Svc.Authenticate(c.Request.Context(), input.Email, input.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, err.Error(), nil)
			return
		}
		h.Logger.Error("login failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "login failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

// Me returns the signed-in account.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.WhoAmI(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "account not found", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}

// Logout revokes the account's active token.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "logout failed", nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// UpdateProfile updates name, phone and the saved address.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var input struct {
		Name    string          `json:"name"`
		Phone   string          `json:"phone"`
		Address *models.Address `json:"address"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", gin.H{"details": err.Error()})
		return
	}

	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.CurrentUserID(c), input.Name, input.Phone, input.Address)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": u})
}
