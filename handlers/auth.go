package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"randevu/middleware"
	"randevu/models"
	"randevu/services/auth"
	"randevu/utils"
)

// AuthHandler exposes the patient account endpoints.
type AuthHandler struct {
	Gateway auth.Gateway
	Logger  *zap.Logger
}

func NewAuthHandler(gateway auth.Gateway, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{Gateway: gateway, Logger: logger}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input auth.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	patient, err := h.Gateway.Register(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "Registration failed", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"patient": patient})
}

type loginRequest struct {
	NationalID string `json:"nationalId" binding:"required"`
	Password   string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid login payload", err.Error())
		return
	}

	token, patient, err := h.Gateway.Login(c.Request.Context(), req.NationalID, req.Password)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Login failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "patient": patient})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.ContextTokenKey)
	if err := h.Gateway.Logout(c.Request.Context(), token); err != nil {
		h.Logger.Error("logout failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Logout failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	patient := currentPatient(c)
	if patient == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": patient})
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	patient := currentPatient(c)
	if patient == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	var input auth.ProfileUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}

	updated, err := h.Gateway.UpdateProfile(c.Request.Context(), patient.ID, input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Profile update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"patient": updated})
}

type passwordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	patient := currentPatient(c)
	if patient == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	var req passwordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid password payload", err.Error())
		return
	}

	if err := h.Gateway.UpdatePassword(c.Request.Context(), patient.ID, req.CurrentPassword, req.NewPassword); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Password update failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

// currentPatient reads the patient the auth middleware attached to the
// request context.
func currentPatient(c *gin.Context) *models.Patient {
	value, exists := c.Get(middleware.ContextPatientKey)
	if !exists {
		return nil
	}
	patient, ok := value.(*models.Patient)
	if !ok {
		return nil
	}
	return patient
}
