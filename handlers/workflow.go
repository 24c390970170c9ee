package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"randevu/models"
	"randevu/services/availability"
	"randevu/services/workflow"
	"randevu/utils"
)

// WorkflowHandler exposes the booking workflow session endpoints.
type WorkflowHandler struct {
	Service workflow.SessionService
	Logger  *zap.Logger
}

func NewWorkflowHandler(service workflow.SessionService, logger *zap.Logger) *WorkflowHandler {
	return &WorkflowHandler{Service: service, Logger: logger}
}

// Start opens a fresh workflow session for the authenticated patient.
func (h *WorkflowHandler) Start(c *gin.Context) {
	patient := currentPatient(c)
	if patient == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	session, err := h.Service.Start(c.Request.Context(), patient)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to start workflow session", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": session})
}

// Get returns the session state. An optional ?day= query materializes the
// hour-bucketed slot grid for that day alongside the session.
func (h *WorkflowHandler) Get(c *gin.Context) {
	session, err := h.Service.Get(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "Workflow session not found", err.Error())
		return
	}

	resp := gin.H{"session": session}
	if day := c.Query("day"); day != "" && session.Stage == models.StageSlotGrid {
		resp["grid"] = h.Service.DayGrid(session, day)
		resp["days"] = workflow.UniqueDays(session.Slots)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *WorkflowHandler) Search(c *gin.Context) {
	var sel models.FilterSelection
	if err := c.ShouldBindJSON(&sel); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid search payload", err.Error())
		return
	}

	session, err := h.Service.Search(c.Request.Context(), c.Param("sessionID"), sel)
	if err != nil {
		h.respondWorkflowError(c, session, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

type providerDayRequest struct {
	ProviderDayID int `json:"providerDayId" binding:"required"`
}

func (h *WorkflowHandler) SelectProviderDay(c *gin.Context) {
	var req providerDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid provider-day payload", err.Error())
		return
	}

	session, err := h.Service.SelectProviderDay(c.Request.Context(), c.Param("sessionID"), req.ProviderDayID)
	if err != nil {
		h.respondWorkflowError(c, session, err)
		return
	}

	resp := gin.H{"session": session}
	if session.Stage == models.StageSlotGrid {
		resp["days"] = workflow.UniqueDays(session.Slots)
	}
	c.JSON(http.StatusOK, resp)
}

type slotRequest struct {
	SlotKey string `json:"slotKey" binding:"required"`
}

func (h *WorkflowHandler) SelectSlot(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid slot payload", err.Error())
		return
	}

	session, err := h.Service.SelectSlot(c.Request.Context(), c.Param("sessionID"), req.SlotKey)
	if err != nil {
		h.respondWorkflowError(c, session, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *WorkflowHandler) Confirm(c *gin.Context) {
	session, rec, err := h.Service.Confirm(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondWorkflowError(c, session, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "appointment": rec})
}

func (h *WorkflowHandler) CancelConfirm(c *gin.Context) {
	session, err := h.Service.CancelConfirm(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondWorkflowError(c, session, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *WorkflowHandler) Back(c *gin.Context) {
	session, err := h.Service.Back(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondWorkflowError(c, session, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

func (h *WorkflowHandler) Close(c *gin.Context) {
	if err := h.Service.Close(c.Request.Context(), c.Param("sessionID")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to close workflow session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session closed"})
}

// respondWorkflowError maps workflow errors to HTTP statuses. Validation
// problems are 400, stage mismatches 409, upstream availability failures
// carry their own status, everything else is 500. When the session survived
// the failure it is included so the client can re-render.
func (h *WorkflowHandler) respondWorkflowError(c *gin.Context, session *models.WorkflowSession, err error) {
	var (
		vErr   *workflow.ValidationError
		sErr   *workflow.StateError
		apiErr *availability.APIError
	)

	status := http.StatusInternalServerError
	message := "Workflow operation failed"
	switch {
	case errors.As(err, &vErr):
		status = http.StatusBadRequest
		message = "Invalid selection"
	case errors.As(err, &sErr):
		status = http.StatusConflict
		message = "Operation not allowed in the current stage"
	case errors.As(err, &apiErr):
		status = apiErr.StatusCode
		message = "Availability service rejected the request"
	case session == nil:
		status = http.StatusNotFound
		message = "Workflow session not found"
	default:
		h.Logger.Error("workflow operation failed", zap.Error(err))
	}

	body := gin.H{"error": message, "details": err.Error()}
	if session != nil {
		body["session"] = session
	}
	c.JSON(status, body)
}
