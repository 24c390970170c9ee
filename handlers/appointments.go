package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"randevu/services/availability"
	"randevu/services/workflow"
	"randevu/utils"
)

// AppointmentsHandler serves the local booking history and the remote
// appointment operations that do not need a workflow session.
type AppointmentsHandler struct {
	Recorder     *workflow.Recorder
	Availability availability.Client
	Logger       *zap.Logger
}

func NewAppointmentsHandler(recorder *workflow.Recorder, client availability.Client, logger *zap.Logger) *AppointmentsHandler {
	return &AppointmentsHandler{Recorder: recorder, Availability: client, Logger: logger}
}

// History returns the locally recorded bookings, newest first.
func (h *AppointmentsHandler) History(c *gin.Context) {
	records, err := h.Recorder.History(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to load booking history", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": records})
}

type cancelRequest struct {
	AppointmentID int    `json:"appointmentId" binding:"required"`
	RecordID      string `json:"recordId"`
}

// Cancel revokes the appointment upstream, then drops the matching local
// record if one was supplied.
func (h *AppointmentsHandler) Cancel(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid cancel payload", err.Error())
		return
	}

	if err := h.Availability.Cancel(c.Request.Context(), req.AppointmentID); err != nil {
		var apiErr *availability.APIError
		if errors.As(err, &apiErr) {
			utils.JSONError(c, apiErr.StatusCode, "Cancellation rejected", apiErr.Message)
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Cancellation failed", err.Error())
		return
	}

	if req.RecordID != "" {
		if err := h.Recorder.Remove(c.Request.Context(), req.RecordID); err != nil {
			h.Logger.Warn("failed to remove local booking record",
				zap.String("recordId", req.RecordID), zap.Error(err))
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Appointment cancelled"})
}

// Past proxies the upstream past-appointments listing for the
// authenticated patient.
func (h *AppointmentsHandler) Past(c *gin.Context) {
	patient := currentPatient(c)
	if patient == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Not authenticated", "")
		return
	}

	patientID := patient.RemoteID
	if raw := c.Query("patientId"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid patientId", raw)
			return
		}
		patientID = parsed
	}

	appointments, err := h.Availability.PastAppointments(c.Request.Context(), patientID)
	if err != nil {
		var apiErr *availability.APIError
		if errors.As(err, &apiErr) {
			utils.JSONError(c, apiErr.StatusCode, "Failed to fetch past appointments", apiErr.Message)
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "Failed to fetch past appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}
