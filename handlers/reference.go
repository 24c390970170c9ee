package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"randevu/models"
	"randevu/services/availability"
	"randevu/services/reference"
	"randevu/services/workflow"
	"randevu/utils"
)

// ReferenceHandler serves the cached placement hierarchy and the filter
// option sets derived from it.
type ReferenceHandler struct {
	Cache        *reference.Cache
	Resolver     *workflow.FilterResolver
	Availability availability.Client
	Logger       *zap.Logger
}

func NewReferenceHandler(cache *reference.Cache, resolver *workflow.FilterResolver, client availability.Client, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{Cache: cache, Resolver: resolver, Availability: client, Logger: logger}
}

// Get returns the full reference hierarchy loaded at startup.
func (h *ReferenceHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.Data())
}

// Options computes the valid choices for each filter given the current
// selection. Provider-days are fetched upstream once region and department
// are set, clinicians once a provider-day is also chosen.
func (h *ReferenceHandler) Options(c *gin.Context) {
	sel := models.FilterSelection{
		RegionID:      intQuery(c, "regionId"),
		SubRegionID:   intQuery(c, "subRegionId"),
		DepartmentID:  intQuery(c, "departmentId"),
		ProviderDayID: intQuery(c, "providerDayId"),
	}
	h.Resolver.Normalize(&sel)

	resp := gin.H{
		"selection":   sel,
		"subRegions":  h.Resolver.AvailableSubRegions(sel),
		"departments": h.Resolver.AvailableDepartments(sel),
	}

	if sel.RegionID != 0 && sel.DepartmentID != 0 {
		days, err := h.Availability.ProviderDays(c.Request.Context(), sel.RegionID, sel.DepartmentID, sel.SubRegionID)
		if err != nil {
			var apiErr *availability.APIError
			if errors.As(err, &apiErr) {
				utils.JSONError(c, apiErr.StatusCode, "Failed to fetch provider days", apiErr.Message)
				return
			}
			utils.JSONError(c, http.StatusBadGateway, "Failed to fetch provider days", err.Error())
			return
		}
		resp["providerDays"] = days
	}

	if sel.ProviderDayID != 0 && sel.DepartmentID != 0 {
		clinicians, err := h.Availability.Clinicians(c.Request.Context(), sel.ProviderDayID, sel.DepartmentID)
		if err != nil {
			var apiErr *availability.APIError
			if errors.As(err, &apiErr) {
				utils.JSONError(c, apiErr.StatusCode, "Failed to fetch clinicians", apiErr.Message)
				return
			}
			utils.JSONError(c, http.StatusBadGateway, "Failed to fetch clinicians", err.Error())
			return
		}
		resp["clinicians"] = h.Resolver.AvailableClinicians(sel, clinicians)
	}

	c.JSON(http.StatusOK, resp)
}

func intQuery(c *gin.Context, name string) int {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		zap.L().Debug("ignoring malformed query parameter", zap.String("param", name), zap.String("value", raw))
		return 0
	}
	return value
}
