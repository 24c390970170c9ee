package availability

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"randevu/models"
)

// Client defines the outbound interface to the hospital availability service.
type Client interface {
	// InitialData fetches the full region/department hierarchy.
	InitialData(ctx context.Context) (*models.ReferenceData, error)
	// ProviderDays lists provider-day summaries for a region/department pair.
	// subRegionID is optional (0 = any).
	ProviderDays(ctx context.Context, regionID, departmentID, subRegionID int) ([]models.ProviderDaySummary, error)
	// Clinicians lists doctors for a chosen provider-day and department.
	Clinicians(ctx context.Context, providerDayID, departmentID int) ([]models.Clinician, error)
	// Search runs the full availability search over a filter selection.
	Search(ctx context.Context, sel models.FilterSelection) ([]models.ProviderDaySummary, error)
	// Slots fetches raw slot records for a clinician across a date window.
	Slots(ctx context.Context, providerID int, startDate, endDate string, includeBooked bool) ([]models.SlotRecord, error)
	// Book commits a slot for a patient.
	Book(ctx context.Context, patientID, slotID int) error
	// Cancel cancels a previously booked appointment.
	Cancel(ctx context.Context, appointmentID int) error
	// PastAppointments lists a patient's appointments known to the service.
	PastAppointments(ctx context.Context, patientID int) ([]models.RemoteAppointment, error)
}

// APIError carries the status of a non-success response.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("availability service returned %d: %s", e.StatusCode, e.Message)
}

// HTTPClient implements Client against the real availability service.
type HTTPClient struct {
	BaseURL string
	HTTP    *http.Client
}

// NewHTTPClient creates a Client with a request timeout.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *HTTPClient) InitialData(ctx context.Context) (*models.ReferenceData, error) {
	var data models.ReferenceData
	if err := c.getJSON(ctx, "/api/dropdown/initial", nil, &data); err != nil {
		return nil, fmt.Errorf("fetching initial reference data: %w", err)
	}
	return &data, nil
}

func (c *HTTPClient) ProviderDays(ctx context.Context, regionID, departmentID, subRegionID int) ([]models.ProviderDaySummary, error) {
	params := url.Values{}
	params.Set("regionId", strconv.Itoa(regionID))
	params.Set("departmentId", strconv.Itoa(departmentID))
	if subRegionID != 0 {
		params.Set("subRegionId", strconv.Itoa(subRegionID))
	}

	body, err := c.get(ctx, "/api/dropdown/hospitals", params)
	if err != nil {
		return nil, fmt.Errorf("fetching provider days: %w", err)
	}
	return decodeSummaries(body)
}

func (c *HTTPClient) Clinicians(ctx context.Context, providerDayID, departmentID int) ([]models.Clinician, error) {
	params := url.Values{}
	params.Set("providerDayId", strconv.Itoa(providerDayID))
	params.Set("departmentId", strconv.Itoa(departmentID))

	body, err := c.get(ctx, "/api/dropdown/doctors", params)
	if err != nil {
		return nil, fmt.Errorf("fetching clinicians: %w", err)
	}

	// The service answers either a bare array or {"doctors": [...]}.
	var bare []models.Clinician
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}
	var wrapped struct {
		Doctors []models.Clinician `json:"doctors"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding clinician response: %w", err)
	}
	return wrapped.Doctors, nil
}

func (c *HTTPClient) Search(ctx context.Context, sel models.FilterSelection) ([]models.ProviderDaySummary, error) {
	req := map[string]interface{}{
		"regionId":     sel.RegionID,
		"subRegionId":  sel.SubRegionID,
		"departmentId": sel.DepartmentID,
	}
	if sel.ProviderDayID != 0 {
		req["providerDayId"] = sel.ProviderDayID
	}
	if sel.ClinicianID != 0 {
		req["clinicianId"] = sel.ClinicianID
	}
	if sel.StartDate != "" {
		req["startDate"] = sel.StartDate
	}
	if sel.EndDate != "" {
		req["endDate"] = sel.EndDate
	}

	body, err := c.post(ctx, "/api/availability/search", req)
	if err != nil {
		return nil, fmt.Errorf("availability search: %w", err)
	}
	return decodeSummaries(body)
}

func (c *HTTPClient) Slots(ctx context.Context, providerID int, startDate, endDate string, includeBooked bool) ([]models.SlotRecord, error) {
	params := url.Values{}
	params.Set("doctorId", strconv.Itoa(providerID))
	params.Set("startDate", startDate)
	params.Set("endDate", endDate)
	params.Set("includeBooked", strconv.FormatBool(includeBooked))

	var slots []models.SlotRecord
	if err := c.getJSON(ctx, "/api/availability/get-available-slots", params, &slots); err != nil {
		return nil, fmt.Errorf("fetching slots: %w", err)
	}
	return slots, nil
}

func (c *HTTPClient) Book(ctx context.Context, patientID, slotID int) error {
	req := map[string]interface{}{
		"patientId": patientID,
		"slotId":    slotID,
	}
	if _, err := c.post(ctx, "/api/appointment/book", req); err != nil {
		return fmt.Errorf("booking slot %d: %w", slotID, err)
	}
	return nil
}

func (c *HTTPClient) Cancel(ctx context.Context, appointmentID int) error {
	req := map[string]interface{}{
		"appointmentId": appointmentID,
	}
	if _, err := c.post(ctx, "/api/appointment/cancel", req); err != nil {
		return fmt.Errorf("cancelling appointment %d: %w", appointmentID, err)
	}
	return nil
}

func (c *HTTPClient) PastAppointments(ctx context.Context, patientID int) ([]models.RemoteAppointment, error) {
	var appts []models.RemoteAppointment
	path := fmt.Sprintf("/api/appointment/patient/%d/past", patientID)
	if err := c.getJSON(ctx, path, nil, &appts); err != nil {
		return nil, fmt.Errorf("fetching past appointments: %w", err)
	}
	return appts, nil
}

// decodeSummaries accepts a bare array or a body wrapped under a
// "hospitals" or "data" key.
func decodeSummaries(body []byte) ([]models.ProviderDaySummary, error) {
	var bare []models.ProviderDaySummary
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil
	}

	var wrapped struct {
		Hospitals []models.ProviderDaySummary `json:"hospitals"`
		Data      []models.ProviderDaySummary `json:"data"`
	}
	if err := json.Unmarshal(body, &wrapped); err != nil {
		return nil, fmt.Errorf("decoding summary response: %w", err)
	}
	if wrapped.Hospitals != nil {
		return wrapped.Hospitals, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return []models.ProviderDaySummary{}, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.BaseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

func (c *HTTPClient) getJSON(ctx context.Context, path string, params url.Values, out interface{}) error {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *HTTPClient) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		var payload struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil {
			if payload.Message != "" {
				msg = payload.Message
			} else if payload.Error != "" {
				msg = payload.Error
			}
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
	return body, nil
}
