package availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randevu/models"
)

func TestProviderDaysDecodesBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dropdown/hospitals", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("regionId"))
		assert.Equal(t, "100", r.URL.Query().Get("departmentId"))
		assert.Equal(t, "10", r.URL.Query().Get("subRegionId"))
		w.Write([]byte(`[{"id":7,"providerId":9,"providerName":"Dr. Yilmaz","date":"2025-09-01"}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.ProviderDays(context.Background(), 1, 100, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].ID)
	assert.Equal(t, "Dr. Yilmaz", got[0].ProviderName)
}

func TestProviderDaysOmitsZeroSubRegion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, present := r.URL.Query()["subRegionId"]
		assert.False(t, present, "zero sub-region must not be sent")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.ProviderDays(context.Background(), 1, 100, 0)
	require.NoError(t, err)
}

func TestSearchDecodesWrappedBodies(t *testing.T) {
	for name, body := range map[string]string{
		"hospitals key": `{"hospitals":[{"id":7}]}`,
		"data key":      `{"data":[{"id":7}]}`,
		"bare array":    `[{"id":7}]`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/availability/search", r.URL.Path)
				w.Write([]byte(body))
			}))
			defer srv.Close()

			c := NewHTTPClient(srv.URL)
			got, err := c.Search(context.Background(), models.FilterSelection{RegionID: 1, DepartmentID: 100})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, 7, got[0].ID)
		})
	}
}

func TestSearchSendsOnlySetFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, float64(1), payload["regionId"])
		assert.Equal(t, float64(100), payload["departmentId"])
		_, hasClinician := payload["clinicianId"]
		assert.False(t, hasClinician)
		_, hasDates := payload["startDate"]
		assert.False(t, hasDates)
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	_, err := c.Search(context.Background(), models.FilterSelection{RegionID: 1, DepartmentID: 100})
	require.NoError(t, err)
}

func TestSlotsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/availability/get-available-slots", r.URL.Path)
		assert.Equal(t, "9", r.URL.Query().Get("doctorId"))
		assert.Equal(t, "2025-09-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2025-09-06", r.URL.Query().Get("endDate"))
		assert.Equal(t, "true", r.URL.Query().Get("includeBooked"))
		w.Write([]byte(`[{"id":501,"date":"2025-09-01","startTime":"09:30:00","isBooked":false}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.Slots(context.Background(), 9, "2025-09-01", "2025-09-06", true)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2025-09-01-09:30:00", got[0].Key())
}

func TestBookSendsPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointment/book", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var payload map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, 1502, payload["patientId"])
		assert.Equal(t, 501, payload["slotId"])
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	require.NoError(t, c.Book(context.Background(), 1502, 501))
}

func TestNonSuccessBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"message":"slot already taken"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	err := c.Book(context.Background(), 1502, 501)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "slot already taken", apiErr.Message)
}

func TestNonSuccessFallsBackToRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`upstream exploded`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	err := c.Cancel(context.Background(), 42)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "upstream exploded", apiErr.Message)
}

func TestPastAppointmentsPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/appointment/patient/1502/past", r.URL.Path)
		w.Write([]byte(`[{"id":1,"doctorName":"Dr. Yilmaz"}]`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.PastAppointments(context.Background(), 1502)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dr. Yilmaz", got[0].ProviderName)
}

func TestCliniciansDecodesWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dropdown/doctors", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("providerDayId"))
		w.Write([]byte(`{"doctors":[{"id":3,"providerDayId":7,"name":"Dr. A"}]}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL)
	got, err := c.Clinicians(context.Background(), 7, 100)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Dr. A", got[0].Name)
}
