package reference

import (
	"context"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"randevu/models"
)

func testData() models.ReferenceData {
	return models.ReferenceData{
		Regions: []models.Region{
			{ID: 1, Name: "Istanbul"},
			{ID: 2, Name: "Ankara"},
		},
		SubRegions: []models.SubRegion{
			{ID: 11, Name: "Besiktas", RegionID: 1},
			{ID: 10, Name: "Kadikoy", RegionID: 1},
			{ID: 20, Name: "Cankaya", RegionID: 2},
		},
		Departments: []models.Department{
			{ID: 100, Name: "Cardiology", RegionID: 1, SubRegionID: 10},
			{ID: 101, Name: "Dermatology", RegionID: 1, SubRegionID: 11},
			{ID: 200, Name: "Cardiology", RegionID: 2, SubRegionID: 20},
		},
	}
}

func TestLookups(t *testing.T) {
	c := New(testData())

	if r, ok := c.RegionByID(1); !ok || r.Name != "Istanbul" {
		t.Errorf("RegionByID(1) = %v, %v", r, ok)
	}
	if _, ok := c.RegionByID(99); ok {
		t.Error("unknown region must not resolve")
	}
	if s, ok := c.SubRegionByID(10); !ok || s.RegionID != 1 {
		t.Errorf("SubRegionByID(10) = %v, %v", s, ok)
	}
	if d, ok := c.DepartmentByID(200); !ok || d.RegionID != 2 {
		t.Errorf("DepartmentByID(200) = %v, %v", d, ok)
	}
}

func TestSubRegionsOfSortedByName(t *testing.T) {
	c := New(testData())

	subs := c.SubRegionsOf(1)
	if len(subs) != 2 {
		t.Fatalf("expected 2 sub-regions, got %d", len(subs))
	}
	if subs[0].Name != "Besiktas" || subs[1].Name != "Kadikoy" {
		t.Errorf("sub-regions not sorted by name: %v", subs)
	}
	if got := c.SubRegionsOf(99); len(got) != 0 {
		t.Errorf("unknown region must yield no sub-regions, got %v", got)
	}
}

func TestDepartmentsFor(t *testing.T) {
	c := New(testData())

	if got := c.DepartmentsFor(1, 0); len(got) != 2 {
		t.Errorf("region-only filter should match 2 departments, got %v", got)
	}
	got := c.DepartmentsFor(1, 10)
	if len(got) != 1 || got[0].ID != 100 {
		t.Errorf("region and sub-region filter should match Cardiology only, got %v", got)
	}
	if got := c.DepartmentsFor(2, 10); len(got) != 0 {
		t.Errorf("mismatched region/sub-region pair must match nothing, got %v", got)
	}
}

type stubClient struct {
	data *models.ReferenceData
	err  error
}

func (s *stubClient) InitialData(ctx context.Context) (*models.ReferenceData, error) {
	return s.data, s.err
}

func (s *stubClient) ProviderDays(ctx context.Context, regionID, departmentID, subRegionID int) ([]models.ProviderDaySummary, error) {
	return nil, nil
}

func (s *stubClient) Clinicians(ctx context.Context, providerDayID, departmentID int) ([]models.Clinician, error) {
	return nil, nil
}

func (s *stubClient) Search(ctx context.Context, sel models.FilterSelection) ([]models.ProviderDaySummary, error) {
	return nil, nil
}

func (s *stubClient) Slots(ctx context.Context, providerID int, startDate, endDate string, includeBooked bool) ([]models.SlotRecord, error) {
	return nil, nil
}

func (s *stubClient) Book(ctx context.Context, patientID, slotID int) error { return nil }

func (s *stubClient) Cancel(ctx context.Context, appointmentID int) error { return nil }

func (s *stubClient) PastAppointments(ctx context.Context, patientID int) ([]models.RemoteAppointment, error) {
	return nil, nil
}

func TestLoad(t *testing.T) {
	data := testData()
	c, err := Load(context.Background(), &stubClient{data: &data}, zap.NewNop())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := c.Data(); len(got.Regions) != 2 {
		t.Errorf("unexpected data: %+v", got)
	}

	if _, err := Load(context.Background(), &stubClient{err: fmt.Errorf("boom")}, zap.NewNop()); err == nil {
		t.Fatal("a fetch failure must propagate")
	}
}
