package workflow

import (
	"testing"

	"randevu/models"
)

func TestGenerateGridDenseAndBooked(t *testing.T) {
	grid := GenerateGrid("2025-09-01", DefaultGridConfig())

	if len(grid) != 32 {
		t.Fatalf("expected 32 slots for a 09:00-17:00 day at 15-minute steps, got %d", len(grid))
	}
	if grid[0].StartTime != "09:00:00" || grid[0].EndTime != "09:15:00" {
		t.Errorf("unexpected first slot: %s-%s", grid[0].StartTime, grid[0].EndTime)
	}
	last := grid[len(grid)-1]
	if last.StartTime != "16:45:00" || last.EndTime != "17:00:00" {
		t.Errorf("unexpected last slot: %s-%s", last.StartTime, last.EndTime)
	}
	for _, slot := range grid {
		if !slot.IsBooked {
			t.Fatalf("placeholder slot %s must default to booked", slot.Key())
		}
		if slot.Date != "2025-09-01" {
			t.Fatalf("placeholder slot carries wrong date %q", slot.Date)
		}
	}
}

func TestGenerateGridFallsBackOnBadConfig(t *testing.T) {
	grid := GenerateGrid("2025-09-01", GridConfig{})
	if len(grid) != 32 {
		t.Fatalf("zero config should fall back to the default layout, got %d slots", len(grid))
	}
}

func TestGenerateGridHonorsConfiguredGeometry(t *testing.T) {
	grid := GenerateGrid("2025-09-01", GridConfig{OpenHour: 10, CloseHour: 12, StepMinutes: 30})

	if len(grid) != 4 {
		t.Fatalf("expected 4 slots for a 10:00-12:00 day at 30-minute steps, got %d", len(grid))
	}
	if grid[0].StartTime != "10:00:00" || grid[0].EndTime != "10:30:00" {
		t.Errorf("unexpected first slot: %s-%s", grid[0].StartTime, grid[0].EndTime)
	}
	last := grid[len(grid)-1]
	if last.StartTime != "11:30:00" || last.EndTime != "12:00:00" {
		t.Errorf("unexpected last slot: %s-%s", last.StartTime, last.EndTime)
	}
}

func TestMergeGridRightBiased(t *testing.T) {
	generated := GenerateGrid("2025-09-01", DefaultGridConfig())
	feed := []models.SlotRecord{
		{ID: 501, ProviderID: 9, Date: "2025-09-01", StartTime: "09:30:00", EndTime: "09:45:00", IsBooked: false},
		{ID: 502, ProviderID: 9, Date: "2025-09-01", StartTime: "10:00:00", EndTime: "10:15:00", IsBooked: true},
		// Other day: must not collide with this grid.
		{ID: 601, ProviderID: 9, Date: "2025-09-02", StartTime: "09:30:00", EndTime: "09:45:00", IsBooked: false},
	}

	merged := MergeGrid(generated, feed)
	if len(merged) != len(generated) {
		t.Fatalf("merge must preserve grid density: got %d slots", len(merged))
	}

	byKey := map[string]models.SlotRecord{}
	for _, s := range merged {
		byKey[s.Key()] = s
	}

	free := byKey["2025-09-01-09:30:00"]
	if free.ID != 501 || free.IsBooked {
		t.Errorf("authoritative free slot must replace its placeholder, got %+v", free)
	}
	booked := byKey["2025-09-01-10:00:00"]
	if booked.ID != 502 || !booked.IsBooked {
		t.Errorf("authoritative booked slot must replace its placeholder, got %+v", booked)
	}
	placeholder := byKey["2025-09-01-11:00:00"]
	if placeholder.ID != 0 || !placeholder.IsBooked {
		t.Errorf("slot absent from the feed must remain a booked placeholder, got %+v", placeholder)
	}
	if _, ok := byKey["2025-09-02-09:30:00"]; ok {
		t.Error("a record from another day leaked into the grid")
	}

	// Merging the same feed again must not change anything.
	again := MergeGrid(merged, feed)
	for i := range merged {
		if merged[i] != again[i] {
			t.Fatalf("merge is not idempotent at %s", merged[i].Key())
		}
	}
}

func TestGroupByHour(t *testing.T) {
	merged := MergeGrid(GenerateGrid("2025-09-01", DefaultGridConfig()), []models.SlotRecord{
		{ID: 501, Date: "2025-09-01", StartTime: "09:30:00", EndTime: "09:45:00", IsBooked: false},
		{ID: 503, Date: "2025-09-01", StartTime: "09:45:00", EndTime: "10:00:00", IsBooked: false},
		{ID: 504, Date: "2025-09-01", StartTime: "14:00:00", EndTime: "14:15:00", IsBooked: false},
	})

	buckets := GroupByHour(merged)
	if len(buckets) != 8 {
		t.Fatalf("expected one bucket per clinic hour, got %d", len(buckets))
	}
	for i, b := range buckets {
		if b.Hour != 9+i {
			t.Fatalf("buckets out of order: bucket %d has hour %d", i, b.Hour)
		}
		if len(b.Slots) != 4 {
			t.Fatalf("hour %d should hold 4 slots, got %d", b.Hour, len(b.Slots))
		}
	}
	if buckets[0].AvailableCount != 2 {
		t.Errorf("hour 9 should count 2 available slots, got %d", buckets[0].AvailableCount)
	}
	if buckets[5].AvailableCount != 1 {
		t.Errorf("hour 14 should count 1 available slot, got %d", buckets[5].AvailableCount)
	}
	if buckets[1].AvailableCount != 0 {
		t.Errorf("hour 10 should count 0 available slots, got %d", buckets[1].AvailableCount)
	}
}

func TestUniqueDaysAndSlotsForDay(t *testing.T) {
	slots := []models.SlotRecord{
		{Date: "2025-09-03", StartTime: "09:00:00"},
		{Date: "2025-09-01T00:00:00", StartTime: "09:00:00"},
		{Date: "2025-09-01", StartTime: "09:15:00"},
		{Date: "2025-09-02", StartTime: "09:00:00"},
	}

	days := UniqueDays(slots)
	want := []string{"2025-09-01", "2025-09-02", "2025-09-03"}
	if len(days) != len(want) {
		t.Fatalf("expected %d days, got %v", len(want), days)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Fatalf("days not sorted: got %v", days)
		}
	}

	day1 := SlotsForDay(slots, "2025-09-01")
	if len(day1) != 2 {
		t.Fatalf("expected 2 slots on 2025-09-01, got %d", len(day1))
	}
}
