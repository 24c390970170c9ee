package workflow

import (
	"fmt"
	"sort"

	"randevu/models"
)

// GridConfig describes the clinic's canonical slot layout: one slot per step
// from the opening hour up to (exclusive) the closing hour.
type GridConfig struct {
	OpenHour    int
	CloseHour   int
	StepMinutes int
}

// DefaultGridConfig is the clinic's standard day: 09:00-17:00 in 15-minute
// steps.
func DefaultGridConfig() GridConfig {
	return GridConfig{OpenHour: 9, CloseHour: 17, StepMinutes: 15}
}

// GenerateGrid produces the dense synthetic grid for one day. Every slot
// defaults to booked: closed is the safe assumption for a slot the
// authoritative feed says nothing about.
func GenerateGrid(date string, cfg GridConfig) []models.SlotRecord {
	if cfg.StepMinutes <= 0 {
		cfg = DefaultGridConfig()
	}
	var slots []models.SlotRecord
	for m := cfg.OpenHour * 60; m < cfg.CloseHour*60; m += cfg.StepMinutes {
		end := m + cfg.StepMinutes
		slots = append(slots, models.SlotRecord{
			Date:      date,
			StartTime: clockTime(m),
			EndTime:   clockTime(end),
			IsBooked:  true,
		})
	}
	return slots
}

// MergeGrid overlays authoritative slot records on a generated grid. The
// merge is right-biased and keyed by (date, startTime): an authoritative
// record always replaces the placeholder sharing its key, and placeholders
// remain for keys the feed omits. Merging the same feed twice produces an
// identical grid.
func MergeGrid(generated, authoritative []models.SlotRecord) []models.SlotRecord {
	byKey := make(map[string]models.SlotRecord, len(authoritative))
	for _, slot := range authoritative {
		byKey[slot.Key()] = slot
	}

	merged := make([]models.SlotRecord, len(generated))
	for i, slot := range generated {
		if auth, ok := byKey[slot.Key()]; ok {
			merged[i] = auth
		} else {
			merged[i] = slot
		}
	}
	return merged
}

// GroupByHour partitions slots into buckets keyed by starting hour, with a
// per-bucket count of non-booked slots. Buckets come back sorted by hour.
func GroupByHour(slots []models.SlotRecord) []models.HourBucket {
	byHour := make(map[int][]models.SlotRecord)
	for _, slot := range slots {
		h, ok := startHour(slot.StartTime)
		if !ok {
			continue
		}
		byHour[h] = append(byHour[h], slot)
	}

	buckets := make([]models.HourBucket, 0, len(byHour))
	for hour, hourSlots := range byHour {
		available := 0
		for _, slot := range hourSlots {
			if !slot.IsBooked {
				available++
			}
		}
		buckets = append(buckets, models.HourBucket{
			Hour:           hour,
			AvailableCount: available,
			Slots:          hourSlots,
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Hour < buckets[j].Hour })
	return buckets
}

// UniqueDays returns the sorted distinct calendar dates present in a slot
// window; it drives the day strip above the grid.
func UniqueDays(slots []models.SlotRecord) []string {
	seen := map[string]bool{}
	var days []string
	for _, slot := range slots {
		day := slot.Day()
		if day == "" || seen[day] {
			continue
		}
		seen[day] = true
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// SlotsForDay filters a slot window down to one calendar date.
func SlotsForDay(slots []models.SlotRecord, day string) []models.SlotRecord {
	var out []models.SlotRecord
	for _, slot := range slots {
		if slot.Day() == day {
			out = append(out, slot)
		}
	}
	return out
}

func clockTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
}

func startHour(startTime string) (int, bool) {
	if len(startTime) < 2 {
		return 0, false
	}
	h := 0
	for _, c := range startTime[:2] {
		if c < '0' || c > '9' {
			return 0, false
		}
		h = h*10 + int(c-'0')
	}
	return h, true
}
