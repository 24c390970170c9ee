package models

import "strings"

// ProviderDaySummary is one clinician's availability window on one day,
// as returned by the availability search.
type ProviderDaySummary struct {
	ID             int    `json:"id"`
	ProviderID     int    `json:"providerId"`
	ProviderName   string `json:"providerName"`
	Date           string `json:"date"` // "2006-01-02", sometimes with a trailing "T..." portion
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	IsBooked       bool   `json:"isBooked"`
	IsRemoved      bool   `json:"isRemoved"`
	LocationName   string `json:"location,omitempty"`
	DepartmentName string `json:"department,omitempty"`
	DaysLeft       string `json:"daysLeft,omitempty"`
	Note           string `json:"note,omitempty"`
}

// Day returns the calendar-date portion of the summary's date.
func (s ProviderDaySummary) Day() string {
	return dayOf(s.Date)
}

// SlotRecord is one fixed-length bookable interval for a provider on a date.
// Generated grid placeholders have ID 0 and IsBooked true.
type SlotRecord struct {
	ID           int    `json:"id"`
	ProviderID   int    `json:"providerId"`
	ProviderName string `json:"providerName,omitempty"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"` // "15:04:05"
	EndTime      string `json:"endTime"`
	IsBooked     bool   `json:"isBooked"`
	IsRemoved    bool   `json:"isRemoved"`
}

// Day returns the calendar-date portion of the slot's date.
func (s SlotRecord) Day() string {
	return dayOf(s.Date)
}

// Key uniquely identifies the slot within a provider's schedule.
func (s SlotRecord) Key() string {
	return s.Day() + "-" + s.StartTime
}

// HourBucket groups a day's slots by their starting hour for progressive
// disclosure; AvailableCount is the number of non-booked slots in the bucket.
type HourBucket struct {
	Hour           int          `json:"hour"`
	AvailableCount int          `json:"availableCount"`
	Slots          []SlotRecord `json:"slots"`
}

func dayOf(date string) string {
	if i := strings.IndexByte(date, 'T'); i >= 0 {
		return date[:i]
	}
	return date
}
