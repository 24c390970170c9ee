package models

// Stage names the UI-visible steps of the booking workflow.
type Stage string

const (
	StageSearch       Stage = "search"
	StageProviderList Stage = "providerList"
	StageSlotGrid     Stage = "slotGrid"
	StageConfirm      Stage = "confirm"
	StageSuccess      Stage = "success"
)

// FilterSelection is the cascading filter state: setting an upstream field
// resets everything that depends on it. Zero values mean "not selected".
type FilterSelection struct {
	RegionID      int    `json:"regionId"`
	SubRegionID   int    `json:"subRegionId,omitempty"`
	DepartmentID  int    `json:"departmentId"`
	ProviderDayID int    `json:"providerDayId,omitempty"`
	ClinicianID   int    `json:"clinicianId,omitempty"`
	StartDate     string `json:"startDate,omitempty"`
	EndDate       string `json:"endDate,omitempty"`
}

// WorkflowSession holds the full state of one patient's booking workflow
// between requests. It is cached as a JSON document with a TTL.
type WorkflowSession struct {
	SessionID   string               `json:"sessionId"`
	PatientID   int                  `json:"patientId"`
	PatientName string               `json:"patientName,omitempty"`
	Stage       Stage                `json:"stage"`
	Selection   FilterSelection      `json:"selection"`
	Summaries   []ProviderDaySummary `json:"summaries,omitempty"`
	Selected    *ProviderDaySummary  `json:"selected,omitempty"`
	Slots       []SlotRecord         `json:"slots,omitempty"`
	Draft       *BookingDraft        `json:"draft,omitempty"`

	// Generation guards against out-of-order application of overlapping
	// queries: a response is applied only if its generation still matches.
	Generation int `json:"generation"`
}
