package models

import "time"

// StatusActive is the status a freshly confirmed appointment is recorded with.
const StatusActive = "Aktif Randevu"

// BookingDraft is the tentative selection held between the slot grid and the
// confirmation stage. At most one draft exists per workflow session.
type BookingDraft struct {
	Summary ProviderDaySummary `json:"summary"`
	Slot    SlotRecord         `json:"slot"`
}

// AppointmentRecord is a confirmed, persisted appointment. Records are
// append-only and read back ordered by CreatedAt descending.
type AppointmentRecord struct {
	ID             string    `bson:"id" json:"id"`
	PatientID      int       `bson:"patientId" json:"patientId"`
	Date           string    `bson:"date" json:"date"` // display date plus start time, e.g. "02.01.2006 09:15"
	Time           string    `bson:"time" json:"time"` // "15:04"
	ProviderName   string    `bson:"providerName" json:"providerName"`
	LocationName   string    `bson:"locationName" json:"locationName"`
	DepartmentName string    `bson:"departmentName" json:"departmentName"`
	Status         string    `bson:"status" json:"status"`
	Owner          string    `bson:"owner,omitempty" json:"owner,omitempty"`
	Note           string    `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	SlotID         int       `bson:"slotId" json:"slotId"`
}

// RemoteAppointment is an appointment as reported by the availability
// service's patient history endpoint.
type RemoteAppointment struct {
	ID              int    `json:"id"`
	SlotStartTime   string `json:"slotStartTime"`
	SlotEndTime     string `json:"slotEndTime"`
	PatientID       int    `json:"patientId"`
	PatientName     string `json:"patientName"`
	ProviderID      int    `json:"doctorId"`
	ProviderName    string `json:"doctorName"`
	AvailabilityID  int    `json:"availabilityId"`
	AppointmentDate string `json:"appointmentDate"`
	Status          int    `json:"status"`
}
