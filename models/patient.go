package models

import "time"

// Patient is a registered user of the appointment workflow.
type Patient struct {
	ID           string    `bson:"id" json:"id"`
	NationalID   string    `bson:"nationalId" json:"nationalId"`
	RemoteID     int       `bson:"remoteId" json:"remoteId"` // patient id known to the availability service
	FirstName    string    `bson:"firstName" json:"firstName"`
	LastName     string    `bson:"lastName" json:"lastName"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Email        string    `bson:"email,omitempty" json:"email,omitempty"`
	BirthDate    string    `bson:"birthDate,omitempty" json:"birthDate,omitempty"`
	PasswordHash string    `bson:"passwordHash" json:"-"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}

// FullName returns the patient's display name.
func (p Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
