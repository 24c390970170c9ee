package auth

import (
	"context"

	"randevu/database/repository"
	"randevu/models"

	"github.com/go-redis/redis/v8"
)

// RegisterInput is the payload for creating a patient account.
type RegisterInput struct {
	NationalID string `json:"nationalId" binding:"required"`
	Password   string `json:"password" binding:"required"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	BirthDate  string `json:"birthDate"`
	RemoteID   int    `json:"remoteId"`
}

// ProfileUpdate carries the mutable profile fields. National id and birth
// date are fixed at registration.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
}

// Gateway is the authentication boundary the workflow consumes. The booking
// workflow only ever reads IsAuthenticated and CurrentUser.
type Gateway interface {
	Register(ctx context.Context, input RegisterInput) (*models.Patient, error)
	Login(ctx context.Context, nationalID, password string) (string, *models.Patient, error)
	Logout(ctx context.Context, token string) error
	CurrentUser(ctx context.Context, token string) (*models.Patient, error)
	IsAuthenticated(ctx context.Context, token string) bool
	UpdateProfile(ctx context.Context, patientID string, input ProfileUpdate) (*models.Patient, error)
	UpdatePassword(ctx context.Context, patientID, currentPassword, newPassword string) error
}

// DefaultGateway implements Gateway over the patient repository and the auth
// session cache.
type DefaultGateway struct {
	Repo     repository.PatientRepository
	Cache    *redis.Client
	TokenTTL int // hours
}
