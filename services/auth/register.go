package auth

import (
	"context"
	"fmt"
	"time"

	"randevu/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a patient account. The national id must be unique.
func (g *DefaultGateway) Register(ctx context.Context, input RegisterInput) (*models.Patient, error) {
	if existing, err := g.Repo.GetByNationalID(ctx, input.NationalID); err == nil && existing != nil {
		return nil, fmt.Errorf("national id already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	remoteID := input.RemoteID
	if remoteID == 0 {
		remoteID = defaultRemotePatientID
	}

	patient := &models.Patient{
		ID:           uuid.New().String(),
		NationalID:   input.NationalID,
		RemoteID:     remoteID,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Phone:        input.Phone,
		Email:        input.Email,
		BirthDate:    input.BirthDate,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := g.Repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}
	return patient, nil
}

// UpdateProfile updates the mutable profile fields; empty fields keep their
// current value.
func (g *DefaultGateway) UpdateProfile(ctx context.Context, patientID string, input ProfileUpdate) (*models.Patient, error) {
	patient, err := g.Repo.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("patient not found: %w", err)
	}

	if input.FirstName != "" {
		patient.FirstName = input.FirstName
	}
	if input.LastName != "" {
		patient.LastName = input.LastName
	}
	if input.Phone != "" {
		patient.Phone = input.Phone
	}
	if input.Email != "" {
		patient.Email = input.Email
	}

	if err := g.Repo.Update(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	return patient, nil
}

// UpdatePassword rotates the password after verifying the current one.
func (g *DefaultGateway) UpdatePassword(ctx context.Context, patientID, currentPassword, newPassword string) error {
	patient, err := g.Repo.GetByID(ctx, patientID)
	if err != nil {
		return fmt.Errorf("patient not found: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	patient.PasswordHash = string(hash)

	if err := g.Repo.Update(ctx, patient); err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}
