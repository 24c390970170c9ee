package auth

import (
	"context"
	"fmt"
	"time"

	"randevu/models"
	"randevu/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthSessionPrefix namespaces authentication sessions in the cache.
const AuthSessionPrefix = "authSession:"

// defaultRemotePatientID is the patient id the availability service assigns
// to accounts it has not been told about yet.
const defaultRemotePatientID = 1502

func (g *DefaultGateway) tokenTTL() time.Duration {
	if g.TokenTTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(g.TokenTTL) * time.Hour
}

// Login verifies the patient's credentials and opens an auth session. It
// returns the signed token.
func (g *DefaultGateway) Login(ctx context.Context, nationalID, password string) (string, *models.Patient, error) {
	patient, err := g.Repo.GetByNationalID(ctx, nationalID)
	if err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(patient.PasswordHash), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token, err := utils.GenerateToken(patient.ID, g.tokenTTL())
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	key := AuthSessionPrefix + utils.HashToken(token)
	if err := g.Cache.Set(ctx, key, patient.ID, g.tokenTTL()).Err(); err != nil {
		return "", nil, fmt.Errorf("failed to store auth session: %w", err)
	}

	utils.GetLogger().Info("patient logged in", zap.String("patientId", patient.ID))
	return token, patient, nil
}

// Logout closes the auth session with a single clear-and-verify pass. A
// session key that survives its own deletion is reported as an error rather
// than retried.
func (g *DefaultGateway) Logout(ctx context.Context, token string) error {
	key := AuthSessionPrefix + utils.HashToken(token)
	if err := g.Cache.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to clear auth session: %w", err)
	}
	remaining, err := g.Cache.Exists(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("failed to verify logout: %w", err)
	}
	if remaining > 0 {
		return fmt.Errorf("auth session still present after clearing")
	}
	return nil
}

// CurrentUser resolves the patient behind a token, requiring both a valid
// signature and a live session.
func (g *DefaultGateway) CurrentUser(ctx context.Context, token string) (*models.Patient, error) {
	patientID, err := utils.ExtractIDFromToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	key := AuthSessionPrefix + utils.HashToken(token)
	exists, err := g.Cache.Exists(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check auth session: %w", err)
	}
	if exists == 0 {
		return nil, fmt.Errorf("auth session not found or expired")
	}

	patient, err := g.Repo.GetByID(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("patient not found: %w", err)
	}
	return patient, nil
}

// IsAuthenticated reports whether the token maps to a live session.
func (g *DefaultGateway) IsAuthenticated(ctx context.Context, token string) bool {
	_, err := g.CurrentUser(ctx, token)
	return err == nil
}
