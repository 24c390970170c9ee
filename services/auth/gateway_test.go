package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"randevu/models"
)

// memPatientRepo is an in-memory PatientRepository.
type memPatientRepo struct {
	mu       sync.Mutex
	patients map[string]*models.Patient
}

func newMemPatientRepo() *memPatientRepo {
	return &memPatientRepo{patients: make(map[string]*models.Patient)}
}

func (m *memPatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, fmt.Errorf("no patient with id %s", id)
	}
	cp := *p
	return &cp, nil
}

func (m *memPatientRepo) GetByNationalID(ctx context.Context, nationalID string) (*models.Patient, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.patients {
		if p.NationalID == nationalID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("no patient with national id %s", nationalID)
}

func (m *memPatientRepo) Create(ctx context.Context, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *patient
	m.patients[patient.ID] = &cp
	return nil
}

func (m *memPatientRepo) Update(ctx context.Context, patient *models.Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[patient.ID]; !ok {
		return fmt.Errorf("no patient with id %s", patient.ID)
	}
	cp := *patient
	m.patients[patient.ID] = &cp
	return nil
}

func newTestGateway(t *testing.T) (*DefaultGateway, *memPatientRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { cache.Close() })

	repo := newMemPatientRepo()
	return &DefaultGateway{Repo: repo, Cache: cache}, repo
}

func registerTestPatient(t *testing.T, g *DefaultGateway) *models.Patient {
	t.Helper()
	patient, err := g.Register(context.Background(), RegisterInput{
		NationalID: "12345678901",
		Password:   "s3cret",
		FirstName:  "Ayse",
		LastName:   "Kaya",
	})
	require.NoError(t, err)
	return patient
}

func TestRegister(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()

	patient := registerTestPatient(t, g)
	assert.NotEmpty(t, patient.ID)
	assert.Equal(t, 1502, patient.RemoteID, "accounts default to the shared remote patient id")
	assert.NotEqual(t, "s3cret", patient.PasswordHash)

	_, err := g.Register(ctx, RegisterInput{NationalID: "12345678901", Password: "other"})
	require.Error(t, err, "national id must be unique")

	withRemote, err := g.Register(ctx, RegisterInput{NationalID: "222", Password: "x", RemoteID: 77})
	require.NoError(t, err)
	assert.Equal(t, 77, withRemote.RemoteID)
}

func TestLoginAndCurrentUser(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()
	registerTestPatient(t, g)

	token, patient, err := g.Login(ctx, "12345678901", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "Ayse Kaya", patient.FullName())

	current, err := g.CurrentUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, patient.ID, current.ID)
	assert.True(t, g.IsAuthenticated(ctx, token))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()
	registerTestPatient(t, g)

	_, _, err := g.Login(ctx, "12345678901", "wrong")
	require.Error(t, err)

	_, _, err = g.Login(ctx, "00000000000", "s3cret")
	require.Error(t, err)
}

func TestLogoutClearsSessionInOnePass(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()
	registerTestPatient(t, g)

	token, _, err := g.Login(ctx, "12345678901", "s3cret")
	require.NoError(t, err)
	require.True(t, g.IsAuthenticated(ctx, token))

	require.NoError(t, g.Logout(ctx, token))
	assert.False(t, g.IsAuthenticated(ctx, token))

	// Logging out an already-cleared token verifies to zero keys and
	// succeeds.
	require.NoError(t, g.Logout(ctx, token))
}

func TestCurrentUserRequiresLiveSession(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()
	registerTestPatient(t, g)

	token, _, err := g.Login(ctx, "12345678901", "s3cret")
	require.NoError(t, err)

	require.NoError(t, g.Logout(ctx, token))
	_, err = g.CurrentUser(ctx, token)
	require.Error(t, err, "a valid signature without a session must not authenticate")

	_, err = g.CurrentUser(ctx, "not-a-token")
	require.Error(t, err)
}

func TestUpdateProfileKeepsEmptyFields(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()
	patient := registerTestPatient(t, g)

	updated, err := g.UpdateProfile(ctx, patient.ID, ProfileUpdate{Phone: "+90 555 000 00 00"})
	require.NoError(t, err)
	assert.Equal(t, "+90 555 000 00 00", updated.Phone)
	assert.Equal(t, "Ayse", updated.FirstName, "empty fields keep their current value")
}

func TestUpdatePassword(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()
	patient := registerTestPatient(t, g)

	require.Error(t, g.UpdatePassword(ctx, patient.ID, "wrong", "newpass"))
	require.NoError(t, g.UpdatePassword(ctx, patient.ID, "s3cret", "newpass"))

	_, _, err := g.Login(ctx, "12345678901", "newpass")
	require.NoError(t, err)
	_, _, err = g.Login(ctx, "12345678901", "s3cret")
	require.Error(t, err)
}
