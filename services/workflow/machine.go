package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"randevu/models"
	"randevu/services/availability"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionKeyPrefix namespaces workflow sessions in the cache.
const SessionKeyPrefix = "workflowSession:"

// SessionService sequences the booking workflow stages and enforces valid
// transitions. All state between requests lives in the cached session.
type SessionService interface {
	Start(ctx context.Context, patient *models.Patient) (*models.WorkflowSession, error)
	Get(ctx context.Context, sessionID string) (*models.WorkflowSession, error)
	Search(ctx context.Context, sessionID string, sel models.FilterSelection) (*models.WorkflowSession, error)
	SelectProviderDay(ctx context.Context, sessionID string, providerDayID int) (*models.WorkflowSession, error)
	SelectSlot(ctx context.Context, sessionID string, slotKey string) (*models.WorkflowSession, error)
	Confirm(ctx context.Context, sessionID string) (*models.WorkflowSession, *models.AppointmentRecord, error)
	CancelConfirm(ctx context.Context, sessionID string) (*models.WorkflowSession, error)
	Back(ctx context.Context, sessionID string) (*models.WorkflowSession, error)
	Close(ctx context.Context, sessionID string) error
	DayGrid(session *models.WorkflowSession, day string) []models.HourBucket
}

// DefaultSessionService implements SessionService.
type DefaultSessionService struct {
	Availability availability.Client
	Resolver     *FilterResolver
	Recorder     *Recorder
	Cache        *redis.Client
	TTL          time.Duration
	Grid         GridConfig
	WindowDays   int
	Logger       *zap.Logger
}

// Start creates a fresh session parked at the search stage.
func (s *DefaultSessionService) Start(ctx context.Context, patient *models.Patient) (*models.WorkflowSession, error) {
	session := &models.WorkflowSession{
		SessionID:   uuid.New().String(),
		PatientID:   patient.RemoteID,
		PatientName: patient.FullName(),
		Stage:       models.StageSearch,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	s.Logger.Info("workflow session started",
		zap.String("sessionId", session.SessionID),
		zap.Int("patientId", session.PatientID))
	return session, nil
}

// Get loads a session.
func (s *DefaultSessionService) Get(ctx context.Context, sessionID string) (*models.WorkflowSession, error) {
	return s.load(ctx, sessionID)
}

// Search validates the filter selection, queries provider days and moves the
// session to the provider list. An empty result set is a valid outcome, not
// an error. On a query failure the stage is left unchanged.
func (s *DefaultSessionService) Search(ctx context.Context, sessionID string, sel models.FilterSelection) (*models.WorkflowSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.Resolver.Normalize(&sel)
	if sel.RegionID == 0 {
		return session, NewValidationError("regionId", "a region must be selected before searching")
	}
	if sel.DepartmentID == 0 {
		return session, NewValidationError("departmentId", "a department must be selected before searching")
	}

	// The selection changed: every already-fetched downstream result is stale.
	session.Selection = sel
	session.Summaries = nil
	session.Selected = nil
	session.Slots = nil
	session.Draft = nil
	session.Generation++
	gen := session.Generation
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	summaries, err := s.Availability.Search(ctx, sel)
	if err != nil {
		return session, err
	}

	session, err = s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Generation != gen {
		s.Logger.Warn("discarding superseded search response",
			zap.String("sessionId", sessionID),
			zap.Int("responseGeneration", gen),
			zap.Int("sessionGeneration", session.Generation))
		return session, nil
	}

	session.Summaries = activeSummaries(summaries)
	session.Stage = models.StageProviderList
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectProviderDay fetches the slot window for a chosen summary (its date
// through +WindowDays calendar days) and moves to the slot grid. A fetch
// failure leaves the session exactly where it was.
func (s *DefaultSessionService) SelectProviderDay(ctx context.Context, sessionID string, providerDayID int) (*models.WorkflowSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != models.StageProviderList {
		return session, NewStateError(string(session.Stage), "provider-day selection requires the provider list")
	}

	var summary *models.ProviderDaySummary
	for i := range session.Summaries {
		if session.Summaries[i].ID == providerDayID {
			summary = &session.Summaries[i]
			break
		}
	}
	if summary == nil {
		return session, NewValidationError("providerDayId", "selected provider-day is not in the result list")
	}

	startDate := summary.Day()
	endDate, err := addDays(startDate, s.WindowDays)
	if err != nil {
		return session, fmt.Errorf("invalid provider-day date %q: %w", summary.Date, err)
	}

	session.Generation++
	gen := session.Generation
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}

	slots, err := s.Availability.Slots(ctx, summary.ProviderID, startDate, endDate, true)
	if err != nil {
		return session, err
	}

	session, err = s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Generation != gen {
		s.Logger.Warn("discarding superseded slot-window response",
			zap.String("sessionId", sessionID),
			zap.Int("responseGeneration", gen),
			zap.Int("sessionGeneration", session.Generation))
		return session, nil
	}

	chosen := *summary
	session.Selected = &chosen
	session.Selection.ProviderDayID = chosen.ID
	session.Slots = slots
	session.Stage = models.StageSlotGrid
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SelectSlot moves to the confirmation stage holding a draft for an unbooked
// slot. Selecting a booked slot is a silent no-op: the session comes back
// unchanged with no error.
func (s *DefaultSessionService) SelectSlot(ctx context.Context, sessionID string, slotKey string) (*models.WorkflowSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != models.StageSlotGrid {
		return session, NewStateError(string(session.Stage), "slot selection requires the slot grid")
	}
	if session.Selected == nil {
		return session, NewStateError(string(session.Stage), "no provider-day selected")
	}

	day := dayFromKey(slotKey)
	merged := MergeGrid(GenerateGrid(day, s.Grid), SlotsForDay(session.Slots, day))

	var slot *models.SlotRecord
	for i := range merged {
		if merged[i].Key() == slotKey {
			slot = &merged[i]
			break
		}
	}
	if slot == nil {
		return session, NewValidationError("slotKey", "selected slot is not on the grid")
	}
	if slot.IsBooked {
		// Guard, not an error: booked slots are simply not selectable.
		return session, nil
	}

	// A new selection replaces any prior draft.
	session.Draft = &models.BookingDraft{Summary: *session.Selected, Slot: *slot}
	session.Stage = models.StageConfirm
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Confirm issues the remote booking call. Success records the appointment
// and terminates the workflow at the success stage; failure keeps the
// session at confirm with the draft intact so the patient can retry.
func (s *DefaultSessionService) Confirm(ctx context.Context, sessionID string) (*models.WorkflowSession, *models.AppointmentRecord, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Stage != models.StageConfirm || session.Draft == nil {
		return session, nil, NewStateError(string(session.Stage), "nothing to confirm")
	}

	draft := *session.Draft
	if err := s.Availability.Book(ctx, session.PatientID, draft.Slot.ID); err != nil {
		return session, nil, err
	}

	// The remote call is the single commit point; from here on the booking
	// exists regardless of what happens locally.
	rec := s.Recorder.Record(ctx, session, draft)

	session.Draft = nil
	session.Stage = models.StageSuccess
	if err := s.save(ctx, session); err != nil {
		s.Logger.Warn("failed to persist terminal session state",
			zap.String("sessionId", sessionID), zap.Error(err))
	}
	return session, rec, nil
}

// CancelConfirm discards the draft and returns to the slot grid.
func (s *DefaultSessionService) CancelConfirm(ctx context.Context, sessionID string) (*models.WorkflowSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != models.StageConfirm {
		return session, NewStateError(string(session.Stage), "no confirmation to cancel")
	}
	session.Draft = nil
	session.Stage = models.StageSlotGrid
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Back navigates one stage backwards: providerList to search, slotGrid to
// providerList. Fetched data below the new stage is discarded.
func (s *DefaultSessionService) Back(ctx context.Context, sessionID string) (*models.WorkflowSession, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch session.Stage {
	case models.StageProviderList:
		session.Summaries = nil
		session.Stage = models.StageSearch
	case models.StageSlotGrid:
		session.Selected = nil
		session.Slots = nil
		session.Selection.ProviderDayID = 0
		session.Stage = models.StageProviderList
	default:
		return session, NewStateError(string(session.Stage), "cannot navigate back from this stage")
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Close deletes the session. The caller invokes it once the success stage
// has been shown and navigation away happens.
func (s *DefaultSessionService) Close(ctx context.Context, sessionID string) error {
	return s.Cache.Del(ctx, SessionKeyPrefix+sessionID).Err()
}

// DayGrid materializes the complete hour-bucketed grid for one day of the
// session's slot window.
func (s *DefaultSessionService) DayGrid(session *models.WorkflowSession, day string) []models.HourBucket {
	merged := MergeGrid(GenerateGrid(day, s.Grid), SlotsForDay(session.Slots, day))
	return GroupByHour(merged)
}

func (s *DefaultSessionService) load(ctx context.Context, sessionID string) (*models.WorkflowSession, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("workflow session not initialized")
	}
	data, err := s.Cache.Get(ctx, SessionKeyPrefix+sessionID).Result()
	if err != nil {
		return nil, fmt.Errorf("workflow session not found or expired: %w", err)
	}
	var session models.WorkflowSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse workflow session: %w", err)
	}
	return &session, nil
}

func (s *DefaultSessionService) save(ctx context.Context, session *models.WorkflowSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow session: %w", err)
	}
	if err := s.Cache.Set(ctx, SessionKeyPrefix+session.SessionID, data, s.TTL).Err(); err != nil {
		return fmt.Errorf("failed to store workflow session: %w", err)
	}
	return nil
}

// activeSummaries drops removed provider-days from a search result.
func activeSummaries(summaries []models.ProviderDaySummary) []models.ProviderDaySummary {
	out := make([]models.ProviderDaySummary, 0, len(summaries))
	for _, sum := range summaries {
		if sum.IsRemoved {
			continue
		}
		out = append(out, sum)
	}
	return out
}

func addDays(day string, days int) (string, error) {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format("2006-01-02"), nil
}

// dayFromKey extracts the calendar-date portion of a slot key
// ("2006-01-02-15:04:05").
func dayFromKey(key string) string {
	if len(key) >= 10 {
		return key[:10]
	}
	return key
}
