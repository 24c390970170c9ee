package workflow

import (
	"context"
	"time"

	"randevu/database/repository"
	"randevu/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Recorder persists confirmed bookings to the local appointment history.
// The remote booking call has already succeeded by the time Record runs, so
// the record is an optimistic client-side mirror: a local write failure is
// logged and swallowed, never rolled back.
type Recorder struct {
	Repo   repository.AppointmentRepository
	Logger *zap.Logger
}

func NewRecorder(repo repository.AppointmentRepository, logger *zap.Logger) *Recorder {
	return &Recorder{Repo: repo, Logger: logger}
}

// Record builds the appointment record for a confirmed draft and appends it
// to the history. It always returns the record, persisted or not.
func (r *Recorder) Record(ctx context.Context, session *models.WorkflowSession, draft models.BookingDraft) *models.AppointmentRecord {
	rec := &models.AppointmentRecord{
		ID:             uuid.New().String(),
		PatientID:      session.PatientID,
		Date:           displayDate(draft.Slot.Day()) + " " + shortTime(draft.Slot.StartTime),
		Time:           shortTime(draft.Slot.StartTime),
		ProviderName:   draft.Summary.ProviderName,
		LocationName:   draft.Summary.LocationName,
		DepartmentName: draft.Summary.DepartmentName,
		Status:         models.StatusActive,
		Owner:          session.PatientName,
		Note:           draft.Summary.Note,
		CreatedAt:      time.Now(),
		SlotID:         draft.Slot.ID,
	}

	if err := r.Repo.Append(ctx, rec); err != nil {
		r.Logger.Warn("failed to persist appointment locally; remote booking already committed",
			zap.String("appointmentId", rec.ID),
			zap.Int("slotId", rec.SlotID),
			zap.Error(err))
	}
	return rec
}

// History returns the persisted appointment history, newest first.
func (r *Recorder) History(ctx context.Context) ([]models.AppointmentRecord, error) {
	return r.Repo.GetAll(ctx)
}

// Remove deletes one appointment from the local history after a remote
// cancellation.
func (r *Recorder) Remove(ctx context.Context, id string) error {
	return r.Repo.DeleteByID(ctx, id)
}

// displayDate converts "2006-01-02" to the "02.01.2006" display form.
func displayDate(day string) string {
	t, err := time.Parse("2006-01-02", day)
	if err != nil {
		return day
	}
	return t.Format("02.01.2006")
}

// shortTime trims "15:04:05" to "15:04".
func shortTime(clock string) string {
	if len(clock) >= 5 {
		return clock[:5]
	}
	return clock
}
