package memory

import (
	"context"
	"time"

	"pet-care-tasks/internal/domain/reminders"
)

type reminderRepo struct {
	t *table[reminders.Reminder]
}

func NewReminderRepo() reminders.Repository {
	return &reminderRepo{t: newTable(copyReminder, reminders.ErrNotFound)}
}

func (r *reminderRepo) Create(_ context.Context, rem reminders.Reminder) error {
	return r.t.insert(rem.ID, rem)
}

func (r *reminderRepo) Update(_ context.Context, rem reminders.Reminder) error {
	return r.t.replace(rem.ID, rem)
}

func (r *reminderRepo) GetByID(_ context.Context, id string) (reminders.Reminder, error) {
	return r.t.get(id)
}

func (r *reminderRepo) ListByOwner(_ context.Context, ownerUserID string) ([]reminders.Reminder, error) {
	return r.t.list(
		func(rem reminders.Reminder) bool { return rem.OwnerUserID == ownerUserID },
		func(rem reminders.Reminder) (time.Time, string) { return rem.CreatedAt, rem.ID },
	), nil
}

// copyReminder evita que el caller mute los tags guardados.
func copyReminder(rem reminders.Reminder) reminders.Reminder {
	if rem.Tags != nil {
		rem.Tags = append([]string(nil), rem.Tags...)
	}
	return rem
}
