package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-care-tasks/internal/domain/reminders"
)

type RemindersRepo struct {
	db *sql.DB
}

func NewRemindersRepo(db *sql.DB) *RemindersRepo {
	return &RemindersRepo{db: db}
}

const reminderColumns = `
	id, owner_user_id, pet_id,
	title, status, priority, tags,
	scheduled_at, due_at, snooze_until,
	completed_at, created_at, updated_at`

func (r *RemindersRepo) Create(ctx context.Context, rem reminders.Reminder) error {
	tags, err := encodeTags(rem.Tags)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reminders (`+reminderColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		rem.ID,
		rem.OwnerUserID,
		toNullString(rem.PetID),
		rem.Title,
		string(rem.Status),
		string(rem.Priority),
		tags,
		toNullTime(rem.ScheduledAt),
		toNullTime(rem.DueAt),
		toNullTime(rem.SnoozeUntil),
		toNullTime(rem.CompletedAt),
		rem.CreatedAt,
		rem.UpdatedAt,
	)
	return err
}

func (r *RemindersRepo) Update(ctx context.Context, rem reminders.Reminder) error {
	tags, err := encodeTags(rem.Tags)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `
		UPDATE reminders
		SET
			title = $2,
			status = $3,
			priority = $4,
			tags = $5,
			scheduled_at = $6,
			due_at = $7,
			snooze_until = $8,
			completed_at = $9,
			updated_at = $10
		WHERE id = $1
	`,
		rem.ID,
		rem.Title,
		string(rem.Status),
		string(rem.Priority),
		tags,
		toNullTime(rem.ScheduledAt),
		toNullTime(rem.DueAt),
		toNullTime(rem.SnoozeUntil),
		toNullTime(rem.CompletedAt),
		rem.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return reminders.ErrNotFound
	}
	return nil
}

func (r *RemindersRepo) GetByID(ctx context.Context, id string) (reminders.Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return reminders.Reminder{}, reminders.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
	rem, err := scanReminder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return reminders.Reminder{}, reminders.ErrNotFound
	}
	return rem, err
}

func (r *RemindersRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]reminders.Reminder, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reminders.Reminder, 0)
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rem)
	}
	return out, rows.Err()
}

func scanReminder(row rowScanner) (reminders.Reminder, error) {
	var (
		rem                          reminders.Reminder
		petID                        sql.NullString
		status, priority, tags       string
		scheduled, due, snooze, done sql.NullTime
	)
	if err := row.Scan(
		&rem.ID,
		&rem.OwnerUserID,
		&petID,
		&rem.Title,
		&status,
		&priority,
		&tags,
		&scheduled,
		&due,
		&snooze,
		&done,
		&rem.CreatedAt,
		&rem.UpdatedAt,
	); err != nil {
		return reminders.Reminder{}, err
	}

	rem.Status = reminders.Status(status)
	rem.Priority = reminders.Priority(priority)
	if petID.Valid {
		v := petID.String
		rem.PetID = &v
	}
	rem.ScheduledAt = fromNullTime(scheduled)
	rem.DueAt = fromNullTime(due)
	rem.SnoozeUntil = fromNullTime(snooze)
	rem.CompletedAt = fromNullTime(done)

	if err := json.Unmarshal([]byte(tags), &rem.Tags); err != nil {
		return reminders.Reminder{}, fmt.Errorf("decode tags for %s: %w", rem.ID, err)
	}
	return rem, nil
}

// tags va como JSON en una columna TEXT para no depender del soporte de arrays de database/sql.
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(b), nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
