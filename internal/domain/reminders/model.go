package reminders

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusDone      Status = "done"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusDone, StatusCompleted, StatusArchived:
		return true
	default:
		return false
	}
}

func (s Status) Finished() bool {
	return s == StatusDone || s == StatusCompleted
}

// Priority se guarda como texto (low, medium, high, urgent).
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

// Reminder es una tarea agendada del usuario o de una de sus mascotas.
type Reminder struct {
	ID          string
	OwnerUserID string
	PetID       *string // nil = del usuario

	Title    string
	Status   Status
	Priority Priority
	Tags     []string

	ScheduledAt *time.Time
	DueAt       *time.Time
	SnoozeUntil *time.Time

	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// EffectiveTime aplica scheduledAt > dueAt > snoozeUntil y cae en createdAt.
func (r Reminder) EffectiveTime() time.Time {
	for _, t := range []*time.Time{r.ScheduledAt, r.DueAt, r.SnoozeUntil} {
		if t != nil {
			return *t
		}
	}
	return r.CreatedAt
}
