package remote

import (
	"encoding/json"
	"strings"
	"time"
)

// Status del recordatorio tal como lo expone la API.
// done y completed son sinónimos de "terminado"; archived es terminal.
type Status string

const (
	StatusPending   Status = "pending"
	StatusDone      Status = "done"
	StatusCompleted Status = "completed"
	StatusArchived  Status = "archived"
)

// Finished indica si el estado cuenta como tarea terminada.
func (s Status) Finished() bool {
	return s == StatusDone || s == StatusCompleted
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusDone, StatusCompleted, StatusArchived:
		return true
	default:
		return false
	}
}

// Priority es ordinal: low < medium < high < urgent.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
	PriorityUrgent
)

func ParsePriority(s string) (Priority, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return PriorityLow, true
	case "medium", "":
		return PriorityMedium, true
	case "high":
		return PriorityHigh, true
	case "urgent":
		return PriorityUrgent, true
	default:
		return PriorityMedium, false
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	case PriorityUrgent:
		return "urgent"
	default:
		return "medium"
	}
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON tolera valores desconocidos (quedan como medium).
// Un valor ausente, null o vacío queda como low.
func (p *Priority) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		// algunos backends mandan el ordinal numérico
		var n int
		if err2 := json.Unmarshal(b, &n); err2 != nil {
			return err
		}
		if n < int(PriorityLow) || n > int(PriorityUrgent) {
			n = int(PriorityMedium)
		}
		*p = Priority(n)
		return nil
	}
	// null y "" cuentan como ausente: low, igual que el zero value
	if strings.TrimSpace(s) == "" {
		*p = PriorityLow
		return nil
	}
	*p, _ = ParsePriority(s)
	return nil
}

// Timestamp guarda el valor crudo que manda el servidor.
// Puede no ser parseable; eso es un caso tipado, no un error de decode.
type Timestamp string

// Layouts aceptados, en orden.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Instant parsea el timestamp. Los formatos sin zona se interpretan en la
// location de ref; un "HH:MM" suelto se ubica en la fecha de ref.
func (t Timestamp) Instant(ref time.Time) (time.Time, bool) {
	raw := strings.TrimSpace(string(t))
	if raw == "" {
		return time.Time{}, false
	}
	loc := ref.Location()
	for _, layout := range timestampLayouts {
		if v, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return v, true
		}
	}
	if clock, err := time.ParseInLocation("15:04", raw, loc); err == nil {
		y, m, d := ref.Date()
		return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), true
	}
	return time.Time{}, false
}

func (t Timestamp) Present() bool {
	return strings.TrimSpace(string(t)) != ""
}

// TimestampOf formatea un instante para mandarlo a la API.
func TimestampOf(v time.Time) *Timestamp {
	ts := Timestamp(v.Format(time.RFC3339))
	return &ts
}

// Reminder es la entidad remota. Solo la crea el colaborador de fetch.
type Reminder struct {
	ID    string  `json:"id"`
	Title string  `json:"title"`
	PetID *string `json:"petId"` // nil = del usuario directamente

	Status Status `json:"status"`

	ScheduledAt *Timestamp `json:"scheduledAt,omitempty"`
	DueAt       *Timestamp `json:"dueAt,omitempty"`
	SnoozeUntil *Timestamp `json:"snoozeUntil,omitempty"`

	Priority Priority `json:"priority"`
	Tags     []string `json:"tags"`

	CreatedAt *Timestamp `json:"createdAt,omitempty"`
}

// ChosenTime devuelve el primer campo presente según la precedencia
// scheduledAt > dueAt > snoozeUntil. Si ese campo no parsea, no se
// consultan los siguientes.
func (r Reminder) ChosenTime() (Timestamp, bool) {
	for _, ts := range []*Timestamp{r.ScheduledAt, r.DueAt, r.SnoozeUntil} {
		if ts != nil && ts.Present() {
			return *ts, true
		}
	}
	return "", false
}

// FirstTag es el tag usado para elegir ícono.
func (r Reminder) FirstTag() string {
	if len(r.Tags) == 0 {
		return ""
	}
	return r.Tags[0]
}

// Pet es la metadata mínima del directorio de mascotas.
type Pet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	BirthDate string `json:"birthDate,omitempty"` // YYYY-MM-DD
	Breed     string `json:"breed"`
	IsPrimary bool   `json:"isPrimary"`
}

// CreateReminderInput son los campos para POST /pets/{petId}/reminders.
type CreateReminderInput struct {
	Title       string     `json:"title"`
	ScheduledAt *Timestamp `json:"scheduledAt,omitempty"`
	DueAt       *Timestamp `json:"dueAt,omitempty"`
	Priority    Priority   `json:"priority"`
	Tags        []string   `json:"tags,omitempty"`
}
