package reminders

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrArchived     = errors.New("reminder is archived")
)

type Service struct {
	repo Repository
	pets PetOwners
	now  func() time.Time
}

func NewService(repo Repository, pets PetOwners) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

type CreateInput struct {
	Title       string
	ScheduledAt *time.Time
	DueAt       *time.Time
	Priority    Priority
	Tags        []string
}

// Create registra un recordatorio para una mascota del usuario.
func (s *Service) Create(ctx context.Context, ownerUserID, petID string, in CreateInput) (Reminder, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	petID = strings.TrimSpace(petID)
	if ownerUserID == "" || petID == "" {
		return Reminder{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Title) == "" {
		return Reminder{}, ErrInvalidInput
	}

	prio := in.Priority
	if prio == "" {
		prio = PriorityMedium
	}
	if !prio.Valid() {
		return Reminder{}, ErrInvalidInput
	}

	owner, err := s.pets.OwnerOf(ctx, petID)
	if err != nil || owner != ownerUserID {
		return Reminder{}, ErrNotFound
	}

	tags := make([]string, 0, len(in.Tags))
	for _, t := range in.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	now := s.now()
	r := Reminder{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		PetID:       &petID,
		Title:       strings.TrimSpace(in.Title),
		Status:      StatusPending,
		Priority:    prio,
		Tags:        tags,
		ScheduledAt: in.ScheduledAt,
		DueAt:       in.DueAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// ListToday devuelve los no archivados cuyo tiempo efectivo cae hoy, más los
// no terminados de días anteriores (arrastre de vencidos). Orden por tiempo
// efectivo y luego por creación.
func (s *Service) ListToday(ctx context.Context, ownerUserID string) ([]Reminder, error) {
	all, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 0, 1)

	out := make([]Reminder, 0, len(all))
	for _, r := range all {
		if r.Status == StatusArchived {
			continue
		}
		at := r.EffectiveTime()
		switch {
		case !at.Before(start) && at.Before(end):
			out = append(out, r)
		case at.Before(start) && !r.Status.Finished():
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := out[i].EffectiveTime(), out[j].EffectiveTime()
		if !ai.Equal(aj) {
			return ai.Before(aj)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Complete marca como completed. Idempotente sobre uno ya terminado.
func (s *Service) Complete(ctx context.Context, ownerUserID, id string) (Reminder, error) {
	return s.UpdateStatus(ctx, ownerUserID, id, StatusCompleted)
}

func (s *Service) UpdateStatus(ctx context.Context, ownerUserID, id string, status Status) (Reminder, error) {
	if !status.Valid() {
		return Reminder{}, ErrInvalidInput
	}

	r, err := s.get(ctx, ownerUserID, id)
	if err != nil {
		return Reminder{}, err
	}
	if r.Status == StatusArchived {
		return Reminder{}, ErrArchived
	}
	if r.Status == status {
		return r, nil
	}

	now := s.now()
	r.Status = status
	r.UpdatedAt = now
	if status.Finished() {
		r.CompletedAt = &now
	} else {
		r.CompletedAt = nil
	}

	if err := s.repo.Update(ctx, r); err != nil {
		return Reminder{}, err
	}
	return r, nil
}

// get trata los recordatorios ajenos como inexistentes.
func (s *Service) get(ctx context.Context, ownerUserID, id string) (Reminder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Reminder{}, ErrNotFound
	}
	r, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Reminder{}, err
	}
	if r.OwnerUserID != strings.TrimSpace(ownerUserID) {
		return Reminder{}, ErrNotFound
	}
	return r, nil
}
