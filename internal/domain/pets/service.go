package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrForbidden    = errors.New("forbidden")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Name      string
	Species   string
	Breed     string
	BirthDate *time.Time
	IsPrimary bool
}

// Create registra una mascota. La primera del dueño queda como primaria.
func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	species := Species(strings.ToLower(strings.TrimSpace(in.Species)))
	if !species.Valid() {
		return Pet{}, ErrInvalidInput
	}

	existing, err := s.repo.ListByOwner(ctx, ownerUserID)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     species,
		Breed:       strings.TrimSpace(in.Breed),
		BirthDate:   in.BirthDate,
		IsPrimary:   in.IsPrimary || len(existing) == 0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if p.IsPrimary {
		if err := s.clearPrimary(ctx, existing, now); err != nil {
			return Pet{}, err
		}
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type UpdateProfileInput struct {
	// Punteros para PATCH real: nil = no tocar.
	Name      *string
	Breed     *string
	IsPrimary *bool
}

// UpdateProfile solo lo puede hacer el dueño.
func (s *Service) UpdateProfile(ctx context.Context, petID, actorUserID string, in UpdateProfileInput) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(petID))
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != actorUserID {
		return Pet{}, ErrForbidden
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}

	now := s.now()
	if in.IsPrimary != nil && *in.IsPrimary && !p.IsPrimary {
		others, err := s.repo.ListByOwner(ctx, p.OwnerUserID)
		if err != nil {
			return Pet{}, err
		}
		if err := s.clearPrimary(ctx, others, now); err != nil {
			return Pet{}, err
		}
		p.IsPrimary = true
	} else if in.IsPrimary != nil && !*in.IsPrimary {
		p.IsPrimary = false
	}

	p.UpdatedAt = now
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// OwnerOf expone el ownerUserID de una mascota.
// Se usa para evitar ciclos de imports entre módulos (pets <-> reminders).
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerUserID, nil
}

func (s *Service) clearPrimary(ctx context.Context, pets []Pet, now time.Time) error {
	for _, other := range pets {
		if !other.IsPrimary {
			continue
		}
		other.IsPrimary = false
		other.UpdatedAt = now
		if err := s.repo.Update(ctx, other); err != nil {
			return err
		}
	}
	return nil
}
