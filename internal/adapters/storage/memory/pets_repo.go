package memory

import (
	"context"
	"time"

	"pet-care-tasks/internal/domain/pets"
)

type petRepo struct {
	t *table[pets.Pet]
}

func NewPetRepo() pets.Repository {
	return &petRepo{t: newTable[pets.Pet](nil, pets.ErrNotFound)}
}

func (r *petRepo) Create(_ context.Context, p pets.Pet) error { return r.t.insert(p.ID, p) }

func (r *petRepo) Update(_ context.Context, p pets.Pet) error { return r.t.replace(p.ID, p) }

func (r *petRepo) GetByID(_ context.Context, id string) (pets.Pet, error) { return r.t.get(id) }

func (r *petRepo) ListByOwner(_ context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.t.list(
		func(p pets.Pet) bool { return p.OwnerUserID == ownerUserID },
		func(p pets.Pet) (time.Time, string) { return p.CreatedAt, p.ID },
	), nil
}
