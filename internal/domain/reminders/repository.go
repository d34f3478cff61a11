package reminders

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("reminder not found")
)

type Repository interface {
	Create(ctx context.Context, r Reminder) error
	Update(ctx context.Context, r Reminder) error
	GetByID(ctx context.Context, id string) (Reminder, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Reminder, error)
}

// PetOwners resuelve el dueño de una mascota sin importar el paquete pets.
type PetOwners interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}
