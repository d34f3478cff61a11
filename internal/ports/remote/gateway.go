package remote

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("remote: not found")
)

// ReminderGateway es el colaborador RPC para recordatorios.
type ReminderGateway interface {
	FetchToday(ctx context.Context) ([]Reminder, error)
	Complete(ctx context.Context, id string) (Reminder, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Reminder, error)
	Create(ctx context.Context, petID string, in CreateReminderInput) (Reminder, error)
}

// PetDirectory resuelve petId -> metadata. El core no la valida.
type PetDirectory interface {
	ListPets(ctx context.Context) ([]Pet, error)
}

// MessageError lo implementan los errores que traen un mensaje del servidor.
type MessageError interface {
	error
	ServerMessage() string
}

// ServerMessage extrae el mensaje del servidor si existe; si no, el texto del error.
func ServerMessage(err error) string {
	if err == nil {
		return ""
	}
	var me MessageError
	if errors.As(err, &me) {
		if msg := strings.TrimSpace(me.ServerMessage()); msg != "" {
			return msg
		}
	}
	return err.Error()
}
