package auth

import (
	"context"
	"errors"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims es lo que el server sabe del usuario que llama.
// Los recordatorios y mascotas se filtran por UserID.
type Claims struct {
	UserID string
	Name   string
}

// AuthVerifier resuelve un bearer token a claims.
// Devuelve ErrInvalidToken (o un error envuelto) si el token no es válido.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
