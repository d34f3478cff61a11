// Package tokens implementa auth.AuthVerifier con una tabla fija de tokens.
// Es lo que usa el server de desarrollo cuando se define API_TOKENS.
package tokens

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"pet-care-tasks/internal/ports/auth"
)

type Verifier struct {
	byToken map[string]auth.Claims
}

var _ auth.AuthVerifier = (*Verifier)(nil)

// Parse lee "token:userID[:name],token2:userID2". Entradas vacías se ignoran.
func Parse(spec string) (*Verifier, error) {
	v := &Verifier{byToken: map[string]auth.Claims{}}
	for _, entry := range strings.Split(spec, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
			return nil, fmt.Errorf("tokens: malformed entry %q", entry)
		}
		c := auth.Claims{UserID: strings.TrimSpace(parts[1])}
		if len(parts) == 3 {
			c.Name = strings.TrimSpace(parts[2])
		}
		v.byToken[strings.TrimSpace(parts[0])] = c
	}
	if len(v.byToken) == 0 {
		return nil, fmt.Errorf("tokens: no entries")
	}
	return v, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	if err := ctx.Err(); err != nil {
		return auth.Claims{}, err
	}
	token = strings.TrimSpace(token)
	for known, c := range v.byToken {
		if subtle.ConstantTimeCompare([]byte(known), []byte(token)) == 1 {
			return c, nil
		}
	}
	return auth.Claims{}, auth.ErrInvalidToken
}

func (v *Verifier) Len() int { return len(v.byToken) }
