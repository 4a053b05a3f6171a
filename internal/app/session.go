package app

import (
	"context"

	"github.com/instalite/instalite-go/internal/core/ports"
)

// EndSession logs the user out. The backend is notified best-effort when a
// token is present; the local token is cleared regardless of whether that
// notification ever reaches the server. After a nil return, the TokenStore
// reports absence.
func EndSession(ctx context.Context, auth ports.AuthAPI, tokens ports.TokenStore) error {
	if token, ok := tokens.Get(); ok {
		auth.Logout(ctx, token)
	}
	return tokens.Clear()
}
