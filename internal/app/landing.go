package app

import (
	"context"

	"github.com/instalite/instalite-go/internal/core/ports"
)

// Landing decides the first view after a successful login. A session whose
// profile is not yet completed must land on profile creation, not the home
// feed. A fetch failure also routes to profile creation: the backend answers
// with an error for accounts that never finished onboarding.
func Landing(ctx context.Context, profiles ports.ProfileAPI) string {
	profile, err := profiles.FetchForEdit(ctx)
	if err != nil || profile == nil || profile.Username == "" {
		return CreateProfileView
	}
	return HomeView
}
