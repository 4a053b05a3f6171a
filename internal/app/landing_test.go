package app

import (
	"context"
	"errors"
	"testing"

	"github.com/instalite/instalite-go/internal/core/domain"
)

type stubProfileAPI struct {
	fetchForEditFn func(ctx context.Context) (*domain.Profile, error)
}

func (s *stubProfileAPI) FetchForEdit(ctx context.Context) (*domain.Profile, error) {
	return s.fetchForEditFn(ctx)
}

func (s *stubProfileAPI) FetchWithPosts(context.Context) (*domain.Profile, []domain.Post, error) {
	return nil, nil, errors.New("not implemented")
}

func (s *stubProfileAPI) Update(context.Context, domain.ProfileUpdate) (*domain.Profile, error) {
	return nil, errors.New("not implemented")
}

func (s *stubProfileAPI) CheckUsername(context.Context, string) (domain.UsernameStatus, error) {
	return "", errors.New("not implemented")
}

func TestLanding_CompletedProfileGoesHome(t *testing.T) {
	profiles := &stubProfileAPI{
		fetchForEditFn: func(context.Context) (*domain.Profile, error) {
			return &domain.Profile{Username: "alice"}, nil
		},
	}
	if got := Landing(context.Background(), profiles); got != HomeView {
		t.Fatalf("Landing = %q, want %q", got, HomeView)
	}
}

func TestLanding_MissingProfileGoesToCreation(t *testing.T) {
	profiles := &stubProfileAPI{
		fetchForEditFn: func(context.Context) (*domain.Profile, error) {
			return nil, errors.New("profile not found")
		},
	}
	if got := Landing(context.Background(), profiles); got != CreateProfileView {
		t.Fatalf("Landing = %q, want %q", got, CreateProfileView)
	}
}

func TestLanding_EmptyUsernameGoesToCreation(t *testing.T) {
	profiles := &stubProfileAPI{
		fetchForEditFn: func(context.Context) (*domain.Profile, error) {
			return &domain.Profile{}, nil
		},
	}
	if got := Landing(context.Background(), profiles); got != CreateProfileView {
		t.Fatalf("Landing = %q, want %q", got, CreateProfileView)
	}
}
