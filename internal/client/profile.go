package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"github.com/instalite/instalite-go/internal/core/domain"
)

// ProfileClient reads and writes the authenticated user's profile.
type ProfileClient struct {
	c *Client
}

func NewProfileClient(c *Client) *ProfileClient {
	return &ProfileClient{c: c}
}

// FetchForEdit returns the profile fields for the edit form.
func (p *ProfileClient) FetchForEdit(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	err := p.c.invoke(ctx, call{
		op:       "fetch_profile_edit",
		method:   http.MethodGet,
		path:     "/api/profile/edit",
		auth:     true,
		fallback: "Failed to fetch profile data for editing",
		out:      &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// FetchWithPosts returns the profile together with the user's posts.
func (p *ProfileClient) FetchWithPosts(ctx context.Context) (*domain.Profile, []domain.Post, error) {
	var resp struct {
		domain.Profile
		Posts []domain.Post `json:"posts"`
	}
	err := p.c.invoke(ctx, call{
		op:       "fetch_profile_posts",
		method:   http.MethodGet,
		path:     "/api/profile",
		auth:     true,
		fallback: "Failed to fetch profile with posts",
		out:      &resp,
	})
	if err != nil {
		return nil, nil, err
	}
	return &resp.Profile, resp.Posts, nil
}

// Update sends the changed profile fields as a multipart form. A username
// change is validated locally first.
func (p *ProfileClient) Update(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error) {
	if update.Username != "" {
		if err := domain.ValidateUsername(update.Username); err != nil {
			return nil, err
		}
	}

	body, contentType, err := profileForm(update)
	if err != nil {
		return nil, err
	}

	var profile domain.Profile
	err = p.c.invoke(ctx, call{
		op:          "update_profile",
		method:      http.MethodPut,
		path:        "/api/profile/update",
		auth:        true,
		mutation:    true,
		fallback:    "Failed to update profile",
		body:        body,
		contentType: contentType,
		out:         &profile,
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// CheckUsername reports availability of a candidate username. Format
// violations are decided locally without a network call, so the same input
// always yields the same verdict.
func (p *ProfileClient) CheckUsername(ctx context.Context, username string) (domain.UsernameStatus, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return domain.UsernameInvalid, nil
	}

	var resp struct {
		Available bool `json:"available"`
	}
	err := p.c.invoke(ctx, call{
		op:       "check_username",
		method:   http.MethodGet,
		path:     "/api/profile/check-username",
		query:    url.Values{"username": {username}},
		auth:     true,
		fallback: "Failed to check username availability",
		out:      &resp,
	})
	if err != nil {
		return "", err
	}
	if resp.Available {
		return domain.UsernameAvailable, nil
	}
	return domain.UsernameUnavailable, nil
}

// profileForm encodes the non-empty update fields as multipart form data.
func profileForm(update domain.ProfileUpdate) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"username": update.Username,
		"fullName": update.FullName,
		"bio":      update.Bio,
		"career":   update.Career,
	}
	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}

	if len(update.ProfilePhoto) > 0 {
		part, err := w.CreateFormFile("profilePhoto", update.PhotoName)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(update.ProfilePhoto); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
