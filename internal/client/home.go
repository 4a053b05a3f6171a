package client

import (
	"context"
	"net/http"

	"github.com/instalite/instalite-go/internal/core/domain"
)

// HomeClient fetches the home feed.
type HomeClient struct {
	c *Client
}

func NewHomeClient(c *Client) *HomeClient {
	return &HomeClient{c: c}
}

// Fetch returns the logged user, their mutual friends and the feed posts.
func (h *HomeClient) Fetch(ctx context.Context) (*domain.Homepage, error) {
	var home domain.Homepage
	err := h.c.invoke(ctx, call{
		op:       "homepage",
		method:   http.MethodGet,
		path:     "/api/homepage",
		auth:     true,
		fallback: "Failed to fetch homepage data.",
		out:      &home,
	})
	if err != nil {
		return nil, err
	}
	return &home, nil
}
