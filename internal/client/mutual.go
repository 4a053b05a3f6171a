package client

import (
	"context"
	"net/http"

	"github.com/instalite/instalite-go/internal/core/domain"
)

// MutualClient manages follow requests. The backend guarantees at most one
// outstanding request per (follower, followed) pair.
type MutualClient struct {
	c *Client
}

func NewMutualClient(c *Client) *MutualClient {
	return &MutualClient{c: c}
}

// SendFollowRequest asks to follow another user.
func (m *MutualClient) SendFollowRequest(ctx context.Context, followedID string) (string, error) {
	body, err := jsonBody(map[string]string{"followedId": followedID})
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = m.c.invoke(ctx, call{
		op:          "send_follow",
		method:      http.MethodPost,
		path:        "/api/mutual/send",
		auth:        true,
		mutation:    true,
		fallback:    "Failed to send follow request.",
		body:        body,
		contentType: "application/json",
		out:         &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// PendingRequests lists follow requests waiting on the caller's decision.
func (m *MutualClient) PendingRequests(ctx context.Context) ([]domain.FollowRequest, error) {
	var requests []domain.FollowRequest
	err := m.c.invoke(ctx, call{
		op:       "pending_follows",
		method:   http.MethodGet,
		path:     "/api/mutual/pending",
		auth:     true,
		fallback: "Failed to retrieve pending requests.",
		out:      &requests,
	})
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// AcceptFollowRequest approves a pending request from followerID.
func (m *MutualClient) AcceptFollowRequest(ctx context.Context, followerID string) (string, error) {
	body, err := jsonBody(map[string]string{"followerId": followerID})
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = m.c.invoke(ctx, call{
		op:          "accept_follow",
		method:      http.MethodPut,
		path:        "/api/mutual/accept",
		auth:        true,
		mutation:    true,
		fallback:    "Failed to accept follow request.",
		body:        body,
		contentType: "application/json",
		out:         &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// RejectFollowRequest declines a pending request from followerID.
func (m *MutualClient) RejectFollowRequest(ctx context.Context, followerID string) (string, error) {
	body, err := jsonBody(map[string]string{"followerId": followerID})
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = m.c.invoke(ctx, call{
		op:          "reject_follow",
		method:      http.MethodDelete,
		path:        "/api/mutual/reject",
		auth:        true,
		mutation:    true,
		fallback:    "Failed to reject follow request.",
		body:        body,
		contentType: "application/json",
		out:         &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}
