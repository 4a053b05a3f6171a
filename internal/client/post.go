package client

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/instalite/instalite-go/internal/core/domain"
)

// PostClient covers post creation, deletion, likes and comments.
type PostClient struct {
	c *Client
}

func NewPostClient(c *Client) *PostClient {
	return &PostClient{c: c}
}

// Create uploads a new post as a multipart form of caption plus media bytes.
// Duplicate submission while a create is pending is rejected locally.
func (p *PostClient) Create(ctx context.Context, caption string, media []byte, filename string) (string, error) {
	if len(media) == 0 {
		return "", &domain.ValidationError{Field: "content", Message: "A post needs an image"}
	}

	body, contentType, err := postForm(caption, media, filename)
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = p.c.invoke(ctx, call{
		op:          "create_post",
		method:      http.MethodPost,
		path:        "/api/post/store",
		auth:        true,
		mutation:    true,
		fallback:    "Post creation failed.",
		body:        body,
		contentType: contentType,
		out:         &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Delete removes one of the caller's own posts. Authorship is enforced
// server-side; this client only surfaces the rejection.
func (p *PostClient) Delete(ctx context.Context, postID string) (string, error) {
	var resp messageResponse
	err := p.c.invoke(ctx, call{
		op:       "delete_post",
		method:   http.MethodDelete,
		path:     "/api/post/" + postID,
		auth:     true,
		fallback: "Failed to delete post.",
		out:      &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ToggleLike flips the caller's like on a post. The returned state is the
// server's confirmed verdict; no state is assumed before the response lands.
func (p *PostClient) ToggleLike(ctx context.Context, postID string) (*domain.LikeState, error) {
	body, err := jsonBody(map[string]string{"postId": postID})
	if err != nil {
		return nil, err
	}

	var state domain.LikeState
	err = p.c.invoke(ctx, call{
		op:          "toggle_like",
		method:      http.MethodPost,
		path:        "/api/post/toggle-like",
		auth:        true,
		mutation:    true,
		fallback:    "Failed to like post.",
		body:        body,
		contentType: "application/json",
		out:         &state,
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// Comment adds a comment to a post.
func (p *PostClient) Comment(ctx context.Context, postID, text string) (string, error) {
	if text == "" {
		return "", &domain.ValidationError{Field: "comment", Message: "Comment cannot be empty"}
	}

	body, err := jsonBody(map[string]string{"comment": text})
	if err != nil {
		return "", err
	}

	var resp messageResponse
	err = p.c.invoke(ctx, call{
		op:          "create_comment",
		method:      http.MethodPost,
		path:        "/api/post/" + postID + "/comment",
		auth:        true,
		mutation:    true,
		fallback:    "Failed to create comment.",
		body:        body,
		contentType: "application/json",
		out:         &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// DeleteComment removes one of the caller's own comments.
func (p *PostClient) DeleteComment(ctx context.Context, commentID string) (string, error) {
	var resp messageResponse
	err := p.c.invoke(ctx, call{
		op:       "delete_comment",
		method:   http.MethodDelete,
		path:     "/api/post/comment/" + commentID,
		auth:     true,
		fallback: "Failed to delete comment.",
		out:      &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Detail fetches a post with its comments and the caller's like state.
func (p *PostClient) Detail(ctx context.Context, postID string) (*domain.PostDetail, error) {
	var detail domain.PostDetail
	err := p.c.invoke(ctx, call{
		op:       "post_detail",
		method:   http.MethodGet,
		path:     "/api/post/" + postID,
		auth:     true,
		fallback: "Failed to fetch post.",
		out:      &detail,
	})
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// Likes returns the public like count of a post. No token is attached.
func (p *PostClient) Likes(ctx context.Context, postID string) (int, error) {
	var resp struct {
		LikeCount int `json:"likeCount"`
	}
	err := p.c.invoke(ctx, call{
		op:       "post_likes",
		method:   http.MethodGet,
		path:     "/api/post/" + postID + "/likes",
		fallback: "Failed to fetch like count.",
		out:      &resp,
	})
	if err != nil {
		return 0, err
	}
	return resp.LikeCount, nil
}

func postForm(caption string, media []byte, filename string) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("caption", caption); err != nil {
		return nil, "", err
	}
	part, err := w.CreateFormFile("content", filename)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(media); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
