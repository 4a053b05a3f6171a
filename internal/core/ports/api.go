package ports

import (
	"context"

	"github.com/instalite/instalite-go/internal/core/domain"
)

// AuthAPI performs the authentication lifecycle against the backend. Every
// operation is a single attempt: failures surface immediately, no retry.
type AuthAPI interface {
	// Register creates an unverified account and returns the backend's
	// confirmation message.
	Register(ctx context.Context, email, password string) (string, error)
	// Login exchanges credentials for a bearer token. Storing the token in
	// the TokenStore is the caller's responsibility, not this component's.
	Login(ctx context.Context, usernameOrEmail, password string) (*domain.Session, error)
	// Logout notifies the backend best-effort. A network failure is logged,
	// not returned, so local token clearing is never blocked.
	Logout(ctx context.Context, token string)
	// VerifyEmail resolves a single-use email verification payload.
	VerifyEmail(ctx context.Context, encodedToken string) (string, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	ConfirmPasswordReset(ctx context.Context, token, newPassword string) (string, error)
	// ValidateToken asks the backend whether the token is still accepted.
	ValidateToken(ctx context.Context, token string) bool
}

// ProfileAPI reads and writes the authenticated user's profile.
type ProfileAPI interface {
	FetchForEdit(ctx context.Context) (*domain.Profile, error)
	FetchWithPosts(ctx context.Context) (*domain.Profile, []domain.Post, error)
	Update(ctx context.Context, update domain.ProfileUpdate) (*domain.Profile, error)
	CheckUsername(ctx context.Context, username string) (domain.UsernameStatus, error)
}

// PostAPI covers post creation, deletion, likes and comments.
type PostAPI interface {
	Create(ctx context.Context, caption string, media []byte, filename string) (string, error)
	Delete(ctx context.Context, postID string) (string, error)
	// ToggleLike is request-confirmed: the returned state is the server's
	// verdict, never a locally flipped guess.
	ToggleLike(ctx context.Context, postID string) (*domain.LikeState, error)
	Comment(ctx context.Context, postID, text string) (string, error)
	DeleteComment(ctx context.Context, commentID string) (string, error)
	Detail(ctx context.Context, postID string) (*domain.PostDetail, error)
	Likes(ctx context.Context, postID string) (int, error)
}

// HomeAPI fetches the home feed.
type HomeAPI interface {
	Fetch(ctx context.Context) (*domain.Homepage, error)
}

// MutualAPI manages follow requests between users.
type MutualAPI interface {
	SendFollowRequest(ctx context.Context, followedID string) (string, error)
	PendingRequests(ctx context.Context) ([]domain.FollowRequest, error)
	AcceptFollowRequest(ctx context.Context, followerID string) (string, error)
	RejectFollowRequest(ctx context.Context, followerID string) (string, error)
}
