package domain

import "time"

// Post is a feed entry. Content is an opaque media reference, like
// Profile.ProfilePhoto. The backend owns the entity; the client holds a
// read-mostly copy scoped to the view that fetched it.
type Post struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
	Caption      string    `json:"caption"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	LikeCount    int       `json:"likeCount"`
}

// Comment belongs to exactly one post. Ordering within a post follows
// creation time, oldest first.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostDetail is the post-detail view payload.
type PostDetail struct {
	Post     Post      `json:"post"`
	Comments []Comment `json:"comments"`
	IsLiked  bool      `json:"isLiked"`
}

// LikeState is the confirmed server-side outcome of a like toggle. The
// client treats it as authoritative rather than flipping state optimistically.
type LikeState struct {
	PostID    string `json:"postId"`
	Liked     bool   `json:"liked"`
	LikeCount int    `json:"likeCount"`
}

// Homepage is the home-feed payload.
type Homepage struct {
	LoggedUser    Profile   `json:"loggedUser"`
	MutualFriends []Profile `json:"mutualFriends,omitempty"`
	Posts         []Post    `json:"posts"`
}
