package fakeapi

import (
	"net/http"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/instalite/instalite-go/internal/core/domain"
)

// ── Profile ──────────────────────────────────────────────────────────────

func (s *Server) profileForEdit(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	p, err := s.store.profileByUserID(userID)
	if err != nil {
		return err
	}
	u, err := s.store.userByID(userID)
	if err != nil {
		return err
	}

	view := s.profileView(p)
	view.Email = u.Email
	return c.JSON(http.StatusOK, view)
}

func (s *Server) profileWithPosts(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	p, err := s.store.profileByUserID(userID)
	if err != nil {
		return err
	}

	posts := make([]domain.Post, 0)
	for _, post := range s.store.postsByAuthor(userID) {
		posts = append(posts, s.postView(post))
	}

	return c.JSON(http.StatusOK, map[string]any{
		"username":     p.Username,
		"fullName":     p.FullName,
		"bio":          p.Bio,
		"career":       p.Career,
		"profilePhoto": p.ProfilePhoto,
		"posts":        posts,
	})
}

func (s *Server) updateProfile(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	update := domain.ProfileUpdate{
		Username: c.FormValue("username"),
		FullName: c.FormValue("fullName"),
		Bio:      c.FormValue("bio"),
		Career:   c.FormValue("career"),
	}
	if update.Username != "" {
		if err := domain.ValidateUsername(update.Username); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	}

	// The photo itself is discarded; only an opaque media reference is kept.
	photoRef := ""
	if file, err := c.FormFile("profilePhoto"); err == nil && file != nil {
		photoRef = uuid.NewString() + filepath.Ext(file.Filename)
	}

	p, err := s.store.upsertProfile(userID, update, photoRef)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.profileView(p))
}

func (s *Server) checkUsername(c echo.Context) error {
	username := c.QueryParam("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}
	if err := domain.ValidateUsername(username); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]bool{
		"available": !s.store.usernameTaken(username, ""),
	})
}

// ── Feed ─────────────────────────────────────────────────────────────────

func (s *Server) homepage(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	p, err := s.store.profileByUserID(userID)
	if err != nil {
		return err
	}

	friends := make([]domain.Profile, 0)
	for _, friendID := range s.store.acceptedFollows(userID) {
		if fp, err := s.store.profileByUserID(friendID); err == nil {
			friends = append(friends, s.profileView(fp))
		}
	}

	posts := make([]domain.Post, 0)
	for _, post := range s.store.allPosts() {
		posts = append(posts, s.postView(post))
	}

	return c.JSON(http.StatusOK, domain.Homepage{
		LoggedUser:    s.profileView(p),
		MutualFriends: friends,
		Posts:         posts,
	})
}

// ── Posts ────────────────────────────────────────────────────────────────

func (s *Server) createPost(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if _, err := s.store.profileByUserID(userID); err != nil {
		return err
	}

	file, err := c.FormFile("content")
	if err != nil || file == nil {
		return echo.NewHTTPError(http.StatusBadRequest, "content file is required")
	}
	contentRef := uuid.NewString() + filepath.Ext(file.Filename)

	s.store.createPost(userID, c.FormValue("caption"), contentRef)
	return c.JSON(http.StatusCreated, map[string]string{"message": "Post created"})
}

func (s *Server) deletePost(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if err := s.store.deletePost(c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Post deleted"})
}

func (s *Server) toggleLike(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req struct {
		PostID string `json:"postId" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	liked, count, err := s.store.toggleLike(req.PostID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, domain.LikeState{PostID: req.PostID, Liked: liked, LikeCount: count})
}

func (s *Server) createComment(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req struct {
		Comment string `json:"comment" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if _, err := s.store.createComment(c.Param("id"), userID, req.Comment); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Comment added"})
}

func (s *Server) deleteComment(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}
	if err := s.store.deleteComment(c.Param("id"), userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Comment deleted"})
}

func (s *Server) postDetail(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	post, err := s.store.postByID(c.Param("id"))
	if err != nil {
		return err
	}

	comments := make([]domain.Comment, 0)
	for _, cm := range s.store.commentsByPost(post.ID) {
		comments = append(comments, domain.Comment{
			ID:        cm.ID,
			PostID:    cm.PostID,
			Username:  s.usernameOf(cm.AuthorID),
			Text:      cm.Text,
			CreatedAt: cm.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, domain.PostDetail{
		Post:     s.postView(post),
		Comments: comments,
		IsLiked:  s.store.isLiked(post.ID, userID),
	})
}

func (s *Server) postLikes(c echo.Context) error {
	count, err := s.store.likeCount(c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"likeCount": count})
}

// ── Follow requests ──────────────────────────────────────────────────────

func (s *Server) sendFollow(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req struct {
		FollowedID string `json:"followedId" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	followedID, err := s.store.resolveUser(req.FollowedID)
	if err != nil {
		return err
	}
	if _, err := s.store.createFollow(userID, followedID); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "Follow request sent"})
}

func (s *Server) pendingFollows(c echo.Context) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	out := make([]domain.FollowRequest, 0)
	for _, f := range s.store.pendingFollows(userID) {
		out = append(out, domain.FollowRequest{
			ID:         f.ID,
			FollowerID: f.FollowerID,
			FollowedID: f.FollowedID,
			State:      f.State,
			CreatedAt:  f.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) acceptFollow(c echo.Context) error {
	return s.resolveFollow(c, domain.FollowAccepted, "Follow request accepted")
}

func (s *Server) rejectFollow(c echo.Context) error {
	return s.resolveFollow(c, domain.FollowRejected, "Follow request rejected")
}

func (s *Server) resolveFollow(c echo.Context, state domain.FollowState, message string) error {
	userID, err := callerID(c)
	if err != nil {
		return err
	}

	var req struct {
		FollowerID string `json:"followerId" validate:"required"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	followerID, err := s.store.resolveUser(req.FollowerID)
	if err != nil {
		return err
	}
	if err := s.store.resolveFollow(followerID, userID, state); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": message})
}

// ── View mapping ─────────────────────────────────────────────────────────

func (s *Server) profileView(p *profile) domain.Profile {
	return domain.Profile{
		Username:     p.Username,
		FullName:     p.FullName,
		Bio:          p.Bio,
		Career:       p.Career,
		ProfilePhoto: p.ProfilePhoto,
	}
}

func (s *Server) postView(p *post) domain.Post {
	count, _ := s.store.likeCount(p.ID)
	return domain.Post{
		ID:           p.ID,
		Username:     s.usernameOf(p.AuthorID),
		ProfilePhoto: s.photoOf(p.AuthorID),
		Caption:      p.Caption,
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
		LikeCount:    count,
	}
}

func (s *Server) usernameOf(userID string) string {
	if p, err := s.store.profileByUserID(userID); err == nil {
		return p.Username
	}
	return ""
}

func (s *Server) photoOf(userID string) string {
	if p, err := s.store.profileByUserID(userID); err == nil {
		return p.ProfilePhoto
	}
	return ""
}
