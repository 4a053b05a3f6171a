package fakeapi

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/instalite/instalite-go/internal/core/domain"
)

const resetTokenTTL = time.Hour

var (
	errEmailTaken         = errors.New("email already registered")
	errUsernameTaken      = errors.New("username already taken")
	errUserNotFound       = errors.New("user not found")
	errInvalidCredentials = errors.New("invalid credentials")
	errEmailNotVerified   = errors.New("email not verified")
	errTokenInvalid       = errors.New("invalid or expired token")
	errProfileMissing     = errors.New("profile not found")
	errPostNotFound       = errors.New("post not found")
	errCommentNotFound    = errors.New("comment not found")
	errFollowExists       = errors.New("follow request already exists")
	errFollowNotFound     = errors.New("follow request not found")
	errForbidden          = errors.New("access forbidden")
)

type user struct {
	ID           string
	Email        string
	PasswordHash string
	Verified     bool
	CreatedAt    time.Time
}

type profile struct {
	UserID       string
	Username     string
	FullName     string
	Bio          string
	Career       string
	ProfilePhoto string
}

type post struct {
	ID        string
	AuthorID  string
	Caption   string
	Content   string
	CreatedAt time.Time
}

type comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Text      string
	CreatedAt time.Time
}

type follow struct {
	ID         string
	FollowerID string
	FollowedID string
	State      domain.FollowState
	CreatedAt  time.Time
}

type resetToken struct {
	UserID    string
	ExpiresAt time.Time
}

// store is the in-memory state behind the fake backend. Everything lives for
// the lifetime of the process; tests construct a fresh one per server.
type store struct {
	mu           sync.Mutex
	users        map[string]*user    // by id
	profiles     map[string]*profile // by user id
	posts        map[string]*post
	comments     map[string]*comment
	likes        map[string]map[string]bool // post id → user id → liked
	follows      []*follow
	verifyTokens map[string]string // token → user id, single use
	resetTokens  map[string]resetToken
	now          func() time.Time
}

func newStore() *store {
	return &store{
		users:        make(map[string]*user),
		profiles:     make(map[string]*profile),
		posts:        make(map[string]*post),
		comments:     make(map[string]*comment),
		likes:        make(map[string]map[string]bool),
		verifyTokens: make(map[string]string),
		resetTokens:  make(map[string]resetToken),
		now:          time.Now,
	}
}

// ── Accounts ─────────────────────────────────────────────────────────────

func (s *store) createUser(email, passwordHash string) (*user, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			return nil, "", errEmailTaken
		}
	}

	u := &user{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	s.users[u.ID] = u

	verify := uuid.NewString()
	s.verifyTokens[verify] = u.ID
	return u, verify, nil
}

func (s *store) verifyEmail(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID, ok := s.verifyTokens[token]
	if !ok {
		return errTokenInvalid
	}
	delete(s.verifyTokens, token) // single use
	s.users[userID].Verified = true
	return nil
}

// verificationTokenFor returns the outstanding verification token of an
// account. Test hook: a real backend delivers this by email.
func (s *store) verificationTokenFor(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	for token, userID := range s.verifyTokens {
		if u := s.users[userID]; u != nil && u.Email == email {
			return token, true
		}
	}
	return "", false
}

// userByLogin resolves a username or an email to an account.
func (s *store) userByLogin(usernameOrEmail string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	needle := strings.ToLower(usernameOrEmail)
	for _, u := range s.users {
		if u.Email == needle {
			return u, nil
		}
	}
	for _, p := range s.profiles {
		if p.Username == needle {
			return s.users[p.UserID], nil
		}
	}
	return nil, errUserNotFound
}

func (s *store) userByID(id string) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, errUserNotFound
	}
	return u, nil
}

func (s *store) issueResetToken(email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range s.users {
		if u.Email == email {
			token := uuid.NewString()
			s.resetTokens[token] = resetToken{UserID: u.ID, ExpiresAt: s.now().Add(resetTokenTTL)}
			return token, nil
		}
	}
	return "", errUserNotFound
}

// resetTokenFor returns the outstanding reset token of an account. Test
// hook, same as verificationTokenFor.
func (s *store) resetTokenFor(email string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	for token, rt := range s.resetTokens {
		if u := s.users[rt.UserID]; u != nil && u.Email == email {
			return token, true
		}
	}
	return "", false
}

func (s *store) consumeResetToken(token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, ok := s.resetTokens[token]
	if !ok {
		return "", errTokenInvalid
	}
	delete(s.resetTokens, token) // single use
	if s.now().After(rt.ExpiresAt) {
		return "", errTokenInvalid
	}
	return rt.UserID, nil
}

func (s *store) setPassword(userID, passwordHash string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
}

// ── Profiles ─────────────────────────────────────────────────────────────

func (s *store) profileByUserID(userID string) (*profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, errProfileMissing
	}
	clone := *p
	return &clone, nil
}

func (s *store) usernameTaken(username, exceptUserID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.profiles {
		if p.Username == username && p.UserID != exceptUserID {
			return true
		}
	}
	return false
}

// upsertProfile creates the profile on first update and patches only the
// provided fields afterwards.
func (s *store) upsertProfile(userID string, update domain.ProfileUpdate, photoRef string) (*profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Uniqueness is decided under the same lock that assigns the name, so
	// two concurrent updates cannot both claim it.
	if update.Username != "" {
		for _, p := range s.profiles {
			if p.Username == update.Username && p.UserID != userID {
				return nil, errUsernameTaken
			}
		}
	}

	p, ok := s.profiles[userID]
	if !ok {
		p = &profile{UserID: userID}
		s.profiles[userID] = p
	}
	if update.Username != "" {
		p.Username = update.Username
	}
	if update.FullName != "" {
		p.FullName = update.FullName
	}
	if update.Bio != "" {
		p.Bio = update.Bio
	}
	if update.Career != "" {
		p.Career = update.Career
	}
	if photoRef != "" {
		p.ProfilePhoto = photoRef
	}

	clone := *p
	return &clone, nil
}

// resolveUser maps a user id or a username to a user id.
func (s *store) resolveUser(idOrUsername string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[idOrUsername]; ok {
		return idOrUsername, nil
	}
	for _, p := range s.profiles {
		if p.Username == idOrUsername {
			return p.UserID, nil
		}
	}
	return "", errUserNotFound
}

// ── Posts, likes, comments ───────────────────────────────────────────────

func (s *store) createPost(authorID, caption, contentRef string) *post {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := &post{
		ID:        uuid.NewString(),
		AuthorID:  authorID,
		Caption:   caption,
		Content:   contentRef,
		CreatedAt: s.now().UTC(),
	}
	s.posts[p.ID] = p
	return p
}

func (s *store) deletePost(postID, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return errPostNotFound
	}
	if p.AuthorID != callerID {
		return errForbidden
	}
	delete(s.posts, postID)
	delete(s.likes, postID)
	for id, c := range s.comments {
		if c.PostID == postID {
			delete(s.comments, id)
		}
	}
	return nil
}

func (s *store) postByID(postID string) (*post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[postID]
	if !ok {
		return nil, errPostNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *store) allPosts() []*post {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*post, 0, len(s.posts))
	for _, p := range s.posts {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *store) postsByAuthor(authorID string) []*post {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*post, 0)
	for _, p := range s.posts {
		if p.AuthorID == authorID {
			clone := *p
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *store) toggleLike(postID, userID string) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return false, 0, errPostNotFound
	}
	if s.likes[postID] == nil {
		s.likes[postID] = make(map[string]bool)
	}

	liked := !s.likes[postID][userID]
	if liked {
		s.likes[postID][userID] = true
	} else {
		delete(s.likes[postID], userID)
	}
	return liked, len(s.likes[postID]), nil
}

func (s *store) likeCount(postID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return 0, errPostNotFound
	}
	return len(s.likes[postID]), nil
}

func (s *store) isLiked(postID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.likes[postID][userID]
}

func (s *store) createComment(postID, authorID, text string) (*comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, errPostNotFound
	}
	c := &comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: s.now().UTC(),
	}
	s.comments[c.ID] = c
	return c, nil
}

func (s *store) deleteComment(commentID, callerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[commentID]
	if !ok {
		return errCommentNotFound
	}
	if c.AuthorID != callerID {
		return errForbidden
	}
	delete(s.comments, commentID)
	return nil
}

func (s *store) commentsByPost(postID string) []*comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*comment, 0)
	for _, c := range s.comments {
		if c.PostID == postID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// ── Follow requests ──────────────────────────────────────────────────────

// createFollow enforces at most one outstanding request per pair.
func (s *store) createFollow(followerID, followedID string) (*follow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID && f.State == domain.FollowPending {
			return nil, errFollowExists
		}
	}
	f := &follow{
		ID:         uuid.NewString(),
		FollowerID: followerID,
		FollowedID: followedID,
		State:      domain.FollowPending,
		CreatedAt:  s.now().UTC(),
	}
	s.follows = append(s.follows, f)
	return f, nil
}

func (s *store) pendingFollows(followedID string) []*follow {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*follow, 0)
	for _, f := range s.follows {
		if f.FollowedID == followedID && f.State == domain.FollowPending {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out
}

func (s *store) resolveFollow(followerID, followedID string, state domain.FollowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowedID == followedID && f.State == domain.FollowPending {
			f.State = state
			return nil
		}
	}
	return errFollowNotFound
}

func (s *store) acceptedFollows(userID string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0)
	for _, f := range s.follows {
		if f.State != domain.FollowAccepted {
			continue
		}
		switch userID {
		case f.FollowerID:
			out = append(out, f.FollowedID)
		case f.FollowedID:
			out = append(out, f.FollowerID)
		}
	}
	return out
}
