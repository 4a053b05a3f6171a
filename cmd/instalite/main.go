// instalite is a terminal client for the Instalite photo-sharing service.
//
// Usage:
//
//	instalite <command> [flags]
//
// Auth commands: register, verify, login, logout, forgot-password, reset-password.
// Session commands (require login): home, profile, edit-profile, check-username,
// create-post, delete-post, like, comment, delete-comment, post, follow,
// pending, accept, reject.
// "shell" starts an interactive session with an inactivity timeout.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/instalite/instalite-go/internal/app"
	"github.com/instalite/instalite-go/internal/client"
	"github.com/instalite/instalite-go/internal/config"
	"github.com/instalite/instalite-go/internal/core/domain"
	"github.com/instalite/instalite-go/internal/core/ports"
	"github.com/instalite/instalite-go/internal/session"
	"github.com/instalite/instalite-go/pkg/logger"
)

type cli struct {
	cfg      *config.Config
	log      zerolog.Logger
	tokens   ports.TokenStore
	auth     *client.AuthClient
	profiles *client.ProfileClient
	posts    *client.PostClient
	home     *client.HomeClient
	mutual   *client.MutualClient
	nav      *app.Navigator
}

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	c := newCLI(cfg, log)
	if err := c.run(context.Background(), os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newCLI(cfg *config.Config, log zerolog.Logger) *cli {
	tokens := session.NewFileStore(cfg.TokenPath)
	transport := client.New(client.Config{BaseURL: cfg.APIBaseURL, Timeout: cfg.RequestTimeout}, tokens, log)

	c := &cli{
		cfg:      cfg,
		log:      log,
		tokens:   tokens,
		auth:     client.NewAuthClient(transport, log),
		profiles: client.NewProfileClient(transport),
		posts:    client.NewPostClient(transport),
		home:     client.NewHomeClient(transport),
		mutual:   client.NewMutualClient(transport),
	}

	guard := app.NewGuard(tokens, cfg.StrictGuard)
	c.nav = app.NewNavigator(guard, log)
	c.nav.Register(app.View{Name: app.LoginView, Render: func(context.Context) error {
		fmt.Println("Please log in: instalite login -user <username or email> -pass <password>")
		return nil
	}})
	c.nav.Register(app.View{Name: app.CreateProfileView, Render: func(context.Context) error {
		fmt.Println("Finish onboarding: instalite edit-profile -username <name> -fullname <full name>")
		return nil
	}})
	c.nav.Register(app.View{Name: app.HomeView, Protected: true, Render: c.renderHome})
	c.nav.Register(app.View{Name: "profile", Protected: true, Render: c.renderProfile})
	return c
}

func (c *cli) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "register":
		return c.register(ctx, args)
	case "verify":
		return c.verify(ctx, args)
	case "login":
		return c.login(ctx, args)
	case "logout":
		return c.logout(ctx)
	case "forgot-password":
		return c.forgotPassword(ctx, args)
	case "reset-password":
		return c.resetPassword(ctx, args)
	case "home":
		return c.guarded(ctx, app.HomeView)
	case "profile":
		return c.guarded(ctx, "profile")
	case "edit-profile":
		return c.editProfile(ctx, args)
	case "check-username":
		return c.checkUsername(ctx, args)
	case "create-post":
		return c.createPost(ctx, args)
	case "delete-post":
		return c.deletePost(ctx, args)
	case "like":
		return c.like(ctx, args)
	case "comment":
		return c.comment(ctx, args)
	case "delete-comment":
		return c.deleteComment(ctx, args)
	case "post":
		return c.postDetail(ctx, args)
	case "follow":
		return c.follow(ctx, args)
	case "pending":
		return c.pending(ctx)
	case "accept":
		return c.resolveFollow(ctx, args, true)
	case "reject":
		return c.resolveFollow(ctx, args, false)
	case "shell":
		return c.shell(ctx)
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// guarded routes a protected view through the navigator so the route-guard
// semantics apply: without a session the login prompt renders instead.
func (c *cli) guarded(ctx context.Context, view string) error {
	_, err := c.nav.Go(ctx, view)
	return c.sessionAware(err)
}

// sessionAware clears the token and prompts for login when the backend
// rejected the session.
func (c *cli) sessionAware(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrAuthRejected) {
		if clearErr := c.tokens.Clear(); clearErr != nil {
			c.log.Warn().Err(clearErr).Msg("clearing token failed")
		}
		return fmt.Errorf("session expired, please log in again")
	}
	if errors.Is(err, domain.ErrUnauthenticated) {
		return fmt.Errorf("not logged in, run: instalite login")
	}
	return err
}

// ── Auth commands ────────────────────────────────────────────────────────

func (c *cli) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	pass := fs.String("pass", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.auth.Register(ctx, *email, *pass)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func (c *cli) verify(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	token := fs.String("token", "", "verification token from the email link")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.auth.VerifyEmail(ctx, *token)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func (c *cli) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	user := fs.String("user", "", "username or email")
	pass := fs.String("pass", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := c.auth.Login(ctx, *user, *pass)
	if err != nil {
		return err
	}
	if err := c.tokens.Set(sess.Token); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}
	fmt.Println(sess.Message)

	// A session without a completed profile lands on profile creation.
	if _, err := c.nav.Go(ctx, app.Landing(ctx, c.profiles)); err != nil {
		return c.sessionAware(err)
	}
	return nil
}

func (c *cli) logout(ctx context.Context) error {
	if err := app.EndSession(ctx, c.auth, c.tokens); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func (c *cli) forgotPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("forgot-password", flag.ContinueOnError)
	email := fs.String("email", "", "account email")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.auth.RequestPasswordReset(ctx, *email)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

func (c *cli) resetPassword(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reset-password", flag.ContinueOnError)
	token := fs.String("token", "", "reset token from the email link")
	pass := fs.String("pass", "", "new password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.auth.ConfirmPasswordReset(ctx, *token, *pass)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}

// ── Views ────────────────────────────────────────────────────────────────

func (c *cli) renderHome(ctx context.Context) error {
	home, err := c.home.Fetch(ctx)
	if err != nil {
		return c.sessionAware(err)
	}

	fmt.Printf("Logged in as @%s\n", home.LoggedUser.Username)
	if len(home.MutualFriends) > 0 {
		names := make([]string, 0, len(home.MutualFriends))
		for _, f := range home.MutualFriends {
			names = append(names, "@"+f.Username)
		}
		fmt.Println("Friends:", strings.Join(names, " "))
	}
	for _, p := range home.Posts {
		fmt.Printf("\n[%s] @%s (%d likes)\n  %s\n  %s\n",
			p.ID, p.Username, p.LikeCount, p.Caption, c.mediaURL(p.Content))
	}
	return nil
}

func (c *cli) renderProfile(ctx context.Context) error {
	profile, posts, err := c.profiles.FetchWithPosts(ctx)
	if err != nil {
		return c.sessionAware(err)
	}

	fmt.Printf("@%s - %s\n", profile.Username, profile.FullName)
	if profile.Career != "" {
		fmt.Println(profile.Career)
	}
	if profile.Bio != "" {
		fmt.Println(profile.Bio)
	}
	for _, p := range posts {
		fmt.Printf("\n[%s] (%d likes) %s\n  %s\n", p.ID, p.LikeCount, p.Caption, c.mediaURL(p.Content))
	}
	return nil
}

func (c *cli) mediaURL(ref string) string {
	if ref == "" {
		return ""
	}
	return strings.TrimRight(c.cfg.MediaBaseURL, "/") + "/" + ref
}

// ── Profile commands ─────────────────────────────────────────────────────

func (c *cli) editProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit-profile", flag.ContinueOnError)
	username := fs.String("username", "", "new username")
	fullName := fs.String("fullname", "", "full name")
	bio := fs.String("bio", "", "about me")
	career := fs.String("career", "", "career")
	photo := fs.String("photo", "", "path to a profile photo")
	if err := fs.Parse(args); err != nil {
		return err
	}

	update := domain.ProfileUpdate{
		Username: *username,
		FullName: *fullName,
		Bio:      *bio,
		Career:   *career,
	}
	if *photo != "" {
		raw, err := os.ReadFile(*photo)
		if err != nil {
			return err
		}
		update.ProfilePhoto = raw
		update.PhotoName = *photo
	}

	profile, err := c.profiles.Update(ctx, update)
	if err != nil {
		return c.sessionAware(err)
	}
	fmt.Printf("Profile updated: @%s\n", profile.Username)
	return nil
}

func (c *cli) checkUsername(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("check-username", flag.ContinueOnError)
	username := fs.String("username", "", "candidate username")
	if err := fs.Parse(args); err != nil {
		return err
	}

	status, err := c.profiles.CheckUsername(ctx, *username)
	if err != nil {
		return c.sessionAware(err)
	}
	fmt.Printf("Username %q is %s\n", *username, status)
	return nil
}

// ── Post commands ────────────────────────────────────────────────────────

func (c *cli) createPost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create-post", flag.ContinueOnError)
	caption := fs.String("caption", "", "post caption")
	image := fs.String("image", "", "path to the image")
	if err := fs.Parse(args); err != nil {
		return err
	}

	raw, err := os.ReadFile(*image)
	if err != nil {
		return err
	}
	msg, err := c.posts.Create(ctx, *caption, raw, *image)
	if err != nil {
		return c.sessionAware(err)
	}
	fmt.Println(msg)
	return nil
}

func (c *cli) deletePost(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-post", flag.ContinueOnError)
	id := fs.String("id", "", "post id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.posts.Delete(ctx, *id)
	if err != nil {
		return c.sessionAware(err)
	}
	fmt.Println(msg)
	return nil
}

func (c *cli) like(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("like", flag.ContinueOnError)
	id := fs.String("id", "", "post id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	state, err := c.posts.ToggleLike(ctx, *id)
	if err != nil {
		return c.sessionAware(err)
	}
	verb := "Unliked"
	if state.Liked {
		verb = "Liked"
	}
	fmt.Printf("%s post %s (%d likes)\n", verb, state.PostID, state.LikeCount)
	return nil
}

func (c *cli) comment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("comment", flag.ContinueOnError)
	id := fs.String("id", "", "post id")
	text := fs.String("text", "", "comment text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.posts.Comment(ctx, *id, *text)
	if err != nil {
		return c.sessionAware(err)
	}
	fmt.Println(msg)
	return nil
}

func (c *cli) deleteComment(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("delete-comment", flag.ContinueOnError)
	id := fs.String("id", "", "comment id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.posts.DeleteComment(ctx, *id)
	if err != nil {
		return c.sessionAware(err)
	}
	fmt.Println(msg)
	return nil
}

func (c *cli) postDetail(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("post", flag.ContinueOnError)
	id := fs.String("id", "", "post id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	detail, err := c.posts.Detail(ctx, *id)
	if err != nil {
		return c.sessionAware(err)
	}

	p := detail.Post
	liked := ""
	if detail.IsLiked {
		liked = " ♥"
	}
	fmt.Printf("@%s (%d likes%s)\n  %s\n  %s\n", p.Username, p.LikeCount, liked, p.Caption, c.mediaURL(p.Content))
	for _, cm := range detail.Comments {
		fmt.Printf("  [%s] @%s: %s\n", cm.ID, cm.Username, cm.Text)
	}
	return nil
}

// ── Follow commands ──────────────────────────────────────────────────────

func (c *cli) follow(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("follow", flag.ContinueOnError)
	id := fs.String("id", "", "user id to follow")
	if err := fs.Parse(args); err != nil {
		return err
	}

	msg, err := c.mutual.SendFollowRequest(ctx, *id)
	if err != nil {
		return c.sessionAware(err)
	}
	fmt.Println(msg)
	return nil
}

func (c *cli) pending(ctx context.Context) error {
	requests, err := c.mutual.PendingRequests(ctx)
	if err != nil {
		return c.sessionAware(err)
	}
	if len(requests) == 0 {
		fmt.Println("No pending follow requests.")
		return nil
	}
	for _, r := range requests {
		fmt.Printf("[%s] from %s (%s)\n", r.ID, r.FollowerID, r.CreatedAt.Format("2006-01-02"))
	}
	return nil
}

func (c *cli) resolveFollow(ctx context.Context, args []string, accept bool) error {
	name := "reject"
	if accept {
		name = "accept"
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	id := fs.String("id", "", "follower user id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var msg string
	var err error
	if accept {
		msg, err = c.mutual.AcceptFollowRequest(ctx, *id)
	} else {
		msg, err = c.mutual.RejectFollowRequest(ctx, *id)
	}
	if err != nil {
		return c.sessionAware(err)
	}
	fmt.Println(msg)
	return nil
}

// ── Interactive shell ────────────────────────────────────────────────────

// shell runs commands interactively. Every line of input counts as user
// activity; the idle guard ends the session when none arrives in time.
func (c *cli) shell(ctx context.Context) error {
	expired := make(chan struct{}, 1)
	guard := session.NewIdleGuard(c.cfg.IdleTimeout, c.tokens, func() {
		select {
		case expired <- struct{}{}:
		default:
		}
	}, c.log)
	defer guard.Stop()

	fmt.Printf("instalite shell (idle timeout %s) - type 'exit' to quit\n", c.cfg.IdleTimeout)
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		guard.Touch()

		select {
		case <-expired:
			fmt.Println("Session ended after inactivity. Please log in again.")
		default:
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "exit" || fields[0] == "quit" {
			return nil
		}
		if err := c.run(ctx, fields[0], fields[1:]); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: instalite <command> [flags]

Account:
  register -email <email> -pass <password>
  verify -token <token>
  login -user <username or email> -pass <password>
  logout
  forgot-password -email <email>
  reset-password -token <token> -pass <new password>

Session:
  home                         show the feed
  profile                      show your profile and posts
  edit-profile [-username ...] [-fullname ...] [-bio ...] [-career ...] [-photo <file>]
  check-username -username <name>
  create-post -caption <text> -image <file>
  delete-post -id <post id>
  like -id <post id>
  comment -id <post id> -text <text>
  delete-comment -id <comment id>
  post -id <post id>           show a post with comments
  follow -id <user id>
  pending
  accept -id <user id>
  reject -id <user id>
  shell                        interactive mode with idle timeout`)
}
