package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/PiWizard3852/Wayve/internal/auth"
	"github.com/PiWizard3852/Wayve/internal/domain"
	"github.com/PiWizard3852/Wayve/internal/metrics"
)

// VerificationTTL bounds how long an emailed verification link stays valid,
// measured as elapsed time since issuance.
const VerificationTTL = 24 * time.Hour

// SortPolicy selects a feed ordering.
type SortPolicy string

const (
	SortRecent  SortPolicy = "recent"
	SortPopular SortPolicy = "popular"
)

// Service is the application layer — the only component that references
// multiple domain components. It orchestrates all use cases.
type Service struct {
	users         domain.UserRepository
	posts         domain.PostRepository
	comments      domain.CommentRepository
	votes         domain.VoteRepository
	follows       domain.FollowRepository
	verifications domain.VerificationRepository
	mailer        domain.Mailer
	debouncer     domain.VoteDebouncer
	voteMetrics   *metrics.VoteMetrics
	clock         clockwork.Clock
}

// NewService creates the application layer service.
// debouncer and voteMetrics may be nil; a nil debouncer admits every vote.
func NewService(
	users domain.UserRepository,
	posts domain.PostRepository,
	comments domain.CommentRepository,
	votes domain.VoteRepository,
	follows domain.FollowRepository,
	verifications domain.VerificationRepository,
	mailer domain.Mailer,
	debouncer domain.VoteDebouncer,
	voteMetrics *metrics.VoteMetrics,
	clock clockwork.Clock,
) *Service {
	return &Service{
		users:         users,
		posts:         posts,
		comments:      comments,
		votes:         votes,
		follows:       follows,
		verifications: verifications,
		mailer:        mailer,
		debouncer:     debouncer,
		voteMetrics:   voteMetrics,
		clock:         clock,
	}
}

// SignUpParams carries already-validated signup input. Password is plaintext;
// it is hashed here and discarded.
type SignUpParams struct {
	Name     string
	Username string
	Email    string
	Password string
}

// SignUp registers a new account and dispatches the verification mail.
// Username uniqueness is case-insensitive; email uniqueness is exact (input is
// lower-cased upstream). Returns ErrUsernameTaken / ErrEmailTaken on conflict
// and ErrMailDelivery when the account was created but the mail could not be
// sent.
func (s *Service) SignUp(ctx context.Context, params SignUpParams) (*domain.User, error) {
	if _, err := s.users.GetByUsernameFold(ctx, params.Username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	if _, err := s.users.GetByEmail(ctx, params.Email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         params.Name,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	verification, err := s.verifications.Replace(ctx, user.Email)
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerification(ctx, user.Email, user.Name, verification.ID); err != nil {
		return nil, errors.Join(domain.ErrMailDelivery, err)
	}

	return user, nil
}

// Login authenticates by email and password. Unknown email and wrong password
// collapse into the same ErrInvalidCredentials so the response does not leak
// which part failed.
func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// VerifyEmail consumes a verification record and marks the owning account
// verified. The record is single-use: it is deleted even when it turns out to
// be expired, so an expired link cannot be retried.
func (s *Service) VerifyEmail(ctx context.Context, verificationID uuid.UUID) (*domain.User, error) {
	verification, err := s.verifications.Consume(ctx, verificationID)
	if err != nil {
		return nil, err
	}

	if s.clock.Now().Sub(verification.CreatedAt) > VerificationTTL {
		return nil, domain.ErrVerificationExpired
	}

	return s.users.MarkEmailVerified(ctx, verification.Email)
}

// ResendVerification issues a fresh verification record for the email,
// superseding any outstanding one, and mails the new link. Unknown emails
// return ErrUserNotFound; already-verified accounts get no new mail.
func (s *Service) ResendVerification(ctx context.Context, email string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user.EmailVerified {
		return nil
	}

	verification, err := s.verifications.Replace(ctx, user.Email)
	if err != nil {
		return err
	}

	if err := s.mailer.SendVerification(ctx, user.Email, user.Name, verification.ID); err != nil {
		return errors.Join(domain.ErrMailDelivery, err)
	}
	return nil
}

// CreatePost persists a new post for the author. Input is validated and
// escaped upstream.
func (s *Service) CreatePost(ctx context.Context, username, title, content string) (*PostView, error) {
	post := &domain.Post{
		Username: username,
		Title:    title,
		Content:  content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	// Tallies are zero and the author's own display name is not returned by
	// the insert; reread through the canonical select.
	created, err := s.posts.GetByID(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	view := newPostView(*created, domain.ReactionNone)
	return &view, nil
}

// CreateComment persists a comment under an existing post.
func (s *Service) CreateComment(ctx context.Context, username string, postID uuid.UUID, content string) (*CommentView, error) {
	exists, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrPostNotFound
	}

	comment := &domain.Comment{
		PostID:   postID,
		Username: username,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	// The insert returns no author display name; reread through the
	// canonical select like CreatePost does.
	created, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	view := newCommentView(*created, domain.ReactionNone)
	return &view, nil
}

// Feed returns all posts ordered by the requested policy, annotated with the
// viewer's reaction to each. viewer may be empty for anonymous requests.
func (s *Service) Feed(ctx context.Context, viewer string, policy SortPolicy) ([]PostView, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	s.sortPosts(posts, policy)
	return s.postViews(ctx, posts, viewer)
}

// GetPost returns one post with its comments ordered by popularity, both
// annotated with the viewer's reactions.
func (s *Service) GetPost(ctx context.Context, viewer string, postID uuid.UUID) (*PostDetailView, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	domain.SortByPopularity(comments, s.clock.Now())

	postReaction, err := s.viewerReaction(ctx, domain.SubjectPost, post.ID, viewer)
	if err != nil {
		return nil, err
	}

	commentViews := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		reaction, err := s.viewerReaction(ctx, domain.SubjectComment, comment.ID, viewer)
		if err != nil {
			return nil, err
		}
		commentViews = append(commentViews, newCommentView(comment, reaction))
	}

	return &PostDetailView{
		PostView: newPostView(*post, postReaction),
		Comments: commentViews,
	}, nil
}

// ToggleVote applies one like/dislike gesture from voter to the subject and
// returns the voter's resulting reaction together with the tally delta
// (change to likes − dislikes) the gesture caused, so clients can reconcile
// an optimistic update without rereading. The subject is checked for
// existence before any mutation, and the optional debouncer can reject rapid
// duplicates.
func (s *Service) ToggleVote(ctx context.Context, voter string, kind domain.SubjectKind, subjectID uuid.UUID, action domain.VoteAction) (domain.Reaction, int, error) {
	if err := s.subjectExists(ctx, kind, subjectID); err != nil {
		return domain.ReactionNone, 0, err
	}

	if s.debouncer != nil {
		allowed, err := s.debouncer.CheckDebounce(ctx, kind, subjectID, voter)
		if err != nil {
			return domain.ReactionNone, 0, err
		}
		if !allowed {
			s.countVote("debounced", kind, domain.ReactionNone)
			return domain.ReactionNone, 0, domain.ErrVoteDebounced
		}
	}

	prior, err := s.votes.Reaction(ctx, kind, subjectID, voter)
	if err != nil {
		return domain.ReactionNone, 0, err
	}

	reaction, err := s.votes.Toggle(ctx, kind, subjectID, voter, action)
	if err != nil {
		s.countVote("error", kind, domain.ReactionNone)
		return domain.ReactionNone, 0, err
	}

	_, delta := domain.Transition(prior, action)

	s.countVote("applied", kind, reaction)
	return reaction, delta, nil
}

// ToggleFollow flips the follower's edge onto the named user and reports
// whether the follower now follows them. Users cannot follow themselves.
func (s *Service) ToggleFollow(ctx context.Context, follower, username string) (bool, error) {
	user, err := s.users.GetByUsernameFold(ctx, username)
	if err != nil {
		return false, err
	}
	if user.Username == follower {
		return false, domain.ErrSelfFollow
	}

	return s.follows.Toggle(ctx, user.Username, follower)
}

// Profile assembles a user's public profile. IsFollowing is only meaningful
// when viewer is set and differs from the profile owner.
func (s *Service) Profile(ctx context.Context, viewer, username string) (*ProfileView, error) {
	user, err := s.users.GetByUsernameFold(ctx, username)
	if err != nil {
		return nil, err
	}

	followers, err := s.follows.CountFollowers(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}

	view := newProfileView(*user, followers, len(posts), len(comments))
	if viewer != "" && viewer != user.Username {
		following, err := s.follows.IsFollowing(ctx, user.Username, viewer)
		if err != nil {
			return nil, err
		}
		view.IsFollowing = following
	}

	return &view, nil
}

// UserPosts returns the user's posts newest first, annotated for the viewer.
func (s *Service) UserPosts(ctx context.Context, viewer, username string) ([]PostView, error) {
	user, err := s.users.GetByUsernameFold(ctx, username)
	if err != nil {
		return nil, err
	}

	posts, err := s.posts.ListByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	domain.SortByRecent(posts)

	return s.postViews(ctx, posts, viewer)
}

// UserComments returns the user's comments newest first, annotated for the
// viewer.
func (s *Service) UserComments(ctx context.Context, viewer, username string) ([]CommentView, error) {
	user, err := s.users.GetByUsernameFold(ctx, username)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	domain.SortByRecent(comments)

	views := make([]CommentView, 0, len(comments))
	for _, comment := range comments {
		reaction, err := s.viewerReaction(ctx, domain.SubjectComment, comment.ID, viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, newCommentView(comment, reaction))
	}
	return views, nil
}

// CurrentUser re-validates a session principal against the store.
func (s *Service) CurrentUser(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

func (s *Service) subjectExists(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID) error {
	switch kind {
	case domain.SubjectComment:
		ok, err := s.comments.Exists(ctx, subjectID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrCommentNotFound
		}
	default:
		ok, err := s.posts.Exists(ctx, subjectID)
		if err != nil {
			return err
		}
		if !ok {
			return domain.ErrPostNotFound
		}
	}
	return nil
}

func (s *Service) sortPosts(posts []domain.Post, policy SortPolicy) {
	switch policy {
	case SortPopular:
		domain.SortByPopularity(posts, s.clock.Now())
	default:
		domain.SortByRecent(posts)
	}
}

func (s *Service) postViews(ctx context.Context, posts []domain.Post, viewer string) ([]PostView, error) {
	views := make([]PostView, 0, len(posts))
	for _, post := range posts {
		reaction, err := s.viewerReaction(ctx, domain.SubjectPost, post.ID, viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, newPostView(post, reaction))
	}
	return views, nil
}

func (s *Service) viewerReaction(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, viewer string) (domain.Reaction, error) {
	if viewer == "" {
		return domain.ReactionNone, nil
	}
	return s.votes.Reaction(ctx, kind, subjectID, viewer)
}

func (s *Service) countVote(result string, kind domain.SubjectKind, reaction domain.Reaction) {
	if s.voteMetrics == nil {
		return
	}
	s.voteMetrics.VotesProcessed.WithLabelValues(result).Inc()
	if result == "applied" {
		s.voteMetrics.VotesByTarget.WithLabelValues(string(kind), string(reaction)).Inc()
	}
}
