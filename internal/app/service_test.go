package app

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PiWizard3852/Wayve/internal/auth"
	"github.com/PiWizard3852/Wayve/internal/domain"
)

// --- Mock implementations ---

type mockUserRepo struct {
	createFn            func(ctx context.Context, user *domain.User) error
	getByUsernameFn     func(ctx context.Context, username string) (*domain.User, error)
	getByUsernameFoldFn func(ctx context.Context, username string) (*domain.User, error)
	getByEmailFn        func(ctx context.Context, email string) (*domain.User, error)
	markEmailVerifiedFn func(ctx context.Context, email string) (*domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return fmt.Errorf("not implemented")
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockUserRepo) GetByUsernameFold(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFoldFn != nil {
		return m.getByUsernameFoldFn(ctx, username)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockUserRepo) MarkEmailVerified(ctx context.Context, email string) (*domain.User, error) {
	if m.markEmailVerifiedFn != nil {
		return m.markEmailVerifiedFn(ctx, email)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockPostRepo struct {
	createFn         func(ctx context.Context, post *domain.Post) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Post, error)
	existsFn         func(ctx context.Context, id uuid.UUID) (bool, error)
	listFn           func(ctx context.Context) ([]domain.Post, error)
	listByUsernameFn func(ctx context.Context, username string) ([]domain.Post, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post *domain.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, post)
	}
	return fmt.Errorf("not implemented")
}

func (m *mockPostRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockPostRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, fmt.Errorf("not implemented")
}

func (m *mockPostRepo) List(ctx context.Context) ([]domain.Post, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockPostRepo) ListByUsername(ctx context.Context, username string) ([]domain.Post, error) {
	if m.listByUsernameFn != nil {
		return m.listByUsernameFn(ctx, username)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockCommentRepo struct {
	createFn         func(ctx context.Context, comment *domain.Comment) error
	getByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	existsFn         func(ctx context.Context, id uuid.UUID) (bool, error)
	listByPostFn     func(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error)
	listByUsernameFn func(ctx context.Context, username string) ([]domain.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, comment)
	}
	return fmt.Errorf("not implemented")
}

func (m *mockCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCommentRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, id)
	}
	return false, fmt.Errorf("not implemented")
}

func (m *mockCommentRepo) ListByPost(ctx context.Context, postID uuid.UUID) ([]domain.Comment, error) {
	if m.listByPostFn != nil {
		return m.listByPostFn(ctx, postID)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockCommentRepo) ListByUsername(ctx context.Context, username string) ([]domain.Comment, error) {
	if m.listByUsernameFn != nil {
		return m.listByUsernameFn(ctx, username)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockVoteRepo struct {
	toggleFn   func(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string, action domain.VoteAction) (domain.Reaction, error)
	reactionFn func(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (domain.Reaction, error)
}

func (m *mockVoteRepo) Toggle(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string, action domain.VoteAction) (domain.Reaction, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, kind, subjectID, voter, action)
	}
	return domain.ReactionNone, fmt.Errorf("not implemented")
}

func (m *mockVoteRepo) Reaction(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (domain.Reaction, error) {
	if m.reactionFn != nil {
		return m.reactionFn(ctx, kind, subjectID, voter)
	}
	return domain.ReactionNone, nil
}

type mockFollowRepo struct {
	toggleFn         func(ctx context.Context, followed, follower string) (bool, error)
	isFollowingFn    func(ctx context.Context, followed, follower string) (bool, error)
	countFollowersFn func(ctx context.Context, username string) (int, error)
}

func (m *mockFollowRepo) Toggle(ctx context.Context, followed, follower string) (bool, error) {
	if m.toggleFn != nil {
		return m.toggleFn(ctx, followed, follower)
	}
	return false, fmt.Errorf("not implemented")
}

func (m *mockFollowRepo) IsFollowing(ctx context.Context, followed, follower string) (bool, error) {
	if m.isFollowingFn != nil {
		return m.isFollowingFn(ctx, followed, follower)
	}
	return false, nil
}

func (m *mockFollowRepo) CountFollowers(ctx context.Context, username string) (int, error) {
	if m.countFollowersFn != nil {
		return m.countFollowersFn(ctx, username)
	}
	return 0, nil
}

type mockVerificationRepo struct {
	replaceFn func(ctx context.Context, email string) (*domain.Verification, error)
	consumeFn func(ctx context.Context, id uuid.UUID) (*domain.Verification, error)
}

func (m *mockVerificationRepo) Replace(ctx context.Context, email string) (*domain.Verification, error) {
	if m.replaceFn != nil {
		return m.replaceFn(ctx, email)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockVerificationRepo) Consume(ctx context.Context, id uuid.UUID) (*domain.Verification, error) {
	if m.consumeFn != nil {
		return m.consumeFn(ctx, id)
	}
	return nil, fmt.Errorf("not implemented")
}

type mockMailer struct {
	sendVerificationFn func(ctx context.Context, to, name string, verificationID uuid.UUID) error
}

func (m *mockMailer) SendVerification(ctx context.Context, to, name string, verificationID uuid.UUID) error {
	if m.sendVerificationFn != nil {
		return m.sendVerificationFn(ctx, to, name, verificationID)
	}
	return nil
}

type mockDebouncer struct {
	checkFn func(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (bool, error)
}

func (m *mockDebouncer) CheckDebounce(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (bool, error) {
	if m.checkFn != nil {
		return m.checkFn(ctx, kind, subjectID, voter)
	}
	return true, nil
}

type serviceMocks struct {
	users         *mockUserRepo
	posts         *mockPostRepo
	comments      *mockCommentRepo
	votes         *mockVoteRepo
	follows       *mockFollowRepo
	verifications *mockVerificationRepo
	mailer        *mockMailer
	clock         *clockwork.FakeClock
}

func newTestService(t *testing.T) (*Service, *serviceMocks) {
	t.Helper()
	m := &serviceMocks{
		users:         &mockUserRepo{},
		posts:         &mockPostRepo{},
		comments:      &mockCommentRepo{},
		votes:         &mockVoteRepo{},
		follows:       &mockFollowRepo{},
		verifications: &mockVerificationRepo{},
		mailer:        &mockMailer{},
		clock:         clockwork.NewFakeClock(),
	}
	svc := NewService(m.users, m.posts, m.comments, m.votes, m.follows, m.verifications, m.mailer, nil, nil, m.clock)
	return svc, m
}

// --- SignUp ---

func TestSignUp_Success(t *testing.T) {
	svc, m := newTestService(t)

	var created *domain.User
	var mailedID uuid.UUID
	verificationID := uuid.New()

	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	m.users.getByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	m.users.createFn = func(ctx context.Context, user *domain.User) error {
		created = user
		return nil
	}
	m.verifications.replaceFn = func(ctx context.Context, email string) (*domain.Verification, error) {
		return &domain.Verification{ID: verificationID, Email: email, CreatedAt: m.clock.Now()}, nil
	}
	m.mailer.sendVerificationFn = func(ctx context.Context, to, name string, id uuid.UUID) error {
		mailedID = id
		return nil
	}

	user, err := svc.SignUp(context.Background(), SignUpParams{
		Name:     "Alice Lee",
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, verificationID, mailedID)
	assert.NotEqual(t, "correct horse battery", created.PasswordHash)
	assert.True(t, auth.CheckPassword(created.PasswordHash, "correct horse battery"))
}

func TestSignUp_UsernameTakenCaseInsensitive(t *testing.T) {
	svc, m := newTestService(t)

	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{Username: "Alice"}, nil
	}

	_, err := svc.SignUp(context.Background(), SignUpParams{Username: "alice", Email: "a@b.com", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestSignUp_EmailTaken(t *testing.T) {
	svc, m := newTestService(t)

	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	m.users.getByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{Email: email}, nil
	}

	_, err := svc.SignUp(context.Background(), SignUpParams{Username: "alice", Email: "a@b.com", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestSignUp_MailFailureSurfacesAsDelivery(t *testing.T) {
	svc, m := newTestService(t)

	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	m.users.getByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	m.users.createFn = func(ctx context.Context, user *domain.User) error { return nil }
	m.verifications.replaceFn = func(ctx context.Context, email string) (*domain.Verification, error) {
		return &domain.Verification{ID: uuid.New(), Email: email, CreatedAt: m.clock.Now()}, nil
	}
	m.mailer.sendVerificationFn = func(ctx context.Context, to, name string, id uuid.UUID) error {
		return fmt.Errorf("smtp: connection refused")
	}

	_, err := svc.SignUp(context.Background(), SignUpParams{Username: "alice", Email: "a@b.com", Password: "longenough"})
	assert.ErrorIs(t, err, domain.ErrMailDelivery)
}

// --- Login ---

func TestLogin_Success(t *testing.T) {
	svc, m := newTestService(t)

	hash, err := auth.HashPassword("hunter2hunter2")
	require.NoError(t, err)

	m.users.getByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{Username: "alice", Email: email, PasswordHash: hash}, nil
	}

	user, err := svc.Login(context.Background(), "alice@example.com", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestLogin_CollapsesUnknownEmailAndWrongPassword(t *testing.T) {
	svc, m := newTestService(t)

	m.users.getByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return nil, domain.ErrUserNotFound
	}
	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever123")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	hash, hashErr := auth.HashPassword("rightpassword")
	require.NoError(t, hashErr)
	m.users.getByEmailFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{Username: "alice", PasswordHash: hash}, nil
	}
	_, err = svc.Login(context.Background(), "alice@example.com", "wrongpassword")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

// --- VerifyEmail ---

func TestVerifyEmail_Success(t *testing.T) {
	svc, m := newTestService(t)

	id := uuid.New()
	m.verifications.consumeFn = func(ctx context.Context, got uuid.UUID) (*domain.Verification, error) {
		assert.Equal(t, id, got)
		return &domain.Verification{ID: got, Email: "alice@example.com", CreatedAt: m.clock.Now().Add(-time.Hour)}, nil
	}
	m.users.markEmailVerifiedFn = func(ctx context.Context, email string) (*domain.User, error) {
		return &domain.User{Username: "alice", Email: email, EmailVerified: true}, nil
	}

	user, err := svc.VerifyEmail(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, user.EmailVerified)
}

func TestVerifyEmail_ExpiredAfter24Hours(t *testing.T) {
	svc, m := newTestService(t)

	m.verifications.consumeFn = func(ctx context.Context, id uuid.UUID) (*domain.Verification, error) {
		return &domain.Verification{ID: id, Email: "a@b.com", CreatedAt: m.clock.Now().Add(-VerificationTTL - time.Minute)}, nil
	}

	_, err := svc.VerifyEmail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrVerificationExpired)
}

func TestVerifyEmail_UnknownRecord(t *testing.T) {
	svc, m := newTestService(t)

	m.verifications.consumeFn = func(ctx context.Context, id uuid.UUID) (*domain.Verification, error) {
		return nil, domain.ErrVerificationNotFound
	}

	_, err := svc.VerifyEmail(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrVerificationNotFound)
}

// --- Posts and comments ---

func TestCreateComment_ReturnsAuthorName(t *testing.T) {
	svc, m := newTestService(t)

	postID := uuid.New()
	commentID := uuid.New()

	m.posts.existsFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return true, nil }
	m.comments.createFn = func(ctx context.Context, comment *domain.Comment) error {
		comment.ID = commentID
		comment.CreatedAt = m.clock.Now()
		return nil
	}
	m.comments.getByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
		assert.Equal(t, commentID, id)
		return &domain.Comment{
			ID: id, PostID: postID, Username: "alice", AuthorName: "Alice Lee",
			Content: "hello", CreatedAt: m.clock.Now(),
		}, nil
	}

	view, err := svc.CreateComment(context.Background(), "alice", postID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "Alice Lee", view.Author.Name)
	assert.Equal(t, "alice", view.Author.Username)
}

func TestCreateComment_UnknownPost(t *testing.T) {
	svc, m := newTestService(t)

	m.posts.existsFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }

	_, err := svc.CreateComment(context.Background(), "alice", uuid.New(), "hello")
	assert.ErrorIs(t, err, domain.ErrPostNotFound)
}

func TestFeed_PopularOrdersByTrend(t *testing.T) {
	svc, m := newTestService(t)

	now := m.clock.Now()
	old := domain.Post{ID: uuid.New(), Username: "a", CreatedAt: now.Add(-10 * time.Hour), Likes: 5}
	fresh := domain.Post{ID: uuid.New(), Username: "b", CreatedAt: now.Add(-time.Minute), Likes: 2}

	m.posts.listFn = func(ctx context.Context) ([]domain.Post, error) {
		return []domain.Post{old, fresh}, nil
	}

	views, err := svc.Feed(context.Background(), "", SortPopular)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, fresh.ID, views[0].ID)
	assert.Equal(t, old.ID, views[1].ID)
	assert.Equal(t, domain.ReactionNone, views[0].ViewerReaction)
}

func TestFeed_RecentIsDefaultAndAnnotatesViewer(t *testing.T) {
	svc, m := newTestService(t)

	now := m.clock.Now()
	older := domain.Post{ID: uuid.New(), Username: "a", CreatedAt: now.Add(-2 * time.Hour)}
	newer := domain.Post{ID: uuid.New(), Username: "b", CreatedAt: now.Add(-time.Hour)}

	m.posts.listFn = func(ctx context.Context) ([]domain.Post, error) {
		return []domain.Post{older, newer}, nil
	}
	m.votes.reactionFn = func(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (domain.Reaction, error) {
		if subjectID == newer.ID {
			return domain.ReactionLiking, nil
		}
		return domain.ReactionNone, nil
	}

	views, err := svc.Feed(context.Background(), "carol", SortRecent)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, newer.ID, views[0].ID)
	assert.Equal(t, domain.ReactionLiking, views[0].ViewerReaction)
	assert.Equal(t, domain.ReactionNone, views[1].ViewerReaction)
}

func TestGetPost_RanksCommentsByPopularity(t *testing.T) {
	svc, m := newTestService(t)

	now := m.clock.Now()
	postID := uuid.New()
	weak := domain.Comment{ID: uuid.New(), PostID: postID, CreatedAt: now.Add(-time.Hour), Likes: 1}
	strong := domain.Comment{ID: uuid.New(), PostID: postID, CreatedAt: now.Add(-time.Hour), Likes: 7}

	m.posts.getByIDFn = func(ctx context.Context, id uuid.UUID) (*domain.Post, error) {
		return &domain.Post{ID: id, Username: "a", CreatedAt: now.Add(-time.Hour)}, nil
	}
	m.comments.listByPostFn = func(ctx context.Context, id uuid.UUID) ([]domain.Comment, error) {
		return []domain.Comment{weak, strong}, nil
	}

	detail, err := svc.GetPost(context.Background(), "", postID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 2)
	assert.Equal(t, strong.ID, detail.Comments[0].ID)
	assert.Equal(t, 7, detail.Comments[0].Tally)
}

// --- Votes ---

func TestToggleVote_UnknownSubject(t *testing.T) {
	svc, m := newTestService(t)

	m.posts.existsFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }
	_, _, err := svc.ToggleVote(context.Background(), "alice", domain.SubjectPost, uuid.New(), domain.ActionLike)
	assert.ErrorIs(t, err, domain.ErrPostNotFound)

	m.comments.existsFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return false, nil }
	_, _, err = svc.ToggleVote(context.Background(), "alice", domain.SubjectComment, uuid.New(), domain.ActionDislike)
	assert.ErrorIs(t, err, domain.ErrCommentNotFound)
}

func TestToggleVote_AppliesAndReturnsReaction(t *testing.T) {
	svc, m := newTestService(t)

	subjectID := uuid.New()
	m.posts.existsFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return true, nil }
	m.votes.toggleFn = func(ctx context.Context, kind domain.SubjectKind, id uuid.UUID, voter string, action domain.VoteAction) (domain.Reaction, error) {
		assert.Equal(t, subjectID, id)
		assert.Equal(t, "alice", voter)
		assert.Equal(t, domain.ActionLike, action)
		return domain.ReactionLiking, nil
	}

	reaction, delta, err := svc.ToggleVote(context.Background(), "alice", domain.SubjectPost, subjectID, domain.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionLiking, reaction)
	assert.Equal(t, +1, delta)
}

func TestToggleVote_DeltaFollowsPriorReaction(t *testing.T) {
	svc, m := newTestService(t)

	m.posts.existsFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return true, nil }

	// disliking --like--> liking swings the tally by two.
	m.votes.reactionFn = func(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (domain.Reaction, error) {
		return domain.ReactionDisliking, nil
	}
	m.votes.toggleFn = func(ctx context.Context, kind domain.SubjectKind, id uuid.UUID, voter string, action domain.VoteAction) (domain.Reaction, error) {
		return domain.ReactionLiking, nil
	}

	reaction, delta, err := svc.ToggleVote(context.Background(), "alice", domain.SubjectPost, uuid.New(), domain.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionLiking, reaction)
	assert.Equal(t, +2, delta)

	// liking --like--> none retracts the vote.
	m.votes.reactionFn = func(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (domain.Reaction, error) {
		return domain.ReactionLiking, nil
	}
	m.votes.toggleFn = func(ctx context.Context, kind domain.SubjectKind, id uuid.UUID, voter string, action domain.VoteAction) (domain.Reaction, error) {
		return domain.ReactionNone, nil
	}

	reaction, delta, err = svc.ToggleVote(context.Background(), "alice", domain.SubjectPost, uuid.New(), domain.ActionLike)
	require.NoError(t, err)
	assert.Equal(t, domain.ReactionNone, reaction)
	assert.Equal(t, -1, delta)
}

func TestToggleVote_Debounced(t *testing.T) {
	svc, m := newTestService(t)
	svc.debouncer = &mockDebouncer{
		checkFn: func(ctx context.Context, kind domain.SubjectKind, subjectID uuid.UUID, voter string) (bool, error) {
			return false, nil
		},
	}

	m.posts.existsFn = func(ctx context.Context, id uuid.UUID) (bool, error) { return true, nil }

	_, _, err := svc.ToggleVote(context.Background(), "alice", domain.SubjectPost, uuid.New(), domain.ActionLike)
	assert.ErrorIs(t, err, domain.ErrVoteDebounced)
}

// --- Follows and profiles ---

func TestToggleFollow_Self(t *testing.T) {
	svc, m := newTestService(t)

	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{Username: "alice"}, nil
	}

	_, err := svc.ToggleFollow(context.Background(), "alice", "ALICE")
	assert.ErrorIs(t, err, domain.ErrSelfFollow)
}

func TestToggleFollow_ResolvesCanonicalUsername(t *testing.T) {
	svc, m := newTestService(t)

	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{Username: "Bob"}, nil
	}
	m.follows.toggleFn = func(ctx context.Context, followed, follower string) (bool, error) {
		assert.Equal(t, "Bob", followed)
		assert.Equal(t, "alice", follower)
		return true, nil
	}

	following, err := svc.ToggleFollow(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, following)
}

func TestProfile_CountsAndFollowState(t *testing.T) {
	svc, m := newTestService(t)

	joined := m.clock.Now().Add(-30 * 24 * time.Hour)
	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{Name: "Bob Ray", Username: "bob", CreatedAt: joined}, nil
	}
	m.follows.countFollowersFn = func(ctx context.Context, username string) (int, error) { return 3, nil }
	m.follows.isFollowingFn = func(ctx context.Context, followed, follower string) (bool, error) {
		assert.Equal(t, "bob", followed)
		assert.Equal(t, "alice", follower)
		return true, nil
	}
	m.posts.listByUsernameFn = func(ctx context.Context, username string) ([]domain.Post, error) {
		return []domain.Post{{ID: uuid.New()}}, nil
	}
	m.comments.listByUsernameFn = func(ctx context.Context, username string) ([]domain.Comment, error) {
		return []domain.Comment{{ID: uuid.New()}, {ID: uuid.New()}}, nil
	}

	profile, err := svc.Profile(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob", profile.Username)
	assert.Equal(t, 3, profile.Followers)
	assert.Equal(t, 1, profile.Posts)
	assert.Equal(t, 2, profile.Comments)
	assert.True(t, profile.IsFollowing)
	assert.Equal(t, joined, profile.JoinedAt)
}

func TestProfile_AnonymousViewerSkipsFollowCheck(t *testing.T) {
	svc, m := newTestService(t)

	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{Username: "bob"}, nil
	}
	m.follows.isFollowingFn = func(ctx context.Context, followed, follower string) (bool, error) {
		t.Fatal("IsFollowing should not be called for anonymous viewers")
		return false, nil
	}
	m.posts.listByUsernameFn = func(ctx context.Context, username string) ([]domain.Post, error) { return nil, nil }
	m.comments.listByUsernameFn = func(ctx context.Context, username string) ([]domain.Comment, error) { return nil, nil }

	profile, err := svc.Profile(context.Background(), "", "bob")
	require.NoError(t, err)
	assert.False(t, profile.IsFollowing)
}

func TestUserPosts_NewestFirst(t *testing.T) {
	svc, m := newTestService(t)

	now := m.clock.Now()
	older := domain.Post{ID: uuid.New(), Username: "bob", CreatedAt: now.Add(-2 * time.Hour)}
	newer := domain.Post{ID: uuid.New(), Username: "bob", CreatedAt: now.Add(-time.Hour)}

	m.users.getByUsernameFoldFn = func(ctx context.Context, username string) (*domain.User, error) {
		return &domain.User{Username: "bob"}, nil
	}
	m.posts.listByUsernameFn = func(ctx context.Context, username string) ([]domain.Post, error) {
		return []domain.Post{older, newer}, nil
	}

	views, err := svc.UserPosts(context.Background(), "", "bob")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, newer.ID, views[0].ID)
}
