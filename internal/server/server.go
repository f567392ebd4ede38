package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/PiWizard3852/Wayve/internal/app"
	"github.com/PiWizard3852/Wayve/internal/auth"
	"github.com/PiWizard3852/Wayve/internal/config"
	"github.com/PiWizard3852/Wayve/internal/domain"
	apperrors "github.com/PiWizard3852/Wayve/internal/errors"
	"github.com/PiWizard3852/Wayve/internal/metrics"
)

// appService is the slice of the application layer the handlers call. Narrow
// on purpose so handler tests can stand in a mock.
type appService interface {
	SignUp(ctx context.Context, params app.SignUpParams) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	VerifyEmail(ctx context.Context, verificationID uuid.UUID) (*domain.User, error)
	ResendVerification(ctx context.Context, email string) error
	CreatePost(ctx context.Context, username, title, content string) (*app.PostView, error)
	CreateComment(ctx context.Context, username string, postID uuid.UUID, content string) (*app.CommentView, error)
	Feed(ctx context.Context, viewer string, policy app.SortPolicy) ([]app.PostView, error)
	GetPost(ctx context.Context, viewer string, postID uuid.UUID) (*app.PostDetailView, error)
	ToggleVote(ctx context.Context, voter string, kind domain.SubjectKind, subjectID uuid.UUID, action domain.VoteAction) (domain.Reaction, int, error)
	ToggleFollow(ctx context.Context, follower, username string) (bool, error)
	Profile(ctx context.Context, viewer, username string) (*app.ProfileView, error)
	UserPosts(ctx context.Context, viewer, username string) ([]app.PostView, error)
	UserComments(ctx context.Context, viewer, username string) ([]app.CommentView, error)
	CurrentUser(ctx context.Context, username string) (*domain.User, error)
}

// postgresHealthChecker is a minimal interface for PostgreSQL health checks.
type postgresHealthChecker interface {
	Ping(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       appService
	sessions  *auth.Sessions
	pg        postgresHealthChecker
	redis     *redis.Client
	startTime time.Time
}

// NewServer assembles the echo instance, middleware stack, and routes.
// redis may be nil when no debounce store is configured; reg may be nil
// to run without the metrics endpoint (tests).
func NewServer(cfg *config.Config, svc appService, sessions *auth.Sessions, pg postgresHealthChecker, rdb *redis.Client, reg *prometheus.Registry) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(apperrors.Middleware())
	if reg != nil {
		e.Use(metrics.NewHTTPMetrics(reg).Middleware())
	}

	srv := &Server{
		echo:      e,
		config:    cfg,
		app:       svc,
		sessions:  sessions,
		pg:        pg,
		redis:     rdb,
		startTime: time.Now(),
	}

	e.Use(srv.resolveCurrentUser)
	srv.registerRoutes(reg)

	return srv
}

func (s *Server) Start() error {
	slog.Info("starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
