package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/PiWizard3852/Wayve/internal/domain"
	"github.com/PiWizard3852/Wayve/internal/metrics"
)

// loginRateLimit bounds login attempts per client IP. Burst covers a user
// fat-fingering a password a few times; sustained brute force gets a 429.
const loginRateLimit = rate.Limit(1)

func (s *Server) registerRoutes(reg *prometheus.Registry) {
	// Observability endpoints (no auth required)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	if reg != nil {
		s.echo.GET("/metrics", echo.WrapHandler(metrics.Handler(reg)))
	}

	loginLimiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStoreWithConfig(
		middleware.RateLimiterMemoryStoreConfig{Rate: loginRateLimit, Burst: 5},
	))

	// Account lifecycle
	s.echo.POST("/api/signup", s.handleSignUp)
	s.echo.POST("/api/login", s.handleLogin, loginLimiter)
	s.echo.POST("/api/logout", s.handleLogout)
	s.echo.GET("/verify/:verificationId", s.handleVerifyEmail)
	s.echo.POST("/api/resend-verification", s.handleResendVerification)

	// Feed and posts (reads are public, writes need a session)
	s.echo.GET("/api/feed", s.handleFeed)
	s.echo.POST("/api/posts", s.handleCreatePost, s.requireAuth)
	s.echo.GET("/api/posts/:postId", s.handleGetPost)
	s.echo.POST("/api/posts/:postId/comments", s.handleCreateComment, s.requireAuth)

	// Votes
	s.echo.POST("/api/posts/like", s.handleVote(domain.SubjectPost, domain.ActionLike), s.requireAuth)
	s.echo.POST("/api/posts/dislike", s.handleVote(domain.SubjectPost, domain.ActionDislike), s.requireAuth)
	s.echo.POST("/api/comments/like", s.handleVote(domain.SubjectComment, domain.ActionLike), s.requireAuth)
	s.echo.POST("/api/comments/dislike", s.handleVote(domain.SubjectComment, domain.ActionDislike), s.requireAuth)

	// Profiles and follows
	s.echo.GET("/api/users/:username", s.handleProfile)
	s.echo.GET("/api/users/:username/posts", s.handleUserPosts)
	s.echo.GET("/api/users/:username/comments", s.handleUserComments)
	s.echo.POST("/api/users/:username/follow", s.handleToggleFollow, s.requireAuth)
}
