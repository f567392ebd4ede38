package app

import (
	"time"

	"github.com/google/uuid"

	"github.com/PiWizard3852/Wayve/internal/domain"
)

// AuthorView is the public slice of a user embedded in posts and comments.
type AuthorView struct {
	Name     string `json:"name"`
	Username string `json:"username"`
}

// PostView is the serialized shape of a post, annotated with the viewer's
// own reaction so the client can render the buttons without another round
// trip.
type PostView struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	Author         AuthorView      `json:"author"`
	CreatedAt      time.Time       `json:"createdAt"`
	Likes          int             `json:"likes"`
	Dislikes       int             `json:"dislikes"`
	Tally          int             `json:"tally"`
	Comments       int             `json:"comments"`
	ViewerReaction domain.Reaction `json:"viewerReaction"`
}

// PostDetailView is a post plus its ranked comments.
type PostDetailView struct {
	PostView
	Comments []CommentView `json:"commentList"`
}

// CommentView is the serialized shape of a comment.
type CommentView struct {
	ID             uuid.UUID       `json:"id"`
	PostID         uuid.UUID       `json:"postId"`
	Content        string          `json:"content"`
	Author         AuthorView      `json:"author"`
	CreatedAt      time.Time       `json:"createdAt"`
	Likes          int             `json:"likes"`
	Dislikes       int             `json:"dislikes"`
	Tally          int             `json:"tally"`
	ViewerReaction domain.Reaction `json:"viewerReaction"`
}

// ProfileView is a user's public profile. Email and password hash never
// leave the service layer.
type ProfileView struct {
	Name        string    `json:"name"`
	Username    string    `json:"username"`
	JoinedAt    time.Time `json:"joinedAt"`
	Followers   int       `json:"followers"`
	Posts       int       `json:"posts"`
	Comments    int       `json:"comments"`
	IsFollowing bool      `json:"isFollowing"`
}

func newPostView(post domain.Post, reaction domain.Reaction) PostView {
	return PostView{
		ID:             post.ID,
		Title:          post.Title,
		Content:        post.Content,
		Author:         AuthorView{Name: post.AuthorName, Username: post.Username},
		CreatedAt:      post.CreatedAt,
		Likes:          post.Likes,
		Dislikes:       post.Dislikes,
		Tally:          post.Likes - post.Dislikes,
		Comments:       post.Comments,
		ViewerReaction: reaction,
	}
}

func newCommentView(comment domain.Comment, reaction domain.Reaction) CommentView {
	return CommentView{
		ID:             comment.ID,
		PostID:         comment.PostID,
		Content:        comment.Content,
		Author:         AuthorView{Name: comment.AuthorName, Username: comment.Username},
		CreatedAt:      comment.CreatedAt,
		Likes:          comment.Likes,
		Dislikes:       comment.Dislikes,
		Tally:          comment.Likes - comment.Dislikes,
		ViewerReaction: reaction,
	}
}

func newProfileView(user domain.User, followers, posts, comments int) ProfileView {
	return ProfileView{
		Name:      user.Name,
		Username:  user.Username,
		JoinedAt:  user.CreatedAt,
		Followers: followers,
		Posts:     posts,
		Comments:  comments,
	}
}
