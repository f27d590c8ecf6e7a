package server

import (
	"time"

	"github.com/donggunkwak/Brainwave/internal/models"
)

// View types shape API responses: internal ids stay, password hashes and soft
// delete bookkeeping never leave the server, and authors are presented by
// username.

type userView struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type commentView struct {
	ID        uint                `json:"id"`
	PostID    uint                `json:"post_id"`
	Content   string              `json:"content"`
	Options   *models.PostOptions `json:"options,omitempty"`
	Author    string              `json:"author"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type postView struct {
	ID         uint                `json:"id"`
	Content    string              `json:"content"`
	Options    *models.PostOptions `json:"options,omitempty"`
	Author     string              `json:"author"`
	LikesCount int                 `json:"likes_count"`
	Comments   []commentView       `json:"comments"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}

type likeView struct {
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type friendRequestView struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func presentUser(u *models.User) userView {
	return userView{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

func presentUsers(users []models.User) []userView {
	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, presentUser(&users[i]))
	}
	return views
}

func presentComment(c *models.Comment) commentView {
	return commentView{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Options:   c.Options,
		Author:    c.Author.Username,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func presentComments(comments []*models.Comment) []commentView {
	views := make([]commentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, presentComment(c))
	}
	return views
}

func presentPost(p *models.Post) postView {
	comments := make([]commentView, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, presentComment(&p.Comments[i]))
	}
	return postView{
		ID:         p.ID,
		Content:    p.Content,
		Options:    p.Options,
		Author:     p.Author.Username,
		LikesCount: p.LikesCount,
		Comments:   comments,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func presentPosts(posts []*models.Post) []postView {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, presentPost(p))
	}
	return views
}

func presentLikes(likes []models.Like) []likeView {
	views := make([]likeView, 0, len(likes))
	for i := range likes {
		views = append(views, likeView{
			User:      likes[i].User.Username,
			CreatedAt: likes[i].CreatedAt,
		})
	}
	return views
}

func presentFriendRequest(f *models.Friendship) friendRequestView {
	return friendRequestView{
		From:      f.Requester.Username,
		To:        f.Addressee.Username,
		Status:    string(f.Status),
		CreatedAt: f.CreatedAt,
	}
}

func presentFriendRequests(friendships []models.Friendship) []friendRequestView {
	views := make([]friendRequestView, 0, len(friendships))
	for i := range friendships {
		views = append(views, presentFriendRequest(&friendships[i]))
	}
	return views
}
