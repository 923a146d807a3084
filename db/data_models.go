package db

import (
	"time"

	"socialite-server/shared"
)

// The models below are row structs and should only be used server-side.
// Models exposed through the API have a ToApi() method that converts them
// to the corresponding client-side model, so that server-only data (password
// hashes, token hashes) doesn't leak to the client.

type User struct {
	Id           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsStaff      bool      `db:"is_staff"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (user *User) ToApi() *shared.User {
	return &shared.User{
		Id:      user.Id,
		Email:   user.Email,
		IsStaff: user.IsStaff,
	}
}

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type AuthToken struct {
	Id        string     `db:"id"`
	UserId    string     `db:"user_id"`
	TokenHash string     `db:"token_hash"`
	TokenType string     `db:"token_type"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type Profile struct {
	Id        string    `db:"id"`
	UserId    string    `db:"user_id"`
	Username  string    `db:"username"`
	Bio       string    `db:"bio"`
	Picture   *string   `db:"picture"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (profile *Profile) ToApi() *shared.Profile {
	return &shared.Profile{
		Id:       profile.Id,
		UserId:   profile.UserId,
		Username: profile.Username,
		Bio:      profile.Bio,
		Picture:  profile.Picture,
	}
}

type Post struct {
	Id           string     `db:"id"`
	AuthorId     string     `db:"author_id"`
	Title        string     `db:"title"`
	Content      string     `db:"content"`
	Image        *string    `db:"image"`
	Published    bool       `db:"published"`
	ScheduleTime *time.Time `db:"schedule_time"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
}

// ToApi builds the base post DTO. The author and hashtag names are loaded
// separately and passed in.
func (post *Post) ToApi(author *shared.User, hashtags []string) *shared.Post {
	if hashtags == nil {
		hashtags = []string{}
	}
	return &shared.Post{
		Id:           post.Id,
		Author:       author,
		Title:        post.Title,
		Content:      post.Content,
		Image:        post.Image,
		Hashtags:     hashtags,
		Published:    post.Published,
		ScheduleTime: post.ScheduleTime,
		CreatedAt:    post.CreatedAt,
		UpdatedAt:    post.UpdatedAt,
	}
}

type Comment struct {
	Id        string    `db:"id"`
	PostId    string    `db:"post_id"`
	AuthorId  string    `db:"author_id"`
	Content   string    `db:"content"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (comment *Comment) ToApi(author *shared.User) *shared.Comment {
	return &shared.Comment{
		Id:        comment.Id,
		Author:    author,
		PostId:    comment.PostId,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

// Like targets exactly one of a post or a comment.
type Like struct {
	Id        string    `db:"id"`
	AuthorId  string    `db:"author_id"`
	PostId    *string   `db:"post_id"`
	CommentId *string   `db:"comment_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (like *Like) ToApi(author *shared.User) *shared.Like {
	return &shared.Like{
		Id:     like.Id,
		Author: author,
	}
}

type Follow struct {
	Id          string    `db:"id"`
	FollowerId  string    `db:"follower_id"`
	FollowingId string    `db:"following_id"`
	CreatedAt   time.Time `db:"created_at"`
}

type Hashtag struct {
	Id   string `db:"id"`
	Name string `db:"name"`
}

func (hashtag *Hashtag) ToApi() *shared.Hashtag {
	return &shared.Hashtag{
		Id:   hashtag.Id,
		Name: hashtag.Name,
	}
}
