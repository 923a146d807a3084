package db

import "github.com/jmoiron/sqlx"

// Each entity gets a small repository interface with typed query methods.
// Handlers depend on these interfaces only; the postgres implementations
// below are constructed once at startup and injected.

type UserStore interface {
	Create(user *User) error
	Get(id string) (*User, error)
	GetByEmail(email string) (*User, error)
	GetMany(ids []string) (map[string]*User, error)
}

type AuthTokenStore interface {
	Create(userId, tokenType string) (string, error)
	Validate(token, tokenType string) (*AuthToken, error)
	Revoke(id string) error
}

type ProfileStore interface {
	Create(profile *Profile) error
	List(search string) ([]*Profile, error)
	Get(id string) (*Profile, error)
	GetByUserId(userId string) (*Profile, error)
	Update(profile *Profile) error
	Delete(id string) error
	SetPicture(id, path string) error
}

type PostStore interface {
	Create(post *Post, hashtagIds []string) error
	ListVisibleTo(viewerId string) ([]*Post, error)
	Get(id string) (*Post, error)
	Update(post *Post, hashtagIds []string) error
	Delete(id string) error
	SetImage(id, path string) error
	HashtagNames(postIds []string) (map[string][]string, error)
	SetPublished(id string) error
	ListPendingScheduled() ([]*Post, error)
}

type CommentStore interface {
	Create(comment *Comment) error
	Get(id string) (*Comment, error)
	ListForPost(postId string) ([]*Comment, error)
}

type LikeStore interface {
	TogglePostLike(authorId, postId string) (liked bool, err error)
	ToggleCommentLike(authorId, commentId string) (liked bool, err error)
	ListForPost(postId string) ([]*Like, error)
}

type FollowStore interface {
	Create(followerId, followingId string) error
	Delete(followerId, followingId string) error
	Exists(followerId, followingId string) (bool, error)
	ListFollowers(userId string) ([]*User, error)
	ListFollowing(userId string) ([]*User, error)
}

type HashtagStore interface {
	Create(hashtag *Hashtag) error
	List() ([]*Hashtag, error)
	Get(id string) (*Hashtag, error)
	Update(hashtag *Hashtag) error
	Delete(id string) error
}

type Store struct {
	Users      UserStore
	AuthTokens AuthTokenStore
	Profiles   ProfileStore
	Posts      PostStore
	Comments   CommentStore
	Likes      LikeStore
	Follows    FollowStore
	Hashtags   HashtagStore
}

func NewStore(conn *sqlx.DB) *Store {
	return &Store{
		Users:      &pgUserStore{conn: conn},
		AuthTokens: &pgAuthTokenStore{conn: conn},
		Profiles:   &pgProfileStore{conn: conn},
		Posts:      &pgPostStore{conn: conn},
		Comments:   &pgCommentStore{conn: conn},
		Likes:      &pgLikeStore{conn: conn},
		Follows:    &pgFollowStore{conn: conn},
		Hashtags:   &pgHashtagStore{conn: conn},
	}
}
