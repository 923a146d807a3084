package handlers

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"socialite-server/db"
)

// In-memory implementations of the store interfaces. They enforce the same
// uniqueness rules as the postgres schema so handler behavior can be tested
// end to end without a database.

func newFakeStore() *db.Store {
	users := &fakeUserStore{users: map[string]*db.User{}}
	follows := &fakeFollowStore{users: users, edges: map[string]time.Time{}}
	posts := &fakePostStore{follows: follows, posts: map[string]*db.Post{}}

	return &db.Store{
		Users:      users,
		AuthTokens: &fakeAuthTokenStore{tokens: map[string]*db.AuthToken{}},
		Profiles:   &fakeProfileStore{users: users, profiles: map[string]*db.Profile{}},
		Posts:      posts,
		Comments:   &fakeCommentStore{comments: map[string]*db.Comment{}},
		Likes:      &fakeLikeStore{likes: map[string]*db.Like{}},
		Follows:    follows,
		Hashtags:   &fakeHashtagStore{hashtags: map[string]*db.Hashtag{}},
	}
}

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*db.User
}

func (s *fakeUserStore) Create(user *db.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return db.ErrEmailTaken
		}
	}

	user.Id = uuid.New().String()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	copied := *user
	s.users[user.Id] = &copied
	return nil
}

func (s *fakeUserStore) Get(id string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) GetByEmail(email string) (*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) GetMany(ids []string) (map[string]*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make(map[string]*db.User, len(ids))
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			copied := *user
			users[id] = &copied
		}
	}
	return users, nil
}

type fakeAuthTokenStore struct {
	mu     sync.Mutex
	tokens map[string]*db.AuthToken // keyed by the raw token
}

func (s *fakeAuthTokenStore) Create(userId, tokenType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.New().String()
	s.tokens[token] = &db.AuthToken{
		Id:        uuid.New().String(),
		UserId:    userId,
		TokenType: tokenType,
		CreatedAt: time.Now(),
	}
	return token, nil
}

func (s *fakeAuthTokenStore) Validate(token, tokenType string) (*db.AuthToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	authToken, ok := s.tokens[token]
	if !ok || authToken.TokenType != tokenType || authToken.DeletedAt != nil {
		return nil, db.ErrInvalidToken
	}
	copied := *authToken
	return &copied, nil
}

func (s *fakeAuthTokenStore) Revoke(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, authToken := range s.tokens {
		if authToken.Id == id {
			now := time.Now()
			authToken.DeletedAt = &now
		}
	}
	return nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	users    *fakeUserStore
	profiles map[string]*db.Profile
}

func (s *fakeProfileStore) Create(profile *db.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.profiles {
		if existing.UserId == profile.UserId {
			return db.ErrProfileExists
		}
		if existing.Username == profile.Username {
			return db.ErrUsernameTaken
		}
	}

	profile.Id = uuid.New().String()
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt

	copied := *profile
	s.profiles[profile.Id] = &copied
	return nil
}

func (s *fakeProfileStore) List(search string) ([]*db.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var profiles []*db.Profile
	for _, profile := range s.profiles {
		if search != "" {
			email := ""
			if user, ok := s.users.users[profile.UserId]; ok {
				email = user.Email
			}
			q := strings.ToLower(search)
			if !strings.Contains(strings.ToLower(profile.Username), q) &&
				!strings.Contains(strings.ToLower(email), q) {
				continue
			}
		}
		copied := *profile
		profiles = append(profiles, &copied)
	}

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].CreatedAt.Before(profiles[j].CreatedAt)
	})

	return profiles, nil
}

func (s *fakeProfileStore) Get(id string) (*db.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (s *fakeProfileStore) GetByUserId(userId string) (*db.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, profile := range s.profiles {
		if profile.UserId == userId {
			copied := *profile
			return &copied, nil
		}
	}
	return nil, nil
}

func (s *fakeProfileStore) Update(profile *db.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.profiles[profile.Id]
	if !ok {
		return db.ErrNotFound
	}

	for _, other := range s.profiles {
		if other.Id != profile.Id && other.Username == profile.Username {
			return db.ErrUsernameTaken
		}
	}

	existing.Username = profile.Username
	existing.Bio = profile.Bio
	existing.UpdatedAt = time.Now()
	return nil
}

func (s *fakeProfileStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.profiles[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.profiles, id)
	return nil
}

func (s *fakeProfileStore) SetPicture(id, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[id]
	if !ok {
		return db.ErrNotFound
	}
	profile.Picture = &path
	return nil
}

type fakePostStore struct {
	mu      sync.Mutex
	follows *fakeFollowStore
	posts   map[string]*db.Post
	order   []string
}

func (s *fakePostStore) Create(post *db.Post, hashtagIds []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.Id = uuid.New().String()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt

	copied := *post
	s.posts[post.Id] = &copied
	s.order = append(s.order, post.Id)
	return nil
}

// ListVisibleTo mirrors the postgres visibility query: own posts plus
// published posts from followed authors, newest first.
func (s *fakePostStore) ListVisibleTo(viewerId string) ([]*db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*db.Post
	for i := len(s.order) - 1; i >= 0; i-- {
		post := s.posts[s.order[i]]
		if post == nil {
			continue
		}
		if post.AuthorId == viewerId {
			copied := *post
			posts = append(posts, &copied)
			continue
		}
		if post.Published && s.follows.exists(viewerId, post.AuthorId) {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

func (s *fakePostStore) Get(id string) (*db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (s *fakePostStore) Update(post *db.Post, hashtagIds []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.Id]
	if !ok {
		return db.ErrNotFound
	}
	existing.Title = post.Title
	existing.Content = post.Content
	existing.UpdatedAt = time.Now()
	return nil
}

func (s *fakePostStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

func (s *fakePostStore) SetImage(id, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return db.ErrNotFound
	}
	post.Image = &path
	return nil
}

func (s *fakePostStore) HashtagNames(postIds []string) (map[string][]string, error) {
	return map[string][]string{}, nil
}

func (s *fakePostStore) SetPublished(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return db.ErrNotFound
	}
	post.Published = true
	return nil
}

func (s *fakePostStore) ListPendingScheduled() ([]*db.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []*db.Post
	for _, post := range s.posts {
		if !post.Published && post.ScheduleTime != nil {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	return posts, nil
}

type fakeCommentStore struct {
	mu       sync.Mutex
	comments map[string]*db.Comment
	order    []string
}

func (s *fakeCommentStore) Create(comment *db.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment.Id = uuid.New().String()
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt

	copied := *comment
	s.comments[comment.Id] = &copied
	s.order = append(s.order, comment.Id)
	return nil
}

func (s *fakeCommentStore) Get(id string) (*db.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (s *fakeCommentStore) ListForPost(postId string) ([]*db.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var comments []*db.Comment
	for i := len(s.order) - 1; i >= 0; i-- {
		comment := s.comments[s.order[i]]
		if comment != nil && comment.PostId == postId {
			copied := *comment
			comments = append(comments, &copied)
		}
	}
	return comments, nil
}

type fakeLikeStore struct {
	mu    sync.Mutex
	likes map[string]*db.Like // keyed by like id
}

func (s *fakeLikeStore) TogglePostLike(authorId, postId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, like := range s.likes {
		if like.AuthorId == authorId && like.PostId != nil && *like.PostId == postId {
			delete(s.likes, id)
			return false, nil
		}
	}

	id := uuid.New().String()
	s.likes[id] = &db.Like{Id: id, AuthorId: authorId, PostId: &postId, CreatedAt: time.Now()}
	return true, nil
}

func (s *fakeLikeStore) ToggleCommentLike(authorId, commentId string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, like := range s.likes {
		if like.AuthorId == authorId && like.CommentId != nil && *like.CommentId == commentId {
			delete(s.likes, id)
			return false, nil
		}
	}

	id := uuid.New().String()
	s.likes[id] = &db.Like{Id: id, AuthorId: authorId, CommentId: &commentId, CreatedAt: time.Now()}
	return true, nil
}

func (s *fakeLikeStore) ListForPost(postId string) ([]*db.Like, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var likes []*db.Like
	for _, like := range s.likes {
		if like.PostId != nil && *like.PostId == postId {
			copied := *like
			likes = append(likes, &copied)
		}
	}
	return likes, nil
}

type fakeFollowStore struct {
	mu    sync.Mutex
	users *fakeUserStore
	edges map[string]time.Time // "follower|following"
}

func edgeKey(followerId, followingId string) string {
	return followerId + "|" + followingId
}

func (s *fakeFollowStore) Create(followerId, followingId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey(followerId, followingId)
	if _, ok := s.edges[key]; ok {
		return db.ErrAlreadyFollowing
	}
	s.edges[key] = time.Now()
	return nil
}

func (s *fakeFollowStore) Delete(followerId, followingId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := edgeKey(followerId, followingId)
	if _, ok := s.edges[key]; !ok {
		return db.ErrNotFollowing
	}
	delete(s.edges, key)
	return nil
}

func (s *fakeFollowStore) Exists(followerId, followingId string) (bool, error) {
	return s.exists(followerId, followingId), nil
}

func (s *fakeFollowStore) exists(followerId, followingId string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.edges[edgeKey(followerId, followingId)]
	return ok
}

func (s *fakeFollowStore) ListFollowers(userId string) ([]*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []*db.User
	for key := range s.edges {
		parts := strings.SplitN(key, "|", 2)
		if parts[1] == userId {
			if user, err := s.users.Get(parts[0]); err == nil {
				users = append(users, user)
			}
		}
	}
	return users, nil
}

func (s *fakeFollowStore) ListFollowing(userId string) ([]*db.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var users []*db.User
	for key := range s.edges {
		parts := strings.SplitN(key, "|", 2)
		if parts[0] == userId {
			if user, err := s.users.Get(parts[1]); err == nil {
				users = append(users, user)
			}
		}
	}
	return users, nil
}

type fakeHashtagStore struct {
	mu       sync.Mutex
	hashtags map[string]*db.Hashtag
}

func (s *fakeHashtagStore) Create(hashtag *db.Hashtag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.hashtags {
		if existing.Name == hashtag.Name {
			return db.ErrHashtagExists
		}
	}
	hashtag.Id = uuid.New().String()
	copied := *hashtag
	s.hashtags[hashtag.Id] = &copied
	return nil
}

func (s *fakeHashtagStore) List() ([]*db.Hashtag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var hashtags []*db.Hashtag
	for _, hashtag := range s.hashtags {
		copied := *hashtag
		hashtags = append(hashtags, &copied)
	}
	sort.Slice(hashtags, func(i, j int) bool { return hashtags[i].Name < hashtags[j].Name })
	return hashtags, nil
}

func (s *fakeHashtagStore) Get(id string) (*db.Hashtag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hashtag, ok := s.hashtags[id]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *hashtag
	return &copied, nil
}

func (s *fakeHashtagStore) Update(hashtag *db.Hashtag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.hashtags[hashtag.Id]
	if !ok {
		return db.ErrNotFound
	}
	for _, other := range s.hashtags {
		if other.Id != hashtag.Id && other.Name == hashtag.Name {
			return db.ErrHashtagExists
		}
	}
	existing.Name = hashtag.Name
	return nil
}

func (s *fakeHashtagStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.hashtags[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.hashtags, id)
	return nil
}
