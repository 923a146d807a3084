package shared

import "time"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateTokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	UserId  string `json:"userId"`
	Email   string `json:"email"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RefreshTokenRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshTokenResponse struct {
	Access string `json:"access"`
}

type VerifyTokenRequest struct {
	Token string `json:"token"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

type CreateProfileRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

type UpdateProfileRequest struct {
	Username string `json:"username"`
	Bio      string `json:"bio"`
}

type CreatePostRequest struct {
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	HashtagIds   []string   `json:"hashtagIds"`
	ScheduleTime *time.Time `json:"scheduleTime,omitempty"`
}

type UpdatePostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	HashtagIds []string `json:"hashtagIds"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type CreateHashtagRequest struct {
	Name string `json:"name"`
}

type UpdateHashtagRequest struct {
	Name string `json:"name"`
}

type ToggleLikeResponse struct {
	Status string `json:"status"`
}

const (
	LikeStatusLiked   = "liked"
	LikeStatusUnliked = "unliked"
)

// DetailResponse mirrors the detail-message bodies of follow/unfollow
// and similar endpoints.
type DetailResponse struct {
	Detail string `json:"detail"`
}

type UploadImageResponse struct {
	Path string `json:"path"`
}
