package shared

import "time"

type User struct {
	Id      string `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"isStaff"`
}

type Profile struct {
	Id       string  `json:"id"`
	UserId   string  `json:"userId"`
	Username string  `json:"username"`
	Bio      string  `json:"bio"`
	Picture  *string `json:"picture"`
}

// ProfileDetail adds the follow graph around the profile's user.
type ProfileDetail struct {
	Profile
	Followers []*User `json:"followers"`
	Following []*User `json:"following"`
}

type Post struct {
	Id           string     `json:"id"`
	Author       *User      `json:"author"`
	Title        string     `json:"title"`
	Content      string     `json:"content"`
	Image        *string    `json:"image"`
	Hashtags     []string   `json:"hashtags"`
	Published    bool       `json:"published"`
	ScheduleTime *time.Time `json:"scheduleTime,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// PostDetail embeds the base post fields and adds comments and likes.
type PostDetail struct {
	Post
	Comments []*Comment `json:"comments"`
	Likes    []*Like    `json:"likes"`
}

type Comment struct {
	Id        string    `json:"id"`
	Author    *User     `json:"author"`
	PostId    string    `json:"postId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Like struct {
	Id     string `json:"id"`
	Author *User  `json:"author"`
}

type Hashtag struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}
