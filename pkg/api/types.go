package api

import "time"

// Auth Response Types
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	User         User   `json:"user"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email,omitempty"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	FollowerCount  int       `json:"follower_count"`
	FollowingCount int       `json:"following_count"`
	PostCount      int       `json:"post_count"`
	IsFollowing    bool      `json:"is_following"`
	IsVerified     bool      `json:"is_verified"`
	IsCreator      bool      `json:"is_creator"`
	CreatedAt      time.Time `json:"created_at"`
}

// Profile Response Types
type ProfileResponse struct {
	User User `json:"user"`
}

type UserListResponse struct {
	Users      []User `json:"users"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// Post Response Types
type Post struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	AuthorUsername string    `json:"author_username,omitempty"`
	Title          string    `json:"title,omitempty"`
	Description    string    `json:"description,omitempty"`
	MediaURL       string    `json:"media_url,omitempty"`
	IsPremium      bool      `json:"is_premium"`
	LikeCount      int       `json:"like_count"`
	CommentCount   int       `json:"comment_count"`
	SaveCount      int       `json:"save_count"`
	IsLiked        bool      `json:"is_liked"`
	IsSaved        bool      `json:"is_saved"`
	IsHidden       bool      `json:"is_hidden"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PostListResponse struct {
	Posts      []Post `json:"posts"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
}

// Feed Response Types
type FeedResponse struct {
	Posts      []Post `json:"posts"`
	TotalCount int    `json:"total_count"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	HasMore    bool   `json:"has_more"`
}

// MutationResponse is what every like/save/hide/follow endpoint answers with.
// Pointer fields are only set when the server reports that value.
type MutationResponse struct {
	Success       *bool  `json:"success,omitempty"`
	Message       string `json:"message,omitempty"`
	IsLiked       *bool  `json:"is_liked,omitempty"`
	IsSaved       *bool  `json:"is_saved,omitempty"`
	IsHidden      *bool  `json:"is_hidden,omitempty"`
	IsFollowing   *bool  `json:"is_following,omitempty"`
	LikeCount     *int   `json:"like_count,omitempty"`
	SaveCount     *int   `json:"save_count,omitempty"`
	CommentCount  *int   `json:"comment_count,omitempty"`
	FollowerCount *int   `json:"follower_count,omitempty"`
}

// Error Response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
