package social

import (
	"time"

	"github.com/google/uuid"
)

type Share struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	WorkoutID  uuid.UUID `json:"workoutId"`
	Caption    string    `json:"caption,omitempty"`
	LikesCount int       `json:"likesCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// FeedItem is a share joined with its author profile and workout name.
type FeedItem struct {
	Share
	AuthorUsername string `json:"authorUsername"`
	AuthorFullName string `json:"authorFullName,omitempty"`
	WorkoutName    string `json:"workoutName"`
	LikedByMe      bool   `json:"likedByMe"`
}

// FollowEntry is one row of a followers / following listing.
type FollowEntry struct {
	UserID    uuid.UUID `json:"userId"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
