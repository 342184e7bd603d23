package groups

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type Group struct {
	ID          uuid.UUID `json:"id"`
	CoachID     uuid.UUID `json:"coachId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Members     []Member  `json:"members,omitempty"`
}

type Member struct {
	GroupID  uuid.UUID `json:"groupId"`
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	JoinedAt time.Time `json:"joinedAt"`
}

func (g *Group) Validate() error {
	if len(g.Name) == 0 {
		return errors.New("group name must not be empty")
	}
	if len(g.Name) > 100 {
		return errors.New("group name too long, max 100 chars")
	}
	return nil
}
