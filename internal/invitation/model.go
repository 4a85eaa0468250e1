package invitation

import "time"

// Status represents the state of an invitation
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Invitation represents a proposal for a user to join a group.
// pending is the only non-terminal state.
type Invitation struct {
	ID         int64     `json:"id"`
	FromUserID int64     `json:"from_user_id"`
	ToUserID   int64     `json:"to_user_id"`
	GroupID    int64     `json:"group_id"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`

	// Populated from JOIN
	FromUsername string `json:"from_username,omitempty"`
	GroupName    string `json:"group_name,omitempty"`
}
