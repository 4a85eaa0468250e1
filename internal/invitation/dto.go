package invitation

// InviteRequest represents the request to invite a user to a group
type InviteRequest struct {
	GroupID    int64  `json:"group_id" validate:"required"`
	ToUsername string `json:"to_username" validate:"required,max=150"`
}

// InvitationResponse represents an invitation in API responses
type InvitationResponse struct {
	ID           int64  `json:"id"`
	GroupID      int64  `json:"group_id"`
	GroupName    string `json:"group_name,omitempty"`
	FromUsername string `json:"from_username,omitempty"`
	Status       Status `json:"status"`
	CreatedAt    string `json:"created_at"`
}

// ToResponse converts an Invitation model to an InvitationResponse DTO
func (i *Invitation) ToResponse() *InvitationResponse {
	return &InvitationResponse{
		ID:           i.ID,
		GroupID:      i.GroupID,
		GroupName:    i.GroupName,
		FromUsername: i.FromUsername,
		Status:       i.Status,
		CreatedAt:    i.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}
