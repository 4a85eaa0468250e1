package group

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

// MemberResponse represents a member in a group members listing
type MemberResponse struct {
	ID       int64      `json:"id"`
	UserID   int64      `json:"user_id"`
	Username string     `json:"username"`
	Role     MemberRole `json:"role"`
	JoinedAt string     `json:"joined_at"`
}

// MembershipResponse represents one of the caller's own memberships
type MembershipResponse struct {
	GroupID   int64      `json:"group_id"`
	GroupName string     `json:"group_name"`
	Role      MemberRole `json:"role"`
	JoinedAt  string     `json:"joined_at"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:        g.ID,
		Name:      g.Name,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:       m.ID,
		UserID:   m.UserID,
		Username: m.Username,
		Role:     m.Role,
		JoinedAt: m.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToMembershipResponse converts a Member model to the caller's-own view
func (m *Member) ToMembershipResponse() *MembershipResponse {
	return &MembershipResponse{
		GroupID:   m.GroupID,
		GroupName: m.GroupName,
		Role:      m.Role,
		JoinedAt:  m.JoinedAt.Format("2006-01-02T15:04:05Z"),
	}
}
