package category

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Icon     string `json:"icon,omitempty" validate:"max=30"`
	IsIncome bool   `json:"is_income"`
	GroupID  *int64 `json:"group_id,omitempty"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Icon     string `json:"icon,omitempty"`
	IsIncome bool   `json:"is_income"`
	Global   bool   `json:"global"`
	GroupID  *int64 `json:"group_id,omitempty"`
}

// ToResponse converts a Category model to a CategoryResponse DTO
func (c *Category) ToResponse() *CategoryResponse {
	return &CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		Icon:     c.Icon,
		IsIncome: c.IsIncome,
		Global:   c.UserID == nil,
		GroupID:  c.GroupID,
	}
}
