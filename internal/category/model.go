package category

// Category represents a named tag for transactions. A nil UserID means the
// category is global and visible to everyone.
type Category struct {
	ID       int64   `json:"id"`
	UserID   *int64  `json:"user_id,omitempty"`
	GroupID  *int64  `json:"group_id,omitempty"`
	Name     string  `json:"name"`
	Icon     string  `json:"icon,omitempty"`
	IsIncome bool    `json:"is_income"`
}
