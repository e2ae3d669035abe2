package schema

// ContentPostTable represents the 'content.post' table
type ContentPostTable struct {
	Table     string
	ID        string
	UserID    string
	Title     string
	Body      string
	Status    string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// ContentPost is the schema definition for content.post
var ContentPost = ContentPostTable{
	Table:     "content.post",
	ID:        "id",
	UserID:    "user_id",
	Title:     "title",
	Body:      "body",
	Status:    "status",
	IsActive:  "is_active",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t ContentPostTable) Columns() []string {
	return []string{t.ID, t.UserID, t.Title, t.Body, t.Status, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
