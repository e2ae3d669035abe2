package schema

// ContentCommentTable represents the 'content.comment' table
type ContentCommentTable struct {
	Table     string
	ID        string
	PostID    string
	UserID    string
	Body      string
	IsActive  string
	CreatedAt string
	UpdatedAt string
}

// ContentComment is the schema definition for content.comment
var ContentComment = ContentCommentTable{
	Table:     "content.comment",
	ID:        "id",
	PostID:    "post_id",
	UserID:    "user_id",
	Body:      "body",
	IsActive:  "is_active",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t ContentCommentTable) Columns() []string {
	return []string{t.ID, t.PostID, t.UserID, t.Body, t.IsActive, t.CreatedAt, t.UpdatedAt}
}
