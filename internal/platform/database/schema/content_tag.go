package schema

// ContentTagTable represents the 'content.tag' table
type ContentTagTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	IsActive    string
	CreatedAt   string
}

// ContentTag is the schema definition for content.tag
var ContentTag = ContentTagTable{
	Table:       "content.tag",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	IsActive:    "is_active",
	CreatedAt:   "created_at",
}

func (t ContentTagTable) Columns() []string {
	return []string{t.ID, t.Name, t.Slug, t.Description, t.IsActive, t.CreatedAt}
}
