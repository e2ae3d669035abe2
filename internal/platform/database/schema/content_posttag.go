package schema

// ContentPostTagTable represents the 'content.posttag' table
type ContentPostTagTable struct {
	Table  string
	PostID string
	TagID  string
}

// ContentPostTag is the schema definition for content.posttag
var ContentPostTag = ContentPostTagTable{
	Table:  "content.posttag",
	PostID: "post_id",
	TagID:  "tag_id",
}
