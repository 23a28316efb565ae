package domain

// Tag is a named news category with a display colour.
type Tag struct {
	ID    int64
	Name  string
	Color string
}

// DefaultTags is seeded into an empty tags table, in this order.
var DefaultTags = []Tag{
	{Name: "Technology", Color: "#3498db"},
	{Name: "Sports", Color: "#e74c3c"},
	{Name: "Business", Color: "#2ecc71"},
	{Name: "Health", Color: "#f39c12"},
	{Name: "Science", Color: "#9b59b6"},
	{Name: "Entertainment", Color: "#e67e22"},
	{Name: "Politics", Color: "#34495e"},
	{Name: "World", Color: "#1abc9c"},
}
