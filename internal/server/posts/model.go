package posts

import "time"

// Post is a blog entry owned by a user. Rows cascade on user deletion.
type Post struct {
	ID        int64
	Title     string
	Content   string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
