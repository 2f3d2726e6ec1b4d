package domain

import (
	"context"
)

// Post represents a blog post.
// The JSON shape doubles as the on-disk record and the wire format: the post
// collection is persisted as a single JSON array of these objects.
type Post struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Date     string   `json:"date"`
	Likes    int      `json:"likes"`
	Comments []string `json:"comments"`
}

// PostFields carries the user-supplied fields for creating a post.
// Author and Date are optional; Date defaults to today when empty.
type PostFields struct {
	Title   string
	Content string
	Author  string
	Date    string
}

// PostUpdate carries a partial update. Nil fields are left untouched.
type PostUpdate struct {
	Title   *string
	Content *string
	Author  *string
}

// PostStore is the durable persistence boundary for the post collection.
// Save overwrites the whole document; a reader must never observe a
// partially written document.
type PostStore interface {
	Load(ctx context.Context) ([]Post, error)
	Save(ctx context.Context, posts []Post) error
}

type PostRepository interface {
	ListAll(ctx context.Context) ([]Post, error)
	Create(ctx context.Context, fields PostFields) (*Post, error)
	Update(ctx context.Context, id int, fields PostUpdate) (*Post, error)
	Delete(ctx context.Context, id int) error
	Like(ctx context.Context, id int) (*Post, error)
	AddComment(ctx context.Context, id int, text string) (*Post, error)
}
