package api

import "github.com/masterblog/masterblog/blog/domain"

// CreatePostProto is the request body for creating a post. Author and Date
// are optional; the service defaults the date to today.
type CreatePostProto struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  string `json:"author"`
	Date    string `json:"date"`
}

// UpdatePostProto is the request body for a partial post update. Absent
// fields keep their prior values.
type UpdatePostProto struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Author  *string `json:"author"`
}

// CommentProto is the request body for commenting on a post.
type CommentProto struct {
	Comment string `json:"comment"`
}

// PostResponse wraps a post together with a human-readable message. It is
// the success envelope of the like and comment endpoints.
type PostResponse struct {
	Message string       `json:"message"`
	Post    *domain.Post `json:"post"`
}

// MessageResponse carries a bare confirmation message.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of every error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
