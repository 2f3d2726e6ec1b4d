package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/masterblog/masterblog/api"
	"github.com/masterblog/masterblog/blog/domain"
	"github.com/masterblog/masterblog/blog/query"
)

// PostsHandler translates the /api/posts wire contract into repository and
// query engine calls. It is the only layer mapping domain errors to HTTP
// status codes.
type PostsHandler struct {
	repo domain.PostRepository
}

// GetPosts returns all posts, optionally sorted by the sort/direction query
// parameters. An unknown sort field falls back to date ordering rather than
// failing.
func (h *PostsHandler) GetPosts(c *gin.Context) {
	posts, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	if field := c.Query("sort"); field != "" {
		posts = query.Sort(posts, field, c.Query("direction"))
	}

	c.JSON(http.StatusOK, posts)
}

// SearchPosts filters posts by per-field substring criteria. A post matches
// when every provided term appears, case-insensitively, in its field.
func (h *PostsHandler) SearchPosts(c *gin.Context) {
	posts, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	criteria := query.Criteria{
		Title:   c.Query("title"),
		Content: c.Query("content"),
		Author:  c.Query("author"),
		Date:    c.Query("date"),
	}

	c.JSON(http.StatusOK, query.Search(posts, criteria))
}

func (h *PostsHandler) CreatePost(c *gin.Context) {
	proto := &api.CreatePostProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	post, err := h.repo.Create(c.Request.Context(), domain.PostFields{
		Title:   proto.Title,
		Content: proto.Content,
		Author:  proto.Author,
		Date:    proto.Date,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

func (h *PostsHandler) UpdatePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	proto := &api.UpdatePostProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	post, err := h.repo.Update(c.Request.Context(), id, domain.PostUpdate{
		Title:   proto.Title,
		Content: proto.Content,
		Author:  proto.Author,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *PostsHandler) DeletePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{
		Message: fmt.Sprintf("Post %d has been deleted successfully.", id),
	})
}

func (h *PostsHandler) LikePost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.repo.Like(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.PostResponse{Message: "Post liked successfully", Post: post})
}

func (h *PostsHandler) CommentPost(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}

	proto := &api.CommentProto{}
	if err := c.ShouldBindJSON(proto); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	post, err := h.repo.AddComment(c.Request.Context(), id, proto.Comment)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.PostResponse{Message: "Comment added successfully", Post: post})
}

// postID parses the :postId path parameter, responding with 400 on garbage.
func postID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("postId"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: "Post ID must be an integer"})
		return 0, false
	}
	return id, true
}

// abortWithError maps a domain error to a status code and JSON body.
// Storage errors are logged here; nothing internal leaks to the client.
func abortWithError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.AbortWithStatusJSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal server error"})
	}
}
