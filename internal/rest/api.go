package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/masterblog/masterblog/blog/domain"
)

// NewApi registers the /api route group on the given router.
func NewApi(router *gin.Engine, repo domain.PostRepository, middleware ...gin.HandlerFunc) {
	h := &PostsHandler{repo: repo}

	posts := router.Group("/api")
	posts.Use(middleware...)
	{
		posts.GET("/posts", h.GetPosts)
		posts.GET("/posts/search", h.SearchPosts)
		posts.POST("/posts", h.CreatePost)
		posts.PUT("/posts/:postId", h.UpdatePost)
		posts.DELETE("/posts/:postId", h.DeletePost)
		posts.POST("/posts/:postId/like", h.LikePost)
		posts.POST("/posts/:postId/comment", h.CommentPost)
	}
}
