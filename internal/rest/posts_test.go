package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masterblog/masterblog/blog/application"
	"github.com/masterblog/masterblog/blog/domain"
	"github.com/masterblog/masterblog/blog/persistence"
)

func newTestRouter(t *testing.T) (*gin.Engine, domain.PostRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := persistence.NewJSONPostStore(filepath.Join(t.TempDir(), "posts.json"))
	repo := application.NewPostService(store)

	router := gin.New()
	NewApi(router, repo)
	return router, repo
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func seedPost(t *testing.T, repo domain.PostRepository, title, content, author, date string) *domain.Post {
	t.Helper()
	post, err := repo.Create(context.Background(), domain.PostFields{
		Title:   title,
		Content: content,
		Author:  author,
		Date:    date,
	})
	require.NoError(t, err)
	return post
}

func TestCreatePost(t *testing.T) {
	t.Run("valid body returns 201 with the created post", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/posts", gin.H{
			"title":   "Hello",
			"content": "World",
			"author":  "alice",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var created domain.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
		assert.Equal(t, 1, created.ID)
		assert.Equal(t, "Hello", created.Title)
		assert.NotEmpty(t, created.Date)
		assert.Equal(t, []string{}, created.Comments)
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/posts", gin.H{"content": "World"})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["error"], "title")
	})
}

func TestGetPosts(t *testing.T) {
	t.Run("empty store returns an empty array", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodGet, "/api/posts", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("sort by title descending", func(t *testing.T) {
		router, repo := newTestRouter(t)
		seedPost(t, repo, "Apple", "c", "", "2025-01-01")
		seedPost(t, repo, "Zebra", "c", "", "2025-01-02")

		w := doJSON(t, router, http.MethodGet, "/api/posts?sort=title&direction=desc", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var posts []domain.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		require.Len(t, posts, 2)
		assert.Equal(t, "Zebra", posts[0].Title)
		assert.Equal(t, "Apple", posts[1].Title)
	})

	t.Run("unknown sort field falls back to date", func(t *testing.T) {
		router, repo := newTestRouter(t)
		seedPost(t, repo, "Later", "c", "", "2025-06-01")
		seedPost(t, repo, "Earlier", "c", "", "2025-01-01")

		w := doJSON(t, router, http.MethodGet, "/api/posts?sort=bogus&direction=asc", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var posts []domain.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		require.Len(t, posts, 2)
		assert.Equal(t, "Earlier", posts[0].Title)
	})
}

func TestSearchPosts(t *testing.T) {
	router, repo := newTestRouter(t)
	seedPost(t, repo, "Cats rule", "felines", "alice", "2025-01-01")
	seedPost(t, repo, "Dogs", "canines", "bob", "2025-01-02")

	t.Run("matches case-insensitive substrings", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/posts/search?title=CAT", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var posts []domain.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		require.Len(t, posts, 1)
		assert.Equal(t, "Cats rule", posts[0].Title)
	})

	t.Run("all criteria must match", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/posts/search?title=cat&author=bob", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())
	})

	t.Run("no criteria returns everything", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/posts/search", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var posts []domain.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &posts))
		assert.Len(t, posts, 2)
	})
}

func TestUpdatePost(t *testing.T) {
	t.Run("updates supplied fields only", func(t *testing.T) {
		router, repo := newTestRouter(t)
		post := seedPost(t, repo, "Old", "Body", "alice", "2025-01-01")

		w := doJSON(t, router, http.MethodPut, "/api/posts/1", gin.H{"title": "New"})
		require.Equal(t, http.StatusOK, w.Code)

		var updated domain.Post
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, post.Content, updated.Content)
		assert.Equal(t, post.Author, updated.Author)
	})

	t.Run("non-integer id returns 400", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPut, "/api/posts/abc", gin.H{"title": "New"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPut, "/api/posts/99", gin.H{"title": "New"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestDeletePost(t *testing.T) {
	t.Run("removes the post", func(t *testing.T) {
		router, repo := newTestRouter(t)
		seedPost(t, repo, "Doomed", "c", "", "2025-01-01")

		w := doJSON(t, router, http.MethodDelete, "/api/posts/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp["message"], "deleted")

		posts, err := repo.ListAll(context.Background())
		require.NoError(t, err)
		assert.Empty(t, posts)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodDelete, "/api/posts/99", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("non-integer id returns 400", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodDelete, "/api/posts/first", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLikePost(t *testing.T) {
	t.Run("increments the counter", func(t *testing.T) {
		router, repo := newTestRouter(t)
		seedPost(t, repo, "Popular", "c", "", "2025-01-01")

		for i := 1; i <= 3; i++ {
			w := doJSON(t, router, http.MethodPost, "/api/posts/1/like", nil)
			require.Equal(t, http.StatusOK, w.Code)

			var resp struct {
				Post domain.Post `json:"post"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, i, resp.Post.Likes)
		}
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/posts/12/like", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentPost(t *testing.T) {
	t.Run("appends comments in order", func(t *testing.T) {
		router, repo := newTestRouter(t)
		seedPost(t, repo, "Chatty", "c", "", "2025-01-01")

		doJSON(t, router, http.MethodPost, "/api/posts/1/comment", gin.H{"comment": "first"})
		w := doJSON(t, router, http.MethodPost, "/api/posts/1/comment", gin.H{"comment": "second"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Post domain.Post `json:"post"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, []string{"first", "second"}, resp.Post.Comments)
	})

	t.Run("empty comment returns 400", func(t *testing.T) {
		router, repo := newTestRouter(t)
		seedPost(t, repo, "Chatty", "c", "", "2025-01-01")

		w := doJSON(t, router, http.MethodPost, "/api/posts/1/comment", gin.H{"comment": "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown id returns 404", func(t *testing.T) {
		router, _ := newTestRouter(t)

		w := doJSON(t, router, http.MethodPost, "/api/posts/9/comment", gin.H{"comment": "hi"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
