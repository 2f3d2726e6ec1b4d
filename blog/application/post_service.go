package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/masterblog/masterblog/blog/domain"
)

var _ domain.PostRepository = (*PostService)(nil)

const dateLayout = "2006-01-02"

// PostService implements domain.PostRepository over a PostStore.
// Every mutation runs a load-mutate-save sequence under a single mutex;
// without it, concurrent requests in one process could overwrite each
// other's writes. Mutations are durably persisted before they return.
// Concurrent writers from other processes remain unsafe, which is an
// accepted limitation of the file-backed store.
type PostService struct {
	store domain.PostStore
	mu    sync.Mutex

	// lastID is the highest ID ever observed or assigned. It only grows, so
	// deleting the highest-numbered post never frees its ID for reuse.
	lastID int
}

// NewPostService creates a PostService backed by the given store.
func NewPostService(store domain.PostStore) *PostService {
	return &PostService{store: store}
}

// ListAll returns the current posts in storage order.
func (s *PostService) ListAll(ctx context.Context) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadOrEmpty(ctx)
}

// Create validates the given fields, assigns the next ID and persists the
// new post. IDs come from a high-water mark seeded with the highest ID in
// the store, so an ID is never reused after its post is deleted.
func (s *PostService) Create(ctx context.Context, fields domain.PostFields) (*domain.Post, error) {
	title := strings.TrimSpace(fields.Title)
	content := strings.TrimSpace(fields.Content)

	var missing []string
	if title == "" {
		missing = append(missing, "title")
	}
	if content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return nil, domain.NewValidationError("missing required fields: %s", strings.Join(missing, ", "))
	}

	date := strings.TrimSpace(fields.Date)
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, domain.NewValidationError("invalid date %q, expected YYYY-MM-DD", date)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.loadOrEmpty(ctx)
	if err != nil {
		return nil, err
	}

	if m := maxID(posts); m > s.lastID {
		s.lastID = m
	}
	s.lastID++

	post := domain.Post{
		ID:       s.lastID,
		Title:    title,
		Content:  content,
		Author:   strings.TrimSpace(fields.Author),
		Date:     date,
		Likes:    0,
		Comments: []string{},
	}

	posts = append(posts, post)
	if err := s.store.Save(ctx, posts); err != nil {
		return nil, err
	}

	return &post, nil
}

// Update overwrites only the supplied fields of the post with the given ID.
func (s *PostService) Update(ctx context.Context, id int, fields domain.PostUpdate) (*domain.Post, error) {
	if fields.Title == nil && fields.Content == nil && fields.Author == nil {
		return nil, domain.NewValidationError("at least one field is required")
	}
	if fields.Title != nil && strings.TrimSpace(*fields.Title) == "" {
		return nil, domain.NewValidationError("title cannot be empty")
	}
	if fields.Content != nil && strings.TrimSpace(*fields.Content) == "" {
		return nil, domain.NewValidationError("content cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.loadOrEmpty(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(posts, id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	if fields.Title != nil {
		posts[idx].Title = strings.TrimSpace(*fields.Title)
	}
	if fields.Content != nil {
		posts[idx].Content = strings.TrimSpace(*fields.Content)
	}
	if fields.Author != nil {
		posts[idx].Author = strings.TrimSpace(*fields.Author)
	}

	if err := s.store.Save(ctx, posts); err != nil {
		return nil, err
	}

	post := posts[idx]
	return &post, nil
}

// Delete removes the post with the given ID. The ID is not reassigned to
// later posts.
func (s *PostService) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.loadOrEmpty(ctx)
	if err != nil {
		return err
	}

	idx := indexOf(posts, id)
	if idx < 0 {
		return domain.ErrNotFound
	}

	posts = append(posts[:idx], posts[idx+1:]...)
	return s.store.Save(ctx, posts)
}

// Like increments the like counter of the post with the given ID.
func (s *PostService) Like(ctx context.Context, id int) (*domain.Post, error) {
	return s.mutate(ctx, id, func(p *domain.Post) {
		p.Likes++
	})
}

// AddComment appends a comment to the post with the given ID. Comments keep
// insertion order and are never removed.
func (s *PostService) AddComment(ctx context.Context, id int, text string) (*domain.Post, error) {
	comment := strings.TrimSpace(text)
	if comment == "" {
		return nil, domain.NewValidationError("comment cannot be empty")
	}
	return s.mutate(ctx, id, func(p *domain.Post) {
		p.Comments = append(p.Comments, comment)
	})
}

// mutate applies fn to the post with the given ID and persists the result.
func (s *PostService) mutate(ctx context.Context, id int, fn func(*domain.Post)) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.loadOrEmpty(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(posts, id)
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	fn(&posts[idx])

	if err := s.store.Save(ctx, posts); err != nil {
		return nil, err
	}

	post := posts[idx]
	return &post, nil
}

// loadOrEmpty reads the collection, treating a missing or unreadable
// document as an empty, not-yet-initialized store.
func (s *PostService) loadOrEmpty(ctx context.Context) ([]domain.Post, error) {
	posts, err := s.store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnavailable) {
			log.Warn().Err(err).Msg("Post store unavailable, starting from empty collection")
			return []domain.Post{}, nil
		}
		return nil, err
	}
	return posts, nil
}

func maxID(posts []domain.Post) int {
	max := 0
	for _, p := range posts {
		if p.ID > max {
			max = p.ID
		}
	}
	return max
}

func indexOf(posts []domain.Post, id int) int {
	for i, p := range posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
