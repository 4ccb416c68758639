package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/store"
)

// PostStore is an in-memory store.PostStore.
type PostStore struct {
	mu    sync.RWMutex
	posts map[domain.ID]*domain.Post
}

var _ store.PostStore = (*PostStore)(nil)

// NewPostStore creates an empty PostStore.
func NewPostStore() *PostStore {
	return &PostStore{posts: make(map[domain.ID]*domain.Post)}
}

// Create implements store.PostStore.
func (s *PostStore) Create(ctx context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[post.ID]; ok {
		return store.NewStoreError("post", "create", "id already in use", store.ErrDuplicate)
	}
	s.posts[post.ID] = post.Clone()
	return nil
}

// GetByID implements store.PostStore.
func (s *PostStore) GetByID(ctx context.Context, id domain.ID) (*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}
	return p.Clone(), nil
}

// List implements store.PostStore.
func (s *PostStore) List(ctx context.Context) ([]*domain.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p.Clone())
	}
	sortNewestFirst(out, func(p *domain.Post) (domain.ID, int64) { return p.ID, p.Date.UnixNano() })
	return out, nil
}

// Update implements store.PostStore.
func (s *PostStore) Update(ctx context.Context, id domain.ID, fn store.PostMutation) (*domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.posts[id]
	if !ok {
		return nil, store.ErrPostNotFound
	}
	next := current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = id
	s.posts[id] = next
	return next.Clone(), nil
}

// Delete implements store.PostStore.
func (s *PostStore) Delete(ctx context.Context, id domain.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return store.ErrPostNotFound
	}
	delete(s.posts, id)
	return nil
}

// sortNewestFirst orders documents by date descending, breaking ties on the
// identifier so the order is stable across calls.
func sortNewestFirst[T any](docs []T, key func(T) (domain.ID, int64)) {
	sort.Slice(docs, func(i, j int) bool {
		idI, dateI := key(docs[i])
		idJ, dateJ := key(docs[j])
		if dateI != dateJ {
			return dateI > dateJ
		}
		return idI.Hex() > idJ.Hex()
	})
}
