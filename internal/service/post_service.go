package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/devlink-api/internal/domain"
	"github.com/phrazzld/devlink-api/internal/platform/logger"
	"github.com/phrazzld/devlink-api/internal/redact"
	"github.com/phrazzld/devlink-api/internal/store"
	"github.com/phrazzld/devlink-api/internal/validation"
)

// PostService manages posts, likes and comments.
type PostService interface {
	Create(ctx context.Context, in validation.PostInput) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, id domain.ID) (*domain.Post, error)
	Delete(ctx context.Context, id, requester domain.ID) error
	Like(ctx context.Context, id, user domain.ID) ([]domain.Like, error)
	Unlike(ctx context.Context, id, user domain.ID) ([]domain.Like, error)
	Comment(ctx context.Context, id domain.ID, in validation.PostInput) ([]domain.Comment, error)
	DeleteComment(ctx context.Context, id, comment, requester domain.ID) ([]domain.Comment, error)
}

// PostServiceImpl implements PostService.
type PostServiceImpl struct {
	posts  store.PostStore
	users  store.UserStore
	logger *slog.Logger
}

var _ PostService = (*PostServiceImpl)(nil)

// NewPostService creates a PostService. users supplies the author name and
// avatar when a post or comment omits them.
func NewPostService(posts store.PostStore, users store.UserStore, logger *slog.Logger) *PostServiceImpl {
	return &PostServiceImpl{
		posts:  posts,
		users:  users,
		logger: logger.With("component", "post_service"),
	}
}

// author resolves the user and the name and avatar to show next to their text.
func (s *PostServiceImpl) author(ctx context.Context, in validation.PostInput) (domain.ID, string, string, error) {
	user, err := domain.ParseID(in.User)
	if err != nil {
		return domain.NilID, "", "", err
	}
	name, avatar := in.Name, in.Avatar
	if name == "" || avatar == "" {
		u, err := s.users.GetByID(ctx, user)
		if err != nil {
			return domain.NilID, "", "", s.fail(ctx, "failed to look up author", err)
		}
		if name == "" {
			name = u.Name
		}
		if avatar == "" {
			avatar = u.Avatar
		}
	}
	return user, name, avatar, nil
}

// Create implements PostService.
func (s *PostServiceImpl) Create(ctx context.Context, in validation.PostInput) (*domain.Post, error) {
	user, name, avatar, err := s.author(ctx, in)
	if err != nil {
		return nil, err
	}

	post := domain.NewPost(user, in.Text, name, avatar)
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, s.fail(ctx, "failed to save post", err)
	}

	s.log(ctx).Info("post created", "post_id", post.ID.Hex())
	return post, nil
}

// List implements PostService.
func (s *PostServiceImpl) List(ctx context.Context) ([]*domain.Post, error) {
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, s.fail(ctx, "failed to list posts", err)
	}
	return posts, nil
}

// Get implements PostService.
func (s *PostServiceImpl) Get(ctx context.Context, id domain.ID) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "failed to retrieve post", err)
	}
	return post, nil
}

// Delete implements PostService. Only the author may delete a post.
func (s *PostServiceImpl) Delete(ctx context.Context, id, requester domain.ID) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return s.fail(ctx, "failed to retrieve post", err)
	}
	if post.User != requester {
		s.log(ctx).Debug("post deletion by non-author",
			"post_id", id.Hex(), "requester", requester.Hex())
		return domain.ErrForbiddenOperation
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return s.fail(ctx, "failed to delete post", err)
	}

	s.log(ctx).Info("post deleted", "post_id", id.Hex())
	return nil
}

// Like implements PostService and returns the updated like list.
func (s *PostServiceImpl) Like(ctx context.Context, id, user domain.ID) ([]domain.Like, error) {
	post, err := s.posts.Update(ctx, id, func(p *domain.Post) error { return p.Like(user) })
	if err != nil {
		return nil, s.fail(ctx, "failed to like post", err)
	}
	return post.Likes, nil
}

// Unlike implements PostService and returns the updated like list.
func (s *PostServiceImpl) Unlike(ctx context.Context, id, user domain.ID) ([]domain.Like, error) {
	post, err := s.posts.Update(ctx, id, func(p *domain.Post) error { return p.Unlike(user) })
	if err != nil {
		return nil, s.fail(ctx, "failed to unlike post", err)
	}
	return post.Likes, nil
}

// Comment implements PostService and returns the updated comment list.
func (s *PostServiceImpl) Comment(ctx context.Context, id domain.ID, in validation.PostInput) ([]domain.Comment, error) {
	if _, err := s.posts.GetByID(ctx, id); err != nil {
		return nil, s.fail(ctx, "failed to retrieve post", err)
	}
	user, name, avatar, err := s.author(ctx, in)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Update(ctx, id, func(p *domain.Post) error {
		p.AddComment(user, in.Text, name, avatar)
		return nil
	})
	if err != nil {
		return nil, s.fail(ctx, "failed to add comment", err)
	}
	return post.Comments, nil
}

// DeleteComment implements PostService. Only the comment's author may
// delete it.
func (s *PostServiceImpl) DeleteComment(ctx context.Context, id, comment, requester domain.ID) ([]domain.Comment, error) {
	post, err := s.posts.Update(ctx, id, func(p *domain.Post) error {
		return p.RemoveComment(comment, requester)
	})
	if err != nil {
		return nil, s.fail(ctx, "failed to delete comment", err)
	}
	return post.Comments, nil
}

func (s *PostServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

func (s *PostServiceImpl) fail(ctx context.Context, msg string, err error) error {
	err = translate(err)
	if isExpected(err) {
		s.log(ctx).Debug(msg, "error", err)
		return err
	}
	s.log(ctx).Error(msg, "error", redact.Error(err))
	return fmt.Errorf("%s: %w", msg, err)
}
