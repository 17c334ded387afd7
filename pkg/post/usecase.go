package post

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
)

// UseCase is the feed: posts, their likes and comments.
type UseCase interface {
	Create(ctx context.Context, authorID uuid.UUID, text string) (Post, error)
	List(ctx context.Context, limit, offset int) ([]Post, error)
	Get(ctx context.Context, id uuid.UUID) (Post, error)
	Delete(ctx context.Context, id, requesterID uuid.UUID) error
	Like(ctx context.Context, id, userID uuid.UUID) ([]Like, error)
	Unlike(ctx context.Context, id, userID uuid.UUID) ([]Like, error)
	AddComment(ctx context.Context, id, userID uuid.UUID, text string) ([]Comment, error)
	RemoveComment(ctx context.Context, id, commentID, requesterID uuid.UUID) ([]Comment, error)
}

// Users resolves authors for the name/avatar snapshot.
type Users interface {
	GetByID(ctx context.Context, id uuid.UUID) (auth.User, error)
}

type service struct {
	repo  Repository
	users Users
	now   func() time.Time
}

// Option tunes the service.
type Option func(*service)

// WithClock replaces time.Now for post and comment dates.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(repo Repository, users Users, opts ...Option) UseCase {
	s := &service{repo: repo, users: users, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Create(ctx context.Context, authorID uuid.UUID, text string) (Post, error) {
	var v apperr.Validator
	v.Require("text", text, "Text is required")
	if err := v.Err(); err != nil {
		return Post{}, err
	}
	author, err := s.author(ctx, authorID)
	if err != nil {
		return Post{}, err
	}
	p := Post{
		ID:       uuid.New(),
		UserID:   author.ID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []Like{},
		Comments: []Comment{},
		Date:     s.now().UTC(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Post{}, fmt.Errorf("create post: %w", err)
	}
	return p, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Post, error) {
	return s.repo.List(ctx, limit, offset)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (Post, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Post{}, apperr.NotFound("Post not found")
		}
		return Post{}, err
	}
	return p, nil
}

func (s *service) Delete(ctx context.Context, id, requesterID uuid.UUID) error {
	p, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.UserID != requesterID {
		return apperr.Unauthorized("User not authorized")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Post not found")
		}
		return err
	}
	return nil
}

func (s *service) Like(ctx context.Context, id, userID uuid.UUID) ([]Like, error) {
	p, err := s.mutate(ctx, id, func(p *Post) error { return p.Like(userID) })
	return p.Likes, err
}

func (s *service) Unlike(ctx context.Context, id, userID uuid.UUID) ([]Like, error) {
	p, err := s.mutate(ctx, id, func(p *Post) error { return p.Unlike(userID) })
	return p.Likes, err
}

func (s *service) AddComment(ctx context.Context, id, userID uuid.UUID, text string) ([]Comment, error) {
	var v apperr.Validator
	v.Require("text", text, "Text is required")
	if err := v.Err(); err != nil {
		return nil, err
	}
	author, err := s.author(ctx, userID)
	if err != nil {
		return nil, err
	}
	c := Comment{
		ID:     uuid.New(),
		UserID: author.ID,
		Text:   text,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   s.now().UTC(),
	}
	p, err := s.mutate(ctx, id, func(p *Post) error {
		p.AddComment(c)
		return nil
	})
	return p.Comments, err
}

func (s *service) RemoveComment(ctx context.Context, id, commentID, requesterID uuid.UUID) ([]Comment, error) {
	p, err := s.mutate(ctx, id, func(p *Post) error { return p.RemoveComment(commentID, requesterID) })
	return p.Comments, err
}

// mutate is a read-modify-write of one post document; concurrent writers
// to the same post race and the last Update wins.
func (s *service) mutate(ctx context.Context, id uuid.UUID, fn func(p *Post) error) (Post, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return Post{}, err
	}
	if err := fn(&p); err != nil {
		return Post{}, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return Post{}, apperr.NotFound("Post not found")
		}
		return Post{}, fmt.Errorf("update post: %w", err)
	}
	return p, nil
}

func (s *service) author(ctx context.Context, id uuid.UUID) (auth.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return auth.User{}, apperr.NotFound("User not found")
		}
		return auth.User{}, err
	}
	return u, nil
}
