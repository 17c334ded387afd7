// Package memory keeps users, profiles and posts in process memory. It backs
// tests and the "memory" storage driver for local runs.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
	"github.com/IllyaHavrulyk/DevConnector/pkg/post"
	"github.com/IllyaHavrulyk/DevConnector/pkg/profile"
)

type UserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]auth.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]auth.User)}
}

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return auth.ErrUserAlreadyExists
		}
	}
	user.Email = strings.ToLower(user.Email)
	r.users[user.ID] = user
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, strings.TrimSpace(email)) {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrNotFound
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return auth.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

type ProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]profile.Profile // keyed by user id
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{profiles: make(map[uuid.UUID]profile.Profile)}
}

func (r *ProfileRepository) GetByUser(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return cloneProfile(p), nil
}

func (r *ProfileRepository) List(_ context.Context, limit, offset int) ([]profile.Profile, error) {
	r.mu.RLock()
	out := make([]profile.Profile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, cloneProfile(p))
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return page(out, limit, offset), nil
}

func (r *ProfileRepository) Save(_ context.Context, p profile.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.UserID] = cloneProfile(p)
	return nil
}

func (r *ProfileRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, userID)
	return nil
}

type PostRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]post.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[uuid.UUID]post.Post)}
}

func (r *PostRepository) Create(_ context.Context, p post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id uuid.UUID) (post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.posts[id]
	if !ok {
		return post.Post{}, post.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *PostRepository) List(_ context.Context, limit, offset int) ([]post.Post, error) {
	r.mu.RLock()
	out := make([]post.Post, 0, len(r.posts))
	for _, p := range r.posts {
		out = append(out, clonePost(p))
	}
	r.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return page(out, limit, offset), nil
}

func (r *PostRepository) Update(_ context.Context, p post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[p.ID]; !ok {
		return post.ErrNotFound
	}
	r.posts[p.ID] = clonePost(p)
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.posts {
		if p.UserID == userID {
			delete(r.posts, id)
		}
	}
	return nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func cloneProfile(p profile.Profile) profile.Profile {
	p.Skills = append([]string{}, p.Skills...)
	p.Experience = append([]profile.Experience{}, p.Experience...)
	p.Education = append([]profile.Education{}, p.Education...)
	return p
}

func clonePost(p post.Post) post.Post {
	p.Likes = append([]post.Like{}, p.Likes...)
	p.Comments = append([]post.Comment{}, p.Comments...)
	return p
}
