package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
	"github.com/IllyaHavrulyk/DevConnector/pkg/nlp"
)

// UseCase covers profile reads, upserts, the experience/education lists and
// account removal.
type UseCase interface {
	Me(ctx context.Context, userID uuid.UUID) (View, error)
	GetByUser(ctx context.Context, userID uuid.UUID) (View, error)
	List(ctx context.Context, limit, offset int) ([]View, error)
	// Search lists the profiles that list skill under any of its aliases.
	Search(ctx context.Context, skill string, limit, offset int) ([]View, error)
	Upsert(ctx context.Context, userID uuid.UUID, patch Patch) (Profile, error)
	AddExperience(ctx context.Context, userID uuid.UUID, e Experience) (Profile, error)
	RemoveExperience(ctx context.Context, userID, id uuid.UUID) (Profile, error)
	AddEducation(ctx context.Context, userID uuid.UUID, e Education) (Profile, error)
	RemoveEducation(ctx context.Context, userID, id uuid.UUID) (Profile, error)
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

// Users is the part of the credential store profiles depend on.
type Users interface {
	GetByID(ctx context.Context, id uuid.UUID) (auth.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// PostRemover deletes every post written by a user.
type PostRemover interface {
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type service struct {
	repo  Repository
	users Users
	posts PostRemover
	now   func() time.Time
}

type Option func(*service)

// WithClock replaces time.Now for the creation date of new profiles.
func WithClock(now func() time.Time) Option {
	return func(s *service) { s.now = now }
}

func NewService(repo Repository, users Users, posts PostRemover, opts ...Option) UseCase {
	s := &service{repo: repo, users: users, posts: posts, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (View, error) {
	return s.view(ctx, userID, "There is no profile with that user.")
}

func (s *service) GetByUser(ctx context.Context, userID uuid.UUID) (View, error) {
	return s.view(ctx, userID, "Profile not found.")
}

func (s *service) view(ctx context.Context, userID uuid.UUID, notFound string) (View, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return View{}, apperr.NotFound(notFound)
		}
		return View{}, err
	}
	return s.populate(ctx, p)
}

func (s *service) List(ctx context.Context, limit, offset int) ([]View, error) {
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]View, 0, len(items))
	for _, p := range items {
		v, err := s.populate(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *service) Search(ctx context.Context, skill string, limit, offset int) ([]View, error) {
	items, err := s.repo.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	matched := make([]Profile, 0, len(items))
	for _, p := range items {
		if nlp.HasSkill(p.Skills, skill) {
			matched = append(matched, p)
		}
	}
	if offset >= len(matched) {
		matched = matched[:0]
	} else if offset > 0 {
		matched = matched[offset:]
	}
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	out := make([]View, 0, len(matched))
	for _, p := range matched {
		v, err := s.populate(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *service) populate(ctx context.Context, p Profile) (View, error) {
	v := View{Profile: p, User: Owner{ID: p.UserID}}
	u, err := s.users.GetByID(ctx, p.UserID)
	switch {
	case err == nil:
		v.User.Name = u.Name
		v.User.Avatar = u.Avatar
	case !errors.Is(err, auth.ErrNotFound):
		return View{}, err
	}
	return v, nil
}

func (s *service) Upsert(ctx context.Context, userID uuid.UUID, patch Patch) (Profile, error) {
	var v apperr.Validator
	v.Check(patch.Status != nil && strings.TrimSpace(*patch.Status) != "", "status", "Status is required")
	v.Check(len(NormalizeSkills(patch.Skills)) > 0, "skills", "At least one skill is required")
	if err := v.Err(); err != nil {
		return Profile{}, err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return Profile{}, apperr.NotFound("User not found")
		}
		return Profile{}, err
	}

	p, err := s.repo.GetByUser(ctx, userID)
	switch {
	case errors.Is(err, ErrNotFound):
		p = Profile{
			ID:         uuid.New(),
			UserID:     userID,
			Experience: []Experience{},
			Education:  []Education{},
			Date:       s.now().UTC(),
		}
	case err != nil:
		return Profile{}, err
	}
	p.Apply(patch)
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return s.repo.GetByUser(ctx, userID)
}

func (s *service) AddExperience(ctx context.Context, userID uuid.UUID, e Experience) (Profile, error) {
	var v apperr.Validator
	v.Require("title", e.Title, "Title is required")
	v.Require("company", e.Company, "Company is required")
	v.Check(!e.From.IsZero(), "from", "From date is required")
	if err := v.Err(); err != nil {
		return Profile{}, err
	}
	e.ID = uuid.New()
	return s.mutate(ctx, userID, func(p *Profile) bool {
		p.AddExperience(e)
		return true
	})
}

func (s *service) RemoveExperience(ctx context.Context, userID, id uuid.UUID) (Profile, error) {
	return s.mutate(ctx, userID, func(p *Profile) bool { return p.RemoveExperience(id) })
}

func (s *service) AddEducation(ctx context.Context, userID uuid.UUID, e Education) (Profile, error) {
	var v apperr.Validator
	v.Require("school", e.School, "School is required")
	v.Require("degree", e.Degree, "Degree is required")
	v.Require("fieldofstudy", e.FieldOfStudy, "Field of study is required")
	v.Check(!e.From.IsZero(), "from", "From date is required")
	if err := v.Err(); err != nil {
		return Profile{}, err
	}
	e.ID = uuid.New()
	return s.mutate(ctx, userID, func(p *Profile) bool {
		p.AddEducation(e)
		return true
	})
}

func (s *service) RemoveEducation(ctx context.Context, userID, id uuid.UUID) (Profile, error) {
	return s.mutate(ctx, userID, func(p *Profile) bool { return p.RemoveEducation(id) })
}

// mutate loads the user's profile, applies fn and saves only when fn changed it.
func (s *service) mutate(ctx context.Context, userID uuid.UUID, fn func(p *Profile) bool) (Profile, error) {
	p, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Profile{}, apperr.NotFound("There is no profile with that user.")
		}
		return Profile{}, err
	}
	if !fn(&p) {
		return p, nil
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return p, nil
}

// DeleteAccount removes the user's posts, profile and the user, in that order.
// Steps already done stay done when a later one fails.
func (s *service) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if err := s.posts.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	if err := s.repo.DeleteByUser(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, auth.ErrNotFound) {
			return apperr.NotFound("User not found")
		}
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}
