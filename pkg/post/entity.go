package post

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
)

var ErrNotFound = errors.New("post not found")

type Post struct {
	ID       uuid.UUID `json:"_id"`
	UserID   uuid.UUID `json:"user"`
	Text     string    `json:"text"`
	Name     string    `json:"name"`
	Avatar   string    `json:"avatar"`
	Likes    []Like    `json:"likes"`
	Comments []Comment `json:"comments"`
	Date     time.Time `json:"date"`
}

type Like struct {
	UserID uuid.UUID `json:"user"`
}

type Comment struct {
	ID     uuid.UUID `json:"_id"`
	UserID uuid.UUID `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

// Like prepends userID to the likes; a user may like a post only once.
func (p *Post) Like(userID uuid.UUID) error {
	if p.LikedBy(userID) {
		return apperr.Conflict("Post already liked")
	}
	p.Likes = append([]Like{{UserID: userID}}, p.Likes...)
	return nil
}

// Unlike removes the like left by userID.
func (p *Post) Unlike(userID uuid.UUID) error {
	for i, l := range p.Likes {
		if l.UserID == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return apperr.Conflict("Post has not yet been liked")
}

func (p *Post) AddComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// RemoveComment deletes commentID if requesterID wrote it.
func (p *Post) RemoveComment(commentID, requesterID uuid.UUID) error {
	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.UserID != requesterID {
			return apperr.Unauthorized("User not authorized")
		}
		p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
		return nil
	}
	return apperr.NotFound("Comment does not exist")
}

// Repository is the port for post documents. List returns posts newest first;
// a non-positive limit means no limit.
type Repository interface {
	Create(ctx context.Context, p Post) error
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	List(ctx context.Context, limit, offset int) ([]Post, error)
	Update(ctx context.Context, p Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
