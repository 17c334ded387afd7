package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/IllyaHavrulyk/DevConnector/pkg/post"
)

// PostRepository keeps posts with their likes and comments embedded as JSONB.
type PostRepository struct {
	pool *pgxpool.Pool
}

func NewPostRepository(pool *pgxpool.Pool) (*PostRepository, error) {
	r := &PostRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, errors.Wrap(err, "ensure posts schema")
	}
	return r, nil
}

func (r *PostRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS posts (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	text TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	avatar TEXT NOT NULL DEFAULT '',
	likes JSONB NOT NULL DEFAULT '[]',
	comments JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_posts_created_at ON posts(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_posts_user_id ON posts(user_id);
`)
	return err
}

const postColumns = `id, user_id, text, name, avatar, likes, comments, created_at`

func (r *PostRepository) Create(ctx context.Context, p post.Post) error {
	likes, comments, err := encodePostLists(p)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO posts (`+postColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`, p.ID, p.UserID, p.Text, p.Name, p.Avatar, likes, comments, p.Date)
	return errors.Wrap(err, "insert post")
}

func (r *PostRepository) GetByID(ctx context.Context, id uuid.UUID) (post.Post, error) {
	p, err := scanPost(r.pool.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, errors.Wrap(err, "select post")
	}
	return p, nil
}

func (r *PostRepository) List(ctx context.Context, limit, offset int) ([]post.Post, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+postColumns+` FROM posts
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2
`, sqlLimit(limit), max(offset, 0))
	if err != nil {
		return nil, errors.Wrap(err, "list posts")
	}
	defer rows.Close()
	res := []post.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan post")
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

// Update replaces the mutable parts of a post: its likes and comments.
func (r *PostRepository) Update(ctx context.Context, p post.Post) error {
	likes, comments, err := encodePostLists(p)
	if err != nil {
		return err
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE posts SET text = $2, likes = $3, comments = $4 WHERE id = $1
`, p.ID, p.Text, likes, comments)
	if err != nil {
		return errors.Wrap(err, "update post")
	}
	if tag.RowsAffected() == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "delete post")
	}
	if tag.RowsAffected() == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM posts WHERE user_id = $1`, userID)
	return errors.Wrap(err, "delete user posts")
}

func encodePostLists(p post.Post) (likes, comments []byte, err error) {
	if likes, err = json.Marshal(nonNil(p.Likes)); err != nil {
		return nil, nil, errors.Wrap(err, "marshal likes")
	}
	if comments, err = json.Marshal(nonNil(p.Comments)); err != nil {
		return nil, nil, errors.Wrap(err, "marshal comments")
	}
	return likes, comments, nil
}

func scanPost(row pgx.Row) (post.Post, error) {
	var p post.Post
	var likes, comments []byte
	var created time.Time
	if err := row.Scan(&p.ID, &p.UserID, &p.Text, &p.Name, &p.Avatar, &likes, &comments, &created); err != nil {
		return post.Post{}, err
	}
	p.Date = created.UTC()
	if err := json.Unmarshal(likes, &p.Likes); err != nil {
		return post.Post{}, errors.Wrap(err, "decode likes")
	}
	if err := json.Unmarshal(comments, &p.Comments); err != nil {
		return post.Post{}, errors.Wrap(err, "decode comments")
	}
	p.Likes = nonNil(p.Likes)
	p.Comments = nonNil(p.Comments)
	return p, nil
}
