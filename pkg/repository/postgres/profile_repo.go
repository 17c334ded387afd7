package postgres

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"

	"github.com/IllyaHavrulyk/DevConnector/pkg/profile"
)

// ProfileRepository stores one profile per user. Nested lists live in JSONB
// columns so a profile is read and written as a single row.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) (*ProfileRepository, error) {
	r := &ProfileRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, errors.Wrap(err, "ensure profiles schema")
	}
	return r, nil
}

func (r *ProfileRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS profiles (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL UNIQUE,
	company TEXT NOT NULL DEFAULT '',
	website TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	bio TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	github_username TEXT NOT NULL DEFAULT '',
	skills JSONB NOT NULL DEFAULT '[]',
	social JSONB NOT NULL DEFAULT '{}',
	experience JSONB NOT NULL DEFAULT '[]',
	education JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_profiles_created_at ON profiles(created_at);
`)
	return err
}

const profileColumns = `id, user_id, company, website, location, bio, status, github_username,
	skills, social, experience, education, created_at`

func (r *ProfileRepository) Save(ctx context.Context, p profile.Profile) error {
	skills, err := json.Marshal(nonNil(p.Skills))
	if err != nil {
		return errors.Wrap(err, "marshal skills")
	}
	social, err := json.Marshal(p.Social)
	if err != nil {
		return errors.Wrap(err, "marshal social")
	}
	experience, err := json.Marshal(nonNil(p.Experience))
	if err != nil {
		return errors.Wrap(err, "marshal experience")
	}
	education, err := json.Marshal(nonNil(p.Education))
	if err != nil {
		return errors.Wrap(err, "marshal education")
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO profiles (`+profileColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (user_id) DO UPDATE SET
	company = EXCLUDED.company,
	website = EXCLUDED.website,
	location = EXCLUDED.location,
	bio = EXCLUDED.bio,
	status = EXCLUDED.status,
	github_username = EXCLUDED.github_username,
	skills = EXCLUDED.skills,
	social = EXCLUDED.social,
	experience = EXCLUDED.experience,
	education = EXCLUDED.education
`, p.ID, p.UserID, p.Company, p.Website, p.Location, p.Bio, p.Status, p.GitHubUsername,
		skills, social, experience, education, p.Date)
	return errors.Wrap(err, "upsert profile")
}

func (r *ProfileRepository) GetByUser(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+profileColumns+` FROM profiles WHERE user_id = $1`, userID)
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, profile.ErrNotFound
		}
		return profile.Profile{}, errors.Wrap(err, "select profile")
	}
	return p, nil
}

func (r *ProfileRepository) List(ctx context.Context, limit, offset int) ([]profile.Profile, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+profileColumns+` FROM profiles
ORDER BY created_at ASC, id ASC
LIMIT $1 OFFSET $2
`, sqlLimit(limit), max(offset, 0))
	if err != nil {
		return nil, errors.Wrap(err, "list profiles")
	}
	defer rows.Close()
	res := []profile.Profile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan profile")
		}
		res = append(res, p)
	}
	return res, rows.Err()
}

func (r *ProfileRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	return errors.Wrap(err, "delete profile")
}

func scanProfile(row pgx.Row) (profile.Profile, error) {
	var p profile.Profile
	var skills, social, experience, education []byte
	var created time.Time
	if err := row.Scan(&p.ID, &p.UserID, &p.Company, &p.Website, &p.Location, &p.Bio, &p.Status,
		&p.GitHubUsername, &skills, &social, &experience, &education, &created); err != nil {
		return profile.Profile{}, err
	}
	p.Date = created.UTC()
	if err := json.Unmarshal(skills, &p.Skills); err != nil {
		return profile.Profile{}, errors.Wrap(err, "decode skills")
	}
	if err := json.Unmarshal(social, &p.Social); err != nil {
		return profile.Profile{}, errors.Wrap(err, "decode social")
	}
	if err := json.Unmarshal(experience, &p.Experience); err != nil {
		return profile.Profile{}, errors.Wrap(err, "decode experience")
	}
	if err := json.Unmarshal(education, &p.Education); err != nil {
		return profile.Profile{}, errors.Wrap(err, "decode education")
	}
	p.Skills = nonNil(p.Skills)
	p.Experience = nonNil(p.Experience)
	p.Education = nonNil(p.Education)
	return p, nil
}

// sqlLimit maps a non-positive limit to NULL, which Postgres reads as LIMIT ALL.
func sqlLimit(limit int) *int {
	if limit <= 0 {
		return nil
	}
	return &limit
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
