package profile

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("profile not found")

// Profile is the developer profile owned by exactly one user.
type Profile struct {
	ID             uuid.UUID    `json:"_id"`
	UserID         uuid.UUID    `json:"user"`
	Company        string       `json:"company,omitempty"`
	Website        string       `json:"website,omitempty"`
	Location       string       `json:"location,omitempty"`
	Bio            string       `json:"bio,omitempty"`
	Status         string       `json:"status"`
	GitHubUsername string       `json:"githubusername,omitempty"`
	Skills         []string     `json:"skills"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Date           time.Time    `json:"date"`
}

type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

type Experience struct {
	ID          uuid.UUID  `json:"_id"`
	Title       string     `json:"title"`
	Company     string     `json:"company"`
	Location    string     `json:"location,omitempty"`
	From        time.Time  `json:"from"`
	To          *time.Time `json:"to"`
	Current     bool       `json:"current"`
	Description string     `json:"description,omitempty"`
}

type Education struct {
	ID           uuid.UUID  `json:"_id"`
	School       string     `json:"school"`
	Degree       string     `json:"degree"`
	FieldOfStudy string     `json:"fieldofstudy"`
	From         time.Time  `json:"from"`
	To           *time.Time `json:"to"`
	Current      bool       `json:"current"`
	Description  string     `json:"description,omitempty"`
}

// Owner is the public part of the user a profile belongs to.
type Owner struct {
	ID     uuid.UUID `json:"_id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

// View is a profile with its owner populated for reads.
type View struct {
	Profile
	User Owner `json:"user"`
}

// Patch carries the fields of an upsert request. A nil pointer (or nil
// Skills) leaves the stored value as it is.
type Patch struct {
	Company        *string
	Website        *string
	Location       *string
	Bio            *string
	Status         *string
	GitHubUsername *string
	Skills         []string
	Social         SocialPatch
}

type SocialPatch struct {
	YouTube   *string
	Twitter   *string
	Facebook  *string
	LinkedIn  *string
	Instagram *string
}

// Apply merges the present fields of patch into p. Empty strings count as absent.
func (p *Profile) Apply(patch Patch) {
	set(&p.Company, patch.Company)
	set(&p.Website, patch.Website)
	set(&p.Location, patch.Location)
	set(&p.Bio, patch.Bio)
	set(&p.Status, patch.Status)
	set(&p.GitHubUsername, patch.GitHubUsername)
	if skills := NormalizeSkills(patch.Skills); len(skills) > 0 {
		p.Skills = skills
	}
	set(&p.Social.YouTube, patch.Social.YouTube)
	set(&p.Social.Twitter, patch.Social.Twitter)
	set(&p.Social.Facebook, patch.Social.Facebook)
	set(&p.Social.LinkedIn, patch.Social.LinkedIn)
	set(&p.Social.Instagram, patch.Social.Instagram)
}

func set(dst *string, v *string) {
	if v != nil && *v != "" {
		*dst = *v
	}
}

// SplitSkills turns "js, node , react" into its trimmed, non-empty parts.
func SplitSkills(s string) []string {
	return NormalizeSkills(strings.Split(s, ","))
}

// NormalizeSkills trims every skill and drops the empty ones, keeping order.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// AddExperience puts e at the head of the experience list.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience drops the entry with id and reports whether one existed.
func (p *Profile) RemoveExperience(id uuid.UUID) bool {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

func (p *Profile) RemoveEducation(id uuid.UUID) bool {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}

// Repository is the port for profile documents. Save creates or replaces the
// document keyed by UserID.
type Repository interface {
	GetByUser(ctx context.Context, userID uuid.UUID) (Profile, error)
	List(ctx context.Context, limit, offset int) ([]Profile, error)
	Save(ctx context.Context, p Profile) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
