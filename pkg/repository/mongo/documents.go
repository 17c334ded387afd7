package mongo

import (
	"time"

	"github.com/google/uuid"

	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
	"github.com/IllyaHavrulyk/DevConnector/pkg/post"
	"github.com/IllyaHavrulyk/DevConnector/pkg/profile"
)

// Documents keep ids as their string form so they read the same in the shell.

type userDoc struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password"`
	Avatar       string    `bson:"avatar"`
	Date         time.Time `bson:"date"`
}

func toUserDoc(u auth.User) userDoc {
	return userDoc{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		Date:         u.CreatedAt,
	}
}

func (d userDoc) entity() auth.User {
	return auth.User{
		ID:           parseID(d.ID),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Avatar:       d.Avatar,
		CreatedAt:    d.Date.UTC(),
	}
}

type socialDoc struct {
	YouTube   string `bson:"youtube,omitempty"`
	Twitter   string `bson:"twitter,omitempty"`
	Facebook  string `bson:"facebook,omitempty"`
	LinkedIn  string `bson:"linkedin,omitempty"`
	Instagram string `bson:"instagram,omitempty"`
}

type experienceDoc struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Company     string     `bson:"company"`
	Location    string     `bson:"location,omitempty"`
	From        time.Time  `bson:"from"`
	To          *time.Time `bson:"to,omitempty"`
	Current     bool       `bson:"current"`
	Description string     `bson:"description,omitempty"`
}

type educationDoc struct {
	ID           string     `bson:"_id"`
	School       string     `bson:"school"`
	Degree       string     `bson:"degree"`
	FieldOfStudy string     `bson:"fieldofstudy"`
	From         time.Time  `bson:"from"`
	To           *time.Time `bson:"to,omitempty"`
	Current      bool       `bson:"current"`
	Description  string     `bson:"description,omitempty"`
}

type profileDoc struct {
	ID             string          `bson:"_id"`
	UserID         string          `bson:"user"`
	Company        string          `bson:"company,omitempty"`
	Website        string          `bson:"website,omitempty"`
	Location       string          `bson:"location,omitempty"`
	Bio            string          `bson:"bio,omitempty"`
	Status         string          `bson:"status"`
	GitHubUsername string          `bson:"githubusername,omitempty"`
	Skills         []string        `bson:"skills"`
	Social         socialDoc       `bson:"social"`
	Experience     []experienceDoc `bson:"experience"`
	Education      []educationDoc  `bson:"education"`
	Date           time.Time       `bson:"date"`
}

func toProfileDoc(p profile.Profile) profileDoc {
	d := profileDoc{
		ID:             p.ID.String(),
		UserID:         p.UserID.String(),
		Company:        p.Company,
		Website:        p.Website,
		Location:       p.Location,
		Bio:            p.Bio,
		Status:         p.Status,
		GitHubUsername: p.GitHubUsername,
		Skills:         append([]string{}, p.Skills...),
		Social:         socialDoc(p.Social),
		Experience:     make([]experienceDoc, 0, len(p.Experience)),
		Education:      make([]educationDoc, 0, len(p.Education)),
		Date:           p.Date,
	}
	for _, e := range p.Experience {
		d.Experience = append(d.Experience, experienceDoc{
			ID: e.ID.String(), Title: e.Title, Company: e.Company, Location: e.Location,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		})
	}
	for _, e := range p.Education {
		d.Education = append(d.Education, educationDoc{
			ID: e.ID.String(), School: e.School, Degree: e.Degree, FieldOfStudy: e.FieldOfStudy,
			From: e.From, To: e.To, Current: e.Current, Description: e.Description,
		})
	}
	return d
}

func (d profileDoc) entity() profile.Profile {
	p := profile.Profile{
		ID:             parseID(d.ID),
		UserID:         parseID(d.UserID),
		Company:        d.Company,
		Website:        d.Website,
		Location:       d.Location,
		Bio:            d.Bio,
		Status:         d.Status,
		GitHubUsername: d.GitHubUsername,
		Skills:         append([]string{}, d.Skills...),
		Social:         profile.Social(d.Social),
		Experience:     make([]profile.Experience, 0, len(d.Experience)),
		Education:      make([]profile.Education, 0, len(d.Education)),
		Date:           d.Date.UTC(),
	}
	for _, e := range d.Experience {
		p.Experience = append(p.Experience, profile.Experience{
			ID: parseID(e.ID), Title: e.Title, Company: e.Company, Location: e.Location,
			From: e.From.UTC(), To: utc(e.To), Current: e.Current, Description: e.Description,
		})
	}
	for _, e := range d.Education {
		p.Education = append(p.Education, profile.Education{
			ID: parseID(e.ID), School: e.School, Degree: e.Degree, FieldOfStudy: e.FieldOfStudy,
			From: e.From.UTC(), To: utc(e.To), Current: e.Current, Description: e.Description,
		})
	}
	return p
}

type likeDoc struct {
	UserID string `bson:"user"`
}

type commentDoc struct {
	ID     string    `bson:"_id"`
	UserID string    `bson:"user"`
	Text   string    `bson:"text"`
	Name   string    `bson:"name"`
	Avatar string    `bson:"avatar"`
	Date   time.Time `bson:"date"`
}

type postDoc struct {
	ID       string       `bson:"_id"`
	UserID   string       `bson:"user"`
	Text     string       `bson:"text"`
	Name     string       `bson:"name"`
	Avatar   string       `bson:"avatar"`
	Likes    []likeDoc    `bson:"likes"`
	Comments []commentDoc `bson:"comments"`
	Date     time.Time    `bson:"date"`
}

func toPostDoc(p post.Post) postDoc {
	d := postDoc{
		ID:       p.ID.String(),
		UserID:   p.UserID.String(),
		Text:     p.Text,
		Name:     p.Name,
		Avatar:   p.Avatar,
		Likes:    make([]likeDoc, 0, len(p.Likes)),
		Comments: make([]commentDoc, 0, len(p.Comments)),
		Date:     p.Date,
	}
	for _, l := range p.Likes {
		d.Likes = append(d.Likes, likeDoc{UserID: l.UserID.String()})
	}
	for _, c := range p.Comments {
		d.Comments = append(d.Comments, commentDoc{
			ID: c.ID.String(), UserID: c.UserID.String(), Text: c.Text,
			Name: c.Name, Avatar: c.Avatar, Date: c.Date,
		})
	}
	return d
}

func (d postDoc) entity() post.Post {
	p := post.Post{
		ID:       parseID(d.ID),
		UserID:   parseID(d.UserID),
		Text:     d.Text,
		Name:     d.Name,
		Avatar:   d.Avatar,
		Likes:    make([]post.Like, 0, len(d.Likes)),
		Comments: make([]post.Comment, 0, len(d.Comments)),
		Date:     d.Date.UTC(),
	}
	for _, l := range d.Likes {
		p.Likes = append(p.Likes, post.Like{UserID: parseID(l.UserID)})
	}
	for _, c := range d.Comments {
		p.Comments = append(p.Comments, post.Comment{
			ID: parseID(c.ID), UserID: parseID(c.UserID), Text: c.Text,
			Name: c.Name, Avatar: c.Avatar, Date: c.Date.UTC(),
		})
	}
	return p
}

// parseID maps a malformed stored id to uuid.Nil.
func parseID(s string) uuid.UUID {
	id, _ := uuid.Parse(s)
	return id
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
