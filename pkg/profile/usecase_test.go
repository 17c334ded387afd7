package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
	"github.com/IllyaHavrulyk/DevConnector/pkg/post"
	"github.com/IllyaHavrulyk/DevConnector/pkg/profile"
	"github.com/IllyaHavrulyk/DevConnector/pkg/repository/memory"
)

type fixture struct {
	users    *memory.UserRepository
	profiles *memory.ProfileRepository
	posts    *memory.PostRepository
	svc      profile.UseCase
	postSvc  post.UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:    memory.NewUserRepository(),
		profiles: memory.NewProfileRepository(),
		posts:    memory.NewPostRepository(),
	}
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc = profile.NewService(f.profiles, f.users, f.posts, profile.WithClock(func() time.Time { return now }))
	f.postSvc = post.NewService(f.posts, f.users)
	return f
}

func (f *fixture) addUser(t *testing.T, name string) auth.User {
	t.Helper()
	u := auth.User{ID: uuid.New(), Name: name, Email: name + "@example.com", Avatar: "https://avatar/" + name}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func strp(s string) *string { return &s }

func TestUpsertCreatesThenUpdatesSparsely(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.addUser(t, "alice")

	created, err := f.svc.Upsert(ctx, u.ID, profile.Patch{
		Status:   strp("Developer"),
		Skills:   profile.SplitSkills("js, node , react"),
		Company:  strp("Acme"),
		Location: strp("Kyiv"),
		Social:   profile.SocialPatch{Twitter: strp("https://twitter.com/alice")},
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, created.UserID)
	assert.Equal(t, []string{"js", "node", "react"}, created.Skills)
	assert.Equal(t, "Acme", created.Company)
	assert.Empty(t, created.Experience)

	updated, err := f.svc.Upsert(ctx, u.ID, profile.Patch{
		Status: strp("Senior Developer"),
		Skills: []string{" go "},
		Social: profile.SocialPatch{YouTube: strp("https://youtube.com/alice")},
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Senior Developer", updated.Status)
	assert.Equal(t, []string{"go"}, updated.Skills)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "Kyiv", updated.Location)
	assert.Equal(t, "https://twitter.com/alice", updated.Social.Twitter)
	assert.Equal(t, "https://youtube.com/alice", updated.Social.YouTube)

	// the returned value is what is stored
	me, err := f.svc.Me(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, me.Profile)
	assert.Equal(t, profile.Owner{ID: u.ID, Name: "alice", Avatar: u.Avatar}, me.User)
}

func TestUpsertValidation(t *testing.T) {
	f := newFixture(t)
	u := f.addUser(t, "bob")

	_, err := f.svc.Upsert(context.Background(), u.ID, profile.Patch{Skills: []string{" ", ""}})
	require.Error(t, err)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "status", e.Fields[0].Param)
	assert.Equal(t, "skills", e.Fields[1].Param)

	_, err = f.svc.Me(context.Background(), u.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "nothing is stored on validation failure")
}

func TestUpsertUnknownUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Upsert(context.Background(), uuid.New(), profile.Patch{Status: strp("Dev"), Skills: []string{"go"}})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestExperienceLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.addUser(t, "carol")

	_, err := f.svc.AddExperience(ctx, u.ID, profile.Experience{Title: "Dev", Company: "Acme", From: time.Now()})
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err), "no profile yet")

	_, err = f.svc.Upsert(ctx, u.ID, profile.Patch{Status: strp("Dev"), Skills: []string{"go"}})
	require.NoError(t, err)

	_, err = f.svc.AddExperience(ctx, u.ID, profile.Experience{Title: "Dev"})
	e, ok := apperr.As(err)
	require.True(t, ok)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "company", e.Fields[0].Param)
	assert.Equal(t, "from", e.Fields[1].Param)

	from := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	p, err := f.svc.AddExperience(ctx, u.ID, profile.Experience{Title: "Junior", Company: "Acme", From: from})
	require.NoError(t, err)
	p, err = f.svc.AddExperience(ctx, u.ID, profile.Experience{Title: "Senior", Company: "Acme", From: from, Current: true})
	require.NoError(t, err)
	require.Len(t, p.Experience, 2)
	assert.Equal(t, "Senior", p.Experience[0].Title)
	assert.NotEqual(t, uuid.Nil, p.Experience[0].ID)
	assert.NotEqual(t, p.Experience[0].ID, p.Experience[1].ID)

	junior := p.Experience[1].ID
	first, err := f.svc.RemoveExperience(ctx, u.ID, junior)
	require.NoError(t, err)
	require.Len(t, first.Experience, 1)

	second, err := f.svc.RemoveExperience(ctx, u.ID, junior)
	require.NoError(t, err, "removing a missing entry is a no-op")
	assert.Equal(t, first, second)
}

func TestEducationLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.addUser(t, "dave")
	_, err := f.svc.Upsert(ctx, u.ID, profile.Patch{Status: strp("Student"), Skills: []string{"c"}})
	require.NoError(t, err)

	_, err = f.svc.AddEducation(ctx, u.ID, profile.Education{School: "KPI"})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Len(t, e.Fields, 3)

	p, err := f.svc.AddEducation(ctx, u.ID, profile.Education{
		School: "KPI", Degree: "BSc", FieldOfStudy: "CS", From: time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, p.Education, 1)

	p, err = f.svc.RemoveEducation(ctx, u.ID, p.Education[0].ID)
	require.NoError(t, err)
	assert.Empty(t, p.Education)
}

func TestListAndGetByUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := f.addUser(t, "erin")
	b := f.addUser(t, "frank")
	for _, u := range []auth.User{a, b} {
		_, err := f.svc.Upsert(ctx, u.ID, profile.Patch{Status: strp("Dev"), Skills: []string{"go"}})
		require.NoError(t, err)
	}

	all, err := f.svc.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	v, err := f.svc.GetByUser(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "frank", v.User.Name)

	_, err = f.svc.GetByUser(ctx, uuid.New())
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, "Profile not found.", e.Msg)
}

func TestDeleteAccountCascades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.addUser(t, "gina")
	other := f.addUser(t, "hank")

	_, err := f.svc.Upsert(ctx, u.ID, profile.Patch{Status: strp("Dev"), Skills: []string{"go"}})
	require.NoError(t, err)
	_, err = f.postSvc.Create(ctx, u.ID, "first")
	require.NoError(t, err)
	_, err = f.postSvc.Create(ctx, u.ID, "second")
	require.NoError(t, err)
	kept, err := f.postSvc.Create(ctx, other.ID, "not mine")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteAccount(ctx, u.ID))

	posts, err := f.postSvc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, kept.ID, posts[0].ID)
	for _, p := range posts {
		assert.NotEqual(t, u.ID, p.UserID)
	}

	_, err = f.svc.Me(ctx, u.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	_, err = f.users.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, auth.ErrNotFound)
}

func TestSearchBySkillAlias(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	gopher := f.addUser(t, "ivan")
	jsdev := f.addUser(t, "jane")
	both := f.addUser(t, "kim")
	for u, skills := range map[auth.User]string{gopher: "Golang, Docker", jsdev: "JS, React", both: "go, node.js"} {
		_, err := f.svc.Upsert(ctx, u.ID, profile.Patch{Status: strp("Dev"), Skills: profile.SplitSkills(skills)})
		require.NoError(t, err)
	}

	got, err := f.svc.Search(ctx, "go", 0, 0)
	require.NoError(t, err)
	var names []string
	for _, v := range got {
		names = append(names, v.User.Name)
	}
	assert.ElementsMatch(t, []string{"ivan", "kim"}, names)

	got, err = f.svc.Search(ctx, "javascript", 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "jane", got[0].User.Name)

	got, err = f.svc.Search(ctx, "golang", 1, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
