package post_test

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
	"github.com/IllyaHavrulyk/DevConnector/pkg/repository/memory"
)

// tick returns a clock that advances one minute per call.
func tick() func() time.Time {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func setup(t *testing.T) (post.UseCase, *memory.UserRepository, auth.User, auth.User) {
	t.Helper()
	users := memory.NewUserRepository()
	u1 := auth.User{ID: uuid.New(), Name: "u1", Email: "u1@example.com", Avatar: "a1"}
	u2 := auth.User{ID: uuid.New(), Name: "u2", Email: "u2@example.com", Avatar: "a2"}
	require.NoError(t, users.Create(context.Background(), u1))
	require.NoError(t, users.Create(context.Background(), u2))
	return post.NewService(memory.NewPostRepository(), users, post.WithClock(tick())), users, u1, u2
}

func TestCreateLikeScenario(t *testing.T) {
	ctx := context.Background()
	svc, _, u1, u2 := setup(t)

	p, err := svc.Create(ctx, u1.ID, "hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", p.Text)
	assert.Equal(t, "u1", p.Name)
	assert.Equal(t, "a1", p.Avatar)
	assert.Empty(t, p.Likes)
	assert.Empty(t, p.Comments)

	likes, err := svc.Like(ctx, p.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []post.Like{{UserID: u2.ID}}, likes)

	_, err = svc.Like(ctx, p.ID, u2.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	likes, err = svc.Like(ctx, p.ID, u1.ID)
	require.NoError(t, err)
	assert.Equal(t, []post.Like{{UserID: u1.ID}, {UserID: u2.ID}}, likes)

	likes, err = svc.Unlike(ctx, p.ID, u2.ID)
	require.NoError(t, err)
	assert.Equal(t, []post.Like{{UserID: u1.ID}}, likes)

	_, err = svc.Unlike(ctx, p.ID, u2.ID)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCreateRequiresText(t *testing.T) {
	svc, _, u1, _ := setup(t)
	_, err := svc.Create(context.Background(), u1.ID, "   ")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.Create(context.Background(), uuid.New(), "orphan")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, _, u1, u2 := setup(t)
	older, err := svc.Create(ctx, u1.ID, "older")
	require.NoError(t, err)
	newer, err := svc.Create(ctx, u2.ID, "newer")
	require.NoError(t, err)

	posts, err := svc.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)

	posts, err = svc.List(ctx, 1, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, older.ID, posts[0].ID)
}

func TestGetMissing(t *testing.T) {
	svc, _, _, _ := setup(t)
	_, err := svc.Get(context.Background(), uuid.New())
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestDeleteOnlyByOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, u1, u2 := setup(t)
	p, err := svc.Create(ctx, u1.ID, "mine")
	require.NoError(t, err)

	err = svc.Delete(ctx, p.ID, u2.ID)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	_, err = svc.Get(ctx, p.ID)
	require.NoError(t, err, "post remains after a rejected delete")

	require.NoError(t, svc.Delete(ctx, p.ID, u1.ID))
	err = svc.Delete(ctx, p.ID, u1.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCommentsOrderingAndRemoval(t *testing.T) {
	ctx := context.Background()
	svc, users, u1, u2 := setup(t)
	p, err := svc.Create(ctx, u1.ID, "post")
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, p.ID, u1.ID, "")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	comments, err := svc.AddComment(ctx, p.ID, u1.ID, "c1")
	require.NoError(t, err)
	c1 := comments[0]
	comments, err = svc.AddComment(ctx, p.ID, u2.ID, "c2")
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "c2", comments[0].Text)
	assert.Equal(t, "c1", comments[1].Text)
	assert.Equal(t, "u2", comments[0].Name)

	// snapshot: later user edits do not touch stored comments
	renamed := u2
	renamed.Name = "renamed"
	require.NoError(t, users.Delete(ctx, u2.ID))
	require.NoError(t, users.Create(ctx, renamed))
	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "u2", got.Comments[0].Name)

	_, err = svc.RemoveComment(ctx, p.ID, uuid.New(), u1.ID)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.RemoveComment(ctx, p.ID, c1.ID, u2.ID)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	comments, err = svc.RemoveComment(ctx, p.ID, c1.ID, u1.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "c2", comments[0].Text)
}
