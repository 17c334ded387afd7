package post

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
)

func TestLikeUniqueness(t *testing.T) {
	u := uuid.New()
	var p Post
	require.NoError(t, p.Like(u))
	err := p.Like(u)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Len(t, p.Likes, 1)

	require.NoError(t, p.Unlike(u))
	assert.Empty(t, p.Likes)
	assert.False(t, p.LikedBy(u))
}

func TestRemoveCommentChecks(t *testing.T) {
	owner, other := uuid.New(), uuid.New()
	c1 := Comment{ID: uuid.New(), UserID: owner, Text: "c1"}
	c2 := Comment{ID: uuid.New(), UserID: other, Text: "c2"}
	var p Post
	p.AddComment(c1)
	p.AddComment(c2)
	assert.Equal(t, []Comment{c2, c1}, p.Comments)

	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(p.RemoveComment(c1.ID, other)))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(p.RemoveComment(uuid.New(), owner)))
	require.NoError(t, p.RemoveComment(c1.ID, owner))
	assert.Equal(t, []Comment{c2}, p.Comments)
}
