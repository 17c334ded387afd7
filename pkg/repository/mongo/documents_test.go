package mongo

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/IllyaHavrulyk/DevConnector/pkg/post"
	"github.com/IllyaHavrulyk/DevConnector/pkg/profile"
)

// BSON keeps millisecond precision, so fixtures use whole seconds.
func TestProfileDocumentKeepsNestedIDs(t *testing.T) {
	to := time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)
	p := profile.Profile{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: "Developer",
		Skills: []string{"go", "sql"},
		Social: profile.Social{Twitter: "https://twitter.com/x"},
		Experience: []profile.Experience{{
			ID: uuid.New(), Title: "Dev", Company: "Acme",
			From: time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC), To: &to,
		}},
		Education: []profile.Education{},
		Date:      time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
	}

	raw, err := bson.Marshal(toProfileDoc(p))
	require.NoError(t, err)
	var d profileDoc
	require.NoError(t, bson.Unmarshal(raw, &d))

	if diff := cmp.Diff(p, d.entity()); diff != "" {
		t.Errorf("profile mismatch (-want +got):\n%s", diff)
	}
}

func TestPostDocumentKeepsLikesAndComments(t *testing.T) {
	author, fan := uuid.New(), uuid.New()
	p := post.Post{
		ID:     uuid.New(),
		UserID: author,
		Text:   "hello",
		Likes:  []post.Like{{UserID: fan}},
		Comments: []post.Comment{{
			ID: uuid.New(), UserID: fan, Text: "hi",
			Date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		}},
		Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}

	raw, err := bson.Marshal(toPostDoc(p))
	require.NoError(t, err)
	var d postDoc
	require.NoError(t, bson.Unmarshal(raw, &d))

	if diff := cmp.Diff(p, d.entity()); diff != "" {
		t.Errorf("post mismatch (-want +got):\n%s", diff)
	}
}
