package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	name string
	err  error
}

func (s stubChecker) Name() string                { return s.name }
func (s stubChecker) Check(context.Context) error { return s.err }

func TestReadyReportsEveryChecker(t *testing.T) {
	down := errors.New("connection refused")
	svc := NewService(stubChecker{name: "postgres"}, stubChecker{name: "mongo", err: down})

	report, err := svc.Ready(context.Background())
	require.ErrorIs(t, err, down)
	assert.Contains(t, err.Error(), "mongo")
	assert.Equal(t, Report{"postgres": "ok", "mongo": "connection refused"}, report)
}

func TestReadyWithoutCheckers(t *testing.T) {
	report, err := NewService().Ready(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report)
}
