package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("like post: %w", Conflict("Post already liked"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestValidatorCollectsFieldsInOrder(t *testing.T) {
	var v Validator
	v.Require("status", " ", "Status is required")
	v.Require("company", "acme", "Company is required")
	v.Check(false, "skills", "At least one skill is required")

	err := v.Err()
	require.Error(t, err)
	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, e.Kind)
	require.Len(t, e.Fields, 2)
	assert.Equal(t, "status", e.Fields[0].Param)
	assert.Equal(t, "skills", e.Fields[1].Param)
	assert.Equal(t, "body", e.Fields[1].Location)
	assert.Equal(t, "Status is required; At least one skill is required", err.Error())
}

func TestValidatorNoErrors(t *testing.T) {
	var v Validator
	v.Require("text", "hello", "Text is required")
	assert.NoError(t, v.Err())
}

func TestUpstreamUnwraps(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := Unavailable("Github is unreachable", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Github is unreachable: dial tcp: refused", err.Error())
}
