package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
	"github.com/IllyaHavrulyk/DevConnector/pkg/repository/memory"
	"github.com/IllyaHavrulyk/DevConnector/pkg/security/jwt"
)

func newService() auth.AuthUseCase {
	return auth.NewAuthService(memory.NewUserRepository(), jwt.NewGenerator("test-secret", "devconnector", time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	res, err := svc.Register(ctx, "Ada", "Ada@Example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ada@example.com", res.User.Email)
	assert.Equal(t, auth.GravatarURL("ada@example.com"), res.User.Avatar)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	login, err := svc.Login(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, login.User.ID)

	me, err := svc.Me(ctx, res.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", me.Name)
}

func TestRegisterValidation(t *testing.T) {
	_, err := newService().Register(context.Background(), "", "not-an-email", "123")
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	var params []string
	for _, f := range e.Fields {
		params = append(params, f.Param)
	}
	assert.Equal(t, []string{"name", "email", "password"}, params)
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "ADA@example.com", "secret2")
	e, ok := apperr.As(err)
	require.True(t, ok)
	require.Len(t, e.Fields, 1)
	assert.Equal(t, "User already exists", e.Fields[0].Msg)
}

func TestLoginInvalidCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newService()
	_, err := svc.Register(ctx, "Ada", "ada@example.com", "secret1")
	require.NoError(t, err)

	for _, pw := range []string{"wrong-pass", strings.Repeat("x", 6)} {
		_, err = svc.Login(ctx, "ada@example.com", pw)
		e, ok := apperr.As(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid Credentials", e.Fields[0].Msg)
	}
	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestGravatarURL(t *testing.T) {
	// md5("myemailaddress@example.com") from the Gravatar docs
	assert.Equal(t,
		"https://www.gravatar.com/avatar/0bc83cb571cd1c50ba6f3e8a78ef1346?d=mm&r=pg&s=200",
		auth.GravatarURL(" MyEmailAddress@example.com "),
	)
}
