package jwt

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
)

func newApp(secret, issuer string) *fiber.App {
	app := fiber.New()
	app.Get("/private", NewAuthMiddleware(secret, issuer), func(c *fiber.Ctx) error {
		uid, ok := UserID(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.SendString(uid.String())
	})
	return app
}

func call(t *testing.T, app *fiber.App, header, value string) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func msg(t *testing.T, body string) string {
	t.Helper()
	var out struct {
		Msg string `json:"msg"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	return out.Msg
}

func TestMiddlewareAcceptsBothHeaders(t *testing.T) {
	gen := NewGenerator("secret", "devconnector", time.Hour)
	user := auth.User{ID: uuid.New()}
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)
	app := newApp("secret", "devconnector")

	status, body := call(t, app, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID.String(), body)

	status, body = call(t, app, "x-auth-token", token)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, user.ID.String(), body)
}

func TestMiddlewareRejects(t *testing.T) {
	app := newApp("secret", "devconnector")

	status, body := call(t, app, "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token, authorization denied", msg(t, body))

	status, body = call(t, app, "x-auth-token", "garbage")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Token is not valid", msg(t, body))

	other, err := NewGenerator("other-secret", "devconnector", time.Hour).Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)
	status, _ = call(t, app, "Authorization", "Bearer "+other)
	assert.Equal(t, http.StatusUnauthorized, status)

	wrongIssuer, err := NewGenerator("secret", "someone-else", time.Hour).Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)
	status, _ = call(t, app, "Authorization", "Bearer "+wrongIssuer)
	assert.Equal(t, http.StatusUnauthorized, status)

	expired, err := NewGenerator("secret", "devconnector", -time.Minute).Generate(context.Background(), auth.User{ID: uuid.New()})
	require.NoError(t, err)
	status, _ = call(t, app, "x-auth-token", expired)
	assert.Equal(t, http.StatusUnauthorized, status)
}
