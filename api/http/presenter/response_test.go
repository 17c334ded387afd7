package presenter

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
)

func respond(t *testing.T, log logrus.FieldLogger, err error) (int, map[string]any) {
	t.Helper()
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return Error(c, log, err) })
	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, reqErr)
	defer resp.Body.Close()
	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestErrorShapes(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"not found", apperr.NotFound("Post not found"), http.StatusNotFound, "Post not found"},
		{"unauthorized", apperr.Unauthorized("User not authorized"), http.StatusUnauthorized, "User not authorized"},
		{"conflict", apperr.Conflict("Post already liked"), http.StatusBadRequest, "Post already liked"},
		{"upstream", apperr.Upstream("No Github profile found", errors.New("404")), http.StatusNotFound, "No Github profile found"},
		{"unavailable", apperr.Unavailable("GitHub is unreachable", errors.New("dial")), http.StatusBadGateway, "GitHub is unreachable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respond(t, log, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, body["msg"])
		})
	}
}

func TestErrorValidationShape(t *testing.T) {
	status, body := respond(t, logrus.New(), apperr.Validation(apperr.Field("text", "Text is required")))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, []any{map[string]any{"msg": "Text is required", "param": "text", "location": "body"}}, body["errors"])
}

func TestErrorInternalIsLoggedNotLeaked(t *testing.T) {
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	status, body := respond(t, log, errors.New("pq: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Server Error", body["msg"])
	assert.Contains(t, buf.String(), "connection refused")
}
