package presenter

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
)

// MessageResponse is the body of every non-validation error and of the
// plain confirmations ("Post removed").
type MessageResponse struct {
	Msg string `json:"msg"`
}

// ValidationResponse lists every failed field.
type ValidationResponse struct {
	Errors []apperr.FieldError `json:"errors"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	Token string `json:"token"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Message(c *fiber.Ctx, status int, msg string) error {
	return JSON(c, status, MessageResponse{Msg: msg})
}

func Invalid(c *fiber.Ctx, fields ...apperr.FieldError) error {
	return JSON(c, http.StatusBadRequest, ValidationResponse{Errors: fields})
}

// Status maps an error kind to its HTTP status.
func Status(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindNotFound, apperr.KindUpstream:
		return http.StatusNotFound
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindUnavailable:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error writes err in its public shape. Anything that is not an *apperr.Error
// is logged and answered with a generic 500.
func Error(c *fiber.Ctx, log logrus.FieldLogger, err error) error {
	e, ok := apperr.As(err)
	if !ok || e.Kind == apperr.KindInternal {
		log.WithFields(logrus.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		}).WithError(err).Error("request failed")
		return Message(c, http.StatusInternalServerError, "Server Error")
	}
	switch e.Kind {
	case apperr.KindValidation:
		return Invalid(c, e.Fields...)
	case apperr.KindUnavailable:
		log.WithField("path", c.Path()).WithError(e.Err).Warn("upstream unavailable")
	}
	return Message(c, Status(e.Kind), e.Msg)
}
