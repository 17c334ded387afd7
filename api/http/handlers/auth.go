package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/IllyaHavrulyk/DevConnector/api/http/presenter"
	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
	"github.com/IllyaHavrulyk/DevConnector/pkg/auth"
)

type AuthHandler struct {
	useCase auth.AuthUseCase
	log     logrus.FieldLogger
}

func NewAuthHandler(useCase auth.AuthUseCase, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{useCase: useCase, log: log}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    users
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 200 {object} presenter.TokenResponse
// @Failure 400 {object} presenter.ValidationResponse
// @Router  /users [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Invalid(c, apperr.FieldError{Msg: "Invalid JSON payload"})
	}
	result, err := h.useCase.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, presenter.TokenResponse{Token: result.Token})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} presenter.TokenResponse
// @Failure 400 {object} presenter.ValidationResponse
// @Router  /auth [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Invalid(c, apperr.FieldError{Msg: "Invalid JSON payload"})
	}
	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, presenter.TokenResponse{Token: result.Token})
}

// Me returns the authenticated user.
// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} auth.User
// @Failure  401 {object} presenter.MessageResponse
// @Router   /auth [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	user, err := h.useCase.Me(c.Context(), uid)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, user)
}
