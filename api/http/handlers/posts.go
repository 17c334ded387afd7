package handlers

import (
	"context"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/IllyaHavrulyk/DevConnector/api/http/presenter"
	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
	"github.com/IllyaHavrulyk/DevConnector/pkg/post"
)

type PostHandler struct {
	uc  post.UseCase
	log logrus.FieldLogger
}

func NewPostHandler(uc post.UseCase, log logrus.FieldLogger) *PostHandler {
	return &PostHandler{uc: uc, log: log}
}

type textRequest struct {
	Text string `json:"text"`
}

// @Summary  Create post
// @Tags     posts
// @Accept   json
// @Produce  json
// @Param    input body textRequest true "post text"
// @Security BearerAuth
// @Success  200 {object} post.Post
// @Failure  400 {object} presenter.ValidationResponse
// @Router   /posts [post]
func (h *PostHandler) Create(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Invalid(c, apperr.FieldError{Msg: "Invalid JSON payload"})
	}
	p, err := h.uc.Create(c.Context(), uid, req.Text)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  List posts, newest first
// @Tags     posts
// @Produce  json
// @Param    limit  query int false "page size, all when omitted"
// @Param    offset query int false "items to skip"
// @Security BearerAuth
// @Success  200 {array} post.Post
// @Router   /posts [get]
func (h *PostHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 0)
	posts, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, posts)
}

// @Summary  Get post
// @Tags     posts
// @Produce  json
// @Param    id path string true "post id"
// @Security BearerAuth
// @Success  200 {object} post.Post
// @Failure  404 {object} presenter.MessageResponse
// @Router   /posts/{id} [get]
func (h *PostHandler) Get(c *fiber.Ctx) error {
	id, err := postID(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	p, err := h.uc.Get(c.Context(), id)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Delete own post
// @Tags     posts
// @Produce  json
// @Param    id path string true "post id"
// @Security BearerAuth
// @Success  200 {object} presenter.MessageResponse
// @Failure  401 {object} presenter.MessageResponse
// @Failure  404 {object} presenter.MessageResponse
// @Router   /posts/{id} [delete]
func (h *PostHandler) Delete(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	id, err := postID(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	if err := h.uc.Delete(c.Context(), id, uid); err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.Message(c, http.StatusOK, "Post removed")
}

// @Summary  Like post
// @Tags     posts
// @Produce  json
// @Param    id path string true "post id"
// @Security BearerAuth
// @Success  200 {array} post.Like
// @Failure  400 {object} presenter.MessageResponse
// @Router   /posts/like/{id} [put]
func (h *PostHandler) Like(c *fiber.Ctx) error {
	return h.likes(c, h.uc.Like)
}

// @Summary  Remove own like
// @Tags     posts
// @Produce  json
// @Param    id path string true "post id"
// @Security BearerAuth
// @Success  200 {array} post.Like
// @Failure  400 {object} presenter.MessageResponse
// @Router   /posts/unlike/{id} [put]
func (h *PostHandler) Unlike(c *fiber.Ctx) error {
	return h.likes(c, h.uc.Unlike)
}

func (h *PostHandler) likes(c *fiber.Ctx, op func(ctx context.Context, id, userID uuid.UUID) ([]post.Like, error)) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	id, err := postID(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	likes, err := op(c.Context(), id, uid)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, likes)
}

// @Summary  Comment on post
// @Tags     posts
// @Accept   json
// @Produce  json
// @Param    id    path string      true "post id"
// @Param    input body textRequest true "comment text"
// @Security BearerAuth
// @Success  200 {array} post.Comment
// @Failure  400 {object} presenter.ValidationResponse
// @Router   /posts/comment/{id} [put]
func (h *PostHandler) AddComment(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	id, err := postID(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	var req textRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Invalid(c, apperr.FieldError{Msg: "Invalid JSON payload"})
	}
	comments, err := h.uc.AddComment(c.Context(), id, uid, req.Text)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, comments)
}

// @Summary  Delete own comment
// @Tags     posts
// @Produce  json
// @Param    id         path string true "post id"
// @Param    comment_id path string true "comment id"
// @Security BearerAuth
// @Success  200 {array} post.Comment
// @Failure  401 {object} presenter.MessageResponse
// @Failure  404 {object} presenter.MessageResponse
// @Router   /posts/comment/{id}/{comment_id} [delete]
func (h *PostHandler) RemoveComment(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	id, err := postID(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	commentID, err := uuid.Parse(c.Params("comment_id"))
	if err != nil {
		return presenter.Message(c, http.StatusNotFound, "Comment does not exist")
	}
	comments, err := h.uc.RemoveComment(c.Context(), id, commentID, uid)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, comments)
}

// postID parses :id; a malformed id cannot name a post.
func postID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperr.NotFound("Post not found")
	}
	return id, nil
}
