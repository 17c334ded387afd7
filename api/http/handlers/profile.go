package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/IllyaHavrulyk/DevConnector/api/http/presenter"
	"github.com/IllyaHavrulyk/DevConnector/pkg/apperr"
	"github.com/IllyaHavrulyk/DevConnector/pkg/github"
	"github.com/IllyaHavrulyk/DevConnector/pkg/profile"
)

type ProfileHandler struct {
	uc    profile.UseCase
	repos github.Lookup
	log   logrus.FieldLogger
}

func NewProfileHandler(uc profile.UseCase, repos github.Lookup, log logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{uc: uc, repos: repos, log: log}
}

// skillsInput accepts both "go, sql" and ["go", "sql"].
type skillsInput []string

func (s *skillsInput) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = profile.SplitSkills(str)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*s = list
	return nil
}

type profileRequest struct {
	Company        *string     `json:"company"`
	Website        *string     `json:"website"`
	Location       *string     `json:"location"`
	Bio            *string     `json:"bio"`
	Status         *string     `json:"status"`
	GitHubUsername *string     `json:"githubusername"`
	Skills         skillsInput `json:"skills" swaggertype:"array,string"`
	YouTube        *string     `json:"youtube"`
	Twitter        *string     `json:"twitter"`
	Facebook       *string     `json:"facebook"`
	LinkedIn       *string     `json:"linkedin"`
	Instagram      *string     `json:"instagram"`
}

func (r profileRequest) patch() profile.Patch {
	return profile.Patch{
		Company:        r.Company,
		Website:        r.Website,
		Location:       r.Location,
		Bio:            r.Bio,
		Status:         r.Status,
		GitHubUsername: r.GitHubUsername,
		Skills:         r.Skills,
		Social: profile.SocialPatch{
			YouTube:   r.YouTube,
			Twitter:   r.Twitter,
			Facebook:  r.Facebook,
			LinkedIn:  r.LinkedIn,
			Instagram: r.Instagram,
		},
	}
}

// @Summary  Current user's profile
// @Tags     profile
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} profile.View
// @Failure  400 {object} presenter.MessageResponse
// @Router   /profile/me [get]
func (h *ProfileHandler) Me(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	v, err := h.uc.Me(c.Context(), uid)
	if err != nil {
		return h.missingAsBadRequest(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// @Summary  Create or update own profile
// @Tags     profile
// @Accept   json
// @Produce  json
// @Param    input body profileRequest true "profile fields; omitted fields keep their value"
// @Security BearerAuth
// @Success  200 {object} profile.Profile
// @Failure  400 {object} presenter.ValidationResponse
// @Router   /profile [post]
func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	var req profileRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Invalid(c, apperr.FieldError{Msg: "Invalid JSON payload"})
	}
	p, err := h.uc.Upsert(c.Context(), uid, req.patch())
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary List profiles
// @Tags    profile
// @Produce json
// @Param   skill  query string false "only profiles listing this skill (aliases match)"
// @Param   limit  query int false "page size, all when omitted"
// @Param   offset query int false "items to skip"
// @Success 200 {array} profile.View
// @Router  /profile [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	limit, offset := parseLimitOffset(c, 0)
	var views []profile.View
	var err error
	if skill := strings.TrimSpace(c.Query("skill")); skill != "" {
		views, err = h.uc.Search(c.Context(), skill, limit, offset)
	} else {
		views, err = h.uc.List(c.Context(), limit, offset)
	}
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, views)
}

// @Summary Profile by user id
// @Tags    profile
// @Produce json
// @Param   user_id path string true "user id"
// @Success 200 {object} profile.View
// @Failure 400 {object} presenter.MessageResponse
// @Router  /profile/user/{user_id} [get]
func (h *ProfileHandler) GetByUser(c *fiber.Ctx) error {
	uid, err := uuid.Parse(c.Params("user_id"))
	if err != nil {
		return presenter.Message(c, http.StatusBadRequest, "Profile not found.")
	}
	v, err := h.uc.GetByUser(c.Context(), uid)
	if err != nil {
		return h.missingAsBadRequest(c, err)
	}
	return presenter.JSON(c, http.StatusOK, v)
}

// @Summary  Delete own account, profile and posts
// @Tags     profile
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} presenter.MessageResponse
// @Router   /profile [delete]
func (h *ProfileHandler) DeleteAccount(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	if err := h.uc.DeleteAccount(c.Context(), uid); err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.Message(c, http.StatusOK, "User removed")
}

type experienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from" example:"2019-01-01"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// @Summary  Add experience
// @Tags     profile
// @Accept   json
// @Produce  json
// @Param    input body experienceRequest true "experience entry"
// @Security BearerAuth
// @Success  200 {object} profile.Profile
// @Failure  400 {object} presenter.ValidationResponse
// @Failure  404 {object} presenter.MessageResponse
// @Router   /profile/experience [put]
func (h *ProfileHandler) AddExperience(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	var req experienceRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Invalid(c, apperr.FieldError{Msg: "Invalid JSON payload"})
	}
	var v apperr.Validator
	from, to := parseRange(&v, req.From, req.To)
	if err := v.Err(); err != nil {
		return presenter.Error(c, h.log, err)
	}
	p, err := h.uc.AddExperience(c.Context(), uid, profile.Experience{
		Title:       strings.TrimSpace(req.Title),
		Company:     strings.TrimSpace(req.Company),
		Location:    req.Location,
		From:        from,
		To:          to,
		Current:     req.Current,
		Description: req.Description,
	})
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Remove experience
// @Tags     profile
// @Produce  json
// @Param    exp_id path string true "experience id"
// @Security BearerAuth
// @Success  200 {object} profile.Profile
// @Failure  404 {object} presenter.MessageResponse
// @Router   /profile/experience/{exp_id} [delete]
func (h *ProfileHandler) RemoveExperience(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	// an unparsable id matches nothing, which is a no-op
	id, _ := uuid.Parse(c.Params("exp_id"))
	p, err := h.uc.RemoveExperience(c.Context(), uid, id)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

type educationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from" example:"2015-09-01"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// @Summary  Add education
// @Tags     profile
// @Accept   json
// @Produce  json
// @Param    input body educationRequest true "education entry"
// @Security BearerAuth
// @Success  200 {object} profile.Profile
// @Failure  400 {object} presenter.ValidationResponse
// @Failure  404 {object} presenter.MessageResponse
// @Router   /profile/education [put]
func (h *ProfileHandler) AddEducation(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	var req educationRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Invalid(c, apperr.FieldError{Msg: "Invalid JSON payload"})
	}
	var v apperr.Validator
	from, to := parseRange(&v, req.From, req.To)
	if err := v.Err(); err != nil {
		return presenter.Error(c, h.log, err)
	}
	p, err := h.uc.AddEducation(c.Context(), uid, profile.Education{
		School:       strings.TrimSpace(req.School),
		Degree:       strings.TrimSpace(req.Degree),
		FieldOfStudy: strings.TrimSpace(req.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      req.Current,
		Description:  req.Description,
	})
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary  Remove education
// @Tags     profile
// @Produce  json
// @Param    edu_id path string true "education id"
// @Security BearerAuth
// @Success  200 {object} profile.Profile
// @Failure  404 {object} presenter.MessageResponse
// @Router   /profile/education/{edu_id} [delete]
func (h *ProfileHandler) RemoveEducation(c *fiber.Ctx) error {
	uid, err := currentUser(c)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	id, _ := uuid.Parse(c.Params("edu_id"))
	p, err := h.uc.RemoveEducation(c.Context(), uid, id)
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, p)
}

// @Summary First five GitHub repositories of a user
// @Tags    profile
// @Produce json
// @Param   username path string true "GitHub login"
// @Success 200 {array} github.Repo
// @Failure 404 {object} presenter.MessageResponse
// @Failure 502 {object} presenter.MessageResponse
// @Router  /profile/github/{username} [get]
func (h *ProfileHandler) GitHubRepos(c *fiber.Ctx) error {
	repos, err := h.repos.Repos(c.Context(), c.Params("username"))
	if err != nil {
		return presenter.Error(c, h.log, err)
	}
	return presenter.JSON(c, http.StatusOK, repos)
}

// missingAsBadRequest answers a missing profile with 400, as the profile
// read routes always have.
func (h *ProfileHandler) missingAsBadRequest(c *fiber.Ctx, err error) error {
	if e, ok := apperr.As(err); ok && e.Kind == apperr.KindNotFound {
		return presenter.Message(c, http.StatusBadRequest, e.Msg)
	}
	return presenter.Error(c, h.log, err)
}

// parseRange reads the from/to dates of an entry. Empty strings are left
// zero (from) or nil (to); unparsable dates are reported on v.
func parseRange(v *apperr.Validator, fromStr, toStr string) (time.Time, *time.Time) {
	var from time.Time
	if s := strings.TrimSpace(fromStr); s != "" {
		t, err := dateparse.ParseIn(s, time.UTC)
		v.Check(err == nil, "from", "From date is not a valid date")
		from = t.UTC()
	}
	var to *time.Time
	if s := strings.TrimSpace(toStr); s != "" {
		t, err := dateparse.ParseIn(s, time.UTC)
		v.Check(err == nil, "to", "To date is not a valid date")
		if err == nil {
			t = t.UTC()
			to = &t
		}
	}
	return from, to
}
