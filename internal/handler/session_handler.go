package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-viewer/internal/dto"
	"github.com/noah-isme/course-viewer/internal/middleware"
	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
	"github.com/noah-isme/course-viewer/pkg/response"
)

type sessionService interface {
	Create(ctx context.Context, req dto.CreateSessionRequest) (*models.FilterState, error)
	Get(ctx context.Context, id string) (*models.FilterState, error)
	Update(ctx context.Context, id string, req dto.UpdateSessionRequest) (*models.FilterState, error)
	SubmitDays(ctx context.Context, id string, req dto.SubmitDaysRequest) (*models.FilterState, error)
}

type sessionQuerier interface {
	Query(ctx context.Context, state models.FilterState) (*models.View, bool, error)
}

// SessionHandler exposes stateful filter sessions.
type SessionHandler struct {
	sessions sessionService
	catalog  sessionQuerier
}

// NewSessionHandler builds a new handler.
func NewSessionHandler(sessions sessionService, catalog sessionQuerier) *SessionHandler {
	return &SessionHandler{sessions: sessions, catalog: catalog}
}

// Create godoc
// @Summary Open a filter session
// @Tags Sessions
// @Accept json
// @Produce json
// @Param payload body dto.CreateSessionRequest false "Initial state"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
			return
		}
	}
	state, err := h.sessions.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewSessionResponse(state))
}

// Get godoc
// @Summary Get a filter session
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	state, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewSessionResponse(state))
}

// Update godoc
// @Summary Change the query or visible columns
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.UpdateSessionRequest true "Changes"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id} [put]
func (h *SessionHandler) Update(c *gin.Context) {
	var req dto.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	state, err := h.sessions.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewSessionResponse(state))
}

// SubmitDays godoc
// @Summary Commit the day selection and match mode
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param payload body dto.SubmitDaysRequest true "Selected weekday glyphs and mode"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /sessions/{id}/days [put]
func (h *SessionHandler) SubmitDays(c *gin.Context) {
	var req dto.SubmitDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	state, err := h.sessions.SubmitDays(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto.NewSessionResponse(state))
}

// Courses godoc
// @Summary Filter the catalog with a session's state
// @Tags Sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /sessions/{id}/courses [get]
func (h *SessionHandler) Courses(c *gin.Context) {
	state, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	view, hit, err := h.catalog.Query(c.Request.Context(), *state)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	c.Header("X-Result-Count", strconv.Itoa(view.Count))
	response.JSON(c, http.StatusOK, view, withMeta(c, map[string]interface{}{
		"sessionId": state.ID,
	}))
}
