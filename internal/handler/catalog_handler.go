package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/dto"
	"github.com/noah-isme/course-viewer/internal/middleware"
	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/internal/service"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
	"github.com/noah-isme/course-viewer/pkg/response"
)

type catalogService interface {
	Query(ctx context.Context, state models.FilterState) (*models.View, bool, error)
	Columns(ctx context.Context) ([]string, error)
	Refresh(ctx context.Context) (*models.RefreshResult, error)
}

// CatalogHandler exposes the stateless catalog API.
type CatalogHandler struct {
	catalog   catalogService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCatalogHandler builds a new handler.
func NewCatalogHandler(catalog catalogService, validate *validator.Validate, logger *zap.Logger) *CatalogHandler {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{catalog: catalog, validator: validate, logger: logger}
}

// List godoc
// @Summary Filter the course catalog
// @Tags Courses
// @Produce json
// @Param q query string false "Regular expression matched against Title, Instructor and Id"
// @Param days query []string false "Weekday glyphs (一 二 三 四 五 六 日), repeated or comma separated"
// @Param mode query string false "Subset or AllMatched"
// @Param columns query []string false "Visible columns, repeated or comma separated"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) List(c *gin.Context) {
	state, ok := h.bindState(c)
	if !ok {
		return
	}
	view, hit, err := h.catalog.Query(c.Request.Context(), state)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	c.Header("X-Result-Count", strconv.Itoa(view.Count))
	response.JSON(c, http.StatusOK, view, withMeta(c, map[string]interface{}{
		"mode": state.Mode,
		"days": state.SelectedDays(),
	}))
}

// Columns godoc
// @Summary List displayable columns
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /columns [get]
func (h *CatalogHandler) Columns(c *gin.Context) {
	columns, err := h.catalog.Columns(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, columns)
}

// Days godoc
// @Summary List weekday glyphs in selection order
// @Tags Courses
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /days [get]
func (h *CatalogHandler) Days(c *gin.Context) {
	response.JSON(c, http.StatusOK, models.Weekdays[:])
}

// Refresh godoc
// @Summary Force a catalog reload
// @Tags Catalog
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /catalog/refresh [post]
func (h *CatalogHandler) Refresh(c *gin.Context) {
	result, err := h.catalog.Refresh(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	subject := ""
	if claims := claimsFromContext(c); claims != nil {
		subject = claims.Subject
	}
	h.logger.Info("catalog refresh requested", zap.String("subject", subject), zap.Int("rows", result.Rows))
	response.JSON(c, http.StatusOK, result)
}

func (h *CatalogHandler) bindState(c *gin.Context) (models.FilterState, bool) {
	var q dto.CourseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return models.FilterState{}, false
	}
	return validateQuery(c, h.validator, q)
}

func validateQuery(c *gin.Context, validate *validator.Validate, q dto.CourseQuery) (models.FilterState, bool) {
	if err := validate.Struct(q); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return models.FilterState{}, false
	}
	state, err := service.BuildFilterState(q)
	if err != nil {
		response.Error(c, err)
		return models.FilterState{}, false
	}
	return state, true
}
