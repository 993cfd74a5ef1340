package handler

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/dto"
	"github.com/noah-isme/course-viewer/internal/models"
	"github.com/noah-isme/course-viewer/internal/service"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var pageTemplates = template.Must(template.New("page").ParseFS(templatesFS, "templates/*.tmpl"))

type pageCatalog interface {
	Columns(ctx context.Context) ([]string, error)
	Render(ctx context.Context, state models.FilterState, r service.Renderer) (*models.View, error)
}

type dayOption struct {
	Glyph   string
	Checked bool
}

type columnOption struct {
	Name     string
	Selected bool
}

type pageLink struct {
	Title string
	URL   string
}

type pageData struct {
	Title      string
	Query      string
	AllMatched bool
	Days       []dayOption
	Columns    []columnOption
	Count      int
	Total      int
	Table      template.HTML
	Error      string
	Links      []pageLink
}

var defaultLinks = []pageLink{
	{Title: "PTT NTUcourse board", URL: "https://www.ptt.cc/bbs/NTUcourse/index.html"},
	{Title: "Catalog crawler", URL: "https://github.com/hungchun0201/NTUclassCrawler"},
	{Title: "NTU course site", URL: "https://nol.ntu.edu.tw/nol/guest/index.php"},
}

// htmlTableRenderer renders a view as the page's result table fragment.
type htmlTableRenderer struct {
	out template.HTML
}

func (r *htmlTableRenderer) Render(view *models.View) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "table", view); err != nil {
		return err
	}
	r.out = template.HTML(buf.String())
	return nil
}

// PageHandler serves the single-page HTML viewer.
type PageHandler struct {
	catalog   pageCatalog
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPageHandler builds a new handler.
func NewPageHandler(catalog pageCatalog, validate *validator.Validate, logger *zap.Logger) *PageHandler {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PageHandler{catalog: catalog, validator: validate, logger: logger}
}

// Index renders the search form and the filtered table. The day checkboxes
// and mode only take effect when the form is submitted.
func (h *PageHandler) Index(c *gin.Context) {
	data := pageData{Title: "Course Viewer", Links: defaultLinks}

	var q dto.CourseQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.fail(c, &data, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	data.Query = q.Query

	if err := h.validator.Struct(q); err != nil {
		h.fail(c, &data, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid query parameters"))
		return
	}
	state, err := service.BuildFilterState(q)
	if err != nil {
		h.fail(c, &data, err)
		return
	}
	data.AllMatched = state.Mode == models.DayModeAllMatched
	data.Days = dayOptions(state.Days)

	columns, err := h.catalog.Columns(c.Request.Context())
	if err != nil {
		h.fail(c, &data, err)
		return
	}
	data.Columns = columnOptions(columns, state.Columns)

	renderer := &htmlTableRenderer{}
	view, err := h.catalog.Render(c.Request.Context(), state, renderer)
	if err != nil {
		h.fail(c, &data, err)
		return
	}
	data.Table = renderer.out
	data.Count = view.Count
	data.Total = view.Total

	h.write(c, http.StatusOK, &data)
}

func (h *PageHandler) fail(c *gin.Context, data *pageData, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	data.Error = appErr.Message
	if data.Days == nil {
		data.Days = dayOptions(models.DaySelection{})
	}
	h.write(c, appErr.Status, data)
}

func (h *PageHandler) write(c *gin.Context, status int, data *pageData) {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, "index", data); err != nil {
		h.logger.Error("render page failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func dayOptions(sel models.DaySelection) []dayOption {
	out := make([]dayOption, len(models.Weekdays))
	for i, d := range models.Weekdays {
		out[i] = dayOption{Glyph: d, Checked: sel[i]}
	}
	return out
}

func columnOptions(all, selected []string) []columnOption {
	chosen := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		chosen[s] = struct{}{}
	}
	out := make([]columnOption, len(all))
	for i, name := range all {
		_, ok := chosen[name]
		out[i] = columnOption{Name: name, Selected: len(selected) == 0 || ok}
	}
	return out
}
