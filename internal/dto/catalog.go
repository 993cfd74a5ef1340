package dto

import (
	"time"

	"github.com/noah-isme/course-viewer/internal/models"
)

// CourseQuery captures the filter query string. Days and Columns accept
// either repeated parameters or comma separated values.
type CourseQuery struct {
	Query   string   `form:"q" validate:"max=256"`
	Days    []string `form:"days" validate:"max=7"`
	Mode    string   `form:"mode" validate:"max=32"`
	Columns []string `form:"columns" validate:"max=64,dive,max=128"`
}

// ExportQuery extends CourseQuery with the download format.
type ExportQuery struct {
	CourseQuery
	Format string `form:"format" validate:"omitempty,oneof=csv xlsx pdf"`
}

// CreateSessionRequest opens a filter session, optionally pre-populated.
type CreateSessionRequest struct {
	Query   string   `json:"query" validate:"max=256"`
	Mode    string   `json:"mode" validate:"max=32"`
	Columns []string `json:"columns" validate:"max=64,dive,max=128"`
	Days    []string `json:"days" validate:"max=7"`
}

// UpdateSessionRequest changes the query or columns. Nil fields are left unchanged.
type UpdateSessionRequest struct {
	Query   *string  `json:"query" validate:"omitempty,max=256"`
	Columns []string `json:"columns" validate:"omitempty,max=64,dive,max=128"`
}

// SubmitDaysRequest commits a day selection together with its match mode.
// An empty mode keeps the session's current one.
type SubmitDaysRequest struct {
	Days []string `json:"days" validate:"max=7"`
	Mode string   `json:"mode" validate:"max=32"`
}

// SessionResponse is the public shape of a filter session.
type SessionResponse struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Mode      string    `json:"mode"`
	Columns   []string  `json:"columns"`
	Days      []string  `json:"days"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewSessionResponse converts a filter state.
func NewSessionResponse(state *models.FilterState) SessionResponse {
	columns := state.Columns
	if columns == nil {
		columns = []string{}
	}
	return SessionResponse{
		ID:        state.ID,
		Query:     state.Query,
		Mode:      string(state.Mode),
		Columns:   columns,
		Days:      state.SelectedDays(),
		CreatedAt: state.CreatedAt,
		UpdatedAt: state.UpdatedAt,
	}
}

// CatalogMeta describes the catalog behind a response.
type CatalogMeta struct {
	Source   string    `json:"source"`
	Total    int       `json:"total"`
	LoadedAt time.Time `json:"loadedAt"`
}
