package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"

	"github.com/noah-isme/course-viewer/internal/dto"
	"github.com/noah-isme/course-viewer/internal/models"
	appErrors "github.com/noah-isme/course-viewer/pkg/errors"
)

// SessionService keeps one FilterState per visitor. Sessions expire after
// the configured TTL and the least recently used are evicted first.
type SessionService struct {
	mu        sync.Mutex
	store     *expirable.LRU[string, models.FilterState]
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewSessionService constructs a session store.
func NewSessionService(ttl time.Duration, maxEntries int, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		store:     expirable.NewLRU[string, models.FilterState](maxEntries, nil, ttl),
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Create opens a session. Days given here are committed immediately.
func (s *SessionService) Create(ctx context.Context, req dto.CreateSessionRequest) (*models.FilterState, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	state, err := BuildFilterState(dto.CourseQuery{Query: req.Query, Mode: req.Mode, Columns: req.Columns, Days: req.Days})
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	state.ID = uuid.NewString()
	state.CreatedAt = now
	state.UpdatedAt = now

	s.mu.Lock()
	s.store.Add(state.ID, state)
	s.mu.Unlock()

	s.logger.Debug("filter session created", zap.String("session_id", state.ID))
	return &state, nil
}

// Get returns a live session.
func (s *SessionService) Get(ctx context.Context, id string) (*models.FilterState, error) {
	state, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return &state, nil
}

// Update changes the query or columns. The committed day selection and
// mode are left alone.
func (s *SessionService) Update(ctx context.Context, id string, req dto.UpdateSessionRequest) (*models.FilterState, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	return s.mutate(id, func(state *models.FilterState) {
		if req.Query != nil {
			state.Query = *req.Query
		}
		if req.Columns != nil {
			state.Columns = SplitList(req.Columns)
		}
	})
}

// SubmitDays commits a new day selection, replacing the previous one, and
// the mode when one is given.
func (s *SessionService) SubmitDays(ctx context.Context, id string, req dto.SubmitDaysRequest) (*models.FilterState, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid day selection")
	}
	days, err := models.ParseDaySelection(SplitList(req.Days))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}
	var mode models.DayMode
	if req.Mode != "" {
		if mode, err = models.ParseDayMode(req.Mode); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
		}
	}
	return s.mutate(id, func(state *models.FilterState) {
		state.Days = days
		if mode != "" {
			state.Mode = mode
		}
	})
}

// Len reports the number of live sessions.
func (s *SessionService) Len() int {
	return s.store.Len()
}

func (s *SessionService) mutate(id string, apply func(*models.FilterState)) (*models.FilterState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.store.Get(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	apply(&state)
	state.UpdatedAt = s.now().UTC()
	s.store.Add(id, state)
	return &state, nil
}
