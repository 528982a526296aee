package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/conflu-ai/conflu-api/internal/models"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

type turmaRepository interface {
	List(ctx context.Context) ([]models.TurmaDetail, error)
	FindByID(ctx context.Context, id int64) (*models.TurmaDetail, error)
	Create(ctx context.Context, turma *models.Turma) error
	Update(ctx context.Context, turma *models.Turma) error
	Delete(ctx context.Context, id int64) error
}

type courseFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Course, error)
}

// CreateTurmaRequest holds payload for creating class offerings.
type CreateTurmaRequest struct {
	CourseID  int64       `json:"course_id" validate:"required"`
	Location  string      `json:"location" validate:"required"`
	StartDate models.Date `json:"start_date" validate:"required"`
	EndDate   models.Date `json:"end_date" validate:"required"`
}

// UpdateTurmaRequest holds a partial update; only supplied fields are applied.
type UpdateTurmaRequest struct {
	CourseID  *int64       `json:"course_id"`
	Location  *string      `json:"location"`
	StartDate *models.Date `json:"start_date"`
	EndDate   *models.Date `json:"end_date"`
}

// TurmaService handles class-offering use-cases.
type TurmaService struct {
	repo      turmaRepository
	courses   courseFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTurmaService constructs the turma service.
func NewTurmaService(repo turmaRepository, courses courseFinder, validate *validator.Validate, logger *zap.Logger) *TurmaService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TurmaService{repo: repo, courses: courses, validator: validate, logger: logger}
}

// List returns all turmas with course context.
func (s *TurmaService) List(ctx context.Context) ([]models.TurmaDetail, error) {
	turmas, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list turmas")
	}
	return turmas, nil
}

// Get returns one turma with course context.
func (s *TurmaService) Get(ctx context.Context, id int64) (*models.TurmaDetail, error) {
	turma, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "turma not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load turma")
	}
	return turma, nil
}

// Create registers a new turma. The lesson count reported back is derived
// from the referenced course's duration in days.
func (s *TurmaService) Create(ctx context.Context, req CreateTurmaRequest) (*models.TurmaDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid turma payload")
	}
	if req.EndDate.Before(req.StartDate.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date precedes start date")
	}
	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrValidation, "referenced course does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course")
	}
	turma := &models.Turma{
		CourseID:  req.CourseID,
		Location:  req.Location,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := s.repo.Create(ctx, turma); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create turma")
	}
	return &models.TurmaDetail{
		Turma:       *turma,
		CourseName:  course.Name,
		LessonCount: course.DurationDays,
	}, nil
}

// Update applies a partial update to an existing turma.
func (s *TurmaService) Update(ctx context.Context, id int64, req UpdateTurmaRequest) (*models.TurmaDetail, error) {
	detail, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "turma not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load turma")
	}
	turma := detail.Turma
	if req.CourseID != nil {
		course, err := s.courses.FindByID(ctx, *req.CourseID)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrValidation, "referenced course does not exist")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate course")
		}
		turma.CourseID = *req.CourseID
		detail.CourseName = course.Name
		detail.LessonCount = course.DurationDays
	}
	if req.Location != nil {
		turma.Location = *req.Location
	}
	if req.StartDate != nil {
		turma.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		turma.EndDate = *req.EndDate
	}
	if turma.Location == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "location is required")
	}
	if turma.EndDate.Before(turma.StartDate.Time) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end date precedes start date")
	}
	if err := s.repo.Update(ctx, &turma); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update turma")
	}
	detail.Turma = turma
	return detail, nil
}

// Delete removes a turma; its enrollments and their attendance cascade.
func (s *TurmaService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "turma not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load turma")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete turma")
	}
	return nil
}
