package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/conflu-ai/conflu-api/internal/models"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

type attendanceRepository interface {
	List(ctx context.Context) ([]models.Attendance, error)
	FindByID(ctx context.Context, id int64) (*models.Attendance, error)
	Create(ctx context.Context, attendance *models.Attendance) error
	Update(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, id int64) error
}

type lessonFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Lesson, error)
}

type enrollmentFinder interface {
	FindByID(ctx context.Context, id int64) (*models.Enrollment, error)
}

// CreateAttendanceRequest records a student's presence at a lesson session.
type CreateAttendanceRequest struct {
	LessonID     int64  `json:"lesson_id" validate:"required"`
	EnrollmentID int64  `json:"enrollment_id" validate:"required"`
	Present      bool   `json:"present"`
	Note         string `json:"note"`
}

// UpdateAttendanceRequest holds a partial update; only supplied fields are applied.
type UpdateAttendanceRequest struct {
	Present *bool   `json:"present"`
	Note    *string `json:"note"`
}

// AttendanceService handles attendance use-cases.
type AttendanceService struct {
	repo        attendanceRepository
	lessons     lessonFinder
	enrollments enrollmentFinder
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, lessons lessonFinder, enrollments enrollmentFinder, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, lessons: lessons, enrollments: enrollments, validator: validate, logger: logger}
}

// List returns all attendance records.
func (s *AttendanceService) List(ctx context.Context) ([]models.Attendance, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list attendance records")
	}
	return records, nil
}

// Get returns one attendance record.
func (s *AttendanceService) Get(ctx context.Context, id int64) (*models.Attendance, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance record")
	}
	return record, nil
}

// Create records attendance after resolving the lesson and enrollment references.
func (s *AttendanceService) Create(ctx context.Context, req CreateAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	if _, err := s.lessons.FindByID(ctx, req.LessonID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrValidation, "referenced lesson does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate lesson")
	}
	if _, err := s.enrollments.FindByID(ctx, req.EnrollmentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrValidation, "referenced enrollment does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to validate enrollment")
	}
	record := &models.Attendance{
		LessonID:     req.LessonID,
		EnrollmentID: req.EnrollmentID,
		Present:      req.Present,
		Note:         req.Note,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create attendance record")
	}
	return record, nil
}

// Update applies a partial update to an existing attendance record.
func (s *AttendanceService) Update(ctx context.Context, id int64, req UpdateAttendanceRequest) (*models.Attendance, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance record")
	}
	if req.Present != nil {
		record.Present = *req.Present
	}
	if req.Note != nil {
		record.Note = *req.Note
	}
	if err := s.repo.Update(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update attendance record")
	}
	return record, nil
}

// Delete removes an attendance record.
func (s *AttendanceService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "attendance record not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load attendance record")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete attendance record")
	}
	return nil
}
