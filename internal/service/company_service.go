package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/conflu-ai/conflu-api/internal/models"
	"github.com/conflu-ai/conflu-api/internal/repository"
	appErrors "github.com/conflu-ai/conflu-api/pkg/errors"
)

type companyRepository interface {
	List(ctx context.Context) ([]models.Company, error)
	FindByID(ctx context.Context, id int64) (*models.Company, error)
	Create(ctx context.Context, company *models.Company) error
	Update(ctx context.Context, company *models.Company) error
	Delete(ctx context.Context, id int64) error
	HasStudents(ctx context.Context, id int64) (bool, error)
}

// CreateCompanyRequest holds payload for creating companies.
type CreateCompanyRequest struct {
	Name             string `json:"name" validate:"required"`
	TaxID            string `json:"tax_id" validate:"omitempty,max=14"`
	RegistrationType string `json:"registration_type" validate:"omitempty,max=13"`
	Address          string `json:"address"`
	SimplifiedTax    bool   `json:"simplified_tax"`
}

// UpdateCompanyRequest holds a partial update; only supplied fields are applied.
type UpdateCompanyRequest struct {
	Name             *string `json:"name"`
	TaxID            *string `json:"tax_id" validate:"omitempty,max=14"`
	RegistrationType *string `json:"registration_type" validate:"omitempty,max=13"`
	Address          *string `json:"address"`
	SimplifiedTax    *bool   `json:"simplified_tax"`
}

// CompanyService handles company use-cases.
type CompanyService struct {
	repo      companyRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCompanyService constructs the company service.
func NewCompanyService(repo companyRepository, validate *validator.Validate, logger *zap.Logger) *CompanyService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CompanyService{repo: repo, validator: validate, logger: logger}
}

// List returns all companies.
func (s *CompanyService) List(ctx context.Context) ([]models.Company, error) {
	companies, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list companies")
	}
	return companies, nil
}

// Get returns one company.
func (s *CompanyService) Get(ctx context.Context, id int64) (*models.Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "company not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}
	return company, nil
}

// Create registers a new company.
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*models.Company, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid company payload")
	}
	company := &models.Company{
		Name:             req.Name,
		TaxID:            req.TaxID,
		RegistrationType: req.RegistrationType,
		Address:          req.Address,
		SimplifiedTax:    req.SimplifiedTax,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create company")
	}
	return company, nil
}

// Update applies a partial update to an existing company.
func (s *CompanyService) Update(ctx context.Context, id int64, req UpdateCompanyRequest) (*models.Company, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid company payload")
	}
	company, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "company not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}
	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.TaxID != nil {
		company.TaxID = *req.TaxID
	}
	if req.RegistrationType != nil {
		company.RegistrationType = *req.RegistrationType
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	if req.SimplifiedTax != nil {
		company.SimplifiedTax = *req.SimplifiedTax
	}
	if company.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "name is required")
	}
	if err := s.repo.Update(ctx, company); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update company")
	}
	return company, nil
}

// Delete removes a company unless students still reference it.
func (s *CompanyService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "company not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load company")
	}
	blocked, err := s.repo.HasStudents(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check company students")
	}
	if blocked {
		return appErrors.Clone(appErrors.ErrConflict, "company has registered students")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrConflict, "company has registered students")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete company")
	}
	return nil
}
