package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/conflu-ai/conflu-api/internal/models"
)

// CompanyRepository manages persistence for company records.
type CompanyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository constructs a CompanyRepository.
func NewCompanyRepository(db *sqlx.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// List returns every company.
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	const query = `SELECT id, name, tax_id, registration_type, address, simplified_tax FROM companies ORDER BY id`
	companies := []models.Company{}
	if err := r.db.SelectContext(ctx, &companies, query); err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	return companies, nil
}

// FindByID fetches a company by ID.
func (r *CompanyRepository) FindByID(ctx context.Context, id int64) (*models.Company, error) {
	const query = `SELECT id, name, tax_id, registration_type, address, simplified_tax FROM companies WHERE id = $1`
	var company models.Company
	if err := r.db.GetContext(ctx, &company, query, id); err != nil {
		return nil, err
	}
	return &company, nil
}

// Create inserts a new company and assigns its generated ID.
func (r *CompanyRepository) Create(ctx context.Context, company *models.Company) error {
	const query = `INSERT INTO companies (name, tax_id, registration_type, address, simplified_tax)
        VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.db.GetContext(ctx, &company.ID, query,
		company.Name, company.TaxID, company.RegistrationType, company.Address, company.SimplifiedTax); err != nil {
		return fmt.Errorf("create company: %w", err)
	}
	return nil
}

// Update rewrites an existing company row.
func (r *CompanyRepository) Update(ctx context.Context, company *models.Company) error {
	const query = `UPDATE companies SET name = :name, tax_id = :tax_id, registration_type = :registration_type,
        address = :address, simplified_tax = :simplified_tax WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, company); err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	return nil
}

// Delete removes a company. Referencing students block the delete at the
// database level.
func (r *CompanyRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM companies WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete company: %w", err)
	}
	return nil
}

// HasStudents reports whether any student references the company.
func (r *CompanyRepository) HasStudents(ctx context.Context, id int64) (bool, error) {
	var one int
	err := r.db.GetContext(ctx, &one, `SELECT 1 FROM students WHERE company_id = $1 LIMIT 1`, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check company students: %w", err)
	}
	return true, nil
}
