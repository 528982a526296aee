package models

import "time"

// Student represents a learner registered with the training business. Email
// is unique across students; the company link is optional.
type Student struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	NationalID string    `db:"national_id" json:"national_id,omitempty"`
	Email      string    `db:"email" json:"email"`
	CompanyID  *int64    `db:"company_id" json:"company_id,omitempty"`
	Phone      string    `db:"phone" json:"phone,omitempty"`
	BirthDate  *Date     `db:"birth_date" json:"birth_date,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
