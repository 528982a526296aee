package models

// Company represents a client company whose employees enroll in courses.
type Company struct {
	ID               int64  `db:"id" json:"id"`
	Name             string `db:"name" json:"name"`
	TaxID            string `db:"tax_id" json:"tax_id,omitempty"`
	RegistrationType string `db:"registration_type" json:"registration_type,omitempty"`
	Address          string `db:"address" json:"address,omitempty"`
	SimplifiedTax    bool   `db:"simplified_tax" json:"simplified_tax"`
}
