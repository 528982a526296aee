package models

import "time"

// Course is a training product with a fixed price and duration in days.
type Course struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Price        float64   `db:"price" json:"price"`
	Description  string    `db:"description" json:"description,omitempty"`
	DurationDays int       `db:"duration_days" json:"duration_days"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
