package models

import "time"

// DefaultPaymentMethod applies when a payment is created without a method.
const DefaultPaymentMethod = "Pix"

// Payment links a student to a course with a status label. No transaction
// processing happens here.
type Payment struct {
	ID        int64     `db:"id" json:"id"`
	StudentID int64     `db:"student_id" json:"student_id"`
	CourseID  int64     `db:"course_id" json:"course_id"`
	Status    string    `db:"status" json:"status"`
	Method    string    `db:"method" json:"method"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PaymentDetail enriches a payment with the student and course names for
// finance listings.
type PaymentDetail struct {
	Payment
	StudentName string `db:"student_name" json:"student_name"`
	CourseName  string `db:"course_name" json:"course_name"`
}
