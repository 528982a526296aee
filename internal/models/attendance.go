package models

// Attendance is a per-lesson presence record for one enrollment.
type Attendance struct {
	ID           int64  `db:"id" json:"id"`
	LessonID     int64  `db:"lesson_id" json:"lesson_id"`
	EnrollmentID int64  `db:"enrollment_id" json:"enrollment_id"`
	Present      bool   `db:"present" json:"present"`
	Note         string `db:"note" json:"note,omitempty"`
}
