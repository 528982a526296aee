package models

import "time"

// Turma is a scheduled offering of a course at a location over a date range.
type Turma struct {
	ID        int64     `db:"id" json:"id"`
	CourseID  int64     `db:"course_id" json:"course_id"`
	Location  string    `db:"location" json:"location"`
	StartDate Date      `db:"start_date" json:"start_date"`
	EndDate   Date      `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TurmaDetail enriches a turma with its course name and the lesson count
// derived from the course duration.
type TurmaDetail struct {
	Turma
	CourseName  string `db:"course_name" json:"course_name"`
	LessonCount int    `db:"lesson_count" json:"lesson_count"`
}
