package models

// Enrollment links a student to a turma, recording how and when they joined.
type Enrollment struct {
	ID         int64  `db:"id" json:"id"`
	StudentID  int64  `db:"student_id" json:"student_id"`
	TurmaID    int64  `db:"turma_id" json:"turma_id"`
	Source     string `db:"source" json:"source"`
	EnrolledAt Date   `db:"enrolled_at" json:"enrolled_at"`
}
