package models

// Lesson is a single class session; attendance is recorded against it via
// the QR code printed for the day.
type Lesson struct {
	ID         int64  `db:"id" json:"id"`
	QRCodePath string `db:"qr_code_path" json:"qr_code_path"`
	Date       Date   `db:"lesson_date" json:"date"`
}
