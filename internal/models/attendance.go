package models

import "time"

// AttendanceStatus represents the status for attendance records.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "Present"
	AttendanceTardy   AttendanceStatus = "Tardy"
	AttendanceAbsent  AttendanceStatus = "Absent"
	AttendanceExcused AttendanceStatus = "Excused"
)

// AttendanceRecord is one student's status for one school day.
type AttendanceRecord struct {
	ID        string           `db:"attendance_id" json:"attendance_id"`
	StudentID int              `db:"student_id" json:"student_id"`
	Date      time.Time        `db:"date" json:"date"`
	Status    AttendanceStatus `db:"status" json:"status"`
	Notes     string           `db:"notes" json:"notes"`
}
