package model

import "time"

// AttendanceStatus is the recorded outcome for one member at one activity.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceExcused AttendanceStatus = "excused"
)

// AttendanceStatuses lists every valid status in display order.
var AttendanceStatuses = []AttendanceStatus{AttendancePresent, AttendanceAbsent, AttendanceExcused}

// Valid reports whether s is one of the known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}
	return false
}

// AttendanceRecord is a persisted attendance row.
type AttendanceRecord struct {
	ID         string           `json:"id"`
	MemberID   string           `json:"member_id"`
	ActivityID string           `json:"activity_id"`
	Status     AttendanceStatus `json:"status"`
	Note       *string          `json:"note,omitempty"`
	RecordedAt time.Time        `json:"recorded_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// NewAttendance is the payload for inserting an attendance record.
type NewAttendance struct {
	MemberID   string
	ActivityID string
	Status     AttendanceStatus
	Note       *string
}

// AttendanceUpdate is the payload for updating an attendance record. It
// replaces both fields; a nil Note clears the stored note.
type AttendanceUpdate struct {
	Status AttendanceStatus
	Note   *string
}

// AttendanceEdit is one operator change submitted with a sheet save.
type AttendanceEdit struct {
	MemberID string  `json:"member_id" binding:"required,uuid"`
	Status   string  `json:"status" binding:"required,oneof=present absent excused"`
	Note     *string `json:"note,omitempty" binding:"omitempty,max=500"`
}

// SaveAttendanceRequest is the payload for saving an activity's sheet.
type SaveAttendanceRequest struct {
	Edits []AttendanceEdit `json:"edits" binding:"required,dive"`
}
