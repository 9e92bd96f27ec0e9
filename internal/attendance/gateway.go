// Package attendance reconciles an activity's roster with its stored
// attendance records, edits the reconciled sheet in memory and commits the
// edited sheet back to the record store.
package attendance

import (
	"context"
	"errors"

	"github.com/troopdesk/troopdesk-backend/internal/model"
)

// ErrFetch marks a failed read from the record store. A sheet is never
// produced from partial data.
var ErrFetch = errors.New("attendance: fetch failed")

// Gateway is the record store the attendance subsystem reads from and
// writes to. Every call either succeeds or fails as a whole.
type Gateway interface {
	ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, error)
	ListActivities(ctx context.Context, sort model.ActivitySort) ([]model.Activity, error)
	ListAttendance(ctx context.Context, activityID string) ([]model.AttendanceRecord, error)
	InsertAttendance(ctx context.Context, rec model.NewAttendance) (model.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, id string, upd model.AttendanceUpdate) (model.AttendanceRecord, error)
}

// Writer is the subset of Gateway the persister needs.
type Writer interface {
	InsertAttendance(ctx context.Context, rec model.NewAttendance) (model.AttendanceRecord, error)
	UpdateAttendance(ctx context.Context, id string, upd model.AttendanceUpdate) (model.AttendanceRecord, error)
}
