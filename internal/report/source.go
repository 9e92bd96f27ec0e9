package report

import (
	"context"

	"github.com/troopdesk/troopdesk-backend/internal/model"
)

// Source is the read side of the record store the reports are built from.
type Source interface {
	ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, error)
	ListActivities(ctx context.Context, sort model.ActivitySort) ([]model.Activity, error)
	ListAllAttendance(ctx context.Context) ([]model.AttendanceRecord, error)
}
