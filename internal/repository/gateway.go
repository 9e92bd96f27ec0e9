package repository

import (
	"context"

	"github.com/troopdesk/troopdesk-backend/internal/model"
)

// Gateway is the record store used by the attendance and report services.
type Gateway struct {
	Members    *MemberRepository
	Activities *ActivityRepository
	Attendance *AttendanceRepository
}

// NewGateway bundles the table repositories into one record store.
func NewGateway(members *MemberRepository, activities *ActivityRepository, attendance *AttendanceRepository) *Gateway {
	return &Gateway{Members: members, Activities: activities, Attendance: attendance}
}

func (g *Gateway) ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, error) {
	return g.Members.List(ctx, filter)
}

func (g *Gateway) ListActivities(ctx context.Context, sort model.ActivitySort) ([]model.Activity, error) {
	return g.Activities.List(ctx, sort)
}

func (g *Gateway) GetActivity(ctx context.Context, id string) (*model.Activity, error) {
	return g.Activities.GetByID(ctx, id)
}

func (g *Gateway) ListAttendance(ctx context.Context, activityID string) ([]model.AttendanceRecord, error) {
	return g.Attendance.ListByActivity(ctx, activityID)
}

func (g *Gateway) ListAllAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	return g.Attendance.ListAll(ctx)
}

func (g *Gateway) InsertAttendance(ctx context.Context, rec model.NewAttendance) (model.AttendanceRecord, error) {
	return g.Attendance.Insert(ctx, rec)
}

func (g *Gateway) UpdateAttendance(ctx context.Context, id string, upd model.AttendanceUpdate) (model.AttendanceRecord, error) {
	return g.Attendance.Update(ctx, id, upd)
}
