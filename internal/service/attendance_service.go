package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/troopdesk/troopdesk-backend/internal/attendance"
	"github.com/troopdesk/troopdesk-backend/internal/model"
	"github.com/troopdesk/troopdesk-backend/internal/queue"
	"github.com/troopdesk/troopdesk-backend/internal/repository"
	"golang.org/x/sync/errgroup"
)

// ErrActivityNotFound is returned for a sheet of an unknown activity.
var ErrActivityNotFound = errors.New("activity not found")

// SheetStore is the record store behind attendance sheets.
type SheetStore interface {
	attendance.Gateway
	GetActivity(ctx context.Context, id string) (*model.Activity, error)
}

// ReportInvalidator drops derived report data after attendance changes.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

// RefreshQueue schedules a background report refresh.
type RefreshQueue interface {
	Enqueue(ctx context.Context, activityID string) error
}

// SheetRow is one member's line of an attendance sheet as served to clients.
type SheetRow struct {
	MemberID   string                 `json:"member_id"`
	MemberName string                 `json:"member_name"`
	GroupName  string                 `json:"group_name"`
	Status     model.AttendanceStatus `json:"status"`
	Note       *string                `json:"note"`
	// RecordID is nil until the row has been saved.
	RecordID *string `json:"record_id"`
}

// Sheet is the reconciled attendance sheet of one activity.
type Sheet struct {
	Activity model.Activity `json:"activity"`
	Rows     []SheetRow     `json:"rows"`
}

// RowFailure describes a row that could not be saved.
type RowFailure struct {
	MemberID string        `json:"member_id"`
	Op       attendance.Op `json:"op"`
	Reason   string        `json:"reason"`
}

// SaveResult is the outcome of saving a sheet.
type SaveResult struct {
	Sheet    Sheet        `json:"sheet"`
	Inserted int          `json:"inserted"`
	Updated  int          `json:"updated"`
	Failed   []RowFailure `json:"failed"`
	// Ignored lists edited member ids that are not on the sheet.
	Ignored []string `json:"ignored"`
}

// Partial reports whether some rows were not saved.
func (r *SaveResult) Partial() bool {
	return len(r.Failed) > 0
}

// AttendanceService loads and saves attendance sheets.
type AttendanceService struct {
	store     SheetStore
	persister *attendance.Persister
	reports   ReportInvalidator
	refresh   RefreshQueue
	events    queue.Publisher
	log       zerolog.Logger
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(
	store SheetStore,
	persister *attendance.Persister,
	reports ReportInvalidator,
	refresh RefreshQueue,
	events queue.Publisher,
	log zerolog.Logger,
) *AttendanceService {
	return &AttendanceService{
		store:     store,
		persister: persister,
		reports:   reports,
		refresh:   refresh,
		events:    events,
		log:       log.With().Str("component", "attendance_service").Logger(),
	}
}

// LoadSheet reconciles the active roster with the records stored for
// activityID. Any fetch failure fails the whole load with attendance.ErrFetch.
func (s *AttendanceService) LoadSheet(ctx context.Context, activityID string) (*Sheet, error) {
	activity, rows, err := s.reconcile(ctx, activityID)
	if err != nil {
		return nil, err
	}
	sheet := newSheet(activity, rows)
	return &sheet, nil
}

// SaveSheet reconciles activityID from fresh store data, applies edits in
// order and commits every row. Row failures are reported in the result and
// do not fail the call.
func (s *AttendanceService) SaveSheet(ctx context.Context, activityID string, edits []model.AttendanceEdit) (*SaveResult, error) {
	activity, rows, err := s.reconcile(ctx, activityID)
	if err != nil {
		return nil, err
	}

	onSheet := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		onSheet[r.MemberID] = struct{}{}
	}

	ignored := []string{}
	for _, e := range edits {
		if _, ok := onSheet[e.MemberID]; !ok {
			ignored = append(ignored, e.MemberID)
			continue
		}
		rows = attendance.SetStatus(rows, e.MemberID, model.AttendanceStatus(e.Status))
		if e.Note != nil {
			rows = attendance.SetNote(rows, e.MemberID, e.Note)
		}
	}

	res := s.persister.Commit(ctx, rows, activityID)
	rows = res.Apply(rows)

	out := &SaveResult{
		Sheet:    newSheet(activity, rows),
		Inserted: res.Count(attendance.OpInsert),
		Updated:  res.Count(attendance.OpUpdate),
		Failed:   []RowFailure{},
		Ignored:  ignored,
	}
	for _, f := range res.Failed() {
		out.Failed = append(out.Failed, RowFailure{
			MemberID: f.MemberID,
			Op:       f.Op,
			Reason:   failureReason(f.Err),
		})
	}

	if res.Succeeded() > 0 {
		s.afterCommit(ctx, out)
	}

	s.log.Info().
		Str("activity_id", activityID).
		Int("inserted", out.Inserted).
		Int("updated", out.Updated).
		Int("failed", len(out.Failed)).
		Msg("Attendance sheet saved")
	return out, nil
}

func (s *AttendanceService) reconcile(ctx context.Context, activityID string) (model.Activity, []attendance.Row, error) {
	activity, err := s.store.GetActivity(ctx, activityID)
	if errors.Is(err, repository.ErrNotFound) {
		return model.Activity{}, nil, ErrActivityNotFound
	}
	if err != nil {
		return model.Activity{}, nil, fmt.Errorf("%w: get activity: %w", attendance.ErrFetch, err)
	}

	var (
		members []model.Member
		records []model.AttendanceRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		members, err = s.store.ListMembers(gctx, model.MemberFilter{Status: model.MemberStatusActive})
		if err != nil {
			return fmt.Errorf("list members: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		records, err = s.store.ListAttendance(gctx, activityID)
		if err != nil {
			return fmt.Errorf("list attendance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.Activity{}, nil, fmt.Errorf("%w: %w", attendance.ErrFetch, err)
	}

	rows, orphans := attendance.ReconcileReport(members, records)
	for _, o := range orphans {
		s.log.Warn().
			Str("activity_id", activityID).
			Str("record_id", o.ID).
			Str("member_id", o.MemberID).
			Msg("Attendance record has no active member, left out of sheet")
	}
	return *activity, rows, nil
}

// afterCommit notifies the report side. Failures here never undo a commit.
func (s *AttendanceService) afterCommit(ctx context.Context, res *SaveResult) {
	ctx = context.WithoutCancel(ctx)
	activityID := res.Sheet.Activity.ID

	if err := s.reports.Invalidate(ctx); err != nil {
		s.log.Warn().Err(err).Msg("Report cache invalidation failed")
	}
	if err := s.refresh.Enqueue(ctx, activityID); err != nil {
		s.log.Warn().Err(err).Msg("Report refresh enqueue failed")
	}

	event := queue.CommitEvent{
		ActivityID:  activityID,
		Inserted:    res.Inserted,
		Updated:     res.Updated,
		Failed:      len(res.Failed),
		CommittedAt: time.Now().UTC(),
	}
	if err := s.events.PublishCommitted(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("activity_id", activityID).Msg("Commit event not published")
	}
}

func newSheet(activity model.Activity, rows []attendance.Row) Sheet {
	out := Sheet{Activity: activity, Rows: make([]SheetRow, 0, len(rows))}
	for _, r := range rows {
		sr := SheetRow{
			MemberID:   r.MemberID,
			MemberName: r.MemberName,
			GroupName:  r.GroupName,
			Status:     r.Status,
			Note:       r.Note,
		}
		if id, ok := r.RecordID(); ok {
			sr.RecordID = &id
		}
		out.Rows = append(out.Rows, sr)
	}
	return out
}

func failureReason(err error) string {
	switch {
	case repository.IsForeignKeyViolation(err):
		return "member or activity no longer exists"
	case errors.Is(err, repository.ErrNotFound):
		return "attendance record no longer exists"
	case errors.Is(err, attendance.ErrNoRef):
		return "row has no record reference"
	case errors.Is(err, context.DeadlineExceeded):
		return "record store timed out"
	default:
		return "record store write failed"
	}
}
