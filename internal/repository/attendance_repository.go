package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/troopdesk/troopdesk-backend/internal/model"
)

const attendanceColumns = `id, scout_id, activity_id, status, notes, recorded_at, updated_at`

// AttendanceRepository handles attendance record access.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository creates a new AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// ListByActivity retrieves every record stored for an activity.
func (r *AttendanceRepository) ListByActivity(ctx context.Context, activityID string) ([]model.AttendanceRecord, error) {
	return r.list(ctx, `SELECT `+attendanceColumns+` FROM attendance WHERE activity_id = $1 ORDER BY recorded_at, id`, activityID)
}

// ListAll retrieves every attendance record.
func (r *AttendanceRepository) ListAll(ctx context.Context) ([]model.AttendanceRecord, error) {
	return r.list(ctx, `SELECT `+attendanceColumns+` FROM attendance ORDER BY recorded_at, id`)
}

// Insert stores a new record and returns it with its assigned id.
func (r *AttendanceRepository) Insert(ctx context.Context, rec model.NewAttendance) (model.AttendanceRecord, error) {
	return scanAttendance(r.pool.QueryRow(ctx,
		`INSERT INTO attendance (scout_id, activity_id, status, notes)
		 VALUES ($1, $2, $3, NULLIF($4::text, ''))
		 RETURNING `+attendanceColumns,
		rec.MemberID, rec.ActivityID, rec.Status, rec.Note,
	))
}

// Update overwrites the status and note of a record. A nil or empty note
// clears the stored note.
func (r *AttendanceRepository) Update(ctx context.Context, id string, upd model.AttendanceUpdate) (model.AttendanceRecord, error) {
	rec, err := scanAttendance(r.pool.QueryRow(ctx,
		`UPDATE attendance
		 SET status = $2,
		     notes = NULLIF($3::text, ''),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+attendanceColumns,
		id, upd.Status, upd.Note,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.AttendanceRecord{}, ErrNotFound
	}
	return rec, err
}

func (r *AttendanceRepository) list(ctx context.Context, query string, args ...any) ([]model.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []model.AttendanceRecord{}
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanAttendance(row pgx.Row) (model.AttendanceRecord, error) {
	var rec model.AttendanceRecord
	err := row.Scan(&rec.ID, &rec.MemberID, &rec.ActivityID, &rec.Status, &rec.Note, &rec.RecordedAt, &rec.UpdatedAt)
	return rec, err
}
