package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/troopdesk/troopdesk-backend/internal/model"
	"golang.org/x/sync/errgroup"
)

// DefaultCommitConcurrency bounds the store calls a commit has in flight.
const DefaultCommitConcurrency = 8

// ErrNoRef is reported for a row that carries neither a Persisted nor a
// Synthetic reference.
var ErrNoRef = errors.New("attendance: row has no record reference")

// Op is the store operation issued for a row.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
)

// RowResult is the outcome of committing one row.
type RowResult struct {
	MemberID string
	Op       Op
	// RecordID is the id of the record written, including ids assigned by
	// an insert. Empty when the row failed before reaching the store.
	RecordID string
	Err      error
}

// OK reports whether the row was saved.
func (r RowResult) OK() bool {
	return r.Err == nil
}

// CommitResult reports the outcome of every row of a commit. Rows[i]
// describes the i-th row passed to Commit.
type CommitResult struct {
	ActivityID string
	Rows       []RowResult
}

// Succeeded returns the number of rows saved.
func (c CommitResult) Succeeded() int {
	n := 0
	for _, r := range c.Rows {
		if r.OK() {
			n++
		}
	}
	return n
}

// Failed returns the results of the rows that were not saved.
func (c CommitResult) Failed() []RowResult {
	var out []RowResult
	for _, r := range c.Rows {
		if !r.OK() {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many rows of the given op were saved.
func (c CommitResult) Count(op Op) int {
	n := 0
	for _, r := range c.Rows {
		if r.OK() && r.Op == op {
			n++
		}
	}
	return n
}

// FailedRows picks the rows that failed out of the rows that were
// committed, ready to be committed again.
func (c CommitResult) FailedRows(rows []Row) []Row {
	var out []Row
	for i, r := range c.Rows {
		if i < len(rows) && !r.OK() {
			out = append(out, rows[i])
		}
	}
	return out
}

// Apply returns rows with every successfully inserted synthetic row turned
// into a Persisted row, so a later commit of the result updates instead of
// inserting a duplicate.
func (c CommitResult) Apply(rows []Row) []Row {
	out := make([]Row, len(rows))
	copy(out, rows)
	for i, r := range c.Rows {
		if i >= len(out) || !r.OK() || r.Op != OpInsert {
			continue
		}
		out[i].Ref = Persisted{ID: r.RecordID}
	}
	return out
}

// Persister writes an edited sheet back to the record store.
type Persister struct {
	store Writer
	limit int
	log   zerolog.Logger
}

// NewPersister creates a Persister issuing at most limit store calls at once.
func NewPersister(store Writer, limit int, log zerolog.Logger) *Persister {
	if limit <= 0 {
		limit = DefaultCommitConcurrency
	}
	return &Persister{
		store: store,
		limit: limit,
		log:   log.With().Str("component", "attendance_persister").Logger(),
	}
}

// Commit updates every Persisted row and inserts every Synthetic row for
// activityID. Rows are independent: a failing row is recorded in the result
// and the remaining rows are still written. Nothing is rolled back.
//
// Synthetic rows are inserted again on every call. Callers must reconcile
// again, or Apply the result, before committing the same sheet twice.
func (p *Persister) Commit(ctx context.Context, rows []Row, activityID string) CommitResult {
	// Issued writes are not cancelled.
	ctx = context.WithoutCancel(ctx)

	res := CommitResult{
		ActivityID: activityID,
		Rows:       make([]RowResult, len(rows)),
	}

	var g errgroup.Group
	g.SetLimit(p.limit)
	for i, row := range rows {
		g.Go(func() error {
			res.Rows[i] = p.commitRow(ctx, row, activityID)
			return nil
		})
	}
	_ = g.Wait()

	if failed := len(res.Rows) - res.Succeeded(); failed > 0 {
		p.log.Warn().
			Str("activity_id", activityID).
			Int("rows", len(rows)).
			Int("failed", failed).
			Msg("Attendance commit finished with failures")
	}
	return res
}

func (p *Persister) commitRow(ctx context.Context, row Row, activityID string) RowResult {
	out := RowResult{MemberID: row.MemberID}

	switch ref := row.Ref.(type) {
	case Persisted:
		out.Op = OpUpdate
		out.RecordID = ref.ID
		_, err := p.store.UpdateAttendance(ctx, ref.ID, model.AttendanceUpdate{
			Status: row.Status,
			Note:   row.Note,
		})
		if err != nil {
			out.Err = fmt.Errorf("update attendance %s: %w", ref.ID, err)
		}
	case Synthetic:
		out.Op = OpInsert
		rec, err := p.store.InsertAttendance(ctx, model.NewAttendance{
			MemberID:   row.MemberID,
			ActivityID: activityID,
			Status:     row.Status,
			Note:       row.Note,
		})
		if err != nil {
			out.Err = fmt.Errorf("insert attendance for member %s: %w", row.MemberID, err)
			break
		}
		out.RecordID = rec.ID
	default:
		out.Err = ErrNoRef
	}

	if out.Err != nil {
		p.log.Warn().Err(out.Err).
			Str("member_id", row.MemberID).
			Str("op", string(out.Op)).
			Msg("Attendance row not saved")
	}
	return out
}
