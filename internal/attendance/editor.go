package attendance

import "github.com/troopdesk/troopdesk-backend/internal/model"

// SetStatus returns a copy of rows with the status of memberID's row
// replaced. Every other row is left as is. An unknown memberID is a no-op.
func SetStatus(rows []Row, memberID string, status model.AttendanceStatus) []Row {
	return edit(rows, memberID, func(r *Row) { r.Status = status })
}

// SetNote returns a copy of rows with the note of memberID's row replaced.
// A nil note clears it. An unknown memberID is a no-op.
func SetNote(rows []Row, memberID string, note *string) []Row {
	return edit(rows, memberID, func(r *Row) { r.Note = note })
}

func edit(rows []Row, memberID string, fn func(*Row)) []Row {
	idx := -1
	for i := range rows {
		if rows[i].MemberID == memberID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return rows
	}

	out := make([]Row, len(rows))
	copy(out, rows)
	fn(&out[idx])
	return out
}
