package attendance

import "github.com/troopdesk/troopdesk-backend/internal/model"

// Ref says whether a row is backed by a stored record. It is either
// Persisted or Synthetic.
type Ref interface {
	isRef()
}

// Persisted references the stored record backing a row.
type Persisted struct {
	ID string
}

// Synthetic marks a row with no stored record yet.
type Synthetic struct{}

func (Persisted) isRef() {}
func (Synthetic) isRef() {}

// Row is one member's line on a reconciled attendance sheet.
type Row struct {
	MemberID   string
	MemberName string
	GroupName  string
	Status     model.AttendanceStatus
	Note       *string
	Ref        Ref
}

// RecordID returns the backing record id, if any.
func (r Row) RecordID() (string, bool) {
	p, ok := r.Ref.(Persisted)
	if !ok {
		return "", false
	}
	return p.ID, true
}
