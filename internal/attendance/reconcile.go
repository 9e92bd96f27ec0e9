package attendance

import "github.com/troopdesk/troopdesk-backend/internal/model"

// DefaultStatus is assigned to members with no stored record. An unmarked
// member counts as not attending until confirmed otherwise.
const DefaultStatus = model.AttendanceAbsent

// Reconcile merges the eligible members with the records already stored for
// one activity. It returns exactly one row per member, in member order.
// Records that reference no listed member are dropped.
//
// Duplicate member ids in members are a caller error; each occurrence still
// gets its own row.
func Reconcile(members []model.Member, existing []model.AttendanceRecord) []Row {
	rows, _ := ReconcileReport(members, existing)
	return rows
}

// ReconcileReport is Reconcile that also returns the orphan records it
// dropped, so the caller can log them.
func ReconcileReport(members []model.Member, existing []model.AttendanceRecord) ([]Row, []model.AttendanceRecord) {
	byMember := make(map[string]model.AttendanceRecord, len(existing))
	for _, rec := range existing {
		byMember[rec.MemberID] = rec
	}

	rows := make([]Row, 0, len(members))
	seen := make(map[string]struct{}, len(members))
	for _, m := range members {
		row := Row{
			MemberID:   m.ID,
			MemberName: m.Name,
			GroupName:  m.GroupName,
			Status:     DefaultStatus,
			Ref:        Synthetic{},
		}
		if rec, ok := byMember[m.ID]; ok {
			row.Status = rec.Status
			row.Note = rec.Note
			row.Ref = Persisted{ID: rec.ID}
		}
		rows = append(rows, row)
		seen[m.ID] = struct{}{}
	}

	var orphans []model.AttendanceRecord
	for _, rec := range existing {
		if _, ok := seen[rec.MemberID]; !ok {
			orphans = append(orphans, rec)
		}
	}
	return rows, orphans
}
