package attendance

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/troopdesk/troopdesk-backend/internal/model"
)

var errStore = errors.New("store unavailable")

type updateCall struct {
	id  string
	upd model.AttendanceUpdate
}

// memStore is an in-memory record store that records every write.
type memStore struct {
	mu      sync.Mutex
	records map[string]model.AttendanceRecord
	nextID  int
	inserts []model.NewAttendance
	updates []updateCall
	failFor map[string]bool // member ids whose writes fail
}

func newMemStore(existing ...model.AttendanceRecord) *memStore {
	s := &memStore{records: map[string]model.AttendanceRecord{}, failFor: map[string]bool{}}
	for _, r := range existing {
		s.records[r.ID] = r
	}
	return s
}

func (s *memStore) InsertAttendance(_ context.Context, rec model.NewAttendance) (model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts = append(s.inserts, rec)
	if s.failFor[rec.MemberID] {
		return model.AttendanceRecord{}, errStore
	}
	s.nextID++
	out := model.AttendanceRecord{
		ID:         fmt.Sprintf("new-%d", s.nextID),
		MemberID:   rec.MemberID,
		ActivityID: rec.ActivityID,
		Status:     rec.Status,
		Note:       rec.Note,
	}
	s.records[out.ID] = out
	return out, nil
}

func (s *memStore) UpdateAttendance(_ context.Context, id string, upd model.AttendanceUpdate) (model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updates = append(s.updates, updateCall{id: id, upd: upd})
	rec, ok := s.records[id]
	if !ok {
		return model.AttendanceRecord{}, fmt.Errorf("record %s: not found", id)
	}
	if s.failFor[rec.MemberID] {
		return model.AttendanceRecord{}, errStore
	}
	rec.Status = upd.Status
	rec.Note = upd.Note
	s.records[id] = rec
	return rec, nil
}

func (s *memStore) forActivity(activityID string) []model.AttendanceRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AttendanceRecord
	for _, r := range s.records {
		if r.ActivityID == activityID {
			out = append(out, r)
		}
	}
	return out
}

func members(ids ...string) []model.Member {
	out := make([]model.Member, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Member{ID: id, Name: "Scout " + id, GroupName: "Eagles", Status: model.MemberStatusActive})
	}
	return out
}
