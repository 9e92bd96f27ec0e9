package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/troopdesk/troopdesk-backend/internal/model"
	"github.com/troopdesk/troopdesk-backend/internal/queue"
	"github.com/troopdesk/troopdesk-backend/internal/repository"
)

var errStoreDown = errors.New("connection refused")

// fakeStore is an in-memory record store.
type fakeStore struct {
	mu         sync.Mutex
	members    []model.Member
	activities []model.Activity
	records    []model.AttendanceRecord
	nextID     int

	failMembers  bool
	failRecords  bool
	failInsertOf map[string]bool
	calls        map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{failInsertOf: map[string]bool{}, calls: map[string]int{}}
}

func (s *fakeStore) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *fakeStore) called(name string) {
	s.mu.Lock()
	s.calls[name]++
	s.mu.Unlock()
}

func (s *fakeStore) ListMembers(_ context.Context, f model.MemberFilter) ([]model.Member, error) {
	s.called("ListMembers")
	if s.failMembers {
		return nil, errStoreDown
	}
	var out []model.Member
	for _, m := range s.members {
		if f.Status != "" && m.Status != f.Status {
			continue
		}
		if f.Group != "" && m.GroupName != f.Group {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *fakeStore) ListActivities(_ context.Context, sort model.ActivitySort) ([]model.Activity, error) {
	s.called("ListActivities")
	out := append([]model.Activity(nil), s.activities...)
	if sort == model.ActivitySortDateAsc {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (s *fakeStore) GetActivity(_ context.Context, id string) (*model.Activity, error) {
	for _, a := range s.activities {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *fakeStore) ListAttendance(_ context.Context, activityID string) ([]model.AttendanceRecord, error) {
	s.called("ListAttendance")
	if s.failRecords {
		return nil, errStoreDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AttendanceRecord
	for _, r := range s.records {
		if r.ActivityID == activityID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) ListAllAttendance(context.Context) ([]model.AttendanceRecord, error) {
	s.called("ListAllAttendance")
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AttendanceRecord(nil), s.records...), nil
}

func (s *fakeStore) InsertAttendance(_ context.Context, rec model.NewAttendance) (model.AttendanceRecord, error) {
	s.called("InsertAttendance")
	if s.failInsertOf[rec.MemberID] {
		return model.AttendanceRecord{}, errStoreDown
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	stored := model.AttendanceRecord{
		ID:         fmt.Sprintf("rec-%d", s.nextID),
		MemberID:   rec.MemberID,
		ActivityID: rec.ActivityID,
		Status:     rec.Status,
		Note:       rec.Note,
		RecordedAt: time.Now(),
	}
	s.records = append(s.records, stored)
	return stored, nil
}

func (s *fakeStore) UpdateAttendance(_ context.Context, id string, upd model.AttendanceUpdate) (model.AttendanceRecord, error) {
	s.called("UpdateAttendance")
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i].Status = upd.Status
			s.records[i].Note = upd.Note
			return s.records[i], nil
		}
	}
	return model.AttendanceRecord{}, repository.ErrNotFound
}

func (s *fakeStore) recordsFor(activityID string) []model.AttendanceRecord {
	recs, _ := s.ListAttendance(context.Background(), activityID)
	return recs
}

// memCache is an in-memory Cache.
type memCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	failGet bool
	deletes int
}

func newMemCache() *memCache {
	return &memCache{entries: map[string][]byte{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, errStoreDown
	}
	b, ok := c.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return b, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	delete(c.entries, key)
	return nil
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []string
}

func (q *recordingQueue) Enqueue(_ context.Context, activityID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, activityID)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []queue.CommitEvent
	err    error
}

func (p *recordingPublisher) PublishCommitted(_ context.Context, e queue.CommitEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func member(id, name, group string, status model.MemberStatus) model.Member {
	return model.Member{ID: id, Name: name, GroupName: group, Status: status}
}

func activity(id, title, typ, location string, y int, m time.Month, d int) model.Activity {
	return model.Activity{ID: id, Title: title, Type: typ, Location: location, Date: model.NewDate(y, m, d)}
}

func strp(s string) *string { return &s }
