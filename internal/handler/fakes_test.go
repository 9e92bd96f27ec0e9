package handler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/troopdesk/troopdesk-backend/internal/attendance"
	"github.com/troopdesk/troopdesk-backend/internal/model"
	"github.com/troopdesk/troopdesk-backend/internal/queue"
	"github.com/troopdesk/troopdesk-backend/internal/repository"
	"github.com/troopdesk/troopdesk-backend/internal/response"
	"github.com/troopdesk/troopdesk-backend/internal/service"
	"github.com/troopdesk/troopdesk-backend/internal/validator"
)

const (
	activityID = "6f1c2b8e-8f9e-4c41-9a0e-1d7e7c1b2a01"
	memberAda  = "2b7f0a64-0f3c-4d3b-8b9f-5a2e4c8d9e11"
	memberBen  = "9c3e5d21-7a4b-4f6e-a1c2-3b4d5e6f7a22"
)

func init() {
	gin.SetMode(gin.TestMode)
	validator.Setup()
}

// store is an in-memory record store.
type store struct {
	mu         sync.Mutex
	members    []model.Member
	activities []model.Activity
	records    []model.AttendanceRecord
	listErr    error
	failInsert map[string]bool
}

func newStore() *store {
	return &store{
		members: []model.Member{
			{ID: memberAda, Name: "Ada", GroupName: "Eagles", Status: model.MemberStatusActive},
			{ID: memberBen, Name: "Ben", GroupName: "Hawks", Status: model.MemberStatusActive},
		},
		activities: []model.Activity{
			{ID: activityID, Title: "Hike", Type: "outdoor", Location: "Ridge", Date: model.NewDate(2026, 5, 2)},
		},
		failInsert: map[string]bool{},
	}
}

func (s *store) ListMembers(_ context.Context, f model.MemberFilter) ([]model.Member, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var out []model.Member
	for _, m := range s.members {
		if (f.Status == "" || m.Status == f.Status) && (f.Group == "" || m.GroupName == f.Group) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *store) ListActivities(context.Context, model.ActivitySort) ([]model.Activity, error) {
	return s.activities, nil
}

func (s *store) GetActivity(_ context.Context, id string) (*model.Activity, error) {
	for _, a := range s.activities {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *store) ListAttendance(_ context.Context, id string) ([]model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.AttendanceRecord
	for _, r := range s.records {
		if r.ActivityID == id {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *store) ListAllAttendance(context.Context) ([]model.AttendanceRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.AttendanceRecord(nil), s.records...), nil
}

func (s *store) InsertAttendance(_ context.Context, rec model.NewAttendance) (model.AttendanceRecord, error) {
	if s.failInsert[rec.MemberID] {
		return model.AttendanceRecord{}, errors.New("insert failed")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := model.AttendanceRecord{
		ID:         fmt.Sprintf("rec-%d", len(s.records)+1),
		MemberID:   rec.MemberID,
		ActivityID: rec.ActivityID,
		Status:     rec.Status,
		Note:       rec.Note,
	}
	s.records = append(s.records, stored)
	return stored, nil
}

func (s *store) UpdateAttendance(_ context.Context, id string, upd model.AttendanceUpdate) (model.AttendanceRecord, error) {
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

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, error)              { return nil, service.ErrCacheMiss }
func (nopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (nopCache) Delete(context.Context, string) error                     { return nil }

type nopQueue struct{}

func (nopQueue) Enqueue(context.Context, string) error { return nil }

type fakeChecker struct {
	deps map[string]string
	err  error
}

func (f fakeChecker) Check(context.Context) (map[string]string, error) { return f.deps, f.err }

// newTestRouter wires the handlers over st the way the server does.
func newTestRouter(st *store, checker HealthChecker) *gin.Engine {
	log := zerolog.Nop()
	reports := service.NewReportService(st, nopCache{}, time.Minute, log)
	attendanceSvc := service.NewAttendanceService(st, attendance.NewPersister(st, 4, log),
		reports, nopQueue{}, queue.Nop{}, log)

	ah := NewAttendanceHandler(attendanceSvc, log)
	rh := NewReportHandler(reports, log)
	ros := NewRosterHandler(service.NewRosterService(st))
	hh := NewHealthHandler(checker)

	r := gin.New()
	r.Use(response.RequestIDMiddleware())
	r.GET("/health", hh.Health)
	api := r.Group("/api/v1")
	api.GET("/members", ros.ListMembers)
	api.GET("/activities", ros.ListActivities)
	api.GET("/activities/:id/attendance", ah.GetSheet)
	api.PUT("/activities/:id/attendance", ah.SaveSheet)
	api.GET("/reports/summary", rh.GetSummary)
	api.GET("/reports/export", rh.Export)
	return r
}
