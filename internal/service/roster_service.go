package service

import (
	"context"
	"fmt"

	"github.com/troopdesk/troopdesk-backend/internal/model"
)

// RosterStore is the read side of the record store the roster views use.
type RosterStore interface {
	ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, error)
	ListActivities(ctx context.Context, sort model.ActivitySort) ([]model.Activity, error)
}

// ActivityList is the activity picker: every activity, newest first, with
// the most recent one preselected.
type ActivityList struct {
	Activities         []model.Activity `json:"activities"`
	SelectedActivityID *string          `json:"selected_activity_id"`
}

// RosterService handles read-only roster and activity listings.
type RosterService struct {
	store RosterStore
}

// NewRosterService creates a new RosterService.
func NewRosterService(store RosterStore) *RosterService {
	return &RosterService{store: store}
}

// ListMembers returns the members matching filter.
func (s *RosterService) ListMembers(ctx context.Context, filter model.MemberFilter) ([]model.Member, error) {
	members, err := s.store.ListMembers(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

// ListActivities returns every activity sorted by date, newest first.
func (s *RosterService) ListActivities(ctx context.Context) (*ActivityList, error) {
	activities, err := s.store.ListActivities(ctx, model.ActivitySortDateDesc)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	list := &ActivityList{Activities: activities}
	if len(activities) > 0 {
		id := activities[0].ID
		list.SelectedActivityID = &id
	}
	return list, nil
}
