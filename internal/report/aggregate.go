// Package report derives display summaries from raw roster, activity and
// attendance collections.
package report

import (
	"slices"

	"github.com/troopdesk/troopdesk-backend/internal/model"
)

// RecentLimit is the number of activities tallied in RecentAttendance.
const RecentLimit = 5

// Count is the size of one group.
type Count struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ActivityTally counts attendance statuses for one activity.
type ActivityTally struct {
	ActivityID string     `json:"activity_id"`
	Title      string     `json:"title"`
	Date       model.Date `json:"date"`
	Present    int        `json:"present"`
	Absent     int        `json:"absent"`
	Excused    int        `json:"excused"`
}

// Totals are the headline numbers of the dashboard.
type Totals struct {
	Members           int `json:"members"`
	ActiveMembers     int `json:"active_members"`
	Activities        int `json:"activities"`
	AttendanceRecords int `json:"attendance_records"`
}

// Summary is the grouped view of the troop's data.
type Summary struct {
	Totals           Totals          `json:"totals"`
	ByGroup          []Count         `json:"by_group"`
	ByStatus         []Count         `json:"by_status"`
	ByActivityType   []Count         `json:"by_activity_type"`
	ByLocation       []Count         `json:"by_location"`
	RecentAttendance []ActivityTally `json:"recent_attendance"`
}

// Aggregate groups members by group and status, activities by type and
// location, and tallies attendance for the RecentLimit most recent
// activities. Group keys are taken verbatim and listed in first-seen order.
func Aggregate(members []model.Member, activities []model.Activity, records []model.AttendanceRecord) Summary {
	s := Summary{
		Totals: Totals{
			Members:           len(members),
			Activities:        len(activities),
			AttendanceRecords: len(records),
		},
	}

	byGroup := newCounter()
	byStatus := newCounter()
	for _, m := range members {
		byGroup.add(m.GroupName)
		byStatus.add(string(m.Status))
		if m.IsActive() {
			s.Totals.ActiveMembers++
		}
	}

	byType := newCounter()
	byLocation := newCounter()
	for _, a := range activities {
		byType.add(a.Type)
		byLocation.add(a.Location)
	}

	s.ByGroup = byGroup.counts()
	s.ByStatus = byStatus.counts()
	s.ByActivityType = byType.counts()
	s.ByLocation = byLocation.counts()
	s.RecentAttendance = recentAttendance(activities, records)
	return s
}

func recentAttendance(activities []model.Activity, records []model.AttendanceRecord) []ActivityTally {
	recent := slices.Clone(activities)
	slices.SortStableFunc(recent, func(a, b model.Activity) int {
		return b.Date.Compare(a.Date.Time)
	})
	if len(recent) > RecentLimit {
		recent = recent[:RecentLimit]
	}

	tallies := make([]ActivityTally, len(recent))
	index := make(map[string]int, len(recent))
	for i, a := range recent {
		tallies[i] = ActivityTally{ActivityID: a.ID, Title: a.Title, Date: a.Date}
		index[a.ID] = i
	}

	for _, r := range records {
		i, ok := index[r.ActivityID]
		if !ok {
			continue
		}
		switch r.Status {
		case model.AttendancePresent:
			tallies[i].Present++
		case model.AttendanceAbsent:
			tallies[i].Absent++
		case model.AttendanceExcused:
			tallies[i].Excused++
		}
	}
	return tallies
}

// counter counts keys while remembering the order they first appeared in.
type counter struct {
	order []string
	n     map[string]int
}

func newCounter() *counter {
	return &counter{n: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, ok := c.n[key]; !ok {
		c.order = append(c.order, key)
	}
	c.n[key]++
}

func (c *counter) counts() []Count {
	out := make([]Count, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, Count{Name: k, Value: c.n[k]})
	}
	return out
}
