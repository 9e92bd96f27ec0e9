package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/troopdesk/troopdesk-backend/internal/model"
	"gopkg.in/yaml.v3"
)

type memberFixture struct {
	Name               string             `yaml:"name"`
	Group              string             `yaml:"group"`
	Status             model.MemberStatus `yaml:"status"`
	Age                int                `yaml:"age"`
	JoinDate           *model.Date        `yaml:"join_date"`
	ContactEmail       *string            `yaml:"contact_email"`
	ContactPhone       *string            `yaml:"contact_phone"`
	ParentGuardianName *string            `yaml:"parent_guardian_name"`
}

type activityFixture struct {
	Title       string     `yaml:"title"`
	Type        string     `yaml:"type"`
	Date        model.Date `yaml:"date"`
	Time        string     `yaml:"time"`
	Location    string     `yaml:"location"`
	Capacity    *int       `yaml:"capacity"`
	Description *string    `yaml:"description"`
}

// attendanceFixture refers to members and activities by name and title.
type attendanceFixture struct {
	Member   string                 `yaml:"member"`
	Activity string                 `yaml:"activity"`
	Status   model.AttendanceStatus `yaml:"status"`
	Note     *string                `yaml:"note"`
}

type fixture struct {
	Members    []memberFixture     `yaml:"members"`
	Activities []activityFixture   `yaml:"activities"`
	Attendance []attendanceFixture `yaml:"attendance"`
}

// loadFixture decodes and checks a roster fixture. Every attendance entry
// must name a member and an activity defined in the same file, at most once
// per pair.
func loadFixture(r io.Reader) (*fixture, error) {
	var f fixture
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}

	members := make(map[string]bool, len(f.Members))
	for i, m := range f.Members {
		if m.Name == "" || m.Group == "" {
			return nil, fmt.Errorf("members[%d]: name and group are required", i)
		}
		switch m.Status {
		case model.MemberStatusActive, model.MemberStatusSuspended, model.MemberStatusGraduated:
		default:
			return nil, fmt.Errorf("members[%d]: unknown status %q", i, m.Status)
		}
		if members[m.Name] {
			return nil, fmt.Errorf("members[%d]: duplicate name %q", i, m.Name)
		}
		members[m.Name] = true
	}

	activities := make(map[string]bool, len(f.Activities))
	for i, a := range f.Activities {
		if a.Title == "" || a.Type == "" || a.Date.IsZero() {
			return nil, fmt.Errorf("activities[%d]: title, type and date are required", i)
		}
		if activities[a.Title] {
			return nil, fmt.Errorf("activities[%d]: duplicate title %q", i, a.Title)
		}
		activities[a.Title] = true
	}

	seen := make(map[[2]string]bool, len(f.Attendance))
	for i, a := range f.Attendance {
		if !members[a.Member] {
			return nil, fmt.Errorf("attendance[%d]: unknown member %q", i, a.Member)
		}
		if !activities[a.Activity] {
			return nil, fmt.Errorf("attendance[%d]: unknown activity %q", i, a.Activity)
		}
		if !a.Status.Valid() {
			return nil, fmt.Errorf("attendance[%d]: unknown status %q", i, a.Status)
		}
		key := [2]string{a.Member, a.Activity}
		if seen[key] {
			return nil, fmt.Errorf("attendance[%d]: %s already recorded for %s", i, a.Member, a.Activity)
		}
		seen[key] = true
	}
	return &f, nil
}
