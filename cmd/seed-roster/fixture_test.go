package main

import (
	"os"
	"strings"
	"testing"

	"github.com/troopdesk/troopdesk-backend/internal/model"
)

func TestLoadFixtureBundledRoster(t *testing.T) {
	file, err := os.Open("../../seed/roster.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()

	fx, err := loadFixture(file)
	if err != nil {
		t.Fatalf("loadFixture: %v", err)
	}
	if len(fx.Members) != 5 || len(fx.Activities) != 3 || len(fx.Attendance) != 3 {
		t.Fatalf("got %d members, %d activities, %d attendance", len(fx.Members), len(fx.Activities), len(fx.Attendance))
	}
	if got := fx.Members[0].JoinDate; got == nil || got.String() != "2024-09-01" {
		t.Errorf("join date = %v", got)
	}
	if !fx.Activities[2].Date.Equal(model.NewDate(2026, 6, 1).Time) {
		t.Errorf("activity date = %v", fx.Activities[2].Date)
	}
	if n := fx.Attendance[1].Note; n == nil || *n != "Family trip" {
		t.Errorf("note = %v", n)
	}
}

func TestLoadFixtureRejects(t *testing.T) {
	const base = `
members:
  - {name: Ada, group: Eagles, status: active, age: 12}
activities:
  - {title: Hike, type: outdoor, date: "2026-05-02", time: "09:00", location: Ridge}
`
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"unknown member", base + "attendance:\n  - {member: Zed, activity: Hike, status: present}\n", "unknown member"},
		{"unknown activity", base + "attendance:\n  - {member: Ada, activity: Swim, status: present}\n", "unknown activity"},
		{"bad status", base + "attendance:\n  - {member: Ada, activity: Hike, status: late}\n", "unknown status"},
		{"duplicate pair", base + "attendance:\n  - {member: Ada, activity: Hike, status: present}\n  - {member: Ada, activity: Hike, status: absent}\n", "already recorded"},
		{"bad date", "activities:\n  - {title: Hike, type: outdoor, date: \"May 2\"}\n", "parse fixture"},
		{"unknown field", "members:\n  - {name: Ada, group: Eagles, status: active, rank: 3}\n", "parse fixture"},
		{"member status", "members:\n  - {name: Ada, group: Eagles, status: retired}\n", "unknown status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadFixture(strings.NewReader(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestLoadFixtureEmpty(t *testing.T) {
	fx, err := loadFixture(strings.NewReader(""))
	if err != nil {
		t.Fatalf("loadFixture: %v", err)
	}
	if len(fx.Members) != 0 {
		t.Errorf("members = %d", len(fx.Members))
	}
}
