package model

import "time"

// MemberStatus is the lifecycle state of a roster member.
type MemberStatus string

const (
	MemberStatusActive    MemberStatus = "active"
	MemberStatusSuspended MemberStatus = "suspended"
	MemberStatusGraduated MemberStatus = "graduated"
)

// Member represents a scout on the troop roster.
type Member struct {
	ID                 string       `json:"id"`
	Name               string       `json:"name"`
	GroupName          string       `json:"group_name"`
	Status             MemberStatus `json:"status"`
	Age                int          `json:"age"`
	JoinDate           *Date        `json:"join_date,omitempty"`
	ContactEmail       *string      `json:"contact_email,omitempty"`
	ContactPhone       *string      `json:"contact_phone,omitempty"`
	ParentGuardianName *string      `json:"parent_guardian_name,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// IsActive reports whether the member is eligible for attendance.
func (m Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// MemberFilter narrows a member listing. Empty fields match everything.
type MemberFilter struct {
	Status MemberStatus
	Group  string
}

// ListMembersQuery is the query string accepted by the member listing.
type ListMembersQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=active suspended graduated"`
	Group  string `form:"group" binding:"omitempty,max=100"`
}
