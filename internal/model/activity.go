package model

import "time"

// Activity represents a scheduled troop event members may attend.
type Activity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Type        string    `json:"type"`
	Date        Date      `json:"date"`
	Time        string    `json:"time"`
	Location    string    `json:"location"`
	Capacity    *int      `json:"capacity,omitempty"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivitySort selects the ordering of an activity listing.
type ActivitySort string

const (
	ActivitySortDateDesc ActivitySort = "date_desc"
	ActivitySortDateAsc  ActivitySort = "date_asc"
)
