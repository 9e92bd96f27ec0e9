// Package queue publishes attendance domain events to RabbitMQ.
package queue

import "time"

// CommittedQueue is the queue attendance commit events are routed to.
const CommittedQueue = "attendance.committed"

// CommitEvent announces that an activity's attendance sheet was saved.
type CommitEvent struct {
	ActivityID  string    `json:"activity_id"`
	Inserted    int       `json:"inserted"`
	Updated     int       `json:"updated"`
	Failed      int       `json:"failed"`
	CommittedAt time.Time `json:"committed_at"`
}
