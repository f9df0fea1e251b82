// Package events describes the lifecycle events published after a state
// change has been saved.
package events

import (
	"context"
	"time"
)

const (
	AttendanceTopic = "fieldtrack.attendance.v1"
	TaskTopic       = "fieldtrack.task.v1"
)

const (
	TypeAttendancePunchedIn  = "attendance.punched_in"
	TypeAttendancePunchedOut = "attendance.punched_out"
	TypeTaskAssigned         = "task.assigned"
	TypeTaskCompleted        = "task.completed"
)

// Message is one event ready for publication. Key orders the events of one
// aggregate on the same partition.
type Message struct {
	Topic         string
	Key           string
	EventType     string
	AggregateType string
	Payload       any
}

//go:generate mockgen -source=events.go -destination=mock/publisher_mock.go -package=mock
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
}

type noopPublisher struct{}

// NewNoopPublisher drops every event. It is used when no broker is configured.
func NewNoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, Message) error {
	return nil
}

type AttendancePunchedEvent struct {
	EventType  string    `json:"event_type"`
	RecordID   string    `json:"record_id"`
	UserID     string    `json:"user_id"`
	Date       string    `json:"date"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e AttendancePunchedEvent) Message() Message {
	return Message{
		Topic:         AttendanceTopic,
		Key:           e.UserID,
		EventType:     e.EventType,
		AggregateType: "attendance",
		Payload:       e,
	}
}

type TaskEvent struct {
	EventType  string    `json:"event_type"`
	TaskID     string    `json:"task_id"`
	AssignedTo string    `json:"assigned_to"`
	ActorID    string    `json:"actor_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e TaskEvent) Message() Message {
	return Message{
		Topic:         TaskTopic,
		Key:           e.TaskID,
		EventType:     e.EventType,
		AggregateType: "task",
		Payload:       e,
	}
}
