// Package queue defines message payloads exchanged over the message
// broker and the background consumer that records them.
package queue

// ExerciseEvent is published on the catalog.exercises queue whenever an
// exercise is created or deleted. It carries enough for downstream
// consumers (audit, analytics) to act without querying the database.
type ExerciseEvent struct {
	Action     string   `json:"action"` // "created" | "deleted"
	ExerciseID uint64   `json:"exercise_id"`
	Name       string   `json:"name"`
	UserID     uint64   `json:"user_id"`
	MuscleIDs  []uint64 `json:"muscle_ids,omitempty"`
	GroupIDs   []uint64 `json:"group_ids,omitempty"`
	OccurredAt string   `json:"occurred_at"`
}

// ExerciseQueueName is the durable queue both publisher and consumer
// declare.
const ExerciseQueueName = "catalog.exercises"
