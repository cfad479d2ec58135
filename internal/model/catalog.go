package model

import "time"

// MuscleGroup mirrors the `muscle_groups` table. Image is a required
// display asset reference; Description may be empty.
type MuscleGroup struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image"`
}

// Muscle mirrors the `muscles` table. GroupID references muscle_groups.id
// and is validated against an existing row at creation time.
type Muscle struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image,omitempty"`
	LargeImage  string `json:"large_image,omitempty"`
	GroupID     uint64 `json:"group_id"`
}

// Exercise mirrors the `exercises` table plus its two link tables.
// CreatedBy references users.id and establishes ownership for deletion.
// MuscleIDs and GroupIDs hold the link-table associations; they are
// written and removed only as a side effect of exercise create/delete.
// Votes feeds the declared (not yet built) popularity ordering.
type Exercise struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	Video       string    `json:"video,omitempty"`
	CreatedBy   uint64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
	Votes       int64     `json:"votes"`
	MuscleIDs   []uint64  `json:"muscle_ids,omitempty"`
	GroupIDs    []uint64  `json:"group_ids,omitempty"`
}

// Program mirrors the `programs` table.
type Program struct {
	ID          uint64 `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
