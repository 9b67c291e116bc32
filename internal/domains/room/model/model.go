package model

import (
	"time"

	"huddle/shared/constant"
	"huddle/shared/model"
)

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID        = "id"
	FieldName      = "name"
	FieldCapacity  = "capacity"
	FieldAvailable = "available"
	FieldOpensAt   = "opens_at"
	FieldClosesAt  = "closes_at"

	// MinCapacity is the smallest bookable room; a meeting needs at least a
	// host and one attendee.
	MinCapacity = 2
)

type Room struct {
	ID        string `db:"id"`
	Name      string `db:"name"`
	Capacity  int    `db:"capacity"`
	Available bool   `db:"available"`
	OpensAt   string `db:"opens_at"`
	ClosesAt  string `db:"closes_at"`
	model.Metadata
}

// SupportsRange reports whether the time-of-day components of the candidate
// range fall inside the room's daily window. The comparison is date-agnostic;
// only clock times matter. Windows are stored as zero-padded HH:MM strings so
// lexicographic comparison is chronological.
func (r *Room) SupportsRange(start, end time.Time) bool {
	startOfDay := start.Format(constant.TimeOfDayFmt)
	endOfDay := end.Format(constant.TimeOfDayFmt)

	return startOfDay >= r.OpensAt && endOfDay <= r.ClosesAt
}
