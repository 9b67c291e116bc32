package model

import (
	"errors"
	"time"

	"huddle/shared/model"
)

const (
	TableName  = "meetings"
	EntityName = "meeting"

	FieldID          = "id"
	FieldHostID      = "host_id"
	FieldRoomID      = "room_id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldState       = "state"
	FieldStartDate   = "start_date"
	FieldEndDate     = "end_date"
)

// State is the meeting lifecycle state. Transitions between states only
// happen through the transition table below.
type State string

const (
	StateCreated    State = "created"
	StateInProgress State = "in_progress"
	StateCancelled  State = "cancelled"
	StateEnded      State = "ended"
)

// Event is a lifecycle trigger: start and end are fired by the periodic
// sweeps, cancel by an explicit host request.
type Event string

const (
	EventStart  Event = "start"
	EventEnd    Event = "end"
	EventCancel Event = "cancel"
)

var ErrInvalidTransition = errors.New("transition not permitted in current state")

// Transition is one row of the lifecycle table: the state the meeting moves
// to and, when set, the availability the owning room must be left with.
type Transition struct {
	To            State
	RoomAvailable *bool
}

var transitions = map[State]map[Event]Transition{
	StateCreated: {
		EventStart:  {To: StateInProgress, RoomAvailable: boolPtr(false)},
		EventCancel: {To: StateCancelled},
	},
	StateInProgress: {
		EventEnd: {To: StateEnded, RoomAvailable: boolPtr(true)},
		// Cancelling a running meeting frees the room the same way ending
		// it does.
		EventCancel: {To: StateCancelled, RoomAvailable: boolPtr(true)},
	},
}

// Apply resolves the (state, event) pair against the transition table. Pairs
// absent from the table are rejected.
func (s State) Apply(event Event) (Transition, error) {
	transition, ok := transitions[s][event]
	if !ok {
		return Transition{}, ErrInvalidTransition
	}

	return transition, nil
}

// Terminal reports whether no further transitions can leave this state.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// ActiveStates are the states that occupy a room's calendar; cancelled and
// ended meetings no longer count against new bookings.
func ActiveStates() []string {
	return []string{string(StateCreated), string(StateInProgress)}
}

func boolPtr(b bool) *bool {
	return &b
}

type Meeting struct {
	ID          string    `db:"id"`
	HostID      string    `db:"host_id"`
	RoomID      string    `db:"room_id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	State       State     `db:"state"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	model.Metadata
}

// Overlaps reports whether the candidate [start, end) range conflicts with
// this meeting's range. A candidate that exactly touches a boundary counts
// as a conflict; this strictness is relied on by existing clients.
func (m *Meeting) Overlaps(start, end time.Time) bool {
	return !(end.Before(m.StartDate) || start.After(m.EndDate))
}

// Due reports whether the meeting should have started by now.
func (m *Meeting) Due(now time.Time) bool {
	return !m.StartDate.After(now)
}

// Expired reports whether the meeting should have ended by now.
func (m *Meeting) Expired(now time.Time) bool {
	return m.EndDate.Before(now)
}
