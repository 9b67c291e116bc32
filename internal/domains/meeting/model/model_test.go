package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStateApply(t *testing.T) {
	tests := []struct {
		name          string
		state         State
		event         Event
		wantState     State
		wantAvailable *bool
		wantErr       bool
	}{
		{
			name:          "created meeting starts and occupies the room",
			state:         StateCreated,
			event:         EventStart,
			wantState:     StateInProgress,
			wantAvailable: boolPtr(false),
		},
		{
			name:      "created meeting cancels without touching the room",
			state:     StateCreated,
			event:     EventCancel,
			wantState: StateCancelled,
		},
		{
			name:          "in-progress meeting ends and frees the room",
			state:         StateInProgress,
			event:         EventEnd,
			wantState:     StateEnded,
			wantAvailable: boolPtr(true),
		},
		{
			name:          "in-progress meeting cancels and frees the room",
			state:         StateInProgress,
			event:         EventCancel,
			wantState:     StateCancelled,
			wantAvailable: boolPtr(true),
		},
		{
			name:    "created meeting cannot end",
			state:   StateCreated,
			event:   EventEnd,
			wantErr: true,
		},
		{
			name:    "in-progress meeting cannot start again",
			state:   StateInProgress,
			event:   EventStart,
			wantErr: true,
		},
		{
			name:    "cancelled meeting accepts no events",
			state:   StateCancelled,
			event:   EventCancel,
			wantErr: true,
		},
		{
			name:    "ended meeting accepts no events",
			state:   StateEnded,
			event:   EventStart,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transition, err := tt.state.Apply(tt.event)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantState, transition.To)

			if tt.wantAvailable == nil {
				assert.Nil(t, transition.RoomAvailable)
			} else {
				assert.NotNil(t, transition.RoomAvailable)
				assert.Equal(t, *tt.wantAvailable, *transition.RoomAvailable)
			}
		})
	}
}

func TestStateTerminal(t *testing.T) {
	assert.False(t, StateCreated.Terminal())
	assert.False(t, StateInProgress.Terminal())
	assert.True(t, StateCancelled.Terminal())
	assert.True(t, StateEnded.Terminal())
}

func TestOverlaps(t *testing.T) {
	day := func(hour, minute int) time.Time {
		return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
	}

	meeting := Meeting{
		StartDate: day(10, 0),
		EndDate:   day(11, 0),
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "identical range conflicts",
			start: day(10, 0),
			end:   day(11, 0),
			want:  true,
		},
		{
			name:  "contained range conflicts",
			start: day(10, 15),
			end:   day(10, 45),
			want:  true,
		},
		{
			name:  "candidate starting exactly at the end conflicts",
			start: day(11, 0),
			end:   day(12, 0),
			want:  true,
		},
		{
			name:  "candidate ending exactly at the start conflicts",
			start: day(9, 0),
			end:   day(10, 0),
			want:  true,
		},
		{
			name:  "candidate strictly after does not conflict",
			start: day(11, 1),
			end:   day(12, 0),
			want:  false,
		},
		{
			name:  "candidate strictly before does not conflict",
			start: day(8, 0),
			end:   day(9, 59),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meeting.Overlaps(tt.start, tt.end))
		})
	}
}

func TestDueAndExpired(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	meeting := Meeting{
		StartDate: now.Add(-time.Hour),
		EndDate:   now.Add(time.Hour),
	}

	assert.True(t, meeting.Due(now))
	assert.False(t, meeting.Expired(now))

	onTime := Meeting{StartDate: now, EndDate: now}
	assert.True(t, onTime.Due(now), "a meeting starting exactly now is due")
	assert.False(t, onTime.Expired(now), "a meeting ending exactly now is not yet expired")

	past := Meeting{StartDate: now.Add(-2 * time.Hour), EndDate: now.Add(-time.Minute)}
	assert.True(t, past.Expired(now))
}

func TestActiveStates(t *testing.T) {
	assert.ElementsMatch(t, []string{"created", "in_progress"}, ActiveStates())
}
