package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSupportsRange(t *testing.T) {
	room := Room{
		OpensAt:  "08:00",
		ClosesAt: "18:00",
	}

	at := func(hour, minute int) time.Time {
		return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "range inside the window",
			start: at(9, 0),
			end:   at(10, 0),
			want:  true,
		},
		{
			name:  "range matching the window exactly",
			start: at(8, 0),
			end:   at(18, 0),
			want:  true,
		},
		{
			name:  "start before opening",
			start: at(7, 59),
			end:   at(10, 0),
			want:  false,
		},
		{
			name:  "end after closing",
			start: at(17, 0),
			end:   at(18, 1),
			want:  false,
		},
		{
			name:  "date is irrelevant, only clock time matters",
			start: time.Date(2031, 12, 24, 9, 0, 0, 0, time.UTC),
			end:   time.Date(2031, 12, 24, 17, 0, 0, 0, time.UTC),
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, room.SupportsRange(tt.start, tt.end))
		})
	}
}
