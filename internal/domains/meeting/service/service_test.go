package service

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"huddle/config"
	otelMocks "huddle/infras/otel/mocks"
	"huddle/internal/domains/meeting/mocks"
	"huddle/internal/domains/meeting/model"
	"huddle/internal/domains/meeting/model/dto"
	roomModel "huddle/internal/domains/room/model"
	cacheMocks "huddle/shared/cache/mocks"
	"huddle/shared/constant"
	gDto "huddle/shared/dto"
	"huddle/shared/failure"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

const (
	testHostID = "9f1c5ae0-26a5-4cfa-a9d6-1f4b4a3c1111"
	testRoomID = "1bd877bd-60c2-4b0c-b291-4d78ad902222"
)

type stubClock struct {
	now time.Time
}

func (c stubClock) Now() time.Time {
	return c.now
}

type fixture struct {
	repo  *mocks.MockMeeting
	gate  *mocks.MockRoomGate
	cache *cacheMocks.MockRedisCache
	svc   Meeting
}

func newFixture(t *testing.T, now time.Time) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMeeting(ctrl)
	gate := mocks.NewMockRoomGate(ctrl)
	cacheMock := cacheMocks.NewMockRedisCache(ctrl)

	return fixture{
		repo:  repo,
		gate:  gate,
		cache: cacheMock,
		svc:   New(repo, gate, stubClock{now: now}, &config.Config{}, cacheMock, otelMocks.NewOtel()),
	}
}

// expectInvalidation allows the asynchronous cache invalidation and returns a
// channel that receives once per completed invalidation, so tests can wait for
// the goroutine instead of racing the mock controller.
func expectInvalidation(f fixture) chan struct{} {
	done := make(chan struct{}, 8)

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), cacheGetAllMeeting+"*").Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), cacheCountMeeting+"*").DoAndReturn(func(context.Context, string) error {
		done <- struct{}{}

		return nil
	}).AnyTimes()

	return done
}

func hostContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, testHostID)
}

func openRoom() roomModel.Room {
	return roomModel.Room{
		ID:        testRoomID,
		Name:      "War Room",
		Capacity:  6,
		Available: true,
		OpensAt:   "08:00",
		ClosesAt:  "18:00",
	}
}

func createRequest() dto.CreateMeetingRequest {
	return dto.CreateMeetingRequest{
		RoomID:    testRoomID,
		Title:     "Quarterly planning",
		StartDate: "2025-03-10T10:00:00Z",
		EndDate:   "2025-03-10T11:00:00Z",
	}
}

func meetingAt(state model.State, start, end time.Time) model.Meeting {
	return model.Meeting{
		ID:        "5f0db2dd-8a53-4c58-8f0e-0c2d3e4f5a6b",
		HostID:    testHostID,
		RoomID:    testRoomID,
		Title:     "Quarterly planning",
		State:     state,
		StartDate: start,
		EndDate:   end,
	}
}

func TestCreateMeetingAdmits(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	f := newFixture(t, now)
	done := expectInvalidation(f)

	f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
	f.gate.EXPECT().IsAvailable(gomock.Any(), testRoomID).Return(true, nil)

	// An active meeting later the same day does not collide with 10:00-11:00.
	other := meetingAt(model.StateCreated,
		time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC))
	f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{other}, nil)

	var inserted model.Meeting
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Meeting) error {
		inserted = m

		return nil
	})

	res, err := f.svc.Create(hostContext(), createRequest())

	assert.NoError(t, err)
	assert.Equal(t, string(model.StateCreated), res.State)
	assert.Equal(t, testRoomID, res.RoomID)
	assert.Equal(t, testHostID, inserted.HostID)
	assert.Equal(t, model.StateCreated, inserted.State)
	assert.NotEmpty(t, inserted.ID)

	<-done
}

func TestCreateMeetingRejections(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ctx      context.Context
		mutate   func(req *dto.CreateMeetingRequest)
		expect   func(f fixture)
		wantCode int
		wantMsg  string
	}{
		{
			name:     "no authenticated user",
			ctx:      context.Background(),
			expect:   func(fixture) {},
			wantCode: http.StatusUnauthorized,
			wantMsg:  "missing authenticated user",
		},
		{
			name: "unknown room",
			ctx:  hostContext(),
			expect: func(f fixture) {
				f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(roomModel.Room{}, failure.NotFound("room not found"))
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "room not found",
		},
		{
			name: "unparseable dates",
			ctx:  hostContext(),
			mutate: func(req *dto.CreateMeetingRequest) {
				req.StartDate = "10 March 2025"
			},
			expect: func(f fixture) {
				f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "dates must be RFC 3339 timestamps",
		},
		{
			name: "start after end",
			ctx:  hostContext(),
			mutate: func(req *dto.CreateMeetingRequest) {
				req.StartDate = "2025-03-10T12:00:00Z"
				req.EndDate = "2025-03-10T11:00:00Z"
			},
			expect: func(f fixture) {
				f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "meeting start must not be after its end",
		},
		{
			name: "outside the room window",
			ctx:  hostContext(),
			mutate: func(req *dto.CreateMeetingRequest) {
				req.StartDate = "2025-03-10T07:00:00Z"
				req.EndDate = "2025-03-10T09:00:00Z"
			},
			expect: func(f fixture) {
				f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
			},
			wantCode: http.StatusBadRequest,
			wantMsg:  "meeting falls outside the room availability window",
		},
		{
			name: "room gate closed",
			ctx:  hostContext(),
			expect: func(f fixture) {
				f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
				f.gate.EXPECT().IsAvailable(gomock.Any(), testRoomID).Return(false, nil)
			},
			wantCode: http.StatusConflict,
			wantMsg:  "room is unavailable",
		},
		{
			name: "overlapping active meeting",
			ctx:  hostContext(),
			expect: func(f fixture) {
				f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
				f.gate.EXPECT().IsAvailable(gomock.Any(), testRoomID).Return(true, nil)

				existing := meetingAt(model.StateInProgress,
					time.Date(2025, 3, 10, 10, 30, 0, 0, time.UTC),
					time.Date(2025, 3, 10, 11, 30, 0, 0, time.UTC))
				f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{existing}, nil)
			},
			wantCode: http.StatusConflict,
			wantMsg:  "room is already booked for the requested time range",
		},
		{
			name: "back-to-back booking still conflicts",
			ctx:  hostContext(),
			expect: func(f fixture) {
				f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
				f.gate.EXPECT().IsAvailable(gomock.Any(), testRoomID).Return(true, nil)

				// Existing meeting ends exactly when the request starts.
				existing := meetingAt(model.StateCreated,
					time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
					time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC))
				f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{existing}, nil)
			},
			wantCode: http.StatusConflict,
			wantMsg:  "room is already booked for the requested time range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, now)
			tt.expect(f)

			req := createRequest()
			if tt.mutate != nil {
				tt.mutate(&req)
			}

			_, err := f.svc.Create(tt.ctx, req)

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))
			assert.EqualError(t, err, tt.wantMsg)
		})
	}
}

func TestCancelMeeting(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	t.Run("meeting not found", func(t *testing.T) {
		f := newFixture(t, now)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Meeting{}, nil)

		err := f.svc.Cancel(hostContext(), "missing-id")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("non-host is rejected before any state check", func(t *testing.T) {
		f := newFixture(t, now)

		meeting := meetingAt(model.StateEnded, start, end)
		meeting.HostID = "someone-else"
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meeting, nil)

		err := f.svc.Cancel(hostContext(), meeting.ID)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
		assert.EqualError(t, err, "only the host may modify this meeting")
	})

	t.Run("terminal meeting cannot be cancelled", func(t *testing.T) {
		f := newFixture(t, now)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meetingAt(model.StateCancelled, start, end), nil)

		err := f.svc.Cancel(hostContext(), "id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "meeting cannot be cancelled in its current state")
	})

	t.Run("created meeting cancels without touching the room", func(t *testing.T) {
		f := newFixture(t, now)
		done := expectInvalidation(f)

		meeting := meetingAt(model.StateCreated, end, end.Add(time.Hour))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meeting, nil)

		var captured gDto.FilterGroup
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
				captured = filter

				assert.Equal(t, string(model.StateCancelled), fields[model.FieldState])
				assert.Equal(t, testHostID, fields[constant.FieldModifiedBy])

				return nil
			})

		err := f.svc.Cancel(hostContext(), meeting.ID)

		assert.NoError(t, err)
		// The current state is part of the predicate so a replay is a no-op.
		assert.Len(t, captured.Filters, 2)

		<-done
	})

	t.Run("in-progress meeting cancels and frees the room", func(t *testing.T) {
		f := newFixture(t, now)
		done := expectInvalidation(f)

		meeting := meetingAt(model.StateInProgress, start, end)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meeting, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.gate.EXPECT().SetAvailable(gomock.Any(), testRoomID, true).Return(nil)

		err := f.svc.Cancel(hostContext(), meeting.ID)

		assert.NoError(t, err)

		<-done
	})
}

func TestUpdateTitle(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	end := now.Add(2 * time.Hour)

	t.Run("non-host is rejected", func(t *testing.T) {
		f := newFixture(t, now)

		meeting := meetingAt(model.StateCreated, start, end)
		meeting.HostID = "someone-else"
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meeting, nil)

		err := f.svc.UpdateTitle(hostContext(), dto.UpdateTitleRequest{Title: "New title"}, meeting.ID)

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("terminal meeting is immutable", func(t *testing.T) {
		f := newFixture(t, now)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meetingAt(model.StateEnded, start, end), nil)

		err := f.svc.UpdateTitle(hostContext(), dto.UpdateTitleRequest{Title: "New title"}, "id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "meeting can no longer be modified")
	})

	t.Run("host renames an active meeting", func(t *testing.T) {
		f := newFixture(t, now)
		done := expectInvalidation(f)

		meeting := meetingAt(model.StateInProgress, start, end)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meeting, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "New title", fields[model.FieldTitle])

				return nil
			})

		err := f.svc.UpdateTitle(hostContext(), dto.UpdateTitleRequest{Title: "New title"}, meeting.ID)

		assert.NoError(t, err)

		<-done
	})
}

func TestUpdateDuration(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	start := now.Add(time.Hour)
	end := now.Add(2 * time.Hour)

	req := dto.UpdateDurationRequest{
		StartDate: "2025-03-10T15:00:00Z",
		EndDate:   "2025-03-10T16:00:00Z",
	}

	t.Run("only created meetings can move", func(t *testing.T) {
		f := newFixture(t, now)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meetingAt(model.StateInProgress, start, end), nil)

		err := f.svc.UpdateDuration(hostContext(), req, "id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "duration can only change before the meeting starts")
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		f := newFixture(t, now)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meetingAt(model.StateCreated, start, end), nil)

		inverted := dto.UpdateDurationRequest{
			StartDate: "2025-03-10T16:00:00Z",
			EndDate:   "2025-03-10T15:00:00Z",
		}

		err := f.svc.UpdateDuration(hostContext(), inverted, "id")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
		assert.EqualError(t, err, "meeting start must not be after its end")
	})

	t.Run("host moves a created meeting", func(t *testing.T) {
		f := newFixture(t, now)
		done := expectInvalidation(f)

		meeting := meetingAt(model.StateCreated, start, end)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meeting, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC), fields[model.FieldStartDate].(time.Time).UTC())
				assert.Equal(t, now, fields[constant.FieldModifiedAt])
				assert.Equal(t, testHostID, fields[constant.FieldModifiedBy])

				return nil
			})

		err := f.svc.UpdateDuration(hostContext(), req, meeting.ID)

		assert.NoError(t, err)

		<-done
	})
}

func TestSweepStart(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("due meetings start, future meetings wait", func(t *testing.T) {
		f := newFixture(t, now)
		done := expectInvalidation(f)

		due := meetingAt(model.StateCreated, now.Add(-time.Minute), now.Add(time.Hour))
		future := meetingAt(model.StateCreated, now.Add(time.Hour), now.Add(2*time.Hour))
		future.ID = "4d9f6c3b-1111-4eee-9c1e-aaaaaaaaaaaa"

		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{due, future}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, string(model.StateInProgress), fields[model.FieldState])
				assert.Equal(t, constant.SystemActor, fields[constant.FieldModifiedBy])
				assert.Len(t, filter.Filters, 2)

				return nil
			})
		f.gate.EXPECT().SetAvailable(gomock.Any(), testRoomID, false).Return(nil)

		f.svc.SweepStart(context.Background())

		<-done
	})

	t.Run("a second immediate sweep is a no-op", func(t *testing.T) {
		f := newFixture(t, now)

		// Once the first sweep has transitioned everything due, the created
		// scan comes back empty and nothing else is touched.
		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{}, nil)

		f.svc.SweepStart(context.Background())
	})

	t.Run("a failed transition is retried next tick", func(t *testing.T) {
		f := newFixture(t, now)

		due := meetingAt(model.StateCreated, now.Add(-time.Minute), now.Add(time.Hour))
		broken := meetingAt(model.StateCreated, now.Add(-time.Minute), now.Add(time.Hour))
		broken.ID = "0a7e4f6d-2222-4a8b-8d9c-bbbbbbbbbbbb"

		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{broken, due}, nil)

		gomock.InOrder(
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection reset")),
			f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
		)
		f.gate.EXPECT().SetAvailable(gomock.Any(), testRoomID, false).Return(nil)

		done := expectInvalidation(f)

		f.svc.SweepStart(context.Background())

		<-done
	})

	t.Run("a failed listing aborts the tick", func(t *testing.T) {
		f := newFixture(t, now)
		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return(nil, errors.New("connection reset"))

		f.svc.SweepStart(context.Background())
	})
}

func TestSweepEnd(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("expired meetings end and free their rooms", func(t *testing.T) {
		f := newFixture(t, now)
		done := expectInvalidation(f)

		expired := meetingAt(model.StateInProgress, now.Add(-2*time.Hour), now.Add(-time.Minute))
		running := meetingAt(model.StateInProgress, now.Add(-time.Hour), now.Add(time.Hour))
		running.ID = "4d9f6c3b-3333-4eee-9c1e-cccccccccccc"

		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{expired, running}, nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, string(model.StateEnded), fields[model.FieldState])

				return nil
			})
		f.gate.EXPECT().SetAvailable(gomock.Any(), testRoomID, true).Return(nil)

		f.svc.SweepEnd(context.Background())

		<-done
	})

	t.Run("a meeting ending exactly now is left running", func(t *testing.T) {
		f := newFixture(t, now)

		boundary := meetingAt(model.StateInProgress, now.Add(-time.Hour), now)
		f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{boundary}, nil)

		f.svc.SweepEnd(context.Background())
	})
}

func TestGetMeeting(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run("cache miss falls through to the repository", func(t *testing.T) {
		f := newFixture(t, now)

		meeting := meetingAt(model.StateCreated, now, now.Add(time.Hour))
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(meeting, nil)

		saved := make(chan struct{}, 1)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(context.Context, string, any, int) error {
				saved <- struct{}{}

				return nil
			}).AnyTimes()

		res, err := f.svc.Get(context.Background(), meeting.ID)

		assert.NoError(t, err)
		assert.Equal(t, meeting.ID, res.ID)
		assert.Equal(t, string(model.StateCreated), res.State)

		<-saved
	})

	t.Run("cache hit skips the repository", func(t *testing.T) {
		f := newFixture(t, now)

		cached := dto.MeetingResponse{ID: "cached-id", State: string(model.StateEnded)}
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).SetArg(2, cached).Return(nil)

		res, err := f.svc.Get(context.Background(), "cached-id")

		assert.NoError(t, err)
		assert.Equal(t, cached, res)
	})

	t.Run("unknown meeting", func(t *testing.T) {
		f := newFixture(t, now)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Meeting{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
		assert.EqualError(t, err, "meeting not found")
	})
}

// The full lifecycle: admission succeeds, the start sweep closes the gate, a
// competing booking is turned away, and the end sweep reopens the gate.
func TestLifecycleClosesAndReopensTheGate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 59, 0, 0, time.UTC)
	f := newFixture(t, now)
	done := expectInvalidation(f)

	// Admission.
	f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
	f.gate.EXPECT().IsAvailable(gomock.Any(), testRoomID).Return(true, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return(nil, nil)

	var booked model.Meeting
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, m model.Meeting) error {
		booked = m

		return nil
	})

	_, err := f.svc.Create(hostContext(), createRequest())
	assert.NoError(t, err)
	<-done

	// The start sweep runs once the start has passed.
	booked.StartDate = now.Add(-time.Minute)
	f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{booked}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.gate.EXPECT().SetAvailable(gomock.Any(), testRoomID, false).Return(nil)

	f.svc.SweepStart(context.Background())
	<-done

	// A second booking for the same room now sees a closed gate.
	f.gate.EXPECT().GetRoom(gomock.Any(), testRoomID).Return(openRoom(), nil)
	f.gate.EXPECT().IsAvailable(gomock.Any(), testRoomID).Return(false, nil)

	_, err = f.svc.Create(hostContext(), createRequest())
	assert.Equal(t, http.StatusConflict, failure.GetCode(err))

	// The end sweep reopens the gate once the meeting expires.
	booked.State = model.StateInProgress
	booked.EndDate = now.Add(-time.Second)
	f.repo.EXPECT().GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any()).Return([]model.Meeting{booked}, nil)
	f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	f.gate.EXPECT().SetAvailable(gomock.Any(), testRoomID, true).Return(nil)

	f.svc.SweepEnd(context.Background())
	<-done
}
