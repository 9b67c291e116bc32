package sweeper

import (
	"context"
	"testing"

	"huddle/config"
	"huddle/internal/domains/meeting/model/dto"
	gDto "huddle/shared/dto"

	"github.com/stretchr/testify/assert"
)

// stubScheduler records registrations and lets the test fire ticks manually.
type stubScheduler struct {
	tasks     map[string]func()
	intervals map[string]int
	started   bool
	stopped   bool
}

func newStubScheduler() *stubScheduler {
	return &stubScheduler{
		tasks:     map[string]func(){},
		intervals: map[string]int{},
	}
}

func (s *stubScheduler) Every(seconds int, name string, task func()) {
	s.tasks[name] = task
	s.intervals[name] = seconds
}

func (s *stubScheduler) Start() { s.started = true }
func (s *stubScheduler) Stop()  { s.stopped = true }

// stubMeetingService counts sweep invocations.
type stubMeetingService struct {
	startSweeps int
	endSweeps   int
}

func (s *stubMeetingService) SweepStart(context.Context) { s.startSweeps++ }
func (s *stubMeetingService) SweepEnd(context.Context)   { s.endSweeps++ }

func (s *stubMeetingService) Create(context.Context, dto.CreateMeetingRequest) (dto.MeetingResponse, error) {
	return dto.MeetingResponse{}, nil
}

func (s *stubMeetingService) GetAll(context.Context, gDto.QueryParams, gDto.FilterGroup) (dto.GetMeetingsResponse, error) {
	return dto.GetMeetingsResponse{}, nil
}

func (s *stubMeetingService) Count(context.Context, gDto.QueryParams, gDto.FilterGroup) (int, error) {
	return 0, nil
}

func (s *stubMeetingService) Get(context.Context, string) (dto.MeetingResponse, error) {
	return dto.MeetingResponse{}, nil
}

func (s *stubMeetingService) Cancel(context.Context, string) error { return nil }

func (s *stubMeetingService) UpdateTitle(context.Context, dto.UpdateTitleRequest, string) error {
	return nil
}

func (s *stubMeetingService) UpdateDescription(context.Context, dto.UpdateDescriptionRequest, string) error {
	return nil
}

func (s *stubMeetingService) UpdateDuration(context.Context, dto.UpdateDurationRequest, string) error {
	return nil
}

func TestRunRegistersBothSweeps(t *testing.T) {
	svc := &stubMeetingService{}
	sched := newStubScheduler()

	cfg := &config.Config{}
	cfg.Scheduler.Enable = true
	cfg.Scheduler.SweepIntervalSeconds = 5

	sweeper := New(svc, sched, cfg)
	sweeper.Run()

	assert.True(t, sched.started)
	assert.Len(t, sched.tasks, 2)
	assert.Equal(t, 5, sched.intervals["meeting.sweep_start"])
	assert.Equal(t, 5, sched.intervals["meeting.sweep_end"])

	// The two sweeps are independent jobs.
	sched.tasks["meeting.sweep_start"]()
	sched.tasks["meeting.sweep_start"]()
	sched.tasks["meeting.sweep_end"]()

	assert.Equal(t, 2, svc.startSweeps)
	assert.Equal(t, 1, svc.endSweeps)

	sweeper.Stop()
	assert.True(t, sched.stopped)
}

func TestRunDefaultsTheInterval(t *testing.T) {
	sched := newStubScheduler()

	cfg := &config.Config{}
	cfg.Scheduler.Enable = true

	New(&stubMeetingService{}, sched, cfg).Run()

	assert.Equal(t, defaultSweepIntervalSeconds, sched.intervals["meeting.sweep_start"])
}

func TestRunIsANoOpWhenDisabled(t *testing.T) {
	sched := newStubScheduler()

	New(&stubMeetingService{}, sched, &config.Config{}).Run()

	assert.False(t, sched.started)
	assert.Empty(t, sched.tasks)
}
