package sweeper

import (
	"context"

	"huddle/config"
	"huddle/infras/scheduler"
	"huddle/internal/domains/meeting/service"

	"github.com/rs/zerolog/log"
)

const defaultSweepIntervalSeconds = 3

// Sweeper drives the meeting lifecycle off the request path: one job moves
// due meetings into in_progress, the other moves expired ones into ended.
type Sweeper struct {
	service   service.Meeting
	scheduler scheduler.Scheduler
	cfg       *config.Config
}

func New(svc service.Meeting, sched scheduler.Scheduler, cfg *config.Config) *Sweeper {
	return &Sweeper{
		service:   svc,
		scheduler: sched,
		cfg:       cfg,
	}
}

// Run registers both sweep jobs and starts the scheduler. It is a no-op when
// the scheduler is disabled by configuration.
func (s *Sweeper) Run() {
	if !s.cfg.Scheduler.Enable {
		log.Info().Msg("meeting sweeper disabled by configuration")

		return
	}

	interval := s.cfg.Scheduler.SweepIntervalSeconds
	if interval <= 0 {
		interval = defaultSweepIntervalSeconds
	}

	s.scheduler.Every(interval, "meeting.sweep_start", func() {
		s.service.SweepStart(context.Background())
	})

	s.scheduler.Every(interval, "meeting.sweep_end", func() {
		s.service.SweepEnd(context.Background())
	})

	s.scheduler.Start()

	log.Info().Int("intervalSeconds", interval).Msg("meeting sweeper started")
}

// Stop drains the scheduler, letting in-flight sweeps finish.
func (s *Sweeper) Stop() {
	s.scheduler.Stop()

	log.Info().Msg("meeting sweeper stopped")
}
