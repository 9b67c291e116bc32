// Package scheduler wraps the cron runner behind a small interface so the
// periodic sweeps can be registered by interval and replaced with a manual
// tick source in tests.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Scheduler registers tasks on a fixed cadence and runs them on its own
// goroutines, independent of the request path.
type Scheduler interface {
	Every(seconds int, name string, task func())
	Start()
	Stop()
}

type cronScheduler struct {
	cron *cron.Cron
}

// New returns a Scheduler backed by a seconds-resolution cron runner.
func New() Scheduler {
	return &cronScheduler{
		cron: cron.New(cron.WithSeconds()),
	}
}

func (s *cronScheduler) Every(seconds int, name string, task func()) {
	spec := fmt.Sprintf("@every %ds", seconds)

	if _, err := s.cron.AddFunc(spec, task); err != nil {
		log.Fatal().Err(err).Str("task", name).Msg("Failed to register scheduled task")
	}

	log.Info().Str("task", name).Int("intervalSeconds", seconds).Msg("Registered scheduled task")
}

func (s *cronScheduler) Start() {
	s.cron.Start()
}

func (s *cronScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
