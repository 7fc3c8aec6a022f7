package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"packmates/internal/platform/logger"

	"github.com/robfig/cron/v3"
)

// Purger es lo que el scheduler necesita del calendario.
type Purger interface {
	PurgeDeleted(ctx context.Context, retention time.Duration) (int64, error)
}

// Scheduler corre tareas periódicas de mantenimiento.
type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

func NewScheduler(log logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Nop()
	}
	return &Scheduler{
		cron: cron.New(),
		log:  log.With(map[string]any{"component": "jobs"}),
	}
}

// SchedulePurge registra la purga de entradas borradas lógicamente.
// spec es una expresión cron estándar o un descriptor (@daily, @every 1h).
func (s *Scheduler) SchedulePurge(spec string, retention time.Duration, p Purger) error {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return errors.New("empty cron spec")
	}
	if retention <= 0 {
		return errors.New("retention must be positive")
	}

	_, err := s.cron.AddFunc(spec, func() { s.runPurge(retention, p) })
	if err != nil {
		return err
	}
	s.log.Info("purge job scheduled", map[string]any{"spec": spec, "retention": retention.String()})
	return nil
}

func (s *Scheduler) runPurge(retention time.Duration, p Purger) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := p.PurgeDeleted(ctx, retention)
	if err != nil {
		s.log.Error("purge job failed", map[string]any{"error": err.Error()})
		return
	}
	s.log.Debug("purge job done", map[string]any{"purged": n})
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop espera a que terminen los jobs en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}
