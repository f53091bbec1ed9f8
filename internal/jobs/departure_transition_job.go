package jobs

import (
	"context"
	"log/slog"

	"tourops/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DepartureTransitionJob periodically moves scheduled departures whose
// departure time has passed into the started state.
type DepartureTransitionJob struct {
	handler commands.TransitionDueDeparturesCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewDepartureTransitionJob creates a job that sweeps due departures once a minute.
func NewDepartureTransitionJob(handler commands.TransitionDueDeparturesCommandHandler, logger *slog.Logger) *DepartureTransitionJob {
	return &DepartureTransitionJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "departure_transition_job"),
	}
}

// Start begins the departure transition sweep.
func (j *DepartureTransitionJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewTransitionDueDeparturesCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Departure transition job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Departure transition job started (running every minute)")
	return nil
}

// Stop stops the departure transition job.
func (j *DepartureTransitionJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Departure transition job stopped")
}
