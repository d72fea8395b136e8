package tasks

import (
	"context"

	"github.com/lysyi3m/fvwm-rss/app/config"
	log "github.com/sirupsen/logrus"
)

// Runner processes feeds one at a time, in order, into a single output.
type Runner struct {
	pipeline *Pipeline
}

func NewRunner(pipeline *Pipeline) *Runner {
	return &Runner{pipeline: pipeline}
}

// Run stops at the first error. Feed-level problems never surface here, so
// an error means cancellation or a broken output.
func (r *Runner) Run(ctx context.Context, feeds []config.FeedConfig) error {
	log.WithFields(log.Fields{"count": len(feeds)}).Debug("Processing feeds")

	for _, feedConfig := range feeds {
		if err := r.executeTask(ctx, NewBuildMenuTask(feedConfig, r.pipeline)); err != nil {
			return err
		}
	}

	return nil
}

func (r *Runner) executeTask(ctx context.Context, task TaskInterface) error {
	task.Start()

	if err := task.Execute(ctx); err != nil {
		log.WithFields(log.Fields{
			"type":     string(task.GetType()),
			"id":       task.GetID(),
			"feed":     task.GetFeedName(),
			"duration": task.GetDuration(),
			"error":    err,
		}).Error("Task execution failed")
		return err
	}

	return nil
}
