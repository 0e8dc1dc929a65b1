package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/fieldsync/fieldsync"
)

const (
	syncTaskType = "fieldsync:sync"
	syncQueue    = "sync"
)

type syncTaskPayload struct {
	Trigger string `json:"trigger"`
}

// processSync runs a pass for a queued sync task. A pass already running elsewhere
// is not an error: the next tick picks up what is left.
func (app *fieldSyncInstance) processSync(ctx context.Context, t *asynq.Task) error {
	ctx, span := otel.Tracer("fieldsync.worker").Start(ctx, "Process Sync Task")
	defer span.End()

	var payload syncTaskPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logrus.Error(err)
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	report, err := app.fieldSync.Sync(ctx)
	if err != nil {
		if errors.Is(err, fieldsync.ErrSyncInProgress) {
			logrus.Infof("sync task (%s) skipped: pass already running", payload.Trigger)
			return nil
		}
		return err
	}

	logrus.Infof(" [*] Sync pass %s processed %d records, %d succeeded", report.PassID, report.Total, report.Succeeded)
	return nil
}

func newSyncTask(trigger string) (*asynq.Task, error) {
	data, err := json.Marshal(syncTaskPayload{Trigger: trigger})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(syncTaskType, data, asynq.Queue(syncQueue), asynq.MaxRetry(0)), nil
}

// workerCommands runs the sync pass as an asynq periodic task, for hosted deployments
// where several workers share one Redis.
func workerCommands(app *fieldSyncInstance) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workers",
		Short: "start the periodic sync worker",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.cnf.Redis.Dns == "" {
				return errors.New("workers need a redis dns")
			}
			if err := app.connect(); err != nil {
				return err
			}

			redisOpt := app.redis.AsynqOpt()

			task, err := newSyncTask("schedule")
			if err != nil {
				return err
			}
			scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{})
			entryID, err := scheduler.Register(fmt.Sprintf("@every %s", app.cnf.Sync.Interval()), task, asynq.Unique(app.cnf.Sync.Interval()))
			if err != nil {
				return fmt.Errorf("error registering sync schedule: %w", err)
			}
			logrus.Infof("registered sync schedule %s every %s", entryID, app.cnf.Sync.Interval())

			if err := scheduler.Start(); err != nil {
				return fmt.Errorf("could not start scheduler: %w", err)
			}
			defer scheduler.Shutdown()

			srv := asynq.NewServer(redisOpt, asynq.Config{
				Concurrency: 1,
				Queues:      map[string]int{syncQueue: 1},
			})

			mux := asynq.NewServeMux()
			mux.HandleFunc(syncTaskType, app.processSync)

			if err := srv.Run(mux); err != nil {
				return fmt.Errorf("could not run server: %w", err)
			}
			return nil
		},
	}

	return cmd
}
