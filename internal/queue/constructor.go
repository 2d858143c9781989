package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"
)

// Enqueuer is satisfied by *asynq.Client.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EnqueueTranscription schedules a transcription for processing. The task id
// is derived from the transcription so a pending sweep cannot queue it twice.
func EnqueueTranscription(client Enqueuer, payload ProcessTranscriptionPayload) error {
	taskPayload, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TaskTypeProcessTranscription, taskPayload)

	_, err = client.Enqueue(task,
		asynq.TaskID(fmt.Sprintf("transcription:%d", payload.TranscriptionID)),
		asynq.MaxRetry(3),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		slog.Debug("task already queued", "transcription_id", payload.TranscriptionID)
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info("task enqueued", "type", TaskTypeProcessTranscription, "transcription_id", payload.TranscriptionID)
	return nil
}
