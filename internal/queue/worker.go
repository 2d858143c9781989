package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/dagbok/internal/service"
)

func (j *Queue) HandleProcessTranscriptionTask(ctx context.Context, task *asynq.Task) error {
	var payload ProcessTranscriptionPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}

	err := j.ts.Process(ctx, payload.TranscriptionID)
	if errors.Is(err, service.ErrNotFound) {
		// Deleted before the worker got to it.
		return fmt.Errorf("transcription %d: %v: %w", payload.TranscriptionID, err, asynq.SkipRetry)
	}
	return err
}

// Register mounts the queue's handlers on mux.
func (j *Queue) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskTypeProcessTranscription, j.HandleProcessTranscriptionTask)
}
