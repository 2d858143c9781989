package job

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/queue"
	"github.com/maheshrc27/dagbok/internal/service"
)

const (
	PendingSweepSpec  = "@every 00h10m00s"
	pendingSweepLimit = 5
	sweepTimeout      = time.Minute
)

// PendingTranscriptionJob re-enqueues transcriptions left pending, for example
// when the enqueue after creation failed.
type PendingTranscriptionJob struct {
	ts     service.TranscriptionService
	client queue.Enqueuer
}

func NewPendingTranscriptionJob(ts service.TranscriptionService, client queue.Enqueuer) *PendingTranscriptionJob {
	return &PendingTranscriptionJob{
		ts:     ts,
		client: client,
	}
}

func (j *PendingTranscriptionJob) RequeuePending() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	pending, err := j.ts.ListPending(ctx, pendingSweepLimit)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	var wg sync.WaitGroup

	concurrencyLimit := 2
	semaphore := make(chan struct{}, concurrencyLimit)

	for _, t := range pending {
		wg.Add(1)
		semaphore <- struct{}{}

		go func(t *models.Transcription) {
			defer wg.Done()
			defer func() { <-semaphore }()

			err := queue.EnqueueTranscription(j.client, queue.ProcessTranscriptionPayload{TranscriptionID: t.ID})
			if err != nil {
				slog.Info("unable to requeue transcription", "transcription_id", t.ID, "error", err)
			}
		}(t)
	}

	wg.Wait()
	if len(pending) > 0 {
		slog.Info("pending transcriptions requeued", "count", len(pending))
	}
}
