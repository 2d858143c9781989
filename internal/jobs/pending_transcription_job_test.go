package job

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/service"
	"github.com/stretchr/testify/assert"
)

type recordingEnqueuer struct {
	mu    sync.Mutex
	types []string
}

func (r *recordingEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, task.Type())
	return &asynq.TaskInfo{}, nil
}

type pendingLister struct {
	service.TranscriptionService
	limit int
	items []*models.Transcription
	err   error
}

func (p *pendingLister) ListPending(_ context.Context, limit int) ([]*models.Transcription, error) {
	p.limit = limit
	return p.items, p.err
}

func TestRequeuePending(t *testing.T) {
	lister := &pendingLister{items: []*models.Transcription{{ID: 1}, {ID: 2}, {ID: 3}}}
	enq := &recordingEnqueuer{}

	NewPendingTranscriptionJob(lister, enq).RequeuePending()

	assert.Equal(t, 5, lister.limit)
	assert.Len(t, enq.types, 3)
}

func TestRequeuePending_ListError(t *testing.T) {
	lister := &pendingLister{err: errors.New("db down")}
	enq := &recordingEnqueuer{}

	NewPendingTranscriptionJob(lister, enq).RequeuePending()

	assert.Empty(t, enq.types)
}
