package queue

import (
	"github.com/maheshrc27/dagbok/internal/service"
)

type Queue struct {
	ts service.TranscriptionService
}

func NewQueue(ts service.TranscriptionService) *Queue {
	return &Queue{
		ts: ts,
	}
}

const TaskTypeProcessTranscription = "transcription:process"

type ProcessTranscriptionPayload struct {
	TranscriptionID int64 `json:"transcription_id"`
}
