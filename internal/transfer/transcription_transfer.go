package transfer

import "github.com/maheshrc27/dagbok/internal/models"

type TranscriptionCreation struct {
	Text     any    `json:"text"`
	Title    string `json:"title"`
	Language string `json:"language"`
}

type TranscriptionQuery struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type TranscriptionList struct {
	Transcriptions []*models.Transcription `json:"transcriptions"`
	Pagination     Pagination              `json:"pagination"`
}
