package models

import "time"

type Transcription struct {
	ID        int64     `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	Title     string    `db:"title" json:"title"`
	UserEmail string    `db:"user_email" json:"userEmail"`
	Status    string    `db:"status" json:"status"` // pending, processing, completed, error
	Error     string    `db:"error" json:"error,omitempty"`
	Language  string    `db:"language" json:"language"`
	PostID    *int64    `db:"post_id" json:"postId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

const (
	TranscriptionStatusPending    = "pending"
	TranscriptionStatusProcessing = "processing"
	TranscriptionStatusCompleted  = "completed"
	TranscriptionStatusError      = "error"
)

func ValidTranscriptionStatus(status string) bool {
	switch status {
	case TranscriptionStatusPending, TranscriptionStatusProcessing, TranscriptionStatusCompleted, TranscriptionStatusError:
		return true
	}
	return false
}

type TranscriptionFilters struct {
	UserEmail string
	Status    string
	Search    string
}
