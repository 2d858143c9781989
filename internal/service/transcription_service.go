package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/repository"
	"github.com/maheshrc27/dagbok/internal/transfer"
)

const (
	MinTranscriptionLength   = 10
	DefaultTranscriptionName = "New transcription"
	DefaultLanguage          = "pt-BR"
	TranscriptionCategory    = "transcription"
)

type TranscriptionService interface {
	List(ctx context.Context, userEmail string, q transfer.TranscriptionQuery) (*transfer.TranscriptionList, error)
	Create(ctx context.Context, userEmail string, tc *transfer.TranscriptionCreation) (*models.Transcription, error)
	Get(ctx context.Context, id int64, userEmail string) (*models.Transcription, error)
	Remove(ctx context.Context, id int64, userEmail string) error
	Process(ctx context.Context, id int64) error
	ListPending(ctx context.Context, limit int) ([]*models.Transcription, error)
}

type transcriptionService struct {
	tr repository.TranscriptionRepository
	u  repository.UserRepository
	pr repository.PostRepository
}

func NewTranscriptionService(tr repository.TranscriptionRepository, u repository.UserRepository, pr repository.PostRepository) TranscriptionService {
	return &transcriptionService{tr: tr, u: u, pr: pr}
}

func (s *transcriptionService) List(ctx context.Context, userEmail string, q transfer.TranscriptionQuery) (*transfer.TranscriptionList, error) {
	if userEmail == "" {
		return nil, ErrUnauthorized
	}

	status := strings.TrimSpace(q.Status)
	if status != "" && !models.ValidTranscriptionStatus(status) {
		return nil, &ValidationError{Key: "errors.invalidStatus", Message: "invalid status", Fields: []string{"status"}}
	}

	page, limit := NormalizePage(q.Page, q.Limit)
	filters := models.TranscriptionFilters{
		UserEmail: userEmail,
		Status:    status,
		Search:    strings.TrimSpace(q.Search),
	}

	items, err := s.tr.List(ctx, filters, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list transcriptions: %w", err)
	}
	total, err := s.tr.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count transcriptions: %w", err)
	}

	return &transfer.TranscriptionList{
		Transcriptions: items,
		Pagination:     transfer.NewPagination(total, page, limit),
	}, nil
}

func (s *transcriptionService) Create(ctx context.Context, userEmail string, tc *transfer.TranscriptionCreation) (*models.Transcription, error) {
	if userEmail == "" {
		return nil, ErrUnauthorized
	}
	if tc == nil {
		tc = &transfer.TranscriptionCreation{}
	}

	text, ok := tc.Text.(string)
	text = strings.TrimSpace(text)
	if !ok || len([]rune(text)) < MinTranscriptionLength {
		return nil, &ValidationError{
			Key:     "errors.textTooShort",
			Message: fmt.Sprintf("text must be at least %d characters long", MinTranscriptionLength),
			Fields:  []string{"text"},
		}
	}

	t := &models.Transcription{
		Text:      text,
		Title:     strings.TrimSpace(tc.Title),
		UserEmail: userEmail,
		Status:    models.TranscriptionStatusPending,
		Language:  strings.TrimSpace(tc.Language),
	}
	if t.Title == "" {
		t.Title = DefaultTranscriptionName
	}
	if t.Language == "" {
		t.Language = DefaultLanguage
	}

	if _, err := s.tr.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create transcription: %w", err)
	}
	return t, nil
}

// Get returns the transcription only to its owner; others see ErrNotFound.
func (s *transcriptionService) Get(ctx context.Context, id int64, userEmail string) (*models.Transcription, error) {
	t, err := s.tr.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get transcription: %w", err)
	}
	if t == nil || t.UserEmail != userEmail {
		return nil, ErrNotFound
	}
	return t, nil
}

func (s *transcriptionService) Remove(ctx context.Context, id int64, userEmail string) error {
	if userEmail == "" {
		return ErrUnauthorized
	}
	t, err := s.tr.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get transcription: %w", err)
	}
	if t == nil {
		return ErrNotFound
	}
	if t.UserEmail != userEmail {
		return ErrForbidden
	}

	removed, err := s.tr.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("remove transcription: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}

func (s *transcriptionService) ListPending(ctx context.Context, limit int) ([]*models.Transcription, error) {
	return s.tr.ListPending(ctx, limit)
}

// Process turns a transcription into a draft post. The post is stored together
// with the completed status, so a failed attempt leaves no post behind and a
// redelivered task never creates a second one.
func (s *transcriptionService) Process(ctx context.Context, id int64) error {
	t, err := s.tr.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get transcription: %w", err)
	}
	if t == nil {
		return ErrNotFound
	}
	if t.Status == models.TranscriptionStatusCompleted {
		return nil
	}
	if t.PostID != nil {
		return s.tr.UpdateStatus(ctx, id, models.TranscriptionStatusCompleted, "")
	}

	if err := s.tr.UpdateStatus(ctx, id, models.TranscriptionStatusProcessing, ""); err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	if err := s.generatePost(ctx, t); err != nil {
		slog.Error("transcription processing failed", "transcription_id", id, "error", err)
		if uerr := s.tr.UpdateStatus(ctx, id, models.TranscriptionStatusError, err.Error()); uerr != nil {
			slog.Error("unable to record transcription error", "transcription_id", id, "error", uerr)
		}
		return err
	}

	slog.Info("transcription processed", "transcription_id", id)
	return nil
}

func (s *transcriptionService) generatePost(ctx context.Context, t *models.Transcription) error {
	authorName := ""
	user, exists, err := s.u.GetByEmail(ctx, t.UserEmail)
	if err != nil {
		return fmt.Errorf("get author: %w", err)
	}
	if exists {
		authorName = user.Name
	}

	title := t.Title
	content := Paragraphs(t.Text)
	category := TranscriptionCategory
	tags := []string{TranscriptionCategory}
	pc := &transfer.PostCreation{
		Title:    &title,
		Content:  &content,
		Category: &category,
		Tags:     &tags,
	}

	post, err := preparePost(t.UserEmail, authorName, pc)
	if err != nil {
		return fmt.Errorf("generate post: %w", err)
	}
	post.Slug, err = uniqueSlug(ctx, s.pr, slugBase(pc, post.Title), "")
	if err != nil {
		return err
	}

	if err := s.tr.CompleteWithPost(ctx, t.ID, post); err != nil {
		return fmt.Errorf("store generated post: %w", err)
	}
	return nil
}

// Paragraphs renders plain text as escaped <p> elements, one per non-empty
// line.
func Paragraphs(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		b.WriteString("<p>")
		b.WriteString(html.EscapeString(line))
		b.WriteString("</p>")
	}
	return b.String()
}
