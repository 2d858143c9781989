package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/maheshrc27/dagbok/internal/models"
)

type TranscriptionRepository interface {
	Create(ctx context.Context, t *models.Transcription) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Transcription, error)
	List(ctx context.Context, filters models.TranscriptionFilters, limit, skip int) ([]*models.Transcription, error)
	Count(ctx context.Context, filters models.TranscriptionFilters) (int, error)
	ListPending(ctx context.Context, limit int) ([]*models.Transcription, error)
	UpdateStatus(ctx context.Context, id int64, status, errMsg string) error
	// CompleteWithPost stores the post generated from transcription id and
	// marks the transcription completed, atomically.
	CompleteWithPost(ctx context.Context, id int64, post *models.Post) error
	Remove(ctx context.Context, id int64) (bool, error)
}

type transcriptionRepository struct {
	db *sql.DB
}

func NewTranscriptionRepository(db *sql.DB) TranscriptionRepository {
	return &transcriptionRepository{db: db}
}

const transcriptionColumns = "id, text, title, user_email, status, error, language, post_id, created_at, updated_at"

func scanTranscription(row rowScanner) (*models.Transcription, error) {
	var t models.Transcription
	var postID sql.NullInt64
	err := row.Scan(&t.ID, &t.Text, &t.Title, &t.UserEmail, &t.Status, &t.Error, &t.Language, &postID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if postID.Valid {
		t.PostID = &postID.Int64
	}
	return &t, nil
}

func (r *transcriptionRepository) Create(ctx context.Context, t *models.Transcription) (int64, error) {
	query := `
		INSERT INTO transcriptions (text, title, user_email, status, language)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query, t.Text, t.Title, t.UserEmail, t.Status, t.Language).
		Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return t.ID, nil
}

func (r *transcriptionRepository) GetByID(ctx context.Context, id int64) (*models.Transcription, error) {
	query := "SELECT " + transcriptionColumns + " FROM transcriptions WHERE id = $1"
	t, err := scanTranscription(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return t, nil
}

func transcriptionWhere(filters models.TranscriptionFilters) (string, []any) {
	var conds []string
	var args []any

	if filters.UserEmail != "" {
		args = append(args, filters.UserEmail)
		conds = append(conds, fmt.Sprintf("user_email = $%d", len(args)))
	}
	if filters.Status != "" {
		args = append(args, filters.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+escapeLike(filters.Search)+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR text ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *transcriptionRepository) list(ctx context.Context, query string, args ...any) ([]*models.Transcription, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	transcriptions := []*models.Transcription{}
	for rows.Next() {
		t, err := scanTranscription(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		transcriptions = append(transcriptions, t)
	}
	return transcriptions, rows.Err()
}

func (r *transcriptionRepository) List(ctx context.Context, filters models.TranscriptionFilters, limit, skip int) ([]*models.Transcription, error) {
	where, args := transcriptionWhere(filters)
	args = append(args, limit, skip)
	query := fmt.Sprintf("SELECT %s FROM transcriptions%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		transcriptionColumns, where, len(args)-1, len(args))
	return r.list(ctx, query, args...)
}

func (r *transcriptionRepository) Count(ctx context.Context, filters models.TranscriptionFilters) (int, error) {
	where, args := transcriptionWhere(filters)

	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transcriptions"+where, args...).Scan(&total)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return total, nil
}

// ListPending returns the oldest pending transcriptions first.
func (r *transcriptionRepository) ListPending(ctx context.Context, limit int) ([]*models.Transcription, error) {
	query := "SELECT " + transcriptionColumns + " FROM transcriptions WHERE status = $1 ORDER BY created_at ASC LIMIT $2"
	return r.list(ctx, query, models.TranscriptionStatusPending, limit)
}

func (r *transcriptionRepository) UpdateStatus(ctx context.Context, id int64, status, errMsg string) error {
	query := `
		UPDATE transcriptions
		SET status = $1,
			error = $2,
			updated_at = NOW()
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, errMsg, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *transcriptionRepository) CompleteWithPost(ctx context.Context, id int64, post *models.Post) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	defer tx.Rollback()

	if err := insertPost(ctx, tx, post); err != nil {
		return err
	}

	query := `
		UPDATE transcriptions
		SET post_id = $1,
			status = $2,
			error = '',
			updated_at = NOW()
		WHERE id = $3
	`
	if _, err := tx.ExecContext(ctx, query, post.ID, models.TranscriptionStatusCompleted, id); err != nil {
		slog.Info(err.Error())
		return err
	}

	if err := tx.Commit(); err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *transcriptionRepository) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transcriptions WHERE id = $1`, id)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
