package service

import (
	"context"

	"github.com/maheshrc27/dagbok/internal/models"
)

type mockPostRepo struct {
	CreateFunc     func(ctx context.Context, post *models.Post) (int64, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*models.Post, error)
	GetBySlugFunc  func(ctx context.Context, slug string) (*models.Post, error)
	SlugExistsFunc func(ctx context.Context, slug string) (bool, error)
	ListFunc       func(ctx context.Context, filters models.PostFilters, limit, skip int) ([]*models.Post, error)
	CountFunc      func(ctx context.Context, filters models.PostFilters) (int, error)
	UpdateFunc     func(ctx context.Context, post *models.Post) error
	RemoveFunc     func(ctx context.Context, id int64) (bool, error)
}

func (m *mockPostRepo) Create(ctx context.Context, post *models.Post) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, post)
	}
	post.ID = 1
	return 1, nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepo) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	if m.GetBySlugFunc != nil {
		return m.GetBySlugFunc(ctx, slug)
	}
	return nil, nil
}

func (m *mockPostRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	if m.SlugExistsFunc != nil {
		return m.SlugExistsFunc(ctx, slug)
	}
	return false, nil
}

func (m *mockPostRepo) List(ctx context.Context, filters models.PostFilters, limit, skip int) ([]*models.Post, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters, limit, skip)
	}
	return []*models.Post{}, nil
}

func (m *mockPostRepo) Count(ctx context.Context, filters models.PostFilters) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filters)
	}
	return 0, nil
}

func (m *mockPostRepo) Update(ctx context.Context, post *models.Post) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, post)
	}
	return nil
}

func (m *mockPostRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id)
	}
	return true, nil
}

type mockTranscriptionRepo struct {
	CreateFunc       func(ctx context.Context, t *models.Transcription) (int64, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*models.Transcription, error)
	ListFunc         func(ctx context.Context, filters models.TranscriptionFilters, limit, skip int) ([]*models.Transcription, error)
	CountFunc        func(ctx context.Context, filters models.TranscriptionFilters) (int, error)
	ListPendingFunc  func(ctx context.Context, limit int) ([]*models.Transcription, error)
	UpdateStatusFunc func(ctx context.Context, id int64, status, errMsg string) error
	CompleteFunc     func(ctx context.Context, id int64, post *models.Post) error
	RemoveFunc       func(ctx context.Context, id int64) (bool, error)
}

func (m *mockTranscriptionRepo) Create(ctx context.Context, t *models.Transcription) (int64, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	t.ID = 1
	return 1, nil
}

func (m *mockTranscriptionRepo) GetByID(ctx context.Context, id int64) (*models.Transcription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTranscriptionRepo) List(ctx context.Context, filters models.TranscriptionFilters, limit, skip int) ([]*models.Transcription, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filters, limit, skip)
	}
	return []*models.Transcription{}, nil
}

func (m *mockTranscriptionRepo) Count(ctx context.Context, filters models.TranscriptionFilters) (int, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx, filters)
	}
	return 0, nil
}

func (m *mockTranscriptionRepo) ListPending(ctx context.Context, limit int) ([]*models.Transcription, error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, limit)
	}
	return nil, nil
}

func (m *mockTranscriptionRepo) UpdateStatus(ctx context.Context, id int64, status, errMsg string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status, errMsg)
	}
	return nil
}

func (m *mockTranscriptionRepo) CompleteWithPost(ctx context.Context, id int64, post *models.Post) error {
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, id, post)
	}
	post.ID = 1
	return nil
}

func (m *mockTranscriptionRepo) Remove(ctx context.Context, id int64) (bool, error) {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id)
	}
	return true, nil
}

type mockUserRepo struct {
	GetByIDFunc    func(ctx context.Context, id int64) (*models.User, bool, error)
	GetByEmailFunc func(ctx context.Context, email string) (*models.User, bool, error)
	UpsertFunc     func(ctx context.Context, user *models.User) (int64, error)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, false, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, false, nil
}

func (m *mockUserRepo) Upsert(ctx context.Context, user *models.User) (int64, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, user)
	}
	return 1, nil
}

type mockStorage struct {
	uploads map[string][]byte
	err     error
}

func (m *mockStorage) Upload(_ context.Context, key string, file []byte, _ string) error {
	if m.err != nil {
		return m.err
	}
	if m.uploads == nil {
		m.uploads = map[string][]byte{}
	}
	m.uploads[key] = file
	return nil
}

func (m *mockStorage) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}
