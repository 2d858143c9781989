package handlers

import (
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/dagbok/internal/api/middleware"
	"github.com/maheshrc27/dagbok/internal/i18n"
	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/transfer"
)

var errUnexpected = errors.New("unexpected call")

var testCatalog = i18n.MustLoad()

// signedIn stands in for the auth middleware.
func signedIn(s *models.Session) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(middleware.LocalUserID, s.UserID)
		c.Locals(middleware.LocalEmail, s.Email)
		c.Locals(middleware.LocalName, s.Name)
		c.Locals(middleware.LocalSession, s)
		c.Locals(middleware.LocalSessionToken, "token")
		return c.Next()
	}
}

var ana = &models.Session{ID: "s1", UserID: 1, Email: "ana@example.com", Name: "Ana", Provider: "github"}

// ------------------------------------------------------------------ posts

type mockPostService struct {
	ListFunc      func(ctx context.Context, viewerEmail string, q transfer.PostQuery) (*transfer.PostList, error)
	CreateFunc    func(ctx context.Context, authorEmail, authorName string, pc *transfer.PostCreation) (*models.Post, error)
	GetByIDFunc   func(ctx context.Context, id int64, viewerEmail string) (*models.Post, error)
	GetBySlugFunc func(ctx context.Context, slug, viewerEmail string) (*models.Post, error)
	UpdateFunc    func(ctx context.Context, id int64, viewerEmail string, pc *transfer.PostCreation) (*models.Post, error)
	RemoveFunc    func(ctx context.Context, id int64, viewerEmail string) error
}

func (m *mockPostService) List(ctx context.Context, viewerEmail string, q transfer.PostQuery) (*transfer.PostList, error) {
	if m.ListFunc == nil {
		return nil, errUnexpected
	}
	return m.ListFunc(ctx, viewerEmail, q)
}

func (m *mockPostService) Create(ctx context.Context, authorEmail, authorName string, pc *transfer.PostCreation) (*models.Post, error) {
	if m.CreateFunc == nil {
		return nil, errUnexpected
	}
	return m.CreateFunc(ctx, authorEmail, authorName, pc)
}

func (m *mockPostService) GetByID(ctx context.Context, id int64, viewerEmail string) (*models.Post, error) {
	if m.GetByIDFunc == nil {
		return nil, errUnexpected
	}
	return m.GetByIDFunc(ctx, id, viewerEmail)
}

func (m *mockPostService) GetBySlug(ctx context.Context, slug, viewerEmail string) (*models.Post, error) {
	if m.GetBySlugFunc == nil {
		return nil, errUnexpected
	}
	return m.GetBySlugFunc(ctx, slug, viewerEmail)
}

func (m *mockPostService) Update(ctx context.Context, id int64, viewerEmail string, pc *transfer.PostCreation) (*models.Post, error) {
	if m.UpdateFunc == nil {
		return nil, errUnexpected
	}
	return m.UpdateFunc(ctx, id, viewerEmail, pc)
}

func (m *mockPostService) Remove(ctx context.Context, id int64, viewerEmail string) error {
	if m.RemoveFunc == nil {
		return errUnexpected
	}
	return m.RemoveFunc(ctx, id, viewerEmail)
}

type mockMediaService struct {
	UploadImageFunc func(ctx context.Context, file *multipart.FileHeader) (string, error)
}

func (m *mockMediaService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if m.UploadImageFunc == nil {
		return "", errUnexpected
	}
	return m.UploadImageFunc(ctx, file)
}

// --------------------------------------------------------- transcriptions

type mockTranscriptionService struct {
	ListFunc        func(ctx context.Context, userEmail string, q transfer.TranscriptionQuery) (*transfer.TranscriptionList, error)
	CreateFunc      func(ctx context.Context, userEmail string, tc *transfer.TranscriptionCreation) (*models.Transcription, error)
	GetFunc         func(ctx context.Context, id int64, userEmail string) (*models.Transcription, error)
	RemoveFunc      func(ctx context.Context, id int64, userEmail string) error
	ProcessFunc     func(ctx context.Context, id int64) error
	ListPendingFunc func(ctx context.Context, limit int) ([]*models.Transcription, error)
}

func (m *mockTranscriptionService) List(ctx context.Context, userEmail string, q transfer.TranscriptionQuery) (*transfer.TranscriptionList, error) {
	if m.ListFunc == nil {
		return nil, errUnexpected
	}
	return m.ListFunc(ctx, userEmail, q)
}

func (m *mockTranscriptionService) Create(ctx context.Context, userEmail string, tc *transfer.TranscriptionCreation) (*models.Transcription, error) {
	if m.CreateFunc == nil {
		return nil, errUnexpected
	}
	return m.CreateFunc(ctx, userEmail, tc)
}

func (m *mockTranscriptionService) Get(ctx context.Context, id int64, userEmail string) (*models.Transcription, error) {
	if m.GetFunc == nil {
		return nil, errUnexpected
	}
	return m.GetFunc(ctx, id, userEmail)
}

func (m *mockTranscriptionService) Remove(ctx context.Context, id int64, userEmail string) error {
	if m.RemoveFunc == nil {
		return errUnexpected
	}
	return m.RemoveFunc(ctx, id, userEmail)
}

func (m *mockTranscriptionService) Process(ctx context.Context, id int64) error {
	if m.ProcessFunc == nil {
		return errUnexpected
	}
	return m.ProcessFunc(ctx, id)
}

func (m *mockTranscriptionService) ListPending(ctx context.Context, limit int) ([]*models.Transcription, error) {
	if m.ListPendingFunc == nil {
		return nil, errUnexpected
	}
	return m.ListPendingFunc(ctx, limit)
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

// ------------------------------------------------------------------- auth

type mockAuthService struct {
	ProvidersFunc   func() []transfer.ProviderInfo
	AuthCodeURLFunc func(provider, state string) (string, error)
	SignInFunc      func(ctx context.Context, provider, code string) (string, error)
}

func (m *mockAuthService) Providers() []transfer.ProviderInfo {
	if m.ProvidersFunc == nil {
		return nil
	}
	return m.ProvidersFunc()
}

func (m *mockAuthService) AuthCodeURL(provider, state string) (string, error) {
	if m.AuthCodeURLFunc == nil {
		return "", errUnexpected
	}
	return m.AuthCodeURLFunc(provider, state)
}

func (m *mockAuthService) SignIn(ctx context.Context, provider, code string) (string, error) {
	if m.SignInFunc == nil {
		return "", errUnexpected
	}
	return m.SignInFunc(ctx, provider, code)
}

type mockSessionService struct {
	CreateFunc      func(ctx context.Context, user *models.User, accessToken string) (string, *models.Session, error)
	ResolveFunc     func(ctx context.Context, token string) (*models.Session, error)
	DestroyFunc     func(ctx context.Context, token string) error
	AccessTokenFunc func(s *models.Session) (string, error)
}

func (m *mockSessionService) Create(ctx context.Context, user *models.User, accessToken string) (string, *models.Session, error) {
	if m.CreateFunc == nil {
		return "", nil, errUnexpected
	}
	return m.CreateFunc(ctx, user, accessToken)
}

func (m *mockSessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if m.ResolveFunc == nil {
		return nil, errUnexpected
	}
	return m.ResolveFunc(ctx, token)
}

func (m *mockSessionService) Destroy(ctx context.Context, token string) error {
	if m.DestroyFunc == nil {
		return nil
	}
	return m.DestroyFunc(ctx, token)
}

func (m *mockSessionService) AccessToken(s *models.Session) (string, error) {
	if m.AccessTokenFunc == nil {
		return "", nil
	}
	return m.AccessTokenFunc(s)
}

func (m *mockSessionService) TTL() time.Duration {
	return time.Hour
}
