package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"

	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const MaxImageSize = 10 << 20

var allowedImageTypes = map[string]struct{}{
	"jpg": {}, "png": {}, "gif": {}, "webp": {},
}

type MediaService interface {
	// UploadImage validates an uploaded image and returns its public URL.
	UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type mediaService struct {
	storage ObjectStorage
}

func NewMediaService(storage ObjectStorage) MediaService {
	return &mediaService{storage: storage}
}

func (s *mediaService) UploadImage(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxImageSize {
		return "", ErrFileTooLarge
	}

	f, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	// Size is client-supplied, so the read itself is capped too.
	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return "", ErrFileTooLarge
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == types.Unknown {
		return "", ErrInvalidFile
	}
	if _, ok := allowedImageTypes[kind.Extension]; !ok {
		slog.Info("rejected upload", "type", kind.MIME.Value)
		return "", ErrInvalidFile
	}

	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("object key: %w", err)
	}
	key := "images/" + id + "." + kind.Extension

	if err := s.storage.Upload(ctx, key, data, kind.MIME.Value); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return s.storage.PublicURL(key), nil
}
