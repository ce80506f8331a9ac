package services

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"cinemarathi_backend/internal/storage"
	"cinemarathi_backend/pkg/apperrors"
)

// MaxUploadSize bounds every multipart file.
const MaxUploadSize = 10 << 20

var (
	errNoFile  = apperrors.NewBadRequestError("No file uploaded. Use `file` field.")
	errNoFiles = apperrors.NewBadRequestError("No files uploaded. Use `files` field (array).")
)

// FileUpload is a multipart file read into memory.
type FileUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (f *FileUpload) isImage() bool {
	return strings.HasPrefix(f.ContentType, "image/")
}

func checkUpload(f *FileUpload) error {
	if f == nil || len(f.Data) == 0 {
		return errNoFile
	}
	if len(f.Data) > MaxUploadSize {
		return apperrors.ErrFileTooLarge
	}
	return nil
}

// StoredFile is where an upload ended up.
type StoredFile struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

func putFile(ctx context.Context, store storage.Storage, key string, f *FileUpload) (*StoredFile, error) {
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := store.Put(ctx, key, bytes.NewReader(f.Data), contentType); err != nil {
		return nil, storageError(err)
	}
	return &StoredFile{Key: key, URL: store.URL(key)}, nil
}

func storageError(err error) error {
	if errors.Is(err, storage.ErrBucketNotConfigured) {
		return apperrors.NewExternalError(err, "storage", storage.ErrBucketNotConfigured.Error())
	}
	return apperrors.NewExternalError(err, "storage", err.Error())
}
