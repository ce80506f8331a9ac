package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinemarathi_backend/internal/imageprocessor"
	"cinemarathi_backend/internal/logger"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/storage"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	profileFolder       = "profiles"
	defaultUploadFolder = "uploads"
)

type UploadService interface {
	// ProfileImage stores the caller's avatar and records its URL.
	ProfileImage(ctx context.Context, db *gorm.DB, userID int64, file *FileUpload) (*StoredFile, error)
	// File stores an arbitrary file under folder/userID and returns the
	// folder it used.
	File(ctx context.Context, userID int64, folder string, file *FileUpload) (*StoredFile, string, error)
}

type uploadService struct {
	userRepo  repositories.UserRepository
	store     storage.Storage
	processor *imageprocessor.Processor
}

// NewUploadService accepts a nil processor, in which case images are stored
// as uploaded.
func NewUploadService(userRepo repositories.UserRepository, store storage.Storage, processor *imageprocessor.Processor) UploadService {
	return &uploadService{userRepo: userRepo, store: store, processor: processor}
}

func (s *uploadService) ProfileImage(ctx context.Context, db *gorm.DB, userID int64, file *FileUpload) (*StoredFile, error) {
	if err := checkUpload(file); err != nil {
		return nil, err
	}

	name := "user"
	user, err := s.userRepo.FindByID(db, userID)
	switch {
	case err == nil:
		if user.Name != "" {
			name = user.Name
		}
	case errors.Is(err, repositories.ErrUserNotFound):
	default:
		return nil, apperrors.InternalError(err)
	}

	file = s.downscale(ctx, file)
	prefix := fmt.Sprintf("%d-%s", userID, storage.SanitizeName(name))
	stored, err := putFile(ctx, s.store, storage.GenerateKey(profileFolder, file.Filename, prefix), file)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.SetProfileImage(db, userID, stored.URL); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stored, nil
}

func (s *uploadService) File(ctx context.Context, userID int64, folder string, file *FileUpload) (*StoredFile, string, error) {
	if err := checkUpload(file); err != nil {
		return nil, "", err
	}
	folder = UserScopedFolder(folder, userID)
	stored, err := putFile(ctx, s.store, storage.GenerateKey(folder, file.Filename, ""), file)
	if err != nil {
		return nil, "", err
	}
	return stored, folder, nil
}

// UserScopedFolder sanitizes the requested folder, defaulting to "uploads",
// and appends the user id.
func UserScopedFolder(folder string, userID int64) string {
	if strings.TrimSpace(folder) == "" {
		folder = defaultUploadFolder
	}
	return fmt.Sprintf("%s/%d", storage.SanitizeFolder(folder), userID)
}

// downscale shrinks large images. On failure the original is kept.
func (s *uploadService) downscale(ctx context.Context, file *FileUpload) *FileUpload {
	if s.processor == nil || !file.isImage() {
		return file
	}
	res, err := s.processor.Fit(file.Data, file.ContentType)
	if err != nil {
		logger.CtxWithError(ctx, "Image downscale failed, storing original", err)
		return file
	}
	if !res.Resized {
		return file
	}

	name := file.Filename
	if res.Ext != "" {
		if idx := strings.LastIndex(name, "."); idx >= 0 {
			name = name[:idx]
		}
		name += "." + res.Ext
	}
	return &FileUpload{Filename: name, ContentType: res.ContentType, Data: res.Data}
}
