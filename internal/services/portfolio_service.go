package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/internal/storage"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const portfolioFolder = "portfolio"

var (
	errImageIndexRange       = apperrors.NewBadRequestError("Index must be between 1 and 6")
	errTooManyImages         = apperrors.NewBadRequestError("Maximum 6 portfolio images allowed")
	errPortfolioItemNotFound = apperrors.NewNotFoundError("portfolio", "Portfolio item not found")
	errPortfolioItemMediaURL = apperrors.NewBadRequestError("media_url is required")
	errInvalidWorkDate       = apperrors.NewBadRequestError("Invalid work_date, expected YYYY-MM-DD")
)

// PortfolioImage is one entry of users.portfolio_images as returned to
// clients. ID and Index are both the 1-based position.
type PortfolioImage struct {
	ID       int    `json:"id"`
	URL      string `json:"url"`
	ImageURL string `json:"imageUrl"`
	Index    int    `json:"index"`
}

// UploadedImage is an image stored at a portfolio position.
type UploadedImage struct {
	Index int    `json:"index"`
	URL   string `json:"url"`
	Key   string `json:"key"`
}

type PortfolioService interface {
	Images(db *gorm.DB, userID int64) ([]PortfolioImage, error)
	AddImage(ctx context.Context, db *gorm.DB, userID int64, file *FileUpload) (*UploadedImage, []string, error)
	AddImages(ctx context.Context, db *gorm.DB, userID int64, files []*FileUpload) ([]UploadedImage, []string, error)
	ReplaceImage(ctx context.Context, db *gorm.DB, userID int64, index int, file *FileUpload) (*UploadedImage, []string, error)
	DeleteImage(db *gorm.DB, userID int64, index int) ([]string, error)
	ClearImages(db *gorm.DB, userID int64) error

	Items(db *gorm.DB, userID int64) ([]models.PortfolioItem, error)
	CreateItem(db *gorm.DB, userID int64, req *dto.PortfolioItemRequest) (*models.PortfolioItem, error)
	UpdateItem(db *gorm.DB, userID, id int64, req *dto.PortfolioItemRequest) error
	DeleteItem(db *gorm.DB, userID, id int64) error
}

type portfolioService struct {
	userRepo      repositories.UserRepository
	portfolioRepo repositories.PortfolioRepository
	store         storage.Storage
}

func NewPortfolioService(
	userRepo repositories.UserRepository,
	portfolioRepo repositories.PortfolioRepository,
	store storage.Storage,
) PortfolioService {
	return &portfolioService{userRepo: userRepo, portfolioRepo: portfolioRepo, store: store}
}

// ---------------- Portfolio images ----------------

func (s *portfolioService) loadUser(db *gorm.DB, userID int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}

func (s *portfolioService) Images(db *gorm.DB, userID int64) ([]PortfolioImage, error) {
	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, err
	}
	return FormatPortfolioImages(user.PortfolioURLs()), nil
}

func FormatPortfolioImages(urls []string) []PortfolioImage {
	out := make([]PortfolioImage, 0, len(urls))
	for i, u := range urls {
		out = append(out, PortfolioImage{ID: i + 1, URL: u, ImageURL: u, Index: i + 1})
	}
	return out
}

func (s *portfolioService) AddImage(ctx context.Context, db *gorm.DB, userID int64, file *FileUpload) (*UploadedImage, []string, error) {
	if err := checkUpload(file); err != nil {
		return nil, nil, err
	}
	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, nil, err
	}

	images := user.PortfolioURLs()
	if len(images) >= models.MaxPortfolioImages {
		msg := fmt.Sprintf("Maximum %d portfolio images allowed. You already have %d images.", models.MaxPortfolioImages, len(images))
		return nil, nil, apperrors.NewBadRequestError(msg)
	}

	index := len(images) + 1
	uploaded, err := s.storeImage(ctx, user, index, file)
	if err != nil {
		return nil, nil, err
	}
	images = append(images, uploaded.URL)

	if err := s.saveImages(db, userID, images); err != nil {
		return nil, nil, err
	}
	return uploaded, images, nil
}

func (s *portfolioService) AddImages(ctx context.Context, db *gorm.DB, userID int64, files []*FileUpload) ([]UploadedImage, []string, error) {
	if len(files) == 0 {
		return nil, nil, errNoFiles
	}
	if len(files) > models.MaxPortfolioImages {
		return nil, nil, errTooManyImages
	}
	for _, f := range files {
		if err := checkUpload(f); err != nil {
			return nil, nil, err
		}
	}

	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, nil, err
	}
	images := user.PortfolioURLs()
	if len(images)+len(files) > models.MaxPortfolioImages {
		msg := fmt.Sprintf("Cannot upload %d images. You already have %d images. Maximum %d images allowed.",
			len(files), len(images), models.MaxPortfolioImages)
		return nil, nil, apperrors.NewBadRequestError(msg)
	}

	uploaded := make([]UploadedImage, 0, len(files))
	for i, f := range files {
		img, err := s.storeImage(ctx, user, len(images)+i+1, f)
		if err != nil {
			return nil, nil, err
		}
		uploaded = append(uploaded, *img)
	}
	for _, img := range uploaded {
		images = append(images, img.URL)
	}

	if err := s.saveImages(db, userID, images); err != nil {
		return nil, nil, err
	}
	return uploaded, images, nil
}

func (s *portfolioService) ReplaceImage(ctx context.Context, db *gorm.DB, userID int64, index int, file *FileUpload) (*UploadedImage, []string, error) {
	if err := checkUpload(file); err != nil {
		return nil, nil, err
	}
	if index < 1 || index > models.MaxPortfolioImages {
		return nil, nil, errImageIndexRange
	}
	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, nil, err
	}
	images := user.PortfolioURLs()
	if err := ValidateImageIndex(index, len(images)); err != nil {
		return nil, nil, err
	}

	uploaded, err := s.storeImage(ctx, user, index, file)
	if err != nil {
		return nil, nil, err
	}
	images[index-1] = uploaded.URL

	if err := s.saveImages(db, userID, images); err != nil {
		return nil, nil, err
	}
	return uploaded, images, nil
}

func (s *portfolioService) DeleteImage(db *gorm.DB, userID int64, index int) ([]string, error) {
	if index < 1 || index > models.MaxPortfolioImages {
		return nil, errImageIndexRange
	}
	user, err := s.loadUser(db, userID)
	if err != nil {
		return nil, err
	}
	images := user.PortfolioURLs()
	if err := ValidateImageIndex(index, len(images)); err != nil {
		return nil, err
	}

	images = append(images[:index-1], images[index:]...)
	if err := s.saveImages(db, userID, images); err != nil {
		return nil, err
	}
	return images, nil
}

func (s *portfolioService) ClearImages(db *gorm.DB, userID int64) error {
	if err := s.userRepo.SetPortfolioImages(db, userID, nil); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ValidateImageIndex checks a 1-based portfolio position against the cap
// and against the number of images the user has.
func ValidateImageIndex(index, count int) error {
	if index < 1 || index > models.MaxPortfolioImages {
		return errImageIndexRange
	}
	if index > count {
		msg := fmt.Sprintf("Index %d is out of range. You have %d images.", index, count)
		return apperrors.NewBadRequestError(msg)
	}
	return nil
}

func (s *portfolioService) storeImage(ctx context.Context, user *models.User, index int, file *FileUpload) (*UploadedImage, error) {
	name := user.Name
	if name == "" {
		name = "user"
	}
	prefix := fmt.Sprintf("%d-%s_%d", user.ID, storage.SanitizeName(name), index)
	stored, err := putFile(ctx, s.store, storage.GenerateKey(portfolioFolder, file.Filename, prefix), file)
	if err != nil {
		return nil, err
	}
	return &UploadedImage{Index: index, URL: stored.URL, Key: stored.Key}, nil
}

func (s *portfolioService) saveImages(db *gorm.DB, userID int64, images []string) error {
	raw, err := json.Marshal(images)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if err := s.userRepo.SetPortfolioImages(db, userID, datatypes.JSON(raw)); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ---------------- Legacy portfolio items ----------------

func (s *portfolioService) Items(db *gorm.DB, userID int64) ([]models.PortfolioItem, error) {
	items, err := s.portfolioRepo.ListByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if items == nil {
		items = []models.PortfolioItem{}
	}
	return items, nil
}

func (s *portfolioService) CreateItem(db *gorm.DB, userID int64, req *dto.PortfolioItemRequest) (*models.PortfolioItem, error) {
	if req.MediaURL == nil || blank(*req.MediaURL) {
		return nil, errPortfolioItemMediaURL
	}
	item := &models.PortfolioItem{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		MediaURL:    req.MediaURL,
		MediaType:   req.MediaType,
	}
	if req.WorkDate != nil && *req.WorkDate != "" {
		d, err := parseDate(*req.WorkDate)
		if err != nil {
			return nil, errInvalidWorkDate
		}
		item.WorkDate = &d
	}
	if err := s.portfolioRepo.Create(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func (s *portfolioService) UpdateItem(db *gorm.DB, userID, id int64, req *dto.PortfolioItemRequest) error {
	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.MediaURL != nil {
		fields["media_url"] = *req.MediaURL
	}
	if req.MediaType != nil {
		fields["media_type"] = *req.MediaType
	}
	if req.WorkDate != nil {
		if *req.WorkDate == "" {
			fields["work_date"] = nil
		} else {
			d, err := parseDate(*req.WorkDate)
			if err != nil {
				return errInvalidWorkDate
			}
			fields["work_date"] = d
		}
	}
	if len(fields) == 0 {
		return apperrors.ErrNoFieldsToUpdate
	}
	return handlePortfolioError(s.portfolioRepo.Update(db, id, userID, fields))
}

func (s *portfolioService) DeleteItem(db *gorm.DB, userID, id int64) error {
	return handlePortfolioError(s.portfolioRepo.Delete(db, id, userID))
}

func handlePortfolioError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repositories.ErrPortfolioItemNotFound) {
		return errPortfolioItemNotFound
	}
	return apperrors.InternalError(err)
}
