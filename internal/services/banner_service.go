package services

import (
	"context"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"cinemarathi_backend/internal/storage"
	"cinemarathi_backend/pkg/apperrors"
)

const bannerFolder = "app/banner"

var (
	bannerNumberPattern = regexp.MustCompile(`(?i)(\d+)\.(jpg|jpeg|png|webp)$`)
	nonDigits           = regexp.MustCompile(`\D`)
	bannerExtensions    = []string{".jpg", ".jpeg", ".png", ".webp"}

	errFilenameRequired = apperrors.NewBadRequestError("Filename is required")
)

type Banner struct {
	Key          string     `json:"key"`
	Filename     string     `json:"filename"`
	URL          string     `json:"url"`
	Size         int64      `json:"size,omitempty"`
	LastModified *time.Time `json:"lastModified,omitempty"`
}

type BannerService interface {
	List(ctx context.Context) ([]Banner, error)
	Upload(ctx context.Context, file *FileUpload) (*Banner, error)
	Replace(ctx context.Context, filename string, file *FileUpload) (*Banner, error)
	Delete(ctx context.Context, filename string) (*Banner, error)
}

type bannerService struct {
	store storage.Storage
	now   func() time.Time
}

func NewBannerService(store storage.Storage) BannerService {
	return &bannerService{store: store, now: time.Now}
}

func (s *bannerService) List(ctx context.Context) ([]Banner, error) {
	objects, err := s.store.List(ctx, bannerFolder+"/")
	if err != nil {
		return nil, storageError(err)
	}

	banners := make([]Banner, 0, len(objects))
	for _, obj := range objects {
		if !isBannerImage(obj.Key) {
			continue
		}
		modified := obj.LastModified
		banners = append(banners, Banner{
			Key:          obj.Key,
			Filename:     path.Base(obj.Key),
			URL:          s.store.URL(obj.Key),
			Size:         obj.Size,
			LastModified: &modified,
		})
	}
	SortBanners(banners)
	return banners, nil
}

func (s *bannerService) Upload(ctx context.Context, file *FileUpload) (*Banner, error) {
	if err := checkUpload(file); err != nil {
		return nil, err
	}
	if !file.isImage() {
		return nil, apperrors.ErrInvalidFileType
	}

	filename := BannerFilename(file.Filename, s.now())
	return s.put(ctx, filename, file)
}

func (s *bannerService) Replace(ctx context.Context, filename string, file *FileUpload) (*Banner, error) {
	if err := checkUpload(file); err != nil {
		return nil, err
	}
	filename, err := cleanBannerFilename(filename)
	if err != nil {
		return nil, err
	}
	return s.put(ctx, filename, file)
}

func (s *bannerService) Delete(ctx context.Context, filename string) (*Banner, error) {
	filename, err := cleanBannerFilename(filename)
	if err != nil {
		return nil, err
	}
	key := bannerFolder + "/" + filename
	if err := s.store.Delete(ctx, key); err != nil {
		return nil, storageError(err)
	}
	return &Banner{Key: key, Filename: filename}, nil
}

func (s *bannerService) put(ctx context.Context, filename string, file *FileUpload) (*Banner, error) {
	if file.ContentType == "" {
		file.ContentType = "image/jpeg"
	}
	stored, err := putFile(ctx, s.store, bannerFolder+"/"+filename, file)
	if err != nil {
		return nil, err
	}
	return &Banner{Key: stored.Key, Filename: filename, URL: stored.URL}, nil
}

// BannerFilename numbers a banner after the digits before its extension,
// such as "summer-3.png" -> "3.png", or after the upload time in ms.
func BannerFilename(original string, now time.Time) string {
	number := strconv.FormatInt(now.UnixMilli(), 10)
	if m := bannerNumberPattern.FindStringSubmatch(original); m != nil {
		number = m[1]
	}
	ext := strings.ToLower(storage.Extension(original))
	return number + "." + ext
}

// SortBanners orders banners by the digits in their filename. Names without
// digits sort as 0.
func SortBanners(banners []Banner) {
	sort.SliceStable(banners, func(i, j int) bool {
		return bannerNumber(banners[i].Filename) < bannerNumber(banners[j].Filename)
	})
}

func bannerNumber(filename string) int64 {
	n, err := strconv.ParseInt(nonDigits.ReplaceAllString(filename, ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isBannerImage(key string) bool {
	lower := strings.ToLower(key)
	for _, ext := range bannerExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// cleanBannerFilename keeps only the base name so callers cannot escape the
// banner folder.
func cleanBannerFilename(filename string) (string, error) {
	name := path.Base(strings.TrimSpace(filename))
	if name == "" || name == "." || name == "/" || name == ".." {
		return "", errFilenameRequired
	}
	return name, nil
}
