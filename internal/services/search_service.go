package services

import (
	"strings"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/services/dto"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	defaultSearchLimit = 10
	trendingLimit      = 5
	trendingMinRating  = 4.5
	anyGender          = "any"
)

type CastingSearchResult struct {
	CastingCalls []models.CastingCallListing `json:"castingCalls"`
	Total        int64                       `json:"total"`
	Page         int                         `json:"page"`
	Limit        int                         `json:"limit"`
}

type ProfileSearchResult struct {
	Profiles []repositories.ActorSearchRow `json:"profiles"`
	Page     int                           `json:"page"`
	Limit    int                           `json:"limit"`
}

type Trending struct {
	TrendingCastings []models.CastingCallListing   `json:"trendingCastings"`
	TrendingProfiles []repositories.ActorSearchRow `json:"trendingProfiles"`
}

type SearchService interface {
	CastingCalls(db *gorm.DB, req *dto.CastingSearchRequest) (*CastingSearchResult, error)
	Profiles(db *gorm.DB, req *dto.ProfileSearchRequest) (*ProfileSearchResult, error)
	Trending(db *gorm.DB) (*Trending, error)
}

type searchService struct {
	castingRepo repositories.CastingRepository
	profileRepo repositories.ProfileRepository
}

func NewSearchService(castingRepo repositories.CastingRepository, profileRepo repositories.ProfileRepository) SearchService {
	return &searchService{castingRepo: castingRepo, profileRepo: profileRepo}
}

func pageAndLimit(page, limit, defaultLimit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	return page, limit
}

func (s *searchService) CastingCalls(db *gorm.DB, req *dto.CastingSearchRequest) (*CastingSearchResult, error) {
	page, limit := pageAndLimit(req.Page, req.Limit, defaultSearchLimit)

	gender := strings.TrimSpace(req.Gender)
	if strings.EqualFold(gender, anyGender) {
		gender = ""
	}

	calls, total, err := s.castingRepo.Search(db, repositories.CastingSearchFilter{
		Role:      strings.TrimSpace(req.Role),
		Gender:    gender,
		Location:  strings.TrimSpace(req.Location),
		MinBudget: req.MinBudget,
		MaxBudget: req.MaxBudget,
		Keyword:   strings.TrimSpace(req.Keyword),
		Page:      page,
		Limit:     limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if calls == nil {
		calls = []models.CastingCallListing{}
	}
	return &CastingSearchResult{CastingCalls: calls, Total: total, Page: page, Limit: limit}, nil
}

func (s *searchService) Profiles(db *gorm.DB, req *dto.ProfileSearchRequest) (*ProfileSearchResult, error) {
	page, limit := pageAndLimit(req.Page, req.Limit, defaultSearchLimit)

	rows, err := s.profileRepo.SearchProfiles(db, repositories.ProfileSearchFilter{
		Category:      strings.TrimSpace(req.Category),
		MinExperience: req.MinExperience,
		Skills:        strings.TrimSpace(req.Skills),
		Location:      strings.TrimSpace(req.Location),
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rows == nil {
		rows = []repositories.ActorSearchRow{}
	}
	return &ProfileSearchResult{Profiles: rows, Page: page, Limit: limit}, nil
}

func (s *searchService) Trending(db *gorm.DB) (*Trending, error) {
	calls, err := s.castingRepo.Trending(db, trendingLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	profiles, err := s.profileRepo.TopRatedActors(db, trendingMinRating, trendingLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if calls == nil {
		calls = []models.CastingCallListing{}
	}
	if profiles == nil {
		profiles = []repositories.ActorSearchRow{}
	}
	return &Trending{TrendingCastings: calls, TrendingProfiles: profiles}, nil
}
