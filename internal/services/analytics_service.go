package services

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	registrationTrendDays = 30
	activeUsersLimit      = 20
	chartMonths           = 6
)

type OverviewStats struct {
	TotalUsers     int64   `json:"totalUsers"`
	ActiveListings int64   `json:"activeListings"`
	TotalRevenue   float64 `json:"totalRevenue"`
	GrowthRate     int64   `json:"growthRate"`
}

type ChartPoint struct {
	Name    string  `json:"name"`
	Users   int64   `json:"users"`
	Revenue float64 `json:"revenue"`
}

type PieSlice struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

type Overview struct {
	Stats     OverviewStats `json:"stats"`
	ChartData []ChartPoint  `json:"chartData"`
	PieData   []PieSlice    `json:"pieData"`
}

type Revenue struct {
	ByPlan       []repositories.PlanRevenue `json:"by_plan"`
	TotalRevenue float64                    `json:"total_revenue"`
}

type AnalyticsService interface {
	Stats(db *gorm.DB) (*repositories.PlatformStats, error)
	RegistrationTrends(db *gorm.DB) ([]repositories.RegistrationTrend, error)
	Revenue(db *gorm.DB) (*Revenue, error)
	ActiveUsers(db *gorm.DB) ([]repositories.ActiveApplicantRow, error)
	Overview(db *gorm.DB) (*Overview, error)
}

type analyticsService struct {
	analyticsRepo   repositories.AnalyticsRepository
	castingRepo     repositories.CastingRepository
	applicationRepo repositories.ApplicationRepository
}

func NewAnalyticsService(
	analyticsRepo repositories.AnalyticsRepository,
	castingRepo repositories.CastingRepository,
	applicationRepo repositories.ApplicationRepository,
) AnalyticsService {
	return &analyticsService{
		analyticsRepo:   analyticsRepo,
		castingRepo:     castingRepo,
		applicationRepo: applicationRepo,
	}
}

func (s *analyticsService) Stats(db *gorm.DB) (*repositories.PlatformStats, error) {
	stats, err := s.analyticsRepo.PlatformStats(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stats, nil
}

func (s *analyticsService) RegistrationTrends(db *gorm.DB) ([]repositories.RegistrationTrend, error) {
	rows, err := s.analyticsRepo.RegistrationTrends(db, registrationTrendDays)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rows == nil {
		rows = []repositories.RegistrationTrend{}
	}
	return rows, nil
}

func (s *analyticsService) Revenue(db *gorm.DB) (*Revenue, error) {
	rows, total, err := s.analyticsRepo.RevenueByPlan(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rows == nil {
		rows = []repositories.PlanRevenue{}
	}
	return &Revenue{ByPlan: rows, TotalRevenue: total}, nil
}

func (s *analyticsService) ActiveUsers(db *gorm.DB) ([]repositories.ActiveApplicantRow, error) {
	rows, err := s.applicationRepo.MostActiveApplicants(db, activeUsersLimit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if rows == nil {
		rows = []repositories.ActiveApplicantRow{}
	}
	return rows, nil
}

func (s *analyticsService) Overview(db *gorm.DB) (*Overview, error) {
	stats, err := s.analyticsRepo.PlatformStats(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	listings, err := s.castingRepo.CountActive(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	revenue, err := s.analyticsRepo.ActiveRevenue(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	thisMonth, err := s.analyticsRepo.UsersInMonth(db, 0)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	lastMonth, err := s.analyticsRepo.UsersInMonth(db, 1)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	distribution, err := s.analyticsRepo.UserDistribution(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	users, err := s.analyticsRepo.MonthlyUsers(db, chartMonths)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	monthlyRevenue, err := s.analyticsRepo.MonthlyRevenue(db, chartMonths)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &Overview{
		Stats: OverviewStats{
			TotalUsers:     stats.TotalUsers,
			ActiveListings: listings,
			TotalRevenue:   revenue,
			GrowthRate:     GrowthRate(thisMonth, lastMonth),
		},
		ChartData: BuildChartData(users, monthlyRevenue),
		PieData:   BuildPieData(distribution),
	}, nil
}

// GrowthRate compares registrations this month with last month, in percent.
func GrowthRate(thisMonth, lastMonth int64) int64 {
	if lastMonth > 0 {
		return int64(math.Round(float64(thisMonth-lastMonth) / float64(lastMonth) * 100))
	}
	if thisMonth > 0 {
		return 100
	}
	return 0
}

// BuildChartData joins monthly registrations with revenue by month label.
// Without data it returns Jan to Jun at zero.
func BuildChartData(users []repositories.MonthlyCount, revenue []repositories.MonthlyRevenue) []ChartPoint {
	if len(users) == 0 {
		out := make([]ChartPoint, 0, chartMonths)
		for _, m := range []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"} {
			out = append(out, ChartPoint{Name: m})
		}
		return out
	}

	byMonth := make(map[string]float64, len(revenue))
	for _, r := range revenue {
		if _, ok := byMonth[r.Month]; !ok {
			byMonth[r.Month] = r.Revenue
		}
	}

	out := make([]ChartPoint, 0, len(users))
	for _, u := range users {
		out = append(out, ChartPoint{Name: u.Month, Users: u.Users, Revenue: byMonth[u.Month]})
	}
	return out
}

func BuildPieData(distribution []repositories.UserTypeCount) []PieSlice {
	if len(distribution) == 0 {
		return []PieSlice{
			{Name: "Actors"},
			{Name: "Technicians"},
			{Name: "Production Houses"},
		}
	}
	out := make([]PieSlice, 0, len(distribution))
	for _, d := range distribution {
		name := "Unknown"
		if d.UserType != nil && *d.UserType != "" {
			name = PieName(*d.UserType)
		}
		out = append(out, PieSlice{Name: name, Value: d.Count})
	}
	return out
}

// PieName upper-cases the first letter and turns the first underscore into a
// space: "production_house" becomes "Production house".
func PieName(userType string) string {
	r, size := utf8.DecodeRuneInString(userType)
	head := string(unicode.ToUpper(r))
	return head + strings.Replace(userType[size:], "_", " ", 1)
}
