package services

import (
	"testing"
	"time"

	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkills(t *testing.T) {
	assert.Equal(t, []string{}, ParseSkills(nil))
	assert.Equal(t, []string{}, ParseSkills(strPtr("  ")))
	assert.Equal(t, []string{"Dance", "Lavani"}, ParseSkills(strPtr(`["Dance", "", "Lavani"]`)))
	assert.Equal(t, []string{"Singing"}, ParseSkills(strPtr(`"Singing"`)))
	assert.Equal(t, []string{"Acting", "Horse riding"}, ParseSkills(strPtr("Acting, Horse riding,")))
	assert.Equal(t, []string{}, ParseSkills(strPtr(`{"a":1}`)))
}

func TestParseFeatures(t *testing.T) {
	assert.Equal(t, []string{}, ParseFeatures(""))
	assert.Equal(t, []string{}, ParseFeatures("null"))
	assert.Equal(t, []string{"Boost", "5"}, ParseFeatures(`["Boost", null, 5]`))
	assert.Equal(t, []string{"A", "B"}, ParseFeatures(`"A, B"`))
	assert.Equal(t, []string{"Unlimited applications", "Badge"}, ParseFeatures("Unlimited applications,Badge"))
}

func TestAvatarURL(t *testing.T) {
	assert.Equal(t, "https://api.dicebear.com/7.x/adventurer/svg?seed=Sai+Tamhankar", AvatarURL("Sai Tamhankar", 4))
	assert.Equal(t, "https://api.dicebear.com/7.x/adventurer/svg?seed=4", AvatarURL("", 4))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-05-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())

	_, err = parseDate("2026-05-01T10:00:00Z")
	assert.NoError(t, err)

	_, err = parseDate("01/05/2026")
	assert.Error(t, err)
}

func TestPlanFrom(t *testing.T) {
	free := PlanFrom(nil)
	assert.Equal(t, int64(freePlanID), free.ID)
	assert.Equal(t, "Free Plan", free.Name)
	assert.Equal(t, defaultPlanFeatures, free.Features)
	assert.Nil(t, free.ExpiryDate)

	end := time.Date(2027, 1, 2, 15, 0, 0, 0, time.UTC)
	plan := PlanFrom(&models.ActivePlan{PlanID: 2, Name: "Gold", IsActive: true, Features: `["Boost"]`, EndDate: &end})
	assert.Equal(t, []string{"Boost"}, plan.Features)
	require.NotNil(t, plan.ExpiryDate)
	assert.Equal(t, "2027-01-02", *plan.ExpiryDate)

	plan = PlanFrom(&models.ActivePlan{PlanID: 3, Name: "Silver"})
	assert.Equal(t, defaultPlanFeatures, plan.Features)
}

func TestMergeCategories(t *testing.T) {
	assert.Equal(t, []string{"All"}, MergeCategories(nil))
	assert.Equal(t,
		[]string{"Actor", "All", "Dancer", "Singer"},
		MergeCategories([]string{"Singer", "Actor", "", "Singer", "All", "Dancer"}),
	)
}

func TestTrendingJobsFrom(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	posted := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	house := "Zee Studios"
	rows := make([]repositories.TrendingJobRow, 6)
	rows[0] = repositories.TrendingJobRow{ID: 1, ProjectTitle: "Duniyadari", CreatedAt: posted, ProductionHouseName: &house}
	rows[1] = repositories.TrendingJobRow{ID: 2, Role: "Villain"}

	jobs := TrendingJobsFrom(rows, now)
	require.Len(t, jobs, 6)
	assert.Equal(t, "Duniyadari", jobs[0].Title)
	assert.Equal(t, "Zee Studios", jobs[0].Company)
	assert.Equal(t, "2026-02-01", jobs[0].PostedOn)
	assert.Equal(t, "Full-time", jobs[0].Tag)

	assert.Equal(t, "Villain", jobs[1].Title)
	assert.Equal(t, "Production House", jobs[1].Company)
	assert.Equal(t, "Mumbai", jobs[1].Location)
	assert.Equal(t, "2026-02-10", jobs[1].PostedOn)

	assert.Equal(t, "Casting Call", jobs[2].Title)
	assert.Equal(t, "Full-time", jobs[5].Tag)
}

func TestChoosePremiumPlan(t *testing.T) {
	year, month, long := 365, 30, 500
	plans := []models.PremiumPlan{
		{ID: 1, Name: "Monthly", DurationDays: &month},
		{ID: 2, Name: "Yearly Gold", DurationDays: &year},
		{ID: 3, Name: "Forever", DurationDays: &long},
	}

	assert.Equal(t, int64(2), ChoosePremiumPlan(plans, false).ID)
	assert.Equal(t, int64(2), ChoosePremiumPlan(plans, true).ID)
	assert.Equal(t, int64(3), ChoosePremiumPlan(plans[2:], true).ID)
	assert.Nil(t, ChoosePremiumPlan(plans[:1], false))
	assert.Nil(t, ChoosePremiumPlan(nil, true))

	legacy := []models.PremiumPlan{{ID: models.LegacyLifetimePlanID, Name: "Old"}}
	assert.Equal(t, models.LegacyLifetimePlanID, ChoosePremiumPlan(legacy, true).ID)
	assert.Nil(t, ChoosePremiumPlan(legacy, false))
}

func TestDefaultPremiumPlan(t *testing.T) {
	lifetime := DefaultPremiumPlan(true)
	assert.Equal(t, "Lifetime Premium", lifetime.Name)
	assert.Equal(t, 99999, *lifetime.DurationDays)
	assert.JSONEq(t, `["Lifetime Access"]`, string(lifetime.Features))

	yearly := DefaultPremiumPlan(false)
	assert.Equal(t, "Yearly Premium", yearly.Name)
	assert.Equal(t, 365, yearly.Duration())
}

func TestGrowthRate(t *testing.T) {
	assert.Equal(t, int64(50), GrowthRate(15, 10))
	assert.Equal(t, int64(-33), GrowthRate(2, 3))
	assert.Equal(t, int64(100), GrowthRate(4, 0))
	assert.Equal(t, int64(0), GrowthRate(0, 0))
}

func TestBuildChartData(t *testing.T) {
	empty := BuildChartData(nil, nil)
	require.Len(t, empty, 6)
	assert.Equal(t, "Jan", empty[0].Name)
	assert.Equal(t, "Jun", empty[5].Name)

	points := BuildChartData(
		[]repositories.MonthlyCount{{Month: "Jan", Users: 4}, {Month: "Feb", Users: 9}},
		[]repositories.MonthlyRevenue{{Month: "Feb", Revenue: 1999}},
	)
	assert.Equal(t, []ChartPoint{{Name: "Jan", Users: 4}, {Name: "Feb", Users: 9, Revenue: 1999}}, points)
}

func TestBuildPieData(t *testing.T) {
	assert.Equal(t, "Production Houses", BuildPieData(nil)[2].Name)

	actor := "actor"
	house := "production_house"
	slices := BuildPieData([]repositories.UserTypeCount{
		{UserType: &actor, Count: 12},
		{UserType: &house, Count: 3},
		{Count: 1},
	})
	assert.Equal(t, []PieSlice{{"Actor", 12}, {"Production house", 3}, {"Unknown", 1}}, slices)
}

func TestValidateImageIndex(t *testing.T) {
	assert.NoError(t, ValidateImageIndex(1, 1))
	assert.NoError(t, ValidateImageIndex(6, 6))
	assert.ErrorIs(t, ValidateImageIndex(0, 3), errImageIndexRange)
	assert.ErrorIs(t, ValidateImageIndex(7, 6), errImageIndexRange)

	appErr, ok := apperrors.AsAppError(ValidateImageIndex(4, 2))
	require.True(t, ok)
	assert.Equal(t, "Index 4 is out of range. You have 2 images.", appErr.Message)
}

func TestFormatPortfolioImages(t *testing.T) {
	assert.Empty(t, FormatPortfolioImages(nil))
	out := FormatPortfolioImages([]string{"https://a/1.jpg", "https://a/2.jpg"})
	assert.Equal(t, PortfolioImage{ID: 2, URL: "https://a/2.jpg", ImageURL: "https://a/2.jpg", Index: 2}, out[1])
}

func TestUserScopedFolder(t *testing.T) {
	assert.Equal(t, "uploads/7", UserScopedFolder("", 7))
	assert.Equal(t, "head_shots/7", UserScopedFolder("head shots", 7))
}

func TestParsePermissions(t *testing.T) {
	perms, err := ParsePermissions(nil)
	require.NoError(t, err)
	assert.Nil(t, perms)

	perms, err = ParsePermissions([]byte(`null`))
	require.NoError(t, err)
	assert.Nil(t, perms)

	perms, err = ParsePermissions([]byte(`["users.read","users.write"]`))
	require.NoError(t, err)
	assert.JSONEq(t, `["users.read","users.write"]`, string(perms))

	perms, err = ParsePermissions([]byte(`"[\"events.manage\"]"`))
	require.NoError(t, err)
	assert.JSONEq(t, `["events.manage"]`, string(perms))

	_, err = ParsePermissions([]byte(`{"all":true}`))
	assert.ErrorIs(t, err, errRolePermissions)

	_, err = ParsePermissions([]byte(`"not json"`))
	assert.ErrorIs(t, err, errRolePermissions)
}
