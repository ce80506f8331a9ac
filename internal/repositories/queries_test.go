package repositories

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// statementLog keeps every statement gorm renders, with its values inlined.
type statementLog struct {
	mu   sync.Mutex
	sqls []string
}

func (l *statementLog) LogMode(gormlogger.LogLevel) gormlogger.Interface { return l }
func (l *statementLog) Info(context.Context, string, ...interface{}) {}
func (l *statementLog) Warn(context.Context, string, ...interface{}) {}
func (l *statementLog) Error(context.Context, string, ...interface{}) {}

func (l *statementLog) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	if sql == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sqls = append(l.sqls, strings.Join(strings.Fields(sql), " "))
}

func (l *statementLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.sqls...)
}

// dryRunDB renders MySQL statements without a server. Row scans fail with
// gorm.ErrDryRunModeUnsupported, but every statement still reaches the logger.
func dryRunDB(t *testing.T) (*gorm.DB, *statementLog) {
	t.Helper()
	stmts := &statementLog{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "cine:cine@tcp(127.0.0.1:3306)/CineMarathi?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               stmts,
	})
	require.NoError(t, err)
	return db, stmts
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%Pune%", likePattern("Pune"))
	assert.Equal(t, `%50\%\_off%`, likePattern("50%_off"))
	assert.Equal(t, `%C:\\films%`, likePattern(`C:\films`))
}

func TestSearchTalentsSQL(t *testing.T) {
	db, stmts := dryRunDB(t)
	repo := NewProfileRepository()

	_, _, _ = repo.SearchTalents(db, TalentFilter{Search: "50%_off", Category: "Dancer", Page: 3, Limit: 10})

	sqls := stmts.all()
	require.Len(t, sqls, 2)

	count := sqls[0]
	assert.Contains(t, count, "SELECT COUNT(DISTINCT(")
	assert.Contains(t, count, "FROM users u")
	assert.Contains(t, count, "u.user_type NOT IN ('admin','production_house','studio','media')")
	assert.Contains(t, count, `(u.name LIKE '%50\%\_off%' OR u.email LIKE '%50\%\_off%')`)
	assert.Contains(t, count, "(a.category = 'Dancer' OR a.profession = 'Dancer' OR u.user_type = 'Dancer' OR t.specialization = 'Dancer')")

	page := sqls[1]
	assert.Contains(t, page, "COALESCE(AVG(rr.rating), 0) AS rating")
	assert.Contains(t, page, "LEFT JOIN featured_profiles fp ON u.id = fp.user_id")
	assert.Contains(t, page, "GROUP BY `u`.`id`")
	assert.Contains(t, page, "ORDER BY is_featured DESC, rating DESC, u.created_at DESC")
	assert.Contains(t, page, "LIMIT 10 OFFSET 20")
}

func TestSearchTalentsAllCategorySkipsFilter(t *testing.T) {
	db, stmts := dryRunDB(t)

	_, _, _ = NewProfileRepository().SearchTalents(db, TalentFilter{Category: "All", Page: 1, Limit: 20})

	for _, sql := range stmts.all() {
		assert.NotContains(t, sql, "a.category =")
		assert.NotContains(t, sql, "LIKE")
	}
}

func TestPremiumUsersSQL(t *testing.T) {
	db, stmts := dryRunDB(t)

	_, _ = NewSubscriptionRepository().PremiumUsers(db)

	sqls := stmts.all()
	require.Len(t, sqls, 1)
	sql := sqls[0]
	assert.Contains(t, sql, "WHEN s.end_date IS NULL THEN 1")
	assert.Contains(t, sql, "WHEN p.duration_days >= 365 OR p.name LIKE '%Lifetime%' OR p.id = 7 THEN 1")
	assert.Contains(t, sql, "END AS is_lifetime")
	assert.Contains(t, sql, "COALESCE(p.name, 'Unknown Plan') AS plan_name")
	assert.Contains(t, sql, "s.is_active = 1 AND (s.end_date IS NULL OR s.end_date >= CURDATE())")
	assert.Contains(t, sql, "ORDER BY s.start_date DESC")
}

func TestPlatformStatsSQL(t *testing.T) {
	db, stmts := dryRunDB(t)

	_, err := NewAnalyticsRepository().PlatformStats(db)
	require.NoError(t, err)

	sqls := stmts.all()
	require.Len(t, sqls, 8)
	for _, sql := range sqls {
		assert.True(t, strings.HasPrefix(sql, "SELECT count(*) FROM"), sql)
	}
	assert.Contains(t, sqls[3], "user_type = 'production_house'")
	assert.Contains(t, sqls[4], "audition_date >= CURDATE() OR audition_date IS NULL")
	assert.Contains(t, sqls[7], "is_active = 1 AND (end_date >= CURDATE() OR end_date IS NULL)")
}

func TestAnalyticsTrendSQL(t *testing.T) {
	db, stmts := dryRunDB(t)
	repo := NewAnalyticsRepository()

	_, _ = repo.RegistrationTrends(db, 30)
	_, _ = repo.MonthlyUsers(db, 6)
	_, _, _ = repo.RevenueByPlan(db)

	sqls := stmts.all()
	require.GreaterOrEqual(t, len(sqls), 3)
	assert.Contains(t, sqls[0], "created_at >= DATE_SUB(NOW(), INTERVAL 30 DAY)")
	assert.Contains(t, sqls[0], "GROUP BY DATE_FORMAT(created_at, '%Y-%m-%d'), user_type")
	assert.Contains(t, sqls[1], "created_at >= DATE_SUB(CURDATE(), INTERVAL 6 MONTH)")
	assert.Contains(t, sqls[1], "ORDER BY DATE_FORMAT(created_at, '%Y-%m') ASC")
	assert.Contains(t, sqls[2], "COUNT(us.id) * COALESCE(pp.price, 0) AS total_revenue")
	assert.Contains(t, sqls[2], "GROUP BY us.plan_id, pp.name, pp.price")
}

func TestCastingSearchSQL(t *testing.T) {
	db, stmts := dryRunDB(t)
	minBudget := 1500.0

	_, _, _ = NewCastingRepository().Search(db, CastingSearchFilter{
		Keyword:   "lead_role",
		Gender:    "female",
		MinBudget: &minBudget,
		Page:      2,
		Limit:     5,
	})

	sqls := stmts.all()
	require.Len(t, sqls, 2)

	total := sqls[0]
	assert.Contains(t, total, "SELECT COUNT(DISTINCT(")
	assert.Contains(t, total, "cc.audition_date >= CURDATE()")
	assert.Contains(t, total, "(cc.gender = 'female' OR cc.gender = 'any')")
	assert.Contains(t, total, "cc.budget_per_day >= 1500")
	assert.Contains(t, total, `cc.project_title LIKE '%lead\_role%'`)
	assert.NotContains(t, total, "LIMIT")

	page := sqls[1]
	assert.Contains(t, page, "COUNT(DISTINCT a.id) AS total_applications")
	assert.Contains(t, page, "ORDER BY cc.created_at DESC")
	assert.Contains(t, page, "LIMIT 5 OFFSET 5")
}
