package services

import (
	"context"

	"cinemarathi_backend/internal/email"
	"cinemarathi_backend/internal/models"
	"cinemarathi_backend/internal/push"
	"cinemarathi_backend/internal/repositories"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// fakeTx stands in for a gorm transaction. When fn fails it runs the
// registered undo funcs in reverse, the way the database would roll back.
type fakeTx struct {
	runs   int
	failed error
	undo   []func()
}

func (f *fakeTx) run(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	f.runs++
	if err := fn(db); err != nil {
		f.failed = err
		for i := len(f.undo) - 1; i >= 0; i-- {
			f.undo[i]()
		}
		return err
	}
	return nil
}

// In-memory repositories. Each embeds its interface so that calling a method
// a test did not expect panics.

type fakeUserRepo struct {
	repositories.UserRepository
	users     map[int64]*models.User
	nextID    int64
	deleted   []int64
	deleteErr error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[int64]*models.User{}, nextID: 100}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ *gorm.DB, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ *gorm.DB, id int64) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ *gorm.DB, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) FindAdminByEmail(db *gorm.DB, email string) (*models.User, error) {
	u, err := r.FindByEmail(db, email)
	if err != nil || u.UserType != models.UserTypeAdmin {
		return nil, repositories.ErrUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) UpdatePassword(_ *gorm.DB, id int64, hash string) error {
	r.users[id].PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) SetFCMToken(_ *gorm.DB, id int64, token *string) error {
	r.users[id].FCMToken = token
	return nil
}

func (r *fakeUserRepo) Exists(_ *gorm.DB, id int64) (bool, error) {
	_, ok := r.users[id]
	return ok, nil
}

func (r *fakeUserRepo) SetPortfolioImages(_ *gorm.DB, id int64, images datatypes.JSON) error {
	r.users[id].PortfolioImages = images
	return nil
}

func (r *fakeUserRepo) Delete(_ *gorm.DB, id int64) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type fakeCastingRepo struct {
	repositories.CastingRepository
	calls   map[int64]*models.CastingCall
	created []*models.CastingCall
}

func (r *fakeCastingRepo) Create(_ *gorm.DB, call *models.CastingCall) error {
	call.ID = int64(len(r.created) + 1)
	r.created = append(r.created, call)
	return nil
}

func (r *fakeCastingRepo) FindByID(_ *gorm.DB, id int64) (*models.CastingCall, error) {
	if c, ok := r.calls[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrCastingCallNotFound
}

type fakeApplicationRepo struct {
	repositories.ApplicationRepository
	apps    map[int64]*models.Application
	applied map[[2]int64]bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: map[int64]*models.Application{}, applied: map[[2]int64]bool{}}
}

func (r *fakeApplicationRepo) Create(_ *gorm.DB, app *models.Application) error {
	app.ID = int64(len(r.apps) + 1)
	r.apps[app.ID] = app
	r.applied[[2]int64{app.CastingCallID, app.ApplicantID}] = true
	return nil
}

func (r *fakeApplicationRepo) Exists(_ *gorm.DB, castingCallID, applicantID int64) (bool, error) {
	return r.applied[[2]int64{castingCallID, applicantID}], nil
}

func (r *fakeApplicationRepo) FindByID(_ *gorm.DB, id int64) (*models.Application, error) {
	if a, ok := r.apps[id]; ok {
		return a, nil
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *fakeApplicationRepo) UpdateStatus(_ *gorm.DB, id int64, status models.ApplicationStatus) error {
	r.apps[id].Status = status
	return nil
}

type fakeDeleteRequestRepo struct {
	repositories.DeleteRequestRepository
	requests map[int64]*models.DeleteAccountRequest
	tx       *fakeTx
}

func (r *fakeDeleteRequestRepo) Create(_ *gorm.DB, req *models.DeleteAccountRequest) error {
	req.ID = int64(len(r.requests) + 1)
	r.requests[req.ID] = req
	return nil
}

func (r *fakeDeleteRequestRepo) HasPending(_ *gorm.DB, userID int64) (bool, error) {
	for _, req := range r.requests {
		if req.UserID == userID && req.Status == models.DeleteRequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeDeleteRequestRepo) FindByID(_ *gorm.DB, id int64) (*models.DeleteAccountRequest, error) {
	if req, ok := r.requests[id]; ok {
		copied := *req
		return &copied, nil
	}
	return nil, repositories.ErrDeleteRequestNotFound
}

func (r *fakeDeleteRequestRepo) MarkProcessed(_ *gorm.DB, id int64, status models.DeleteRequestStatus, processedBy int64) error {
	if r.tx != nil {
		before := *r.requests[id]
		r.tx.undo = append(r.tx.undo, func() { *r.requests[id] = before })
	}
	r.requests[id].Status = status
	r.requests[id].ProcessedBy = &processedBy
	return nil
}

type fakeSubscriptionRepo struct {
	repositories.SubscriptionRepository
	plans       map[int64]*models.PremiumPlan
	status      *models.SubscriptionStatus
	created     []*models.UserSubscription
	deactivated int64
	newPlans    []*models.PremiumPlan
	createErr   error
}

func (r *fakeSubscriptionRepo) FindPlan(_ *gorm.DB, id int64) (*models.PremiumPlan, error) {
	if p, ok := r.plans[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrPlanNotFound
}

func (r *fakeSubscriptionRepo) DeactivateForUser(_ *gorm.DB, _ int64) (int64, error) {
	return r.deactivated, nil
}

func (r *fakeSubscriptionRepo) ListPlans(_ *gorm.DB, _ bool) ([]models.PremiumPlan, error) {
	out := make([]models.PremiumPlan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeSubscriptionRepo) CreatePlan(_ *gorm.DB, plan *models.PremiumPlan) error {
	plan.ID = int64(len(r.plans) + len(r.newPlans) + 1)
	r.newPlans = append(r.newPlans, plan)
	return nil
}

func (r *fakeSubscriptionRepo) Create(_ *gorm.DB, sub *models.UserSubscription) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, sub)
	return nil
}

func (r *fakeSubscriptionRepo) FindStatus(_ *gorm.DB, _ int64) (*models.SubscriptionStatus, error) {
	return r.status, nil
}

type fakeRatingRepo struct {
	repositories.RatingRepository
	created []*models.Rating
}

func (r *fakeRatingRepo) Create(_ *gorm.DB, rating *models.Rating) error {
	r.created = append(r.created, rating)
	return nil
}

type fakeNotificationService struct {
	NotificationService
	sent []string
}

func (s *fakeNotificationService) Notify(_ context.Context, _ *gorm.DB, _ int64, _, message, _ string) error {
	s.sent = append(s.sent, message)
	return nil
}

type fakeMailer struct {
	templates []string
	to        [][]string
}

func (m *fakeMailer) Send(*email.Email) error { return nil }

func (m *fakeMailer) SendTemplate(to []string, _ string, template string, _ email.TemplateData) error {
	m.templates = append(m.templates, template)
	m.to = append(m.to, to)
	return nil
}

type fakeMessenger struct {
	push.Disabled
	tokens []string
}

func (m *fakeMessenger) Enabled() bool { return true }

func (m *fakeMessenger) SendToToken(_ context.Context, token string, _ push.Notification) (string, error) {
	m.tokens = append(m.tokens, token)
	return "projects/cine/messages/1", nil
}
