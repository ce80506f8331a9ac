package services

import (
	"cinemarathi_backend/internal/email"
	"cinemarathi_backend/internal/imageprocessor"
	"cinemarathi_backend/internal/push"
	"cinemarathi_backend/internal/repositories"
	"cinemarathi_backend/internal/storage"
)

// Dependencies are the outside collaborators services talk to.
type Dependencies struct {
	Storage     storage.Storage
	Messenger   push.Messenger
	Mailer      email.Provider
	Processor   *imageprocessor.Processor
	Broadcaster Broadcaster
}

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	CastingService      CastingService
	ChatService         ChatService
	RatingService       RatingService
	NotificationService NotificationService
	PushService         PushService
	SubscriptionService SubscriptionService
	AdminService        AdminService
	AnalyticsService    AnalyticsService
	RoleService         RoleService
	TechnicianService   TechnicianService
	SearchService       SearchService
	EventService        EventService
	AccountService      AccountService
	UploadService       UploadService
	PortfolioService    PortfolioService
	BannerService       BannerService
}

func NewServiceContainer(deps Dependencies) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	portfolioRepo := repositories.NewPortfolioRepository()
	castingRepo := repositories.NewCastingRepository()
	applicationRepo := repositories.NewApplicationRepository()
	chatRepo := repositories.NewChatRepository()
	ratingRepo := repositories.NewRatingRepository()
	notificationRepo := repositories.NewNotificationRepository()
	subscriptionRepo := repositories.NewSubscriptionRepository()
	contentRepo := repositories.NewContentRepository()
	analyticsRepo := repositories.NewAnalyticsRepository()
	roleRepo := repositories.NewRoleRepository()
	technicianRepo := repositories.NewTechnicianRepository()
	eventRepo := repositories.NewEventRepository()
	deleteRequestRepo := repositories.NewDeleteRequestRepository()

	notificationService := NewNotificationService(notificationRepo, userRepo, deps.Messenger)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo),
		UserService:         NewUserService(userRepo, profileRepo, portfolioRepo, subscriptionRepo, castingRepo),
		CastingService:      NewCastingService(castingRepo, applicationRepo, notificationService),
		ChatService:         NewChatService(chatRepo, deps.Broadcaster),
		RatingService:       NewRatingService(ratingRepo),
		NotificationService: notificationService,
		PushService:         NewPushService(userRepo, deps.Messenger),
		SubscriptionService: NewSubscriptionService(subscriptionRepo),
		AdminService:        NewAdminService(userRepo, castingRepo, applicationRepo, contentRepo, subscriptionRepo),
		AnalyticsService:    NewAnalyticsService(analyticsRepo, castingRepo, applicationRepo),
		RoleService:         NewRoleService(roleRepo, userRepo),
		TechnicianService:   NewTechnicianService(technicianRepo),
		SearchService:       NewSearchService(castingRepo, profileRepo),
		EventService:        NewEventService(eventRepo),
		AccountService:      NewAccountService(userRepo, deleteRequestRepo, deps.Mailer),
		UploadService:       NewUploadService(userRepo, deps.Storage, deps.Processor),
		PortfolioService:    NewPortfolioService(userRepo, portfolioRepo, deps.Storage),
		BannerService:       NewBannerService(deps.Storage),
	}
}
