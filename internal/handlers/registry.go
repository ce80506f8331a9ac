package handlers

import (
	"cinemarathi_backend/internal/services"
	"cinemarathi_backend/internal/validator"
)

// AppHandlers holds every HTTP handler of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	CastingHandler      *CastingHandler
	ChatHandler         *ChatHandler
	RatingHandler       *RatingHandler
	SubscriptionHandler *SubscriptionHandler
	AdminHandler        *AdminHandler
	AnalyticsHandler    *AnalyticsHandler
	RoleHandler         *RoleHandler
	TechnicianHandler   *TechnicianHandler
	SearchHandler       *SearchHandler
	NotificationHandler *NotificationHandler
	EventHandler        *EventHandler
	PushHandler         *PushHandler
	PortfolioHandler    *PortfolioHandler
	UploadHandler       *UploadHandler
	BannerHandler       *BannerHandler
}

func NewAppHandlers(sc *services.ServiceContainer, v *validator.Validator) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		AuthHandler:         NewAuthHandler(base, sc.AuthService, sc.AccountService),
		UserHandler:         NewUserHandler(base, sc.UserService),
		CastingHandler:      NewCastingHandler(base, sc.CastingService),
		ChatHandler:         NewChatHandler(base, sc.ChatService),
		RatingHandler:       NewRatingHandler(base, sc.RatingService),
		SubscriptionHandler: NewSubscriptionHandler(base, sc.SubscriptionService),
		AdminHandler:        NewAdminHandler(base, sc.AdminService, sc.AccountService),
		AnalyticsHandler:    NewAnalyticsHandler(base, sc.AnalyticsService),
		RoleHandler:         NewRoleHandler(base, sc.RoleService),
		TechnicianHandler:   NewTechnicianHandler(base, sc.TechnicianService),
		SearchHandler:       NewSearchHandler(base, sc.SearchService),
		NotificationHandler: NewNotificationHandler(base, sc.NotificationService),
		EventHandler:        NewEventHandler(base, sc.EventService),
		PushHandler:         NewPushHandler(base, sc.PushService),
		PortfolioHandler:    NewPortfolioHandler(base, sc.PortfolioService),
		UploadHandler:       NewUploadHandler(base, sc.UploadService),
		BannerHandler:       NewBannerHandler(base, sc.BannerService),
	}
}
