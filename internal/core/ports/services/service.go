package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Project            ProjectSvcFacade
	ProjectDetail      ProjectDetailSvcFacade
	Inventory          InventorySvcFacade
	Client             ClientSvcFacade
	Enquiry            EnquirySvcFacade
	Booking            BookingSvcFacade
	FollowUp           FollowUpSvcFacade
	Notification       NotificationSvcFacade
	Dashboard          DashboardSvc
	User               UserSvcFacade
	TokenService       TokenSvcFacade
	Auth               AuthSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
