package repositories

// Repositories groups the per-entity repositories. Inside a transaction the
// same struct is handed out bound to that transaction.
type Repositories struct {
	ProjectRepo       ProjectRepositoryFacade
	ProjectDetailRepo ProjectDetailRepositoryFacade
	InventoryRepo     InventoryRepositoryFacade
	ClientRepo        ClientRepositoryFacade
	EnquiryRepo       EnquiryRepositoryFacade
	BookingRepo       BookingRepositoryFacade
	FollowUpRepo      FollowUpRepositoryFacade
	NotificationRepo  NotificationRepository
	ActivityRepo      ActivityLogRepository
	UserRepo          UserRepositoryFacade
	ReportingRepo     ReportingRepository
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	Repositories
	TxManager TransactionManager
}
