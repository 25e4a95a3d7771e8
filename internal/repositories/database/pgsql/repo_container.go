package pgsql

import (
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every repository to the pool and returns them
// together with a transaction manager that rebinds them to a pgx.Tx.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		Repositories: newRepositories(dbPool),
		TxManager:    &pgTxManager{pool: dbPool},
	}
}

func newRepositories(db querier) portsrepo.Repositories {
	base := BaseRepository{db: db}
	return portsrepo.Repositories{
		ProjectRepo:       &PgxProjectRepository{base},
		ProjectDetailRepo: &PgxProjectDetailRepository{base},
		InventoryRepo:     &PgxInventoryRepository{base},
		ClientRepo:        &PgxClientRepository{base},
		EnquiryRepo:       &PgxEnquiryRepository{base},
		BookingRepo:       &PgxBookingRepository{base},
		FollowUpRepo:      &PgxFollowUpRepository{base},
		NotificationRepo:  &PgxNotificationRepository{base},
		ActivityRepo:      &PgxActivityRepository{base},
		UserRepo:          &PgxUserRepository{base},
		ReportingRepo:     &PgxReportingRepository{base},
	}
}
