package memory

import (
	"context"
	"sort"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/hashicorp/go-memdb"
)

// NotificationRepository stores notifications in memdb.
type NotificationRepository struct {
	session
}

var _ portsrepo.NotificationRepository = (*NotificationRepository)(nil)

func (r *NotificationRepository) SaveNotification(ctx context.Context, n domain.Notification) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableNotifications, n) })
}

// newerFirst orders notifications by (CreatedAt, NotificationID) descending.
func newerFirst(a, b domain.Notification) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.NotificationID > b.NotificationID
}

func (r *NotificationRepository) ListNotifications(ctx context.Context, userID string, limit int, after *portsrepo.Cursor) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableNotifications, indexID, func(n domain.Notification) bool {
			if n.IsDeleted || (n.UserID != "" && n.UserID != userID) {
				return false
			}
			if after != nil {
				return newerFirst(domain.Notification{CreatedAt: after.CreatedAt, NotificationID: after.ID}, n)
			}
			return true
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool { return newerFirst(out[i], out[j]) })
	return page(out, limit, 0), nil
}

// MarkNotificationRead sets the read flag. Broadcast notifications share one flag.
func (r *NotificationRepository) MarkNotificationRead(ctx context.Context, notificationID string, userID string) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		n, err := first[domain.Notification](txn, tableNotifications, indexID, notificationID)
		if err != nil {
			return err
		}
		if n == nil || n.IsDeleted || (n.UserID != "" && n.UserID != userID) {
			return apperrors.NotFoundf("notification %s not found", notificationID)
		}
		n.IsRead = true
		return insert(txn, tableNotifications, *n)
	})
}

func (r *NotificationRepository) NotificationExists(ctx context.Context, notificationType domain.NotificationType, entityID string, since time.Time) (bool, error) {
	var found []domain.Notification
	err := r.read(func(txn *memdb.Txn) (err error) {
		found, err = all(txn, tableNotifications, indexID, func(n domain.Notification) bool {
			return !n.IsDeleted && n.Type == notificationType && n.EntityID == entityID && !n.CreatedAt.Before(since)
		})
		return err
	})
	return len(found) > 0, err
}

// ActivityRepository stores the activity feed in memdb.
type ActivityRepository struct {
	session
}

var _ portsrepo.ActivityLogRepository = (*ActivityRepository)(nil)

func (r *ActivityRepository) SaveActivity(ctx context.Context, entry domain.ActivityLog) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableActivityLog, entry) })
}

func (r *ActivityRepository) ListRecentActivity(ctx context.Context, limit int) ([]domain.ActivityLog, error) {
	var out []domain.ActivityLog
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all[domain.ActivityLog](txn, tableActivityLog, indexID, nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].ActivityID > out[j].ActivityID
	})
	return page(out, limit, 0), nil
}

// ReportingRepository computes dashboard aggregates by scanning memdb tables.
type ReportingRepository struct {
	session
}

var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

func count[T any](txn *memdb.Txn, table string, keep func(T) bool) (int, error) {
	rows, err := all(txn, table, indexID, keep)
	return len(rows), err
}

func (r *ReportingRepository) CountEntities(ctx context.Context) (portsrepo.EntityCounts, error) {
	var c portsrepo.EntityCounts
	err := r.read(func(txn *memdb.Txn) (err error) {
		if c.Projects, err = count(txn, tableProjects, func(p domain.Project) bool { return !p.IsDeleted }); err != nil {
			return err
		}
		if c.Clients, err = count(txn, tableClients, func(cl domain.Client) bool { return !cl.IsDeleted }); err != nil {
			return err
		}
		if c.Enquiries, err = count(txn, tableEnquiries, func(e domain.Enquiry) bool { return !e.IsDeleted }); err != nil {
			return err
		}
		if c.Bookings, err = count(txn, tableBookings, func(b domain.Booking) bool { return !b.IsDeleted }); err != nil {
			return err
		}
		c.ActiveBookings, err = count(txn, tableBookings, func(b domain.Booking) bool { return b.IsActive() })
		return err
	})
	return c, err
}

func (r *ReportingRepository) UnitStatusCounts(ctx context.Context) ([]domain.UnitStatusCount, error) {
	var out []domain.UnitStatusCount
	err := r.read(func(txn *memdb.Txn) error {
		projects, err := all(txn, tableProjects, indexID, func(p domain.Project) bool { return !p.IsDeleted })
		if err != nil {
			return err
		}
		sort.SliceStable(projects, func(i, j int) bool { return projects[i].ProjectName < projects[j].ProjectName })
		for _, p := range projects {
			flats, err := all(txn, tableFlats, indexProject, func(f domain.Flat) bool { return !f.IsDeleted }, p.ProjectID)
			if err != nil {
				return err
			}
			c := domain.UnitStatusCount{ProjectID: p.ProjectID, ProjectName: p.ProjectName}
			for _, f := range flats {
				c.Add(f.Status)
			}
			out = append(out, c)
		}
		return nil
	})
	return out, err
}
