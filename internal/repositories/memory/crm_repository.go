package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/propease_crm/internal/apperrors"
	"github.com/SscSPs/propease_crm/internal/core/domain"
	portsrepo "github.com/SscSPs/propease_crm/internal/core/ports/repositories"
	"github.com/hashicorp/go-memdb"
)

// ClientRepository stores clients in memdb.
type ClientRepository struct {
	session
}

var _ portsrepo.ClientRepositoryFacade = (*ClientRepository)(nil)

func clientDeleted(c domain.Client) bool { return c.IsDeleted }

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (r *ClientRepository) FindClientByID(ctx context.Context, clientID string) (*domain.Client, error) {
	var out *domain.Client
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableClients, "client", clientID, clientDeleted)
		return err
	})
	return out, err
}

func (r *ClientRepository) ListClients(ctx context.Context, filter portsrepo.ClientFilter) ([]domain.Client, error) {
	var out []domain.Client
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableClients, indexID, func(c domain.Client) bool {
			if c.IsDeleted {
				return false
			}
			q := filter.Search
			return q == "" || containsFold(c.ClientName, q) || containsFold(c.Email, q) || strings.Contains(c.MobileNumber, q)
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ClientID < out[j].ClientID
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func (r *ClientRepository) SaveClient(ctx context.Context, client domain.Client) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableClients, client) })
}

func (r *ClientRepository) UpdateClient(ctx context.Context, client domain.Client) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableClients, "client", client.ClientID, clientDeleted, client)
	})
}

func (r *ClientRepository) MarkClientDeleted(ctx context.Context, clientID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableClients, "client", clientID, clientDeleted, func(c *domain.Client) {
			markAudit(&c.IsDeleted, c.Touch, deletedBy, at)
		})
	})
}

// EnquiryRepository stores enquiries and their remarks in memdb.
type EnquiryRepository struct {
	session
}

var _ portsrepo.EnquiryRepositoryFacade = (*EnquiryRepository)(nil)

func enquiryDeleted(e domain.Enquiry) bool { return e.IsDeleted }

func (r *EnquiryRepository) FindEnquiryByID(ctx context.Context, enquiryID string) (*domain.Enquiry, error) {
	var out *domain.Enquiry
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableEnquiries, "enquiry", enquiryID, enquiryDeleted)
		return err
	})
	return out, err
}

func (r *EnquiryRepository) ListEnquiries(ctx context.Context, filter portsrepo.EnquiryFilter) ([]domain.Enquiry, error) {
	var out []domain.Enquiry
	err := r.read(func(txn *memdb.Txn) error {
		clientNames := map[string]string{}
		if filter.Search != "" {
			clients, err := all(txn, tableClients, indexID, func(c domain.Client) bool { return !c.IsDeleted })
			if err != nil {
				return err
			}
			for _, c := range clients {
				clientNames[c.ClientID] = c.ClientName
			}
		}
		var err error
		out, err = all(txn, tableEnquiries, indexID, func(e domain.Enquiry) bool {
			return !e.IsDeleted &&
				(filter.ProjectID == "" || e.ProjectID == filter.ProjectID) &&
				(filter.ClientID == "" || e.ClientID == filter.ClientID) &&
				(filter.PropertyID == "" || e.PropertyID == filter.PropertyID) &&
				(filter.Status == "" || e.Status == filter.Status) &&
				(filter.Search == "" || containsFold(clientNames[e.ClientID], filter.Search) || containsFold(e.Budget, filter.Search))
		})
		return err
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].EnquiryID < out[j].EnquiryID
	})
	return out, err
}

func (r *EnquiryRepository) ListRemarks(ctx context.Context, enquiryID string) ([]domain.EnquiryRemark, error) {
	var out []domain.EnquiryRemark
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all[domain.EnquiryRemark](txn, tableEnquiryRemarks, indexEnquiry, nil, enquiryID)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].RemarkID < out[j].RemarkID
	})
	return out, err
}

func (r *EnquiryRepository) SaveEnquiry(ctx context.Context, enquiry domain.Enquiry) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableEnquiries, enquiry) })
}

func (r *EnquiryRepository) UpdateEnquiry(ctx context.Context, enquiry domain.Enquiry) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableEnquiries, "enquiry", enquiry.EnquiryID, enquiryDeleted, enquiry)
	})
}

func (r *EnquiryRepository) MarkEnquiryDeleted(ctx context.Context, enquiryID string, deletedBy string, at time.Time) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return softDelete(txn, tableEnquiries, "enquiry", enquiryID, enquiryDeleted, func(e *domain.Enquiry) {
			markAudit(&e.IsDeleted, e.Touch, deletedBy, at)
		})
	})
}

func (r *EnquiryRepository) SaveRemark(ctx context.Context, remark domain.EnquiryRemark) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableEnquiryRemarks, remark) })
}

// BookingRepository stores bookings in memdb.
type BookingRepository struct {
	session
}

var _ portsrepo.BookingRepositoryFacade = (*BookingRepository)(nil)

func bookingDeleted(b domain.Booking) bool { return b.IsDeleted }

func sortBookingsNewestFirst(bs []domain.Booking) {
	sort.SliceStable(bs, func(i, j int) bool {
		if !bs[i].CreatedAt.Equal(bs[j].CreatedAt) {
			return bs[i].CreatedAt.After(bs[j].CreatedAt)
		}
		return bs[i].BookingID > bs[j].BookingID
	})
}

func (r *BookingRepository) FindBookingByID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var out *domain.Booking
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableBookings, "booking", bookingID, bookingDeleted)
		return err
	})
	return out, err
}

func (r *BookingRepository) ListBookings(ctx context.Context, filter portsrepo.BookingFilter) ([]domain.Booking, error) {
	index, args := indexID, []any{}
	switch {
	case filter.PropertyID != "":
		index, args = indexProperty, []any{filter.PropertyID}
	case filter.ClientID != "":
		index, args = indexClient, []any{filter.ClientID}
	case filter.ProjectID != "":
		index, args = indexProject, []any{filter.ProjectID}
	}
	var out []domain.Booking
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableBookings, index, func(b domain.Booking) bool {
			return !b.IsDeleted &&
				(filter.ProjectID == "" || b.ProjectID == filter.ProjectID) &&
				(filter.ClientID == "" || b.ClientID == filter.ClientID) &&
				(filter.PropertyID == "" || b.PropertyID == filter.PropertyID) &&
				(!filter.ActiveOnly || !b.IsCancelled)
		}, args...)
		return err
	})
	sortBookingsNewestFirst(out)
	return out, err
}

func (r *BookingRepository) ListBookingsForUnit(ctx context.Context, propertyID string) ([]domain.Booking, error) {
	var out []domain.Booking
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableBookings, indexProperty, func(b domain.Booking) bool { return !b.IsDeleted }, propertyID)
		return err
	})
	return out, err
}

// SaveBooking mirrors the one-active-booking-per-unit index of the SQL schema.
func (r *BookingRepository) SaveBooking(ctx context.Context, booking domain.Booking) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		if booking.IsActive() {
			existing, err := all(txn, tableBookings, indexProperty, func(b domain.Booking) bool { return b.IsActive() }, booking.PropertyID)
			if err != nil {
				return err
			}
			if len(existing) > 0 {
				return apperrors.ErrDuplicate
			}
		}
		return insert(txn, tableBookings, booking)
	})
}

func (r *BookingRepository) UpdateBooking(ctx context.Context, booking domain.Booking) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableBookings, "booking", booking.BookingID, bookingDeleted, booking)
	})
}

// FollowUpRepository stores follow-ups and their notes in memdb.
type FollowUpRepository struct {
	session
}

var _ portsrepo.FollowUpRepositoryFacade = (*FollowUpRepository)(nil)

func followUpDeleted(f domain.FollowUp) bool { return f.IsDeleted }

func (r *FollowUpRepository) FindFollowUpByID(ctx context.Context, followUpID string) (*domain.FollowUp, error) {
	var out *domain.FollowUp
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = findLive(txn, tableFollowUps, "follow-up", followUpID, followUpDeleted)
		return err
	})
	return out, err
}

func (r *FollowUpRepository) ListFollowUps(ctx context.Context, filter portsrepo.FollowUpFilter) ([]domain.FollowUp, error) {
	index, args := indexID, []any{}
	if filter.EnquiryID != "" {
		index, args = indexEnquiry, []any{filter.EnquiryID}
	}
	var out []domain.FollowUp
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableFollowUps, index, func(f domain.FollowUp) bool {
			return !f.IsDeleted &&
				(filter.Status == "" || f.Status == filter.Status) &&
				(filter.DueOnOrBefore == nil || !f.FollowUpDate.After(*filter.DueOnOrBefore))
		}, args...)
		return err
	})
	domain.SortFollowUps(out)
	return out, err
}

func (r *FollowUpRepository) ListNodes(ctx context.Context, followUpID string) ([]domain.FollowUpNode, error) {
	var out []domain.FollowUpNode
	err := r.read(func(txn *memdb.Txn) (err error) {
		out, err = all(txn, tableFollowUpNodes, indexFollowUp, func(n domain.FollowUpNode) bool { return !n.IsDeleted }, followUpID)
		return err
	})
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].FollowUpDateTime.Equal(out[j].FollowUpDateTime) {
			return out[i].FollowUpDateTime.Before(out[j].FollowUpDateTime)
		}
		return out[i].FollowUpNodeID < out[j].FollowUpNodeID
	})
	return out, err
}

func (r *FollowUpRepository) SaveFollowUp(ctx context.Context, followUp domain.FollowUp) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableFollowUps, followUp) })
}

func (r *FollowUpRepository) UpdateFollowUp(ctx context.Context, followUp domain.FollowUp) error {
	return r.write(ctx, func(txn *memdb.Txn) error {
		return replaceLive(txn, tableFollowUps, "follow-up", followUp.FollowUpID, followUpDeleted, followUp)
	})
}

func (r *FollowUpRepository) SaveNode(ctx context.Context, node domain.FollowUpNode) error {
	return r.write(ctx, func(txn *memdb.Txn) error { return insert(txn, tableFollowUpNodes, node) })
}
