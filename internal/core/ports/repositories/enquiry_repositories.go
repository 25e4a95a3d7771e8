package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/propease_crm/internal/core/domain"
)

// EnquiryFilter narrows ListEnquiries. Search matches the client's name or the budget.
type EnquiryFilter struct {
	ProjectID  string
	ClientID   string
	PropertyID string
	Status     domain.EnquiryStatus
	Search     string
}

// EnquiryReader defines read operations for enquiry data
type EnquiryReader interface {
	FindEnquiryByID(ctx context.Context, enquiryID string) (*domain.Enquiry, error)
	// ListEnquiries returns non-deleted enquiries, newest first.
	ListEnquiries(ctx context.Context, filter EnquiryFilter) ([]domain.Enquiry, error)
	// ListRemarks returns an enquiry's remark log, oldest first.
	ListRemarks(ctx context.Context, enquiryID string) ([]domain.EnquiryRemark, error)
}

// EnquiryWriter defines write operations for enquiry data
type EnquiryWriter interface {
	SaveEnquiry(ctx context.Context, enquiry domain.Enquiry) error
	UpdateEnquiry(ctx context.Context, enquiry domain.Enquiry) error
	MarkEnquiryDeleted(ctx context.Context, enquiryID string, deletedBy string, at time.Time) error
	SaveRemark(ctx context.Context, remark domain.EnquiryRemark) error
}

// EnquiryRepositoryFacade combines all enquiry-related repository interfaces
type EnquiryRepositoryFacade interface {
	EnquiryReader
	EnquiryWriter
}
