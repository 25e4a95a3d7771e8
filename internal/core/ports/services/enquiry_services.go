package services

import (
	"context"

	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/dto"
)

// EnquiryReaderSvc defines read operations for enquiries.
type EnquiryReaderSvc interface {
	GetEnquiryByID(ctx context.Context, enquiryID string) (*domain.Enquiry, error)
	ListEnquiries(ctx context.Context, params dto.ListEnquiriesParams) ([]domain.Enquiry, error)
	ListRemarks(ctx context.Context, enquiryID string) ([]domain.EnquiryRemark, error)
}

// EnquiryWriterSvc defines write operations for enquiries.
type EnquiryWriterSvc interface {
	// CreateEnquiry writes the optional new client, the enquiry, its first
	// remark and the initial follow-up in one transaction.
	CreateEnquiry(ctx context.Context, req dto.CreateEnquiryRequest, userID string) (*domain.EnquiryCreation, error)
	UpdateEnquiry(ctx context.Context, enquiryID string, req dto.UpdateEnquiryRequest, userID string) (*domain.Enquiry, error)
	CancelEnquiry(ctx context.Context, enquiryID string, remark string, userID string) (*domain.Enquiry, error)
	AddRemark(ctx context.Context, enquiryID string, body string, userID string) (*domain.EnquiryRemark, error)
	DeleteEnquiry(ctx context.Context, enquiryID string, userID string) error
}

// EnquirySvcFacade combines all enquiry service interfaces
type EnquirySvcFacade interface {
	EnquiryReaderSvc
	EnquiryWriterSvc
}
