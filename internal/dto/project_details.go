package dto

import (
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDisbursementRequest adds a payment stage.
type CreateDisbursementRequest struct {
	DisbursementTitle string          `json:"disbursementTitle" binding:"required"`
	Description       string          `json:"description"`
	Percentage        decimal.Decimal `json:"percentage"`
}

// UpdateDisbursementRequest patches a payment stage.
type UpdateDisbursementRequest struct {
	DisbursementTitle *string          `json:"disbursementTitle"`
	Description       *string          `json:"description"`
	Percentage        *decimal.Decimal `json:"percentage"`
}

// DisbursementResponse defines the data returned for a payment stage.
type DisbursementResponse struct {
	DisbursementID    string          `json:"disbursementId"`
	ProjectID         string          `json:"projectId"`
	DisbursementTitle string          `json:"disbursementTitle"`
	Description       string          `json:"description"`
	Percentage        decimal.Decimal `json:"percentage"`
}

// DisbursementScheduleResponse is a project's schedule with its running total.
type DisbursementScheduleResponse struct {
	Stages     []DisbursementResponse `json:"stages"`
	Total      decimal.Decimal        `json:"total"`
	Remaining  decimal.Decimal        `json:"remaining"`
	IsComplete bool                   `json:"isComplete"`
}

// ToDisbursementResponse converts a domain.Disbursement.
func ToDisbursementResponse(d *domain.Disbursement) DisbursementResponse {
	return DisbursementResponse{
		DisbursementID:    d.DisbursementID,
		ProjectID:         d.ProjectID,
		DisbursementTitle: d.DisbursementTitle,
		Description:       d.Description,
		Percentage:        d.Percentage,
	}
}

// ToDisbursementScheduleResponse summarises a schedule.
func ToDisbursementScheduleResponse(stages []domain.Disbursement) DisbursementScheduleResponse {
	res := DisbursementScheduleResponse{Stages: make([]DisbursementResponse, len(stages))}
	for i := range stages {
		res.Stages[i] = ToDisbursementResponse(&stages[i])
	}
	res.Total = domain.DisbursementTotal(stages)
	res.Remaining = domain.FullSchedule.Sub(res.Total)
	res.IsComplete = domain.ScheduleIsComplete(stages)
	return res
}

// CreateBankDetailRequest adds a bank account to a project.
type CreateBankDetailRequest struct {
	BankName      string `json:"bankName" binding:"required"`
	BranchName    string `json:"branchName" binding:"required"`
	ContactPerson string `json:"contactPerson" binding:"required"`
	ContactNumber string `json:"contactNumber" binding:"required,phone"`
	IFSC          string `json:"ifsc" binding:"omitempty,ifsc"`
}

// UpdateBankDetailRequest patches a bank account.
type UpdateBankDetailRequest struct {
	BankName      *string `json:"bankName"`
	BranchName    *string `json:"branchName"`
	ContactPerson *string `json:"contactPerson"`
	ContactNumber *string `json:"contactNumber" binding:"omitempty,phone"`
	IFSC          *string `json:"ifsc" binding:"omitempty,ifsc"`
}

// BankDetailResponse defines the data returned for a bank account.
type BankDetailResponse struct {
	BankDetailID  string `json:"bankDetailId"`
	ProjectID     string `json:"projectId"`
	BankName      string `json:"bankName"`
	BranchName    string `json:"branchName"`
	ContactPerson string `json:"contactPerson"`
	ContactNumber string `json:"contactNumber"`
	IFSC          string `json:"ifsc"`
}

// ToBankDetailResponse converts a domain.BankDetail.
func ToBankDetailResponse(b *domain.BankDetail) BankDetailResponse {
	return BankDetailResponse{
		BankDetailID:  b.BankDetailID,
		ProjectID:     b.ProjectID,
		BankName:      b.BankName,
		BranchName:    b.BranchName,
		ContactPerson: b.ContactPerson,
		ContactNumber: b.ContactNumber,
		IFSC:          b.IFSC,
	}
}

// ToListBankDetailResponse converts a slice of bank accounts.
func ToListBankDetailResponse(items []domain.BankDetail) []BankDetailResponse {
	res := make([]BankDetailResponse, len(items))
	for i := range items {
		res[i] = ToBankDetailResponse(&items[i])
	}
	return res
}

// CreateAmenityRequest adds an amenity to a project.
type CreateAmenityRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// UpdateAmenityRequest patches an amenity.
type UpdateAmenityRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// AmenityResponse defines the data returned for an amenity.
type AmenityResponse struct {
	AmenityID   string `json:"amenityId"`
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ToAmenityResponse converts a domain.Amenity.
func ToAmenityResponse(a *domain.Amenity) AmenityResponse {
	return AmenityResponse{AmenityID: a.AmenityID, ProjectID: a.ProjectID, Name: a.Name, Description: a.Description}
}

// ToListAmenityResponse converts a slice of amenities.
func ToListAmenityResponse(items []domain.Amenity) []AmenityResponse {
	res := make([]AmenityResponse, len(items))
	for i := range items {
		res[i] = ToAmenityResponse(&items[i])
	}
	return res
}

// UploadDocumentRequest is the metadata accompanying a multipart upload.
type UploadDocumentRequest struct {
	Title        string `form:"title" binding:"required"`
	DocumentType string `form:"documentType" binding:"omitempty,oneof=FloorPlan BasementPlan Other"`
	FileName     string `form:"-"`
	ContentType  string `form:"-"`
}

// DocumentResponse defines the data returned for a document.
type DocumentResponse struct {
	DocumentID   string              `json:"documentId"`
	ProjectID    string              `json:"projectId"`
	Title        string              `json:"title"`
	DocumentType domain.DocumentType `json:"documentType"`
	FileName     string              `json:"fileName"`
	ContentType  string              `json:"contentType"`
	SizeBytes    int64               `json:"sizeBytes"`
	DownloadURL  string              `json:"downloadUrl"`
}

// ToDocumentResponse converts a domain.Document.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID:   d.DocumentID,
		ProjectID:    d.ProjectID,
		Title:        d.Title,
		DocumentType: d.DocumentType,
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		DownloadURL:  "/api/documents/" + d.DocumentID + "/file",
	}
}

// ToListDocumentResponse converts a slice of documents.
func ToListDocumentResponse(items []domain.Document) []DocumentResponse {
	res := make([]DocumentResponse, len(items))
	for i := range items {
		res[i] = ToDocumentResponse(&items[i])
	}
	return res
}
