package mapping

import (
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/SscSPs/propease_crm/internal/models"
)

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:         d.ProjectID,
		ProjectName:       d.ProjectName,
		Status:            string(d.Status),
		Progress:          d.Progress,
		StartDate:         d.StartDate,
		CompletionDate:    d.CompletionDate,
		MahareraNo:        d.MahareraNo,
		ProjectAddress:    d.ProjectAddress,
		LetterHeadFileURL: d.LetterHeadFileURL,
		IsDeleted:         d.IsDeleted,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:         m.ProjectID,
		ProjectName:       m.ProjectName,
		Status:            domain.ProjectStatus(m.Status),
		Progress:          m.Progress,
		StartDate:         m.StartDate,
		CompletionDate:    m.CompletionDate,
		MahareraNo:        m.MahareraNo,
		ProjectAddress:    m.ProjectAddress,
		LetterHeadFileURL: m.LetterHeadFileURL,
		IsDeleted:         m.IsDeleted,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	return convertSlice(ms, ToDomainProject)
}

// ToModelDisbursement converts a domain Disbursement to a model Disbursement
func ToModelDisbursement(d domain.Disbursement) models.Disbursement {
	return models.Disbursement{
		DisbursementID:    d.DisbursementID,
		ProjectID:         d.ProjectID,
		DisbursementTitle: d.DisbursementTitle,
		Description:       d.Description,
		Percentage:        d.Percentage,
		IsDeleted:         d.IsDeleted,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDisbursement converts a model Disbursement to a domain Disbursement
func ToDomainDisbursement(m models.Disbursement) domain.Disbursement {
	return domain.Disbursement{
		DisbursementID:    m.DisbursementID,
		ProjectID:         m.ProjectID,
		DisbursementTitle: m.DisbursementTitle,
		Description:       m.Description,
		Percentage:        m.Percentage,
		IsDeleted:         m.IsDeleted,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDisbursementSlice converts a slice of model Disbursements
func ToDomainDisbursementSlice(ms []models.Disbursement) []domain.Disbursement {
	return convertSlice(ms, ToDomainDisbursement)
}

// ToModelBankDetail converts a domain BankDetail to a model BankDetail
func ToModelBankDetail(d domain.BankDetail) models.BankDetail {
	return models.BankDetail{
		BankDetailID:  d.BankDetailID,
		ProjectID:     d.ProjectID,
		BankName:      d.BankName,
		BranchName:    d.BranchName,
		ContactPerson: d.ContactPerson,
		ContactNumber: d.ContactNumber,
		IFSC:          d.IFSC,
		IsDeleted:     d.IsDeleted,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankDetail converts a model BankDetail to a domain BankDetail
func ToDomainBankDetail(m models.BankDetail) domain.BankDetail {
	return domain.BankDetail{
		BankDetailID:  m.BankDetailID,
		ProjectID:     m.ProjectID,
		BankName:      m.BankName,
		BranchName:    m.BranchName,
		ContactPerson: m.ContactPerson,
		ContactNumber: m.ContactNumber,
		IFSC:          m.IFSC,
		IsDeleted:     m.IsDeleted,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankDetailSlice converts a slice of model BankDetails
func ToDomainBankDetailSlice(ms []models.BankDetail) []domain.BankDetail {
	return convertSlice(ms, ToDomainBankDetail)
}

// ToModelAmenity converts a domain Amenity to a model Amenity
func ToModelAmenity(d domain.Amenity) models.Amenity {
	return models.Amenity{
		AmenityID:   d.AmenityID,
		ProjectID:   d.ProjectID,
		Name:        d.Name,
		Description: d.Description,
		IsDeleted:   d.IsDeleted,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAmenity converts a model Amenity to a domain Amenity
func ToDomainAmenity(m models.Amenity) domain.Amenity {
	return domain.Amenity{
		AmenityID:   m.AmenityID,
		ProjectID:   m.ProjectID,
		Name:        m.Name,
		Description: m.Description,
		IsDeleted:   m.IsDeleted,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainAmenitySlice converts a slice of model Amenities
func ToDomainAmenitySlice(ms []models.Amenity) []domain.Amenity {
	return convertSlice(ms, ToDomainAmenity)
}

// ToModelDocument converts a domain Document to a model Document
func ToModelDocument(d domain.Document) models.Document {
	return models.Document{
		DocumentID:   d.DocumentID,
		ProjectID:    d.ProjectID,
		Title:        d.Title,
		DocumentType: string(d.DocumentType),
		FileName:     d.FileName,
		ContentType:  d.ContentType,
		SizeBytes:    d.SizeBytes,
		StorageKey:   d.StorageKey,
		IsDeleted:    d.IsDeleted,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDocument converts a model Document to a domain Document
func ToDomainDocument(m models.Document) domain.Document {
	return domain.Document{
		DocumentID:   m.DocumentID,
		ProjectID:    m.ProjectID,
		Title:        m.Title,
		DocumentType: domain.DocumentType(m.DocumentType),
		FileName:     m.FileName,
		ContentType:  m.ContentType,
		SizeBytes:    m.SizeBytes,
		StorageKey:   m.StorageKey,
		IsDeleted:    m.IsDeleted,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDocumentSlice converts a slice of model Documents
func ToDomainDocumentSlice(ms []models.Document) []domain.Document {
	return convertSlice(ms, ToDomainDocument)
}
