package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectStatus is the construction stage of a project.
type ProjectStatus string

const (
	ProjectStatusUpcoming   ProjectStatus = "UPCOMING"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusCompleted  ProjectStatus = "COMPLETED"
)

// IsValid reports whether s is a known project status.
func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectStatusUpcoming, ProjectStatusInProgress, ProjectStatusCompleted:
		return true
	}
	return false
}

// Project is a real-estate development registered with MahaRERA.
type Project struct {
	ProjectID         string        `json:"projectId"`
	ProjectName       string        `json:"projectName"`
	Status            ProjectStatus `json:"status"`
	Progress          int           `json:"progress"`
	StartDate         *time.Time    `json:"startDate,omitempty"`
	CompletionDate    *time.Time    `json:"completionDate,omitempty"`
	MahareraNo        string        `json:"mahareraNo"`
	ProjectAddress    string        `json:"projectAddress"`
	LetterHeadFileURL string        `json:"letterHeadFileURL,omitempty"`
	IsDeleted         bool          `json:"isDeleted"`
	AuditFields
}

// Disbursement is one payment stage of a project's schedule, as a percentage
// of the agreement amount.
type Disbursement struct {
	DisbursementID    string          `json:"disbursementId"`
	ProjectID         string          `json:"projectId"`
	DisbursementTitle string          `json:"disbursementTitle"`
	Description       string          `json:"description"`
	Percentage        decimal.Decimal `json:"percentage"`
	IsDeleted         bool            `json:"isDeleted"`
	AuditFields
}

// FullSchedule is the percentage a complete disbursement schedule must reach.
var FullSchedule = decimal.NewFromInt(100)

// DisbursementTotal sums the percentages of the non-deleted stages.
func DisbursementTotal(stages []Disbursement) decimal.Decimal {
	total := decimal.Zero
	for _, s := range stages {
		if s.IsDeleted {
			continue
		}
		total = total.Add(s.Percentage)
	}
	return total
}

// ScheduleIsComplete reports whether the stages sum to exactly 100%.
func ScheduleIsComplete(stages []Disbursement) bool {
	return DisbursementTotal(stages).Equal(FullSchedule)
}

// BankDetail is an account that receives payments for a project.
type BankDetail struct {
	BankDetailID  string `json:"bankDetailId"`
	ProjectID     string `json:"projectId"`
	BankName      string `json:"bankName"`
	BranchName    string `json:"branchName"`
	ContactPerson string `json:"contactPerson"`
	ContactNumber string `json:"contactNumber"`
	IFSC          string `json:"ifsc"`
	IsDeleted     bool   `json:"isDeleted"`
	AuditFields
}

// Amenity is a facility advertised for a project.
type Amenity struct {
	AmenityID   string `json:"amenityId"`
	ProjectID   string `json:"projectId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsDeleted   bool   `json:"isDeleted"`
	AuditFields
}

// DocumentType classifies uploaded project documents.
type DocumentType string

const (
	DocumentTypeFloorPlan    DocumentType = "FloorPlan"
	DocumentTypeBasementPlan DocumentType = "BasementPlan"
	DocumentTypeOther        DocumentType = "Other"
)

// IsValid reports whether t is a known document type.
func (t DocumentType) IsValid() bool {
	switch t {
	case DocumentTypeFloorPlan, DocumentTypeBasementPlan, DocumentTypeOther:
		return true
	}
	return false
}

// Document is the metadata of an uploaded project file. The bytes live in
// document storage under StorageKey.
type Document struct {
	DocumentID   string       `json:"documentId"`
	ProjectID    string       `json:"projectId"`
	Title        string       `json:"title"`
	DocumentType DocumentType `json:"documentType"`
	FileName     string       `json:"fileName"`
	ContentType  string       `json:"contentType"`
	SizeBytes    int64        `json:"sizeBytes"`
	StorageKey   string       `json:"storageKey"`
	IsDeleted    bool         `json:"isDeleted"`
	AuditFields
}
