package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Project is a row of the projects table.
type Project struct {
	ProjectID         string     `db:"project_id"`
	ProjectName       string     `db:"project_name"`
	Status            string     `db:"status"`
	Progress          int        `db:"progress"`
	StartDate         *time.Time `db:"start_date"`
	CompletionDate    *time.Time `db:"completion_date"`
	MahareraNo        string     `db:"maharera_no"`
	ProjectAddress    string     `db:"project_address"`
	LetterHeadFileURL string     `db:"letter_head_file_url"`
	IsDeleted         bool       `db:"is_deleted"`
	AuditFields
}

// Disbursement is a row of the disbursements table.
type Disbursement struct {
	DisbursementID    string          `db:"disbursement_id"`
	ProjectID         string          `db:"project_id"`
	DisbursementTitle string          `db:"disbursement_title"`
	Description       string          `db:"description"`
	Percentage        decimal.Decimal `db:"percentage"`
	IsDeleted         bool            `db:"is_deleted"`
	AuditFields
}

// BankDetail is a row of the bank_details table.
type BankDetail struct {
	BankDetailID  string `db:"bank_detail_id"`
	ProjectID     string `db:"project_id"`
	BankName      string `db:"bank_name"`
	BranchName    string `db:"branch_name"`
	ContactPerson string `db:"contact_person"`
	ContactNumber string `db:"contact_number"`
	IFSC          string `db:"ifsc"`
	IsDeleted     bool   `db:"is_deleted"`
	AuditFields
}

// Amenity is a row of the amenities table.
type Amenity struct {
	AmenityID   string `db:"amenity_id"`
	ProjectID   string `db:"project_id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	IsDeleted   bool   `db:"is_deleted"`
	AuditFields
}

// Document is a row of the documents table.
type Document struct {
	DocumentID   string `db:"document_id"`
	ProjectID    string `db:"project_id"`
	Title        string `db:"title"`
	DocumentType string `db:"document_type"`
	FileName     string `db:"file_name"`
	ContentType  string `db:"content_type"`
	SizeBytes    int64  `db:"size_bytes"`
	StorageKey   string `db:"storage_key"`
	IsDeleted    bool   `db:"is_deleted"`
	AuditFields
}
