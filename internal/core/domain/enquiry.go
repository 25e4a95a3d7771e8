package domain

import "time"

// EnquiryStatus is the lifecycle state of an enquiry.
type EnquiryStatus string

const (
	EnquiryStatusOngoing   EnquiryStatus = "ONGOING"
	EnquiryStatusCompleted EnquiryStatus = "COMPLETED"
	EnquiryStatusCancelled EnquiryStatus = "CANCELLED"
)

// IsValid reports whether s is a known enquiry status.
func (s EnquiryStatus) IsValid() bool {
	switch s {
	case EnquiryStatusOngoing, EnquiryStatusCompleted, EnquiryStatusCancelled:
		return true
	}
	return false
}

// Enquiry is a client's interest in a project, optionally in a specific unit.
type Enquiry struct {
	EnquiryID     string        `json:"enquiryId"`
	ProjectID     string        `json:"projectId"`
	ClientID      string        `json:"clientId"`
	PropertyID    string        `json:"propertyId,omitempty"`
	Budget        string        `json:"budget"`
	Reference     string        `json:"reference"`
	ReferenceName string        `json:"referenceName"`
	Status        EnquiryStatus `json:"status"`
	IsDeleted     bool          `json:"isDeleted"`
	AuditFields
}

// EnquiryRemark is one entry of an enquiry's append-only remark log.
type EnquiryRemark struct {
	RemarkID   string    `json:"remarkId"`
	EnquiryID  string    `json:"enquiryId"`
	Body       string    `json:"body"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}
