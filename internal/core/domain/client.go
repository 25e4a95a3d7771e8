package domain

import "time"

// Client is a prospective or existing buyer.
type Client struct {
	ClientID     string     `json:"clientId"`
	ClientName   string     `json:"clientName"`
	Email        string     `json:"email"`
	MobileNumber string     `json:"mobileNumber"`
	DOB          *time.Time `json:"dob,omitempty"`
	City         string     `json:"city"`
	Address      string     `json:"address"`
	Occupation   string     `json:"occupation"`
	Company      string     `json:"company"`
	PanNo        string     `json:"panNo"`
	AadharNo     string     `json:"aadharNo"`
	IsDeleted    bool       `json:"isDeleted"`
	AuditFields
}
