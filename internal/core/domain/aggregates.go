package domain

import "time"

// ProjectDetails is a project together with its inventory and schedule.
type ProjectDetails struct {
	Project       Project
	Wings         []Wing
	Floors        []Floor
	Flats         []Flat
	BankDetails   []BankDetail
	Amenities     []Amenity
	Disbursements []Disbursement
}

// ClientProfile is a client with their enquiries and bookings.
type ClientProfile struct {
	Client    Client
	Enquiries []Enquiry
	Bookings  []Booking
}

// EnquiryCreation is everything written when an enquiry is created.
// NewClient is set only when the enquiry created its client.
type EnquiryCreation struct {
	Enquiry   Enquiry
	NewClient *Client
	Remark    *EnquiryRemark
	FollowUp  FollowUp
}

// BookingResult is everything written when a unit is booked.
type BookingResult struct {
	Booking   Booking
	Flat      Flat
	NewClient *Client
	Enquiry   *Enquiry
}

// FollowUpCompletion is everything written when a follow-up is completed.
type FollowUpCompletion struct {
	Completed FollowUp
	Node      FollowUpNode
	Next      *FollowUp
}

// AuthTokens is the result of a successful sign-in or refresh.
type AuthTokens struct {
	User                  User
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}
