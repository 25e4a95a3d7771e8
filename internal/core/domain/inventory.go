package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// UnitStatus is the sales state of a flat.
type UnitStatus string

const (
	UnitStatusVacant     UnitStatus = "VACANT"
	UnitStatusBooked     UnitStatus = "BOOKED"
	UnitStatusRegistered UnitStatus = "REGISTERED"
)

// IsValid reports whether s is a known unit status.
func (s UnitStatus) IsValid() bool {
	switch s {
	case UnitStatusVacant, UnitStatusBooked, UnitStatusRegistered:
		return true
	}
	return false
}

// Wing is a building block of a project.
type Wing struct {
	WingID         string `json:"wingId"`
	ProjectID      string `json:"projectId"`
	WingName       string `json:"wingName"`
	NoOfFloors     int    `json:"noOfFloors"`
	NoOfProperties int    `json:"noOfProperties"`
	IsDeleted      bool   `json:"isDeleted"`
	AuditFields
}

// Floor is a level of a wing. Quantity is the number of flats on it.
type Floor struct {
	FloorID      string          `json:"floorId"`
	ProjectID    string          `json:"projectId"`
	WingID       string          `json:"wingId"`
	FloorNo      int             `json:"floorNo"`
	FloorName    string          `json:"floorName"`
	PropertyType string          `json:"propertyType"`
	Area         decimal.Decimal `json:"area"`
	Quantity     int             `json:"quantity"`
	IsDeleted    bool            `json:"isDeleted"`
	AuditFields
}

// Flat is a sellable unit. Status is never set directly by callers; it is
// rewritten from DeriveUnitStatus whenever the unit's bookings change.
type Flat struct {
	PropertyID string          `json:"propertyId"`
	ProjectID  string          `json:"projectId"`
	WingID     string          `json:"wingId"`
	FloorID    string          `json:"floorId"`
	UnitNumber string          `json:"unitNumber"`
	Status     UnitStatus      `json:"status"`
	Area       decimal.Decimal `json:"area"`
	BHK        string          `json:"bhk"`
	IsDeleted  bool            `json:"isDeleted"`
	AuditFields
}

// UnitNumber builds the display number of the n-th (1-based) flat on a floor,
// e.g. wing "A", floor 2, n 3 -> "A-203".
func UnitNumber(wingName string, floorNo, n int) string {
	return fmt.Sprintf("%s-%d%02d", wingName, floorNo, n)
}

// UnitStatusCount is the per-status tally of a project's flats.
type UnitStatusCount struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
	Vacant      int    `json:"vacant"`
	Booked      int    `json:"booked"`
	Registered  int    `json:"registered"`
	Total       int    `json:"total"`
}

// Add counts one flat with the given status.
func (c *UnitStatusCount) Add(status UnitStatus) {
	switch status {
	case UnitStatusVacant:
		c.Vacant++
	case UnitStatusBooked:
		c.Booked++
	case UnitStatusRegistered:
		c.Registered++
	}
	c.Total++
}
