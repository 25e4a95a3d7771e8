package models

import "github.com/shopspring/decimal"

// Wing is a row of the wings table.
type Wing struct {
	WingID         string `db:"wing_id"`
	ProjectID      string `db:"project_id"`
	WingName       string `db:"wing_name"`
	NoOfFloors     int    `db:"no_of_floors"`
	NoOfProperties int    `db:"no_of_properties"`
	IsDeleted      bool   `db:"is_deleted"`
	AuditFields
}

// Floor is a row of the floors table.
type Floor struct {
	FloorID      string          `db:"floor_id"`
	ProjectID    string          `db:"project_id"`
	WingID       string          `db:"wing_id"`
	FloorNo      int             `db:"floor_no"`
	FloorName    string          `db:"floor_name"`
	PropertyType string          `db:"property_type"`
	Area         decimal.Decimal `db:"area"`
	Quantity     int             `db:"quantity"`
	IsDeleted    bool            `db:"is_deleted"`
	AuditFields
}

// Flat is a row of the flats table.
type Flat struct {
	PropertyID string          `db:"property_id"`
	ProjectID  string          `db:"project_id"`
	WingID     string          `db:"wing_id"`
	FloorID    string          `db:"floor_id"`
	UnitNumber string          `db:"unit_number"`
	Status     string          `db:"status"`
	Area       decimal.Decimal `db:"area"`
	BHK        string          `db:"bhk"`
	IsDeleted  bool            `db:"is_deleted"`
	AuditFields
}

// UnitStatusCount is a row of the per-project unit status aggregate.
type UnitStatusCount struct {
	ProjectID   string `db:"project_id"`
	ProjectName string `db:"project_name"`
	Vacant      int    `db:"vacant"`
	Booked      int    `db:"booked"`
	Registered  int    `db:"registered"`
	Total       int    `db:"total"`
}
