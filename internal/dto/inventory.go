package dto

import (
	"github.com/SscSPs/propease_crm/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateWingRequest adds a wing to a project.
type CreateWingRequest struct {
	WingName       string `json:"wingName" binding:"required"`
	NoOfFloors     int    `json:"noOfFloors" binding:"required,min=1"`
	NoOfProperties int    `json:"noOfProperties" binding:"required,min=1"`
}

// UpdateWingRequest patches a wing.
type UpdateWingRequest struct {
	WingName       *string `json:"wingName"`
	NoOfFloors     *int    `json:"noOfFloors" binding:"omitempty,min=1"`
	NoOfProperties *int    `json:"noOfProperties" binding:"omitempty,min=1"`
}

// WingResponse defines the data returned for a wing.
type WingResponse struct {
	WingID         string `json:"wingId"`
	ProjectID      string `json:"projectId"`
	WingName       string `json:"wingName"`
	NoOfFloors     int    `json:"noOfFloors"`
	NoOfProperties int    `json:"noOfProperties"`
}

// ToWingResponse converts a domain.Wing.
func ToWingResponse(w *domain.Wing) WingResponse {
	return WingResponse{
		WingID:         w.WingID,
		ProjectID:      w.ProjectID,
		WingName:       w.WingName,
		NoOfFloors:     w.NoOfFloors,
		NoOfProperties: w.NoOfProperties,
	}
}

// ToListWingResponse converts a slice of wings.
func ToListWingResponse(items []domain.Wing) []WingResponse {
	res := make([]WingResponse, len(items))
	for i := range items {
		res[i] = ToWingResponse(&items[i])
	}
	return res
}

// CreateFloorRequest adds a floor to a wing. Quantity flats are generated
// with the given area and BHK.
type CreateFloorRequest struct {
	FloorNo      int             `json:"floorNo" binding:"min=0"`
	FloorName    string          `json:"floorName" binding:"required"`
	PropertyType string          `json:"propertyType"`
	Area         decimal.Decimal `json:"area"`
	Quantity     int             `json:"quantity" binding:"min=0,max=100"`
	BHK          string          `json:"bhk"`
}

// UpdateFloorRequest patches a floor. Existing flats are not regenerated.
type UpdateFloorRequest struct {
	FloorName    *string          `json:"floorName"`
	PropertyType *string          `json:"propertyType"`
	Area         *decimal.Decimal `json:"area"`
}

// FloorResponse defines the data returned for a floor.
type FloorResponse struct {
	FloorID      string          `json:"floorId"`
	ProjectID    string          `json:"projectId"`
	WingID       string          `json:"wingId"`
	FloorNo      int             `json:"floorNo"`
	FloorName    string          `json:"floorName"`
	PropertyType string          `json:"propertyType"`
	Area         decimal.Decimal `json:"area"`
	Quantity     int             `json:"quantity"`
}

// ToFloorResponse converts a domain.Floor.
func ToFloorResponse(f *domain.Floor) FloorResponse {
	return FloorResponse{
		FloorID:      f.FloorID,
		ProjectID:    f.ProjectID,
		WingID:       f.WingID,
		FloorNo:      f.FloorNo,
		FloorName:    f.FloorName,
		PropertyType: f.PropertyType,
		Area:         f.Area,
		Quantity:     f.Quantity,
	}
}

// ToListFloorResponse converts a slice of floors.
func ToListFloorResponse(items []domain.Floor) []FloorResponse {
	res := make([]FloorResponse, len(items))
	for i := range items {
		res[i] = ToFloorResponse(&items[i])
	}
	return res
}

// CreateFloorResponse is a new floor with the flats generated for it.
type CreateFloorResponse struct {
	Floor FloorResponse  `json:"floor"`
	Flats []FlatResponse `json:"flats"`
}

// UpdateFlatRequest patches a flat's descriptive fields. Status is derived
// from bookings and cannot be set here.
type UpdateFlatRequest struct {
	UnitNumber *string          `json:"unitNumber"`
	Area       *decimal.Decimal `json:"area"`
	BHK        *string          `json:"bhk"`
}

// ListFlatsParams defines query parameters for listing flats.
type ListFlatsParams struct {
	ProjectID string `form:"projectId"`
	WingID    string `form:"wingId"`
	FloorID   string `form:"floorId"`
	Status    string `form:"status" binding:"omitempty,oneof=VACANT BOOKED REGISTERED"`
}

// FlatResponse defines the data returned for a flat.
type FlatResponse struct {
	PropertyID string            `json:"propertyId"`
	ProjectID  string            `json:"projectId"`
	WingID     string            `json:"wingId"`
	FloorID    string            `json:"floorId"`
	UnitNumber string            `json:"unitNumber"`
	Status     domain.UnitStatus `json:"status"`
	Area       decimal.Decimal   `json:"area"`
	BHK        string            `json:"bhk"`
}

// ToFlatResponse converts a domain.Flat.
func ToFlatResponse(f *domain.Flat) FlatResponse {
	return FlatResponse{
		PropertyID: f.PropertyID,
		ProjectID:  f.ProjectID,
		WingID:     f.WingID,
		FloorID:    f.FloorID,
		UnitNumber: f.UnitNumber,
		Status:     f.Status,
		Area:       f.Area,
		BHK:        f.BHK,
	}
}

// ToListFlatResponse converts a slice of flats.
func ToListFlatResponse(items []domain.Flat) []FlatResponse {
	res := make([]FlatResponse, len(items))
	for i := range items {
		res[i] = ToFlatResponse(&items[i])
	}
	return res
}

// PropertyOption is a vacant unit offered in enquiry and booking pickers.
type PropertyOption struct {
	PropertyID string          `json:"propertyId"`
	UnitNumber string          `json:"unitNumber"`
	BHK        string          `json:"bhk"`
	Area       decimal.Decimal `json:"area"`
}

// ToPropertyOptions converts flats to picker options.
func ToPropertyOptions(items []domain.Flat) []PropertyOption {
	res := make([]PropertyOption, len(items))
	for i, f := range items {
		res[i] = PropertyOption{PropertyID: f.PropertyID, UnitNumber: f.UnitNumber, BHK: f.BHK, Area: f.Area}
	}
	return res
}
